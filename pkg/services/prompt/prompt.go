package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/de-tools/ba-assistant/pkg/models/domain"
)

const NoResponse = "No response provided"

const questionsTmpl = `You are a senior business analyst. Generate exactly {{.Count}} focused, comprehensive questions for a business analysis interview about this project:

PROJECT: {{.Name}}
DESCRIPTION: {{.Topic}}

Make sure the questions:
- Cover functional requirements, users, technical needs, business processes, and success criteria
- Are specific to this project domain
- Are clear and professional
- Format as: 1. Question 2. Question etc
- ONLY return the numbered list`

const reportTmpl = `You are a senior business analyst. Based on this detailed interview, generate a comprehensive, professional business analysis document.

PROJECT: {{.Name}}

DESCRIPTION: {{.Topic}}

INTERVIEW RESULTS:

{{.Interview}}

Generate a well-structured document with the following sections:

# EXECUTIVE SUMMARY
Brief overview of the project and key findings (2-3 paragraphs)

# FUNCTIONAL REQUIREMENTS
List 8-10 specific functional requirements as a numbered list

# NON-FUNCTIONAL REQUIREMENTS
Performance, security, scalability and usability requirements as a bulleted list

# USER STORIES
5-7 user stories in the format "As a [user], I want [goal] so that [benefit]"

# TECHNICAL CONSIDERATIONS
Architecture, integrations and technology recommendations as a bulleted list

# BUSINESS RULES
Key business rules and constraints as a bulleted list

# SUCCESS METRICS
Measurable KPIs as a bulleted list

# NEXT STEPS & RECOMMENDATIONS
Prioritized action items as a numbered list`

var (
	questions = template.Must(template.New("questions").Parse(questionsTmpl))
	report    = template.Must(template.New("report").Parse(reportTmpl))
)

// QuestionCount is how many interview questions the model is asked for.
const QuestionCount = 5

func Questions(p domain.Project) string {
	return render(questions, map[string]any{
		"Count": QuestionCount,
		"Name":  p.DisplayName(),
		"Topic": strings.TrimSpace(p.Topic),
	})
}

func Report(p domain.Project, interview []domain.QA) string {
	return render(report, map[string]any{
		"Name":      p.DisplayName(),
		"Topic":     strings.TrimSpace(p.Topic),
		"Interview": FormatInterview(interview),
	})
}

// FormatInterview renders Q&A pairs as numbered bold-labelled blocks.
func FormatInterview(interview []domain.QA) string {
	blocks := make([]string, 0, len(interview))
	for i, qa := range interview {
		answer := strings.TrimSpace(qa.Answer)
		if answer == "" {
			answer = NoResponse
		}
		blocks = append(blocks, fmt.Sprintf("**Q%d:** %s\n**A%d:** %s", i+1, qa.Question, i+1, answer))
	}
	return strings.Join(blocks, "\n\n")
}

func render(t *template.Template, data any) string {
	var b strings.Builder
	// templates are static and data is a plain map, so Execute cannot fail
	_ = t.Execute(&b, data)
	return b.String()
}
