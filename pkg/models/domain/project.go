package domain

import "strings"

const DefaultProjectName = "Unknown Project"

type Project struct {
	Name  string
	Topic string
}

// DisplayName falls back to DefaultProjectName when the name is blank.
func (p Project) DisplayName() string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	return DefaultProjectName
}

// QA is one interview question paired with the user's answer
type QA struct {
	Question string
	Answer   string
}

// PairAnswers zips questions with answers; missing answers stay empty.
func PairAnswers(questions, answers []string) []QA {
	pairs := make([]QA, 0, len(questions))
	for i, q := range questions {
		var a string
		if i < len(answers) {
			a = answers[i]
		}
		pairs = append(pairs, QA{Question: q, Answer: a})
	}
	return pairs
}
