package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/de-tools/ba-assistant/pkg/models/domain"
)

// Options tune how strictly content lines are accepted
type Options struct {
	// MinLineLength skips content lines whose trimmed rune length is at most
	// this value. Zero accepts every line.
	MinLineLength int
}

type heading struct {
	pattern *regexp.Regexp
	section domain.SectionKind
}

// Order matters: the non-functional pattern must win over the functional one.
var headings = []heading{
	{regexp.MustCompile(`(?i)executive summary`), domain.SectionExecutiveSummary},
	{regexp.MustCompile(`(?i)non[-/ ]?functional requirements`), domain.SectionNonFunctionalRequirements},
	{regexp.MustCompile(`(?i)functional requirements`), domain.SectionFunctionalRequirements},
	{regexp.MustCompile(`(?i)user stories`), domain.SectionUserStories},
	{regexp.MustCompile(`(?i)technical considerations`), domain.SectionTechnicalConsiderations},
	{regexp.MustCompile(`(?i)business rules`), domain.SectionBusinessRules},
	{regexp.MustCompile(`(?i)success metrics`), domain.SectionSuccessMetrics},
	{regexp.MustCompile(`(?i)next steps|recommendations`), domain.SectionNextSteps},
}

const bulletGlyphs = `•●○◦▪▫■□◆◇►▶➤➔→✓✔✅☑🔹🔸👉⭐`

var (
	bulletPrefix = regexp.MustCompile(`^(?:(\d+[.)])|[-*+` + bulletGlyphs + `]\x{FE0F}?)\s*`)
	// Outline numbering such as "1.1 " or "2.3.1) "; whitespace is required so
	// decimals like "99.9%" stay content.
	outlinePrefix = regexp.MustCompile(`^\d+(?:\.\d+)+[.)]?\s+`)
)

// Parse classifies the lines of a model response into report sections.
// It never fails: input with no recognisable structure ends up verbatim in
// the executive summary.
func Parse(raw string) domain.Report {
	return New(Options{}).Parse(raw)
}

type Parser struct {
	opts Options
}

func New(opts Options) *Parser {
	return &Parser{opts: opts}
}

func (p *Parser) Parse(raw string) domain.Report {
	var (
		report  domain.Report
		summary []string
		current = domain.SectionNone
	)

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)

		if section, ok := detectHeading(trimmed); ok {
			current = section
			continue
		}
		if current == domain.SectionNone || trimmed == "" || p.tooShort(trimmed) {
			continue
		}

		if current == domain.SectionExecutiveSummary {
			summary = append(summary, trimmed)
			continue
		}
		if bulletEnd(trimmed) < 0 {
			continue
		}
		entry := StripBullet(trimmed)
		if entry == "" {
			continue
		}
		appendItem(&report, current, entry)
	}

	report.ExecutiveSummary = strings.Join(summary, " ")

	if report.IsEmpty() {
		report.ExecutiveSummary = raw
	}
	return report
}

func (p *Parser) tooShort(line string) bool {
	return p.opts.MinLineLength > 0 && utf8.RuneCountInString(line) <= p.opts.MinLineLength
}

func detectHeading(line string) (domain.SectionKind, bool) {
	for _, h := range headings {
		if h.pattern.MatchString(line) {
			return h.section, true
		}
	}
	return domain.SectionNone, false
}

// bulletEnd returns the byte offset where the list marker of s ends, or -1.
// A number glued to another digit ("99.9%") is a decimal, not a marker,
// unless it is outline numbering followed by whitespace ("1.1 Login").
func bulletEnd(s string) int {
	if loc := outlinePrefix.FindStringIndex(s); loc != nil {
		return loc[1]
	}
	m := bulletPrefix.FindStringSubmatchIndex(s)
	if m == nil {
		return -1
	}
	if m[2] >= 0 && m[1] == m[3] && m[3] < len(s) && s[m[3]] >= '0' && s[m[3]] <= '9' {
		return -1
	}
	return m[1]
}

// IsBullet reports whether the line starts with a list marker.
func IsBullet(line string) bool {
	return bulletEnd(strings.TrimSpace(line)) >= 0
}

// StripBullet removes every leading list marker, so applying it twice is a no-op.
func StripBullet(line string) string {
	s := strings.TrimSpace(line)
	for {
		end := bulletEnd(s)
		if end <= 0 {
			return s
		}
		s = strings.TrimSpace(s[end:])
	}
}

func appendItem(r *domain.Report, section domain.SectionKind, entry string) {
	switch section {
	case domain.SectionFunctionalRequirements:
		r.FunctionalRequirements = append(r.FunctionalRequirements, entry)
	case domain.SectionNonFunctionalRequirements:
		r.NonFunctionalRequirements = append(r.NonFunctionalRequirements, entry)
	case domain.SectionUserStories:
		r.UserStories = append(r.UserStories, entry)
	case domain.SectionTechnicalConsiderations:
		r.TechnicalConsiderations = append(r.TechnicalConsiderations, entry)
	case domain.SectionBusinessRules:
		r.BusinessRules = append(r.BusinessRules, entry)
	case domain.SectionSuccessMetrics:
		r.SuccessMetrics = append(r.SuccessMetrics, entry)
	case domain.SectionNextSteps:
		r.NextSteps = append(r.NextSteps, entry)
	}
}
