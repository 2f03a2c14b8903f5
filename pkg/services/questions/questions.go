package questions

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/de-tools/ba-assistant/pkg/models/domain"
)

// Unlike report bullets, question markers need trailing whitespace so that
// lines like "2024." are not mistaken for list items.
var questionMarker = regexp.MustCompile(`^(?:\d+[.)]|[-*])\s+`)

// Extract pulls up to limit list items out of a model response.
func Extract(raw string, limit int) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		loc := questionMarker.FindStringIndex(trimmed)
		if loc == nil {
			continue
		}
		q := strings.TrimSpace(trimmed[loc[1]:])
		if q == "" {
			continue
		}
		out = append(out, q)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Fallback returns generic interview questions for when the model output has
// no usable list.
func Fallback(p domain.Project) []string {
	return []string{
		fmt.Sprintf("What are the primary goals and objectives of %s?", p.DisplayName()),
		"Who are the main users or stakeholders, and what are their needs?",
		"What core features or functionalities must be included?",
		"What technical requirements, integrations, or constraints exist?",
		"How will success be measured and what business outcomes are expected?",
	}
}
