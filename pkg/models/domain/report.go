package domain

import "time"

// SectionKind identifies one of the semantic buckets of a report
type SectionKind int

const (
	SectionNone SectionKind = iota
	SectionExecutiveSummary
	SectionFunctionalRequirements
	SectionNonFunctionalRequirements
	SectionUserStories
	SectionTechnicalConsiderations
	SectionBusinessRules
	SectionSuccessMetrics
	SectionNextSteps
)

var sectionTitles = map[SectionKind]string{
	SectionExecutiveSummary:          "Executive Summary",
	SectionFunctionalRequirements:    "Functional Requirements",
	SectionNonFunctionalRequirements: "Non-Functional Requirements",
	SectionUserStories:               "User Stories",
	SectionTechnicalConsiderations:   "Technical Considerations",
	SectionBusinessRules:             "Business Rules",
	SectionSuccessMetrics:            "Success Metrics",
	SectionNextSteps:                 "Next Steps & Recommendations",
}

// ListSections are the bullet-list sections in rendering order.
var ListSections = []SectionKind{
	SectionFunctionalRequirements,
	SectionNonFunctionalRequirements,
	SectionUserStories,
	SectionTechnicalConsiderations,
	SectionBusinessRules,
	SectionSuccessMetrics,
	SectionNextSteps,
}

func (k SectionKind) Title() string {
	return sectionTitles[k]
}

// Report is the structured form of a model response
type Report struct {
	ExecutiveSummary          string
	FunctionalRequirements    []string
	NonFunctionalRequirements []string
	UserStories               []string
	TechnicalConsiderations   []string
	BusinessRules             []string
	SuccessMetrics            []string
	NextSteps                 []string
}

// ReportSection is a titled, non-empty part of a report ready for rendering
type ReportSection struct {
	Kind  SectionKind
	Title string
	Text  string
	Items []string
}

// Items returns the entries collected for a list section.
func (r Report) Items(kind SectionKind) []string {
	switch kind {
	case SectionFunctionalRequirements:
		return r.FunctionalRequirements
	case SectionNonFunctionalRequirements:
		return r.NonFunctionalRequirements
	case SectionUserStories:
		return r.UserStories
	case SectionTechnicalConsiderations:
		return r.TechnicalConsiderations
	case SectionBusinessRules:
		return r.BusinessRules
	case SectionSuccessMetrics:
		return r.SuccessMetrics
	case SectionNextSteps:
		return r.NextSteps
	default:
		return nil
	}
}

// IsEmpty reports whether no field holds any content.
func (r Report) IsEmpty() bool {
	if r.ExecutiveSummary != "" {
		return false
	}
	for _, kind := range ListSections {
		if len(r.Items(kind)) > 0 {
			return false
		}
	}
	return true
}

// Sections returns the non-empty sections in canonical order.
func (r Report) Sections() []ReportSection {
	var sections []ReportSection
	if r.ExecutiveSummary != "" {
		sections = append(sections, ReportSection{
			Kind:  SectionExecutiveSummary,
			Title: SectionExecutiveSummary.Title(),
			Text:  r.ExecutiveSummary,
		})
	}
	for _, kind := range ListSections {
		items := r.Items(kind)
		if len(items) == 0 {
			continue
		}
		sections = append(sections, ReportSection{
			Kind:  kind,
			Title: kind.Title(),
			Items: items,
		})
	}
	return sections
}

// Source tells whether the raw text came from a model or the canned fallback
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// Analysis is a single generation run: inputs, raw model text and its parsed form
type Analysis struct {
	ID          string
	Project     Project
	Interview   []QA
	Raw         string
	Report      Report
	Source      Source
	ModelInfo   string
	GeneratedAt time.Time
}
