package api

import "time"

type QuestionsRequest struct {
	ProjectName  string `json:"projectName"`
	ProjectTopic string `json:"projectTopic"`
}

type QuestionsResponse struct {
	Success   bool     `json:"success"`
	Questions []string `json:"questions"`
}

type GenerateRequest struct {
	ProjectName  string   `json:"projectName"`
	ProjectTopic string   `json:"projectTopic"`
	Questions    []string `json:"questions"`
	Answers      []string `json:"answers"`
}

type GenerateResponse struct {
	Success     bool      `json:"success"`
	ID          string    `json:"id"`
	Output      string    `json:"output"`
	Source      string    `json:"source"`
	ModelInfo   string    `json:"modelInfo"`
	Report      Report    `json:"report"`
	GeneratedAt time.Time `json:"generatedAt"`
}

type ParseRequest struct {
	Output string `json:"output"`
}

type ParseResponse struct {
	Report Report `json:"report"`
}

type ExportRequest struct {
	ProjectName  string `json:"projectName"`
	ProjectTopic string `json:"projectTopic"`
	ModelInfo    string `json:"modelInfo"`
	Output       string `json:"output"`
}

// Report mirrors domain.Report; list fields are always arrays, never null.
type Report struct {
	ExecutiveSummary          string   `json:"executiveSummary"`
	FunctionalRequirements    []string `json:"functionalRequirements"`
	NonFunctionalRequirements []string `json:"nonFunctionalRequirements"`
	UserStories               []string `json:"userStories"`
	TechnicalConsiderations   []string `json:"technicalConsiderations"`
	BusinessRules             []string `json:"businessRules"`
	SuccessMetrics            []string `json:"successMetrics"`
	NextSteps                 []string `json:"nextSteps"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
