package adapters

import (
	"github.com/de-tools/ba-assistant/pkg/models/api"
	"github.com/de-tools/ba-assistant/pkg/models/domain"
)

func MapReportDomainToApi(r domain.Report) api.Report {
	return api.Report{
		ExecutiveSummary:          r.ExecutiveSummary,
		FunctionalRequirements:    nonNil(r.FunctionalRequirements),
		NonFunctionalRequirements: nonNil(r.NonFunctionalRequirements),
		UserStories:               nonNil(r.UserStories),
		TechnicalConsiderations:   nonNil(r.TechnicalConsiderations),
		BusinessRules:             nonNil(r.BusinessRules),
		SuccessMetrics:            nonNil(r.SuccessMetrics),
		NextSteps:                 nonNil(r.NextSteps),
	}
}

func MapAnalysisDomainToApi(a domain.Analysis) api.GenerateResponse {
	return api.GenerateResponse{
		Success:     true,
		ID:          a.ID,
		Output:      a.Raw,
		Source:      string(a.Source),
		ModelInfo:   a.ModelInfo,
		Report:      MapReportDomainToApi(a.Report),
		GeneratedAt: a.GeneratedAt,
	}
}

func MapGenerateRequestApiToDomain(req api.GenerateRequest) (domain.Project, []domain.QA) {
	project := domain.Project{Name: req.ProjectName, Topic: req.ProjectTopic}
	return project, domain.PairAnswers(req.Questions, req.Answers)
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
