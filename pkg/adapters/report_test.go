package adapters

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/de-tools/ba-assistant/pkg/models/api"
	"github.com/de-tools/ba-assistant/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapReportDomainToApi_EmptyListsAreArrays(t *testing.T) {
	out, err := json.Marshal(MapReportDomainToApi(domain.Report{ExecutiveSummary: "x"}))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"executiveSummary": "x",
		"functionalRequirements": [],
		"nonFunctionalRequirements": [],
		"userStories": [],
		"technicalConsiderations": [],
		"businessRules": [],
		"successMetrics": [],
		"nextSteps": []
	}`, string(out))
}

func TestMapAnalysisDomainToApi(t *testing.T) {
	at := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	got := MapAnalysisDomainToApi(domain.Analysis{
		ID:          "a1",
		Raw:         "raw",
		Report:      domain.Report{NextSteps: []string{"Ship"}},
		Source:      domain.SourceFallback,
		ModelInfo:   "m (Demo Mode)",
		GeneratedAt: at,
	})

	assert.True(t, got.Success)
	assert.Equal(t, "a1", got.ID)
	assert.Equal(t, "raw", got.Output)
	assert.Equal(t, "fallback", got.Source)
	assert.Equal(t, "m (Demo Mode)", got.ModelInfo)
	assert.Equal(t, []string{"Ship"}, got.Report.NextSteps)
	assert.Equal(t, at, got.GeneratedAt)
}

func TestMapGenerateRequestApiToDomain(t *testing.T) {
	project, interview := MapGenerateRequestApiToDomain(api.GenerateRequest{
		ProjectName:  "Task App",
		ProjectTopic: "Tasks",
		Questions:    []string{"Who?", "Why?"},
		Answers:      []string{"Teams"},
	})

	assert.Equal(t, domain.Project{Name: "Task App", Topic: "Tasks"}, project)
	assert.Equal(t, []domain.QA{
		{Question: "Who?", Answer: "Teams"},
		{Question: "Why?", Answer: ""},
	}, interview)
}
