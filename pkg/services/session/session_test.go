package session

import (
	"testing"

	"github.com/de-tools/ba-assistant/pkg/models/domain"
	"github.com/de-tools/ba-assistant/pkg/services/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type parserReparser struct{}

func (parserReparser) Reparse(a domain.Analysis, raw string) domain.Analysis {
	a.Raw = raw
	a.Report = parser.Parse(raw)
	return a
}

func TestSession_HappyPath(t *testing.T) {
	s := New()
	assert.Equal(t, StateSetup, s.State())

	project := domain.Project{Name: "Task App"}
	require.NoError(t, s.Start(project, []string{"Who?", "Why?"}))
	assert.Equal(t, StateInterview, s.State())
	assert.Equal(t, project, s.Project())

	require.NoError(t, s.Answer(0, "  Teams  "))
	require.NoError(t, s.Answer(0, "Small teams"))
	assert.Equal(t, []domain.QA{
		{Question: "Who?", Answer: "Small teams"},
		{Question: "Why?", Answer: ""},
	}, s.Interview())

	analysis := domain.Analysis{ID: "a1", Raw: "x", Report: parser.Parse("x")}
	require.NoError(t, s.Complete(analysis))
	assert.Equal(t, StateReport, s.State())
	assert.Equal(t, "a1", s.Analysis().ID)

	require.NoError(t, s.Edit("NEXT STEPS\n- Kickoff", parserReparser{}))
	assert.Equal(t, "a1", s.Analysis().ID)
	assert.Equal(t, []string{"Kickoff"}, s.Analysis().Report.NextSteps)
	assert.Equal(t, "", s.Analysis().Report.ExecutiveSummary)

	s.Reset()
	assert.Equal(t, StateSetup, s.State())
	assert.Empty(t, s.Questions())
	assert.Equal(t, domain.Project{}, s.Project())
}

func TestSession_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		prep func(s *Session)
		act  func(s *Session) error
	}{
		{
			name: "answer during setup",
			prep: func(*Session) {},
			act:  func(s *Session) error { return s.Answer(0, "x") },
		},
		{
			name: "complete during setup",
			prep: func(*Session) {},
			act:  func(s *Session) error { return s.Complete(domain.Analysis{}) },
		},
		{
			name: "edit during interview",
			prep: func(s *Session) { _ = s.Start(domain.Project{}, []string{"q"}) },
			act:  func(s *Session) error { return s.Edit("x", parserReparser{}) },
		},
		{
			name: "start twice",
			prep: func(s *Session) { _ = s.Start(domain.Project{}, []string{"q"}) },
			act:  func(s *Session) error { return s.Start(domain.Project{}, []string{"q"}) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			tt.prep(s)
			before := s.State()

			err := tt.act(s)

			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, before, s.State())
		})
	}
}

func TestSession_StartValidation(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.Start(domain.Project{}, nil), ErrNoQuestions)
	assert.Equal(t, StateSetup, s.State())

	require.NoError(t, s.Start(domain.Project{}, []string{"q"}))
	assert.ErrorIs(t, s.Answer(1, "x"), ErrQuestionIndex)
	assert.ErrorIs(t, s.Answer(-1, "x"), ErrQuestionIndex)
}

func TestSession_QuestionsAreCopied(t *testing.T) {
	qs := []string{"a", "b"}
	s := New()
	require.NoError(t, s.Start(domain.Project{}, qs))

	qs[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, s.Questions())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "setup", StateSetup.String())
	assert.Equal(t, "interview", StateInterview.String())
	assert.Equal(t, "report", StateReport.String())
	assert.Equal(t, "state(9)", State(9).String())
}
