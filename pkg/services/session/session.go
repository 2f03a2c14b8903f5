package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/ba-assistant/pkg/models/domain"
)

var (
	ErrInvalidTransition = errors.New("invalid session transition")
	ErrNoQuestions       = errors.New("no interview questions")
	ErrQuestionIndex     = errors.New("question index out of range")
)

type State int

const (
	StateSetup State = iota
	StateInterview
	StateReport
)

func (s State) String() string {
	switch s {
	case StateSetup:
		return "setup"
	case StateInterview:
		return "interview"
	case StateReport:
		return "report"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Reparser turns edited raw text back into a structured report
type Reparser interface {
	Reparse(a domain.Analysis, raw string) domain.Analysis
}

// Session walks one user through setup, interview and report. It is owned by
// a single view and is not safe for concurrent use.
type Session struct {
	state     State
	project   domain.Project
	questions []string
	answers   []string
	analysis  domain.Analysis
}

func New() *Session {
	return &Session{state: StateSetup}
}

func (s *Session) State() State             { return s.state }
func (s *Session) Project() domain.Project  { return s.project }
func (s *Session) Analysis() domain.Analysis { return s.analysis }

func (s *Session) Questions() []string {
	return append([]string(nil), s.questions...)
}

// Interview pairs every question with its current answer.
func (s *Session) Interview() []domain.QA {
	return domain.PairAnswers(s.questions, s.answers)
}

// Start moves from setup to interview with a blank answer per question.
func (s *Session) Start(project domain.Project, questions []string) error {
	if err := s.expect(StateSetup, "start"); err != nil {
		return err
	}
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	s.project = project
	s.questions = append([]string(nil), questions...)
	s.answers = make([]string, len(questions))
	s.state = StateInterview
	return nil
}

// Answer records the answer to question i, replacing any earlier one.
func (s *Session) Answer(i int, text string) error {
	if err := s.expect(StateInterview, "answer"); err != nil {
		return err
	}
	if i < 0 || i >= len(s.answers) {
		return fmt.Errorf("%w: %d", ErrQuestionIndex, i)
	}
	s.answers[i] = strings.TrimSpace(text)
	return nil
}

// Complete stores the generated analysis and moves to the report.
func (s *Session) Complete(a domain.Analysis) error {
	if err := s.expect(StateInterview, "complete"); err != nil {
		return err
	}
	s.analysis = a
	s.state = StateReport
	return nil
}

// Edit replaces the raw report text; the parsed report is rebuilt wholesale.
func (s *Session) Edit(raw string, r Reparser) error {
	if err := s.expect(StateReport, "edit"); err != nil {
		return err
	}
	s.analysis = r.Reparse(s.analysis, raw)
	return nil
}

// Reset returns to an empty setup state from anywhere.
func (s *Session) Reset() {
	*s = Session{state: StateSetup}
}

func (s *Session) expect(want State, action string) error {
	if s.state != want {
		return fmt.Errorf("%w: cannot %s in %s state", ErrInvalidTransition, action, s.state)
	}
	return nil
}
