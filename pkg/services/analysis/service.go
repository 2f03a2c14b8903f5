package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/ba-assistant/pkg/models/domain"
	"github.com/de-tools/ba-assistant/pkg/services/generator"
	"github.com/de-tools/ba-assistant/pkg/services/parser"
	"github.com/de-tools/ba-assistant/pkg/services/prompt"
	"github.com/de-tools/ba-assistant/pkg/services/questions"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Analyzer runs the interview-to-report workflow against a model
type Analyzer interface {
	Questions(ctx context.Context, project domain.Project) ([]string, error)
	Generate(ctx context.Context, project domain.Project, interview []domain.QA) (domain.Analysis, error)
	Parse(raw string) domain.Report
}

type Options struct {
	Parser parser.Options
	// ModelName labels fallback output; defaults to the generator name.
	ModelName string
	// DisableFallback returns transport errors instead of the canned report.
	DisableFallback bool
}

type Service struct {
	gen      generator.TextGenerator
	parser   *parser.Parser
	model    string
	fallback bool
	now      func() time.Time
	newID    func() string
}

func NewService(gen generator.TextGenerator, opts Options) *Service {
	model := opts.ModelName
	if model == "" {
		model = gen.Name()
	}
	return &Service{
		gen:      gen,
		parser:   parser.New(opts.Parser),
		model:    model,
		fallback: !opts.DisableFallback,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// Questions asks the model for interview questions. Output without a usable
// list is replaced by generic questions; transport failures are returned.
func (s *Service) Questions(ctx context.Context, project domain.Project) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	out, err := s.gen.Generate(ctx, prompt.Questions(project))
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	qs := questions.Extract(out, prompt.QuestionCount)
	if len(qs) == 0 {
		logger.Warn().
			Str("model", s.model).
			Int("output_len", len(out)).
			Msg("no questions found in model output, using fallback questions")
		return questions.Fallback(project), nil
	}
	return qs, nil
}

// Generate produces and parses a report. When the model server is unreachable
// the canned fallback report is parsed instead and marked as such.
func (s *Service) Generate(ctx context.Context, project domain.Project, interview []domain.QA) (domain.Analysis, error) {
	logger := zerolog.Ctx(ctx)

	var raw, info string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		info = s.describe(gctx)
		return nil
	})
	g.Go(func() error {
		out, err := s.gen.Generate(gctx, prompt.Report(project, interview))
		if err != nil {
			return err
		}
		raw = out
		return nil
	})

	source := domain.SourceModel
	if err := g.Wait(); err != nil {
		if !s.fallback || !generator.IsTransportError(err) {
			return domain.Analysis{}, fmt.Errorf("failed to generate report: %w", err)
		}
		logger.Error().Err(err).Str("model", s.model).Msg("model failed, using fallback report")
		raw = generator.FallbackReport(project)
		info = generator.FallbackModelInfo(s.model)
		source = domain.SourceFallback
	}

	return domain.Analysis{
		ID:          s.newID(),
		Project:     project,
		Interview:   interview,
		Raw:         raw,
		Report:      s.parser.Parse(raw),
		Source:      source,
		ModelInfo:   info,
		GeneratedAt: s.now(),
	}, nil
}

func (s *Service) Parse(raw string) domain.Report {
	return s.parser.Parse(raw)
}

// Reparse replaces the raw text of an analysis and re-parses it.
func (s *Service) Reparse(a domain.Analysis, raw string) domain.Analysis {
	a.Raw = raw
	a.Report = s.parser.Parse(raw)
	return a
}

func (s *Service) describe(ctx context.Context) string {
	d, ok := s.gen.(generator.ModelDescriber)
	if !ok {
		return s.model
	}
	info, err := d.Describe(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("could not fetch model info")
		return s.model
	}
	return info
}
