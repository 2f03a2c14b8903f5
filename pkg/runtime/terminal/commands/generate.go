package commands

import (
	"fmt"

	"github.com/de-tools/ba-assistant/pkg/models/domain"
	"github.com/de-tools/ba-assistant/pkg/runtime/terminal/export"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type GenerateCmd struct {
	name       string
	topic      string
	questions  []string
	answers    []string
	format     string
	exportPath string
	assistant  AssistantFactory
	reporter   *export.Reporter
}

func NewGenerateCmd(assistant AssistantFactory, reporter *export.Reporter) *cobra.Command {
	gc := &GenerateCmd{assistant: assistant, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a report from prepared interview answers",
		Example: `  ba generate --name "Task App" --topic "Team task tracking" \
    -q "Who are the users?" -a "Small teams" \
    -q "What must it do?" -a "Assign and track tasks"`,
		RunE: gc.run,
	}

	cmd.Flags().StringVar(&gc.name, "name", "", "Project name")
	cmd.Flags().StringVar(&gc.topic, "topic", "", "Project description")
	cmd.Flags().StringArrayVarP(&gc.questions, "question", "q", nil, "Interview question (repeatable)")
	cmd.Flags().StringArrayVarP(&gc.answers, "answer", "a", nil, "Answer to the question at the same position (repeatable)")
	cmd.Flags().StringVarP(&gc.format, "format", "f", "text", "Output format: text, json or markdown")
	cmd.Flags().StringVarP(&gc.exportPath, "export", "o", "", "Also save the report to this .html or .md file")

	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func (gc *GenerateCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	format, err := export.ParseFormat(gc.format)
	if err != nil {
		return err
	}
	if len(gc.answers) > len(gc.questions) {
		return fmt.Errorf("got %d answers for %d questions", len(gc.answers), len(gc.questions))
	}

	assistant, err := gc.assistant(ctx)
	if err != nil {
		return err
	}

	project := domain.Project{Name: gc.name, Topic: gc.topic}
	result, err := assistant.Generate(ctx, project, domain.PairAnswers(gc.questions, gc.answers))
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().
		Str("id", result.ID).
		Str("source", string(result.Source)).
		Msg("report generated")

	if gc.exportPath != "" {
		if err := writeExport(gc.exportPath, result); err != nil {
			return err
		}
	}
	return gc.reporter.Handle(result, format)
}
