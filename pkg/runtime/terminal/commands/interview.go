package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/de-tools/ba-assistant/pkg/models/domain"
	"github.com/de-tools/ba-assistant/pkg/runtime/terminal/export"
	"github.com/de-tools/ba-assistant/pkg/services/generator"
	"github.com/de-tools/ba-assistant/pkg/services/questions"
	"github.com/de-tools/ba-assistant/pkg/services/session"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type InterviewCmd struct {
	name       string
	topic      string
	format     string
	exportPath string
	edit       bool
	assistant  AssistantFactory
	reporter   *export.Reporter
}

// NewInterviewCmd runs the full setup, interview and report flow on the
// terminal, one answer per input line.
func NewInterviewCmd(assistant AssistantFactory, reporter *export.Reporter) *cobra.Command {
	ic := &InterviewCmd{assistant: assistant, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "interview",
		Short: "Answer interview questions and generate a report",
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.name, "name", "", "Project name (prompted when empty)")
	cmd.Flags().StringVar(&ic.topic, "topic", "", "Project description (prompted when empty)")
	cmd.Flags().StringVarP(&ic.format, "format", "f", "text", "Output format: text, json or markdown")
	cmd.Flags().StringVarP(&ic.exportPath, "export", "o", "", "Also save the report to this .html or .md file")
	cmd.Flags().BoolVar(&ic.edit, "edit", false, "Open the raw report in $EDITOR and re-parse it before printing")

	return cmd
}

func (ic *InterviewCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)
	out := cmd.ErrOrStderr()
	in := bufio.NewScanner(cmd.InOrStdin())

	format, err := export.ParseFormat(ic.format)
	if err != nil {
		return err
	}

	name := ic.name
	if name == "" {
		name = ask(in, out, "Project name: ")
	}
	topic := ic.topic
	if topic == "" {
		topic = ask(in, out, "Describe the project: ")
	}
	project := domain.Project{Name: name, Topic: topic}

	assistant, err := ic.assistant(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Preparing questions for %s...\n", project.DisplayName())
	qs, err := assistant.Questions(ctx, project)
	if err != nil {
		if !generator.IsTransportError(err) {
			return err
		}
		logger.Warn().Err(err).Msg("model unavailable, using generic questions")
		fmt.Fprintln(out, "Model server unavailable, using generic questions.")
		qs = questions.Fallback(project)
	}

	s := session.New()
	if err := s.Start(project, qs); err != nil {
		return err
	}
	for i, q := range qs {
		answer := ask(in, out, fmt.Sprintf("\nQ%d/%d: %s\n> ", i+1, len(qs), q))
		if err := s.Answer(i, answer); err != nil {
			return err
		}
	}
	if err := in.Err(); err != nil {
		return fmt.Errorf("failed to read answers: %w", err)
	}

	fmt.Fprintln(out, "\nGenerating report...")
	result, err := assistant.Generate(ctx, s.Project(), s.Interview())
	if err != nil {
		return err
	}
	if err := s.Complete(result); err != nil {
		return err
	}

	if ic.edit {
		raw, err := editText(s.Analysis().Raw, cmd.InOrStdin(), out)
		if err != nil {
			return err
		}
		if err := s.Edit(raw, assistant); err != nil {
			return err
		}
	}

	if ic.exportPath != "" {
		if err := writeExport(ic.exportPath, s.Analysis()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved report to %s\n", ic.exportPath)
	}
	return ic.reporter.Handle(s.Analysis(), format)
}

// ask prints prompt and returns the next input line, or "" at end of input.
func ask(in *bufio.Scanner, out io.Writer, prompt string) string {
	fmt.Fprint(out, prompt)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}

// editText lets the user change text in $EDITOR (vi when unset).
func editText(text string, stdin io.Reader, out io.Writer) (string, error) {
	f, err := os.CreateTemp("", "ba-report-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.WriteString(text); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	c := exec.Command(editor, f.Name())
	c.Stdin, c.Stdout, c.Stderr = stdin, out, out
	if err := c.Run(); err != nil {
		return "", fmt.Errorf("failed to run editor %s: %w", editor, err)
	}

	edited, err := os.ReadFile(f.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read edited report: %w", err)
	}
	return string(edited), nil
}
