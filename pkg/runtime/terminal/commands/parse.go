package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/de-tools/ba-assistant/pkg/runtime/terminal/export"
	"github.com/de-tools/ba-assistant/pkg/services/parser"
	"github.com/spf13/cobra"
)

type ParseCmd struct {
	format        string
	minLineLength int
	defaults      *parser.Options
	reporter      *export.Reporter
}

// NewParseCmd classifies saved model output without calling a model.
// defaults supplies the configured parser options; the flag overrides them.
func NewParseCmd(defaults *parser.Options, reporter *export.Reporter) *cobra.Command {
	pc := &ParseCmd{defaults: defaults, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse raw model output into report sections",
		Long:  "Parse raw model output into report sections. Reads stdin when no file is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  pc.run,
	}

	cmd.Flags().StringVarP(&pc.format, "format", "f", "text", "Output format: text, json or markdown")
	cmd.Flags().IntVar(&pc.minLineLength, "strict-min-length", 0,
		"Drop content lines of this many characters or fewer")

	return cmd
}

func (pc *ParseCmd) run(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(pc.format)
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()
		in = f
	}

	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read model output: %w", err)
	}

	opts := parser.Options{}
	if pc.defaults != nil {
		opts = *pc.defaults
	}
	if cmd.Flags().Changed("strict-min-length") {
		if pc.minLineLength < 0 {
			return fmt.Errorf("--strict-min-length must not be negative")
		}
		opts.MinLineLength = pc.minLineLength
	}

	return pc.reporter.HandleReport(parser.New(opts).Parse(string(raw)), format)
}
