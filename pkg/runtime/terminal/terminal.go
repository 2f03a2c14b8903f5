package terminal

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/ba-assistant/pkg/runtime/terminal/commands"
	"github.com/de-tools/ba-assistant/pkg/runtime/terminal/export"
	"github.com/de-tools/ba-assistant/pkg/services/analysis"
	"github.com/de-tools/ba-assistant/pkg/services/config"
	"github.com/de-tools/ba-assistant/pkg/services/generator"
	"github.com/de-tools/ba-assistant/pkg/services/parser"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	registry   generator.Registry
	settings   *config.Settings
	parserOpts parser.Options
	logger     zerolog.Logger
	reporter   *export.Reporter
	rootCmd    *cobra.Command
	cfgPath    string
	profile    string
}

// Options contain configuration for the CLI
type Options struct {
	Registry generator.Registry
	// Settings skips loading the --config file when set.
	Settings *config.Settings
	Logger   *zerolog.Logger
	Input    io.Reader
	Output   io.Writer
	Reporter export.Config
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Registry == nil {
		opts.Registry = generator.DefaultRegistry()
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	cli := &CLI{
		registry: opts.Registry,
		settings: opts.Settings,
		logger:   logger,
		reporter: export.NewReporterWithConfig(opts.Output, opts.Reporter),
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetIn(opts.Input)
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args, mostly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "ba",
		Short:             "Business analysis assistant",
		Long:              "Interview a stakeholder, generate a business analysis report with a local or hosted model, and parse or export it.",
		SilenceUsage:      true,
		PersistentPreRunE: cli.setup,
	}

	cmd.PersistentFlags().StringVarP(&cli.cfgPath, "config", "c", "", "Path to a settings file (YAML, TOML or JSON)")
	cmd.PersistentFlags().StringVarP(&cli.profile, "profile", "p", "", "Model profile name from the profile file")

	cmd.AddCommand(commands.NewParseCmd(&cli.parserOpts, cli.reporter))
	cmd.AddCommand(commands.NewGenerateCmd(cli.assistant, cli.reporter))
	cmd.AddCommand(commands.NewInterviewCmd(cli.assistant, cli.reporter))
	cmd.AddCommand(commands.NewProfilesCmd(cli.registry))

	return cmd
}

func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	if cli.settings == nil {
		s, err := config.LoadSettings(cli.cfgPath)
		if err != nil {
			return err
		}
		cli.settings = s
	}
	if cli.profile != "" {
		cli.settings.Model.Profile = cli.profile
	}
	cli.parserOpts = parser.Options{MinLineLength: cli.settings.Parser.MinLineLength}

	cmd.SetContext(cli.logger.WithContext(cmd.Context()))
	return nil
}

func (cli *CLI) assistant(ctx context.Context) (commands.Assistant, error) {
	profile, err := cli.settings.ModelProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve model profile: %w", err)
	}

	gen, err := cli.registry.Create(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s generator: %w", profile.Provider, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("profile", profile.Name).
		Str("provider", string(profile.Provider)).
		Str("model", profile.Model).
		Msg("using model")

	return analysis.NewService(gen, analysis.Options{
		Parser:          cli.parserOpts,
		ModelName:       profile.Model,
		DisableFallback: !cli.settings.Model.Fallback,
	}), nil
}
