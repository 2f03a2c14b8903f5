package main

import (
	"fmt"
	"os"

	"github.com/de-tools/ba-assistant/pkg/server"
	"github.com/de-tools/ba-assistant/pkg/services/analysis"
	"github.com/de-tools/ba-assistant/pkg/services/config"
	"github.com/de-tools/ba-assistant/pkg/services/generator"
	"github.com/de-tools/ba-assistant/pkg/services/parser"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	profile string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the business analysis assistant",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a settings file; BA_* environment variables override it")
	rootCmd.Flags().StringVarP(&profile, "profile", "p", "",
		"Model profile name from $HOME/"+config.ProfileFileName)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings, err := config.LoadSettings(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if profile != "" {
		settings.Model.Profile = profile
	}

	modelProfile, err := settings.ModelProfile(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve model profile: %w", err)
	}

	gen, err := generator.DefaultRegistry().Create(ctx, modelProfile)
	if err != nil {
		return fmt.Errorf("failed to create text generator: %w", err)
	}

	logger.Info().
		Str("profile", modelProfile.Name).
		Str("provider", string(modelProfile.Provider)).
		Str("model", modelProfile.Model).
		Bool("fallback", settings.Model.Fallback).
		Msg("model configured")

	analyzer := analysis.NewService(gen, analysis.Options{
		Parser:          parser.Options{MinLineLength: settings.Parser.MinLineLength},
		ModelName:       modelProfile.Model,
		DisableFallback: !settings.Model.Fallback,
	})

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            settings.Server.Addr(),
		ShutdownTimeout: settings.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Analyzer: analyzer,
		},
	})

	return webAPI.Start()
}
