package main

import (
	"fmt"
	"os"

	"github.com/de-tools/ba-assistant/pkg/runtime/terminal"
	"github.com/de-tools/ba-assistant/pkg/services/generator"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	level, err := zerolog.ParseLevel(os.Getenv("BA_LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	cli := terminal.NewCLI(terminal.Options{
		Registry: generator.DefaultRegistry(),
		Logger:   &logger,
		Input:    os.Stdin,
		Output:   os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
