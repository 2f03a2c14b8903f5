package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/de-tools/ba-assistant/pkg/models/domain"
	"github.com/de-tools/ba-assistant/pkg/services/analysis"
	"github.com/de-tools/ba-assistant/pkg/services/export"
	"github.com/de-tools/ba-assistant/pkg/services/session"
)

// Assistant is what the model-backed commands need from the analysis service.
type Assistant interface {
	analysis.Analyzer
	session.Reparser
}

// AssistantFactory builds an assistant for the configured model. It is called
// lazily so that commands which never talk to a model do not need one.
type AssistantFactory func(ctx context.Context) (Assistant, error)

// writeExport saves the analysis to path in the format implied by its
// extension (.md or .markdown for markdown, anything else html).
func writeExport(path string, a domain.Analysis) error {
	format := export.FormatHTML
	switch filepath.Ext(path) {
	case ".md", ".markdown":
		format = export.FormatMarkdown
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := export.Write(f, format, a); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
