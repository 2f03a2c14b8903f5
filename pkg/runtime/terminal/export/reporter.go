package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/charmbracelet/glamour"
	"github.com/de-tools/ba-assistant/pkg/adapters"
	"github.com/de-tools/ba-assistant/pkg/models/api"
	"github.com/de-tools/ba-assistant/pkg/models/domain"
	docs "github.com/de-tools/ba-assistant/pkg/services/export"
)

type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want text, json or markdown)", s)
	}
}

type Config struct {
	// WordWrap is the column markdown output is wrapped at.
	WordWrap int
	// Style names a glamour style such as "dark" or "notty"; empty detects
	// it from the terminal.
	Style string
}

func DefaultConfig() Config {
	return Config{WordWrap: 80}
}

// Reporter prints reports to the console as plain text, JSON or rendered
// markdown.
type Reporter struct {
	writer io.Writer
	config Config
}

func NewReporter(writer io.Writer) *Reporter {
	return NewReporterWithConfig(writer, DefaultConfig())
}

func NewReporterWithConfig(writer io.Writer, config Config) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	if config.WordWrap <= 0 {
		config.WordWrap = DefaultConfig().WordWrap
	}
	return &Reporter{writer: writer, config: config}
}

const textTmpl = `{{if .Header}}{{.Project.DisplayName}}
Model: {{model .ModelInfo}}{{if .Fallback}} (fallback){{end}}
{{end}}{{range .Report.Sections}}
=== {{.Title}} ===
{{if .Text}}{{.Text}}
{{else}}{{range .Items}}  - {{.}}
{{end}}{{end}}{{end}}`

const sectionsMarkdownTmpl = `{{range .Sections}}## {{.Title}}

{{if .Text}}{{.Text}}
{{else}}{{range .Items}}- {{.}}
{{end}}{{end}}
{{end}}`

var funcs = template.FuncMap{
	"model": func(info string) string {
		if strings.TrimSpace(info) == "" {
			return "Local AI"
		}
		return info
	},
}

var (
	textReport       = template.Must(template.New("text").Funcs(funcs).Parse(textTmpl))
	sectionsMarkdown = template.Must(template.New("sections").Parse(sectionsMarkdownTmpl))
)

type textView struct {
	domain.Analysis
	Header   bool
	Fallback bool
}

// Handle prints a generated analysis.
func (c *Reporter) Handle(a domain.Analysis, f Format) error {
	switch f {
	case FormatJSON:
		return c.writeJSON(adapters.MapAnalysisDomainToApi(a))
	case FormatMarkdown:
		md, err := docs.Markdown(a)
		if err != nil {
			return err
		}
		return c.writeMarkdown(md)
	default:
		return c.writeText(textView{Analysis: a, Header: true, Fallback: a.Source == domain.SourceFallback})
	}
}

// HandleReport prints a report that was parsed without a project around it.
func (c *Reporter) HandleReport(r domain.Report, f Format) error {
	switch f {
	case FormatJSON:
		return c.writeJSON(api.ParseResponse{Report: adapters.MapReportDomainToApi(r)})
	case FormatMarkdown:
		var b strings.Builder
		if err := sectionsMarkdown.Execute(&b, r); err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		return c.writeMarkdown(b.String())
	default:
		return c.writeText(textView{Analysis: domain.Analysis{Report: r}})
	}
}

func (c *Reporter) writeText(v textView) error {
	if err := textReport.Execute(c.writer, v); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

func (c *Reporter) writeJSON(v any) error {
	enc := json.NewEncoder(c.writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

func (c *Reporter) writeMarkdown(md string) error {
	style := glamour.WithAutoStyle()
	if c.config.Style != "" {
		style = glamour.WithStandardStyle(c.config.Style)
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(c.config.WordWrap))
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(c.writer, out)
	return err
}
