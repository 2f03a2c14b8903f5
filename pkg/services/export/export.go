package export

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"io"
	"regexp"
	"strings"
	"text/template"
	"time"

	"github.com/de-tools/ba-assistant/pkg/models/domain"
)

type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "html", "":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

func (f Format) ContentType() string {
	if f == FormatMarkdown {
		return "text/markdown; charset=utf-8"
	}
	return "text/html; charset=utf-8"
}

func (f Format) Extension() string {
	if f == FormatMarkdown {
		return "md"
	}
	return "html"
}

const htmlTmpl = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>{{.Project.DisplayName}} Report</title></head>
<body>
<h1>Business Analysis Report</h1>
<h2>{{.Project.DisplayName}}</h2>
{{- if .Project.Topic}}
<p><strong>Description:</strong> {{.Project.Topic}}</p>
{{- end}}
<p><strong>Generated:</strong> {{date .GeneratedAt}}</p>
<p><strong>Model:</strong> {{model .ModelInfo}}</p>
<hr/>
{{- range .Report.Sections}}
<section>
<h3>{{.Title}}</h3>
{{- if .Text}}
<p>{{.Text}}</p>
{{- else}}
<ul>
{{- range .Items}}
<li>{{.}}</li>
{{- end}}
</ul>
{{- end}}
</section>
{{- end}}
</body>
</html>
`

const markdownTmpl = `# Business Analysis Report: {{.Project.DisplayName}}
{{if .Project.Topic}}
**Description:** {{.Project.Topic}}
{{end}}
**Generated:** {{date .GeneratedAt}}
**Model:** {{model .ModelInfo}}
{{range .Report.Sections}}
## {{.Title}}
{{if .Text}}
{{.Text}}
{{else}}
{{range .Items}}- {{.}}
{{end}}{{end}}{{end}}`

var funcs = map[string]any{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02")
	},
	"model": func(info string) string {
		if strings.TrimSpace(info) == "" {
			return "Local AI"
		}
		return info
	},
}

var (
	htmlReport     = htmltemplate.Must(htmltemplate.New("html").Funcs(funcs).Parse(htmlTmpl))
	markdownReport = template.Must(template.New("markdown").Funcs(funcs).Parse(markdownTmpl))
)

// Write renders the analysis in the given format. Sections without content
// are left out.
func Write(w io.Writer, f Format, a domain.Analysis) error {
	var err error
	switch f {
	case FormatHTML:
		err = htmlReport.Execute(w, a)
	case FormatMarkdown:
		err = markdownReport.Execute(w, a)
	default:
		return fmt.Errorf("unsupported export format %q", f)
	}
	if err != nil {
		return fmt.Errorf("failed to render %s report: %w", f, err)
	}
	return nil
}

func HTML(a domain.Analysis) (string, error) {
	return render(FormatHTML, a)
}

func Markdown(a domain.Analysis) (string, error) {
	return render(FormatMarkdown, a)
}

var unsafeFileChars = regexp.MustCompile(`[^\w.-]+`)

// FileName builds a download name like "Task_App_Report.html".
func FileName(p domain.Project, f Format) string {
	name := strings.Join(strings.Fields(p.DisplayName()), "_")
	name = unsafeFileChars.ReplaceAllString(name, "")
	if name == "" {
		name = "Project"
	}
	return fmt.Sprintf("%s_Report.%s", name, f.Extension())
}

func render(f Format, a domain.Analysis) (string, error) {
	var b bytes.Buffer
	if err := Write(&b, f, a); err != nil {
		return "", err
	}
	return b.String(), nil
}
