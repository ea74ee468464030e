package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// HTMLFormatter renders the markdown report through goldmark into a
// standalone page.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Parse(htmlTemplateSource))

var markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

func (h HTMLFormatter) Format(proj *domain.Projection, view View) ([]byte, error) {
	md, err := markdownDocument(proj, view, fullColumns)
	if err != nil {
		return nil, err
	}
	var body bytes.Buffer
	if err := markdownRenderer.Convert(md, &body); err != nil {
		return nil, err
	}
	data := struct {
		Title     string
		Body      template.HTML
		RunID     string
		Generated string
	}{"Net Worth Projection", template.HTML(body.String()), proj.RunID, nowFunc().Format("2 January 2006 15:04")}
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
