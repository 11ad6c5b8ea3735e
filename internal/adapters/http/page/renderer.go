package page

import (
	"fmt"
	"html/template"
	"io"

	"github.com/okian/plotdeck/internal/domain/chart"
)

// Renderer turns serialized figures into an HTML page. It must not depend
// on anything but its arguments.
type Renderer interface {
	Render(w io.Writer, figures []string, graphType string) error
}

// TemplateRenderer renders the embedded chart page template.
type TemplateRenderer struct {
	tmpl        *template.Template
	plotlyJSURL string
}

// templateData is the template's view of one page.
type templateData struct {
	Figures     []string
	GraphType   string
	Title       string
	Presets     []chart.Preset
	PlotlyJSURL string
}

// NewTemplateRenderer parses the embedded template. plotlyJSURL is the
// script the page loads Plotly.js from.
func NewTemplateRenderer(plotlyJSURL string) (*TemplateRenderer, error) {
	tmpl, err := template.ParseFS(templateFS, pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseTemplate, err)
	}
	return &TemplateRenderer{tmpl: tmpl, plotlyJSURL: plotlyJSURL}, nil
}

// Render executes the template for figures and graphType.
func (r *TemplateRenderer) Render(w io.Writer, figures []string, graphType string) error {
	data := templateData{
		Figures:     figures,
		GraphType:   graphType,
		Title:       chart.DisplayName(chart.Preset(graphType)),
		Presets:     chart.Presets(),
		PlotlyJSURL: r.plotlyJSURL,
	}
	if err := r.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}
