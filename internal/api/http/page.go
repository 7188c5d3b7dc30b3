package httpapi

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/i474232898/temperature-chart/internal/chart"
)

//go:embed page.html.tmpl
var pageSource string

var pageTemplate = template.Must(template.New("page").Parse(pageSource))

type pageData struct {
	Options    []chart.Option
	MaxMonth   int
	MonthLabel string
	SVG        template.HTML
}

// renderPage draws the interactive page with every city and month selected.
func renderPage(state *chart.State) ([]byte, error) {
	var svg bytes.Buffer
	if err := chart.Render(&svg, state, chart.SelectAll(state, chart.LastMonth)); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	err := pageTemplate.Execute(&out, pageData{
		Options:    chart.CityOptions(state),
		MaxMonth:   chart.LastMonth,
		MonthLabel: chart.MonthLabel(chart.LastMonth),
		// Produced by chart.Render, which escapes all text content.
		SVG: template.HTML(inlineSVG(svg.Bytes())),
	})
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// inlineSVG drops the XML prologue so the document can sit inside HTML.
func inlineSVG(doc []byte) string {
	if i := bytes.Index(doc, []byte("<svg")); i > 0 {
		doc = doc[i:]
	}
	return string(doc)
}
