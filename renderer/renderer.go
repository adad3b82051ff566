// Package renderer formats capital gains results as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/zacgt/cgt"
)

//go:embed templates/*.md
var templates embed.FS

// RenderTaxYear renders the report of one tax year: summary per asset, base
// costs on the closing 1 March and every disposal with its lots.
func RenderTaxYear(report *cgt.TaxYearReport) string {
	partials := map[string]string{
		"tax_year_title":      "tax_year_title.md",
		"tax_year_summary":    "tax_year_summary.md",
		"tax_year_base_costs": "tax_year_base_costs.md",
		"tax_year_disposals":  "tax_year_disposals.md",
	}
	if len(report.Events) == 0 {
		// An empty file name results in an empty template.
		partials["tax_year_disposals"] = ""
	}
	return renderTemplate("taxYear", "tax_year.md", partials, newTaxYearView(report))
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, "templates/"+file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
