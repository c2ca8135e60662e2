package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed *.md
var templates embed.FS

// RenderReturns renders the Returns struct to a markdown string.
func RenderReturns(r *Returns) string {
	partials := map[string]string{
		"returns_title": "returns_title.md",
		"returns_table": "returns_table.md",
	}
	return renderTemplate("returns", "returns.md", partials, r)
}

// RenderValuation renders the Valuation struct to a markdown string.
func RenderValuation(v *Valuation) string {
	partials := map[string]string{
		"valuation_title":     "valuation_title.md",
		"valuation_positions": "valuation_positions.md",
	}
	return renderTemplate("valuation", "valuation.md", partials, v)
}

// HTML converts a markdown report into an HTML fragment. Tables are rendered
// as HTML tables.
func HTML(markdown string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("cannot convert markdown to HTML: %w", err)
	}
	return buf.String(), nil
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
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
