package web

import (
	"embed"
	"html/template"
)

//go:embed templates
var templateFS embed.FS

// Templates parses every page template. Call once at startup and hand the
// result to gin via SetHTMLTemplate.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}
