// Package web holds the embedded server-rendered HTML templates.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Templates parses the embedded templates. Pages are addressed by file name,
// e.g. "login.tmpl".
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))
}
