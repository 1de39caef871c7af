package web

import (
	"embed"
	"html/template"
	"net/url"

	"taskboard/pkg/task"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

func parseTemplates() *template.Template {
	funcs := template.FuncMap{
		"taskPath": func(id task.ID) string {
			return "/tasks/" + url.PathEscape(string(id))
		},
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl"))
}
