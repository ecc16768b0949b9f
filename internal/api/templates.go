package api

import (
	"embed"
	"html/template"
	"time"

	"github.com/ai-picks-site/internal/service"
	"github.com/ai-picks-site/internal/validation"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"year": func() int { return time.Now().Year() },
	// repeat yields n iterations for range, used for star ratings
	"repeat": func(n int) []struct{} {
		if n < 0 {
			n = 0
		}
		return make([]struct{}, n)
	},
}

// loadTemplates parses the embedded page templates
func loadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html"))
}

// messageView backs the not-found and form result pages
type messageView struct {
	Meta    service.PageMeta
	Heading string
	Message string
	Back    string
	Errors  []validation.ValidationError
}

func notFoundView(message string) messageView {
	return messageView{
		Meta:    service.PageMeta{Title: "Page Not Found | " + service.SiteName, Description: message, Type: "website"},
		Message: message,
	}
}
