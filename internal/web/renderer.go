// Package web holds the embedded HTML templates and the gin renderer serving them.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates
var templateFS embed.FS

const (
	layoutFile  = "templates/base.html"
	includesDir = "templates/includes"
)

// Renderer implements gin's render.HTMLRender over the embedded template set.
// Every page is parsed together with base.html and the shared includes.
type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	includes, err := fs.Glob(templateFS, includesDir+"/*.html")
	if err != nil {
		return nil, fmt.Errorf("list includes: %w", err)
	}

	pages, err := fs.Glob(templateFS, "templates/*/*.html")
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	r := &Renderer{templates: make(map[string]*template.Template)}
	for _, page := range pages {
		if strings.HasPrefix(page, includesDir+"/") {
			continue
		}

		files := append([]string{layoutFile}, includes...)
		files = append(files, page)

		tmpl, err := template.New(path.Base(layoutFile)).Funcs(Funcs()).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.templates[strings.TrimPrefix(page, "templates/")] = tmpl
	}

	return r, nil
}

// Instance implements render.HTMLRender
func (r *Renderer) Instance(name string, data any) render.Render {
	tmpl, ok := r.templates[name]
	if !ok {
		return missingTemplate{name: name}
	}
	return render.HTML{Template: tmpl, Name: "base", Data: data}
}

// Names lists every loaded page template
func (r *Renderer) Names() []string {
	out := make([]string, 0, len(r.templates))
	for name := range r.templates {
		out = append(out, name)
	}
	return out
}

type missingTemplate struct{ name string }

func (m missingTemplate) Render(w http.ResponseWriter) error {
	m.WriteContentType(w)
	return fmt.Errorf("template %q is not defined", m.name)
}

func (m missingTemplate) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	if header.Get("Content-Type") == "" {
		header.Set("Content-Type", "text/html; charset=utf-8")
	}
}

// Funcs are the helpers available to every template
func Funcs() template.FuncMap {
	return template.FuncMap{
		"pageURL":    PageURL,
		"linebreaks": Linebreaks,
		"truncate":   TruncateWords,
		"date":       FormatDate,
		"pathEscape": url.PathEscape,
		"add":        func(a, b int) int { return a + b },
		"dict":       Dict,
		"year":       func() int { return time.Now().Year() },
	}
}

// PageURL sets ?page=n on the current path
func PageURL(path string, n int) string {
	return path + "?page=" + strconv.Itoa(n)
}

// Linebreaks escapes s and turns newlines into <br>
func Linebreaks(s string) template.HTML {
	escaped := template.HTMLEscapeString(strings.ReplaceAll(s, "\r\n", "\n"))
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

// TruncateWords keeps the first n words, appending an ellipsis when cut
func TruncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ") + " …"
}

// Dict builds a map from alternating key/value arguments for sub-templates
func Dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

func FormatDate(t time.Time) string {
	return t.Format("2 January 2006")
}
