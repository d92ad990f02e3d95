// Package webtest provides a recording gin HTML renderer for handler tests.
package webtest

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

// Render is one recorded template invocation
type Render struct {
	Name string
	Data gin.H
}

// Recorder captures the template name and context of every rendered page
// and writes the template name as the response body.
type Recorder struct {
	mu      sync.Mutex
	renders []Render
}

func (r *Recorder) Instance(name string, data any) render.Render {
	h, _ := data.(gin.H)
	r.mu.Lock()
	r.renders = append(r.renders, Render{Name: name, Data: h})
	r.mu.Unlock()
	return stub{name: name}
}

// Last returns the most recent render; ok is false when nothing was rendered
func (r *Recorder) Last() (Render, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.renders) == 0 {
		return Render{}, false
	}
	return r.renders[len(r.renders)-1], true
}

func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.renders)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.renders = nil
	r.mu.Unlock()
}

type stub struct{ name string }

func (s stub) Render(w http.ResponseWriter) error {
	s.WriteContentType(w)
	_, err := w.Write([]byte(s.name))
	return err
}

func (s stub) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}
