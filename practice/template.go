package practice

import (
	"embed"
	"html/template"
	"io"
	"sync"

	"github.com/abiosoft/mold"
	"github.com/russross/blackfriday/v2"
)

//go:embed templates
var templateFS embed.FS

// TemplateFuncMap contains custom template functions available to all
// pages.
var TemplateFuncMap = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
	"markdown": func(text string) template.HTML {
		// Blog bodies are markdown; convert with blackfriday v2.
		return template.HTML(blackfriday.Run([]byte(text)))
	},
}

// TemplateManager renders pages using mold for layout inheritance
type TemplateManager struct {
	engine mold.Engine
	mu     sync.RWMutex
}

// NewTemplateManager parses the embedded templates
func NewTemplateManager() (*TemplateManager, error) {
	engine, err := mold.New(templateFS,
		mold.WithRoot("templates"),
		mold.WithLayout("layout.html"),
		mold.WithFuncMap(TemplateFuncMap),
	)
	if err != nil {
		return nil, err
	}
	return &TemplateManager{engine: engine}, nil
}

// Render renders a page template inside the shared layout
func (tm *TemplateManager) Render(w io.Writer, pageName string, data any) error {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.engine.Render(w, pageName, data)
}
