package practice

import (
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-git/go-billy/v6"

	"poseloop/internal/domain"
	"poseloop/internal/repository"
)

// App wires the repositories, the image store, and the session engine
// behind the HTTP surface: a JSON API under /api plus two
// server-rendered pages (pose library and blog).
type App struct {
	Config    *Config
	Poses     domain.PoseRepository
	Hosts     domain.HostRepository
	Sessions  domain.SessionRepository
	Blog      domain.BlogRepository
	Playlists domain.PlaylistRepository
	Images    *ImageStore

	router    *chi.Mux
	templates *TemplateManager
	rng       *rand.Rand // nil means each plan seeds from the wall clock
}

// NewApp creates the application over an open database and an image
// filesystem (osfs in production, memfs in tests).
func NewApp(cfg *Config, db *sql.DB, imagesFS billy.Filesystem) (*App, error) {
	templates, err := NewTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("while parsing templates: %w", err)
	}

	app := &App{
		Config:    cfg,
		Poses:     repository.NewPoseRepository(db),
		Hosts:     repository.NewHostRepository(db),
		Sessions:  repository.NewSessionRepository(db),
		Blog:      repository.NewBlogRepository(db),
		Playlists: repository.NewPlaylistRepository(db),
		Images:    NewImageStore(imagesFS),
		router:    chi.NewRouter(),
		templates: templates,
	}

	app.setupMiddleware()
	app.setupRoutes()
	return app, nil
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) setupMiddleware() {
	a.router.Use(HTTPLogger)
	a.router.Use(middleware.Recoverer)
}

func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/blog", a.handleBlogIndex)
	a.router.Get("/blog/{slug}", a.handleBlogPost)
	a.router.Route("/api", a.apiRoutes)
}

func (a *App) renderPage(w http.ResponseWriter, page string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Title"]; !ok {
		data["Title"] = a.Config.Meta.Title
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.Render(w, page, data); err != nil {
		log.Printf("render %s: %v", page, err)
	}
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	poses, err := a.Poses.List(r.Context())
	if err != nil {
		log.Printf("index: listing poses: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	a.renderPage(w, "index.html", map[string]any{
		"Poses":       poses,
		"Count":       len(poses),
		"Description": a.Config.Meta.Description,
	})
}

func (a *App) handleBlogIndex(w http.ResponseWriter, r *http.Request) {
	posts, err := a.Blog.List(r.Context())
	if err != nil {
		log.Printf("blog: listing posts: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	a.renderPage(w, "blog.html", map[string]any{"Posts": posts})
}

func (a *App) handleBlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := a.Blog.GetBySlug(r.Context(), slug)
	if err != nil {
		log.Printf("blog: loading post %s: %v", slug, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if post == nil {
		http.NotFound(w, r)
		return
	}
	a.renderPage(w, "post.html", map[string]any{
		"Post":  post,
		"Title": post.Title,
	})
}
