package practice

import (
	"encoding/json"
	"image"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"poseloop/internal/domain"
	"poseloop/internal/engine"
)

func (a *App) apiRoutes(r chi.Router) {
	r.Route("/poses", func(r chi.Router) {
		r.Get("/", a.handleListPoses)
		r.Post("/", a.handleCreatePose)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", a.handleGetPose)
			r.Put("/", a.handleUpdatePose)
			r.Delete("/", a.handleDeletePose)
			r.Get("/image", a.handleGetPoseImage)
			r.Post("/image", a.handleUploadPoseImage)
		})
	})
	r.Route("/hosts", func(r chi.Router) {
		r.Get("/", a.handleListHosts)
		r.Post("/", a.handleCreateHost)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", a.handleGetHost)
			r.Put("/", a.handleUpdateHost)
			r.Delete("/", a.handleDeleteHost)
		})
	})
	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", a.handleListSessions)
		r.Post("/plan", a.handlePlanSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", a.handleGetSession)
			r.Post("/complete", a.handleCompleteSession)
			r.Delete("/", a.handleDeleteSession)
		})
	})
	r.Route("/blog", func(r chi.Router) {
		r.Get("/", a.handleListBlogPosts)
		r.Post("/", a.handleCreateBlogPost)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", a.handleGetBlogPost)
			r.Put("/", a.handleUpdateBlogPost)
			r.Delete("/", a.handleDeleteBlogPost)
		})
	})
	r.Route("/playlists", func(r chi.Router) {
		r.Get("/", a.handleListPlaylists)
		r.Post("/", a.handleCreatePlaylist)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", a.handleGetPlaylist)
			r.Put("/", a.handleUpdatePlaylist)
			r.Delete("/", a.handleDeletePlaylist)
		})
	})
}

// ---- JSON plumbing ----

type errorJSON struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorJSON{Error: msg})
}

func writeInternalError(w http.ResponseWriter, op string, err error) {
	log.Printf("api: %s: %v", op, err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ---- poses ----

type poseJSON struct {
	ID               string    `json:"id"`
	ImageRef         string    `json:"imageRef"`
	Keywords         []string  `json:"keywords"`
	Difficulty       string    `json:"difficulty,omitempty"`
	DifficultyReason string    `json:"difficultyReason,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

func toPoseJSON(p domain.Pose) poseJSON {
	keywords := p.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return poseJSON{
		ID:               p.ID,
		ImageRef:         p.ImageRef,
		Keywords:         keywords,
		Difficulty:       string(p.Difficulty),
		DifficultyReason: p.DifficultyReason,
		CreatedAt:        p.CreatedAt,
	}
}

type poseRequest struct {
	ImageRef         string   `json:"imageRef"`
	Keywords         []string `json:"keywords"`
	Difficulty       string   `json:"difficulty"`
	DifficultyReason string   `json:"difficultyReason"`
}

func (a *App) handleListPoses(w http.ResponseWriter, r *http.Request) {
	poses, err := a.Poses.List(r.Context())
	if err != nil {
		writeInternalError(w, "listing poses", err)
		return
	}
	out := make([]poseJSON, 0, len(poses))
	for _, p := range poses {
		out = append(out, toPoseJSON(*p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *App) handleCreatePose(w http.ResponseWriter, r *http.Request) {
	var req poseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !domain.Difficulty(req.Difficulty).Valid() {
		writeError(w, http.StatusBadRequest, "unknown difficulty")
		return
	}
	pose, err := a.Poses.Create(r.Context(), domain.Pose{
		ImageRef:         req.ImageRef,
		Keywords:         req.Keywords,
		Difficulty:       domain.Difficulty(req.Difficulty),
		DifficultyReason: req.DifficultyReason,
	})
	if err != nil {
		writeInternalError(w, "creating pose", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPoseJSON(*pose))
}

func (a *App) handleGetPose(w http.ResponseWriter, r *http.Request) {
	pose, err := a.Poses.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeInternalError(w, "loading pose", err)
		return
	}
	if pose == nil {
		writeError(w, http.StatusNotFound, "pose not found")
		return
	}
	writeJSON(w, http.StatusOK, toPoseJSON(*pose))
}

func (a *App) handleUpdatePose(w http.ResponseWriter, r *http.Request) {
	var req poseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !domain.Difficulty(req.Difficulty).Valid() {
		writeError(w, http.StatusBadRequest, "unknown difficulty")
		return
	}
	pose, err := a.Poses.Update(r.Context(), domain.Pose{
		ID:               chi.URLParam(r, "id"),
		ImageRef:         req.ImageRef,
		Keywords:         req.Keywords,
		Difficulty:       domain.Difficulty(req.Difficulty),
		DifficultyReason: req.DifficultyReason,
	})
	if err != nil {
		writeInternalError(w, "updating pose", err)
		return
	}
	if pose == nil {
		writeError(w, http.StatusNotFound, "pose not found")
		return
	}
	writeJSON(w, http.StatusOK, toPoseJSON(*pose))
}

func (a *App) handleDeletePose(w http.ResponseWriter, r *http.Request) {
	if err := a.Poses.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeInternalError(w, "deleting pose", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handleGetPoseImage(w http.ResponseWriter, r *http.Request) {
	pose, err := a.Poses.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeInternalError(w, "loading pose", err)
		return
	}
	if pose == nil || pose.ImageRef == "" {
		http.NotFound(w, r)
		return
	}
	// External refs pass through; only store refs are served directly.
	if strings.HasPrefix(pose.ImageRef, "http://") || strings.HasPrefix(pose.ImageRef, "https://") {
		http.Redirect(w, r, pose.ImageRef, http.StatusFound)
		return
	}
	f, err := a.Images.Open(pose.ImageRef)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	w.Header().Set("Content-Type", "image/png")
	if _, err := io.Copy(w, f); err != nil {
		log.Printf("api: streaming image %s: %v", pose.ImageRef, err)
	}
}

func (a *App) handleUploadPoseImage(w http.ResponseWriter, r *http.Request) {
	pose, err := a.Poses.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeInternalError(w, "loading pose", err)
		return
	}
	if pose == nil {
		writeError(w, http.StatusNotFound, "pose not found")
		return
	}
	m, _, err := image.Decode(http.MaxBytesReader(w, r.Body, 32<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "body is not a decodable image")
		return
	}
	ref, err := a.Images.PutImage(m)
	if err != nil {
		writeInternalError(w, "storing image", err)
		return
	}
	pose.ImageRef = ref
	if _, err := a.Poses.Update(r.Context(), *pose); err != nil {
		writeInternalError(w, "updating pose image ref", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"imageRef": ref})
}

// ---- hosts ----

type hostJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type hostRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toHostJSON(h domain.Host) hostJSON {
	return hostJSON{ID: h.ID, Name: h.Name, Email: h.Email, CreatedAt: h.CreatedAt}
}

func (a *App) handleListHosts(w http.ResponseWriter, r *http.Request) {
	hosts, err := a.Hosts.List(r.Context())
	if err != nil {
		writeInternalError(w, "listing hosts", err)
		return
	}
	out := make([]hostJSON, 0, len(hosts))
	for _, h := range hosts {
		out = append(out, toHostJSON(*h))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *App) handleCreateHost(w http.ResponseWriter, r *http.Request) {
	var req hostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	host, err := a.Hosts.Create(r.Context(), domain.Host{Name: req.Name, Email: req.Email})
	if err != nil {
		writeInternalError(w, "creating host", err)
		return
	}
	writeJSON(w, http.StatusCreated, toHostJSON(*host))
}

func (a *App) handleGetHost(w http.ResponseWriter, r *http.Request) {
	host, err := a.Hosts.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeInternalError(w, "loading host", err)
		return
	}
	if host == nil {
		writeError(w, http.StatusNotFound, "host not found")
		return
	}
	writeJSON(w, http.StatusOK, toHostJSON(*host))
}

func (a *App) handleUpdateHost(w http.ResponseWriter, r *http.Request) {
	var req hostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	host, err := a.Hosts.Update(r.Context(), domain.Host{
		ID:    chi.URLParam(r, "id"),
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		writeInternalError(w, "updating host", err)
		return
	}
	if host == nil {
		writeError(w, http.StatusNotFound, "host not found")
		return
	}
	writeJSON(w, http.StatusOK, toHostJSON(*host))
}

func (a *App) handleDeleteHost(w http.ResponseWriter, r *http.Request) {
	if err := a.Hosts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeInternalError(w, "deleting host", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- sessions ----

type sessionJSON struct {
	ID                string     `json:"id"`
	HostID            string     `json:"hostId,omitempty"`
	PoseLengthSeconds int        `json:"poseLengthSeconds"`
	PoseCount         int        `json:"poseCount"`
	MatchTerms        []string   `json:"matchTerms"`
	StartedAt         time.Time  `json:"startedAt"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
}

func toSessionJSON(s domain.SessionRecord) sessionJSON {
	terms := s.MatchTerms
	if terms == nil {
		terms = []string{}
	}
	return sessionJSON{
		ID:                s.ID,
		HostID:            s.HostID,
		PoseLengthSeconds: s.PoseLengthSeconds,
		PoseCount:         s.PoseCount,
		MatchTerms:        terms,
		StartedAt:         s.StartedAt,
		CompletedAt:       s.CompletedAt,
	}
}

type planRequest struct {
	PoseLengthSeconds      int      `json:"poseLengthSeconds"`
	SessionType            string   `json:"sessionType"`
	PoseCount              int      `json:"poseCount"`
	SessionDurationMinutes int      `json:"sessionDurationMinutes"`
	MatchTerms             []string `json:"matchTerms"`
	Randomize              *bool    `json:"randomize"`
	PlaylistID             string   `json:"playlistId"`
	HostID                 string   `json:"hostId"`
	AudioRef               string   `json:"audioRef"`
}

type planResponse struct {
	SessionID         string     `json:"sessionId"`
	PoseLengthSeconds int        `json:"poseLengthSeconds"`
	PoseCount         int        `json:"poseCount"`
	Fallback          bool       `json:"fallback"`
	AudioRef          string     `json:"audioRef,omitempty"`
	Poses             []poseJSON `json:"poses"`
}

// handlePlanSession is the "build me a session" operation: it loads the
// pose pool (whole library or one playlist), runs the selector, records
// the session for history, and returns the ordered sequence the client
// will drive its timer through.
func (a *App) handlePlanSession(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	randomize := true
	if req.Randomize != nil {
		randomize = *req.Randomize
	}
	cfg := engine.Config{
		PoseLengthSeconds:      req.PoseLengthSeconds,
		SessionType:            engine.SessionType(req.SessionType),
		PoseCount:              req.PoseCount,
		SessionDurationMinutes: req.SessionDurationMinutes,
		MatchTerms:             req.MatchTerms,
		Randomize:              randomize,
		AudioRef:               req.AudioRef,
	}.Normalized()

	var poses []*domain.Pose
	var err error
	if req.PlaylistID != "" {
		playlist, perr := a.Playlists.GetByID(r.Context(), req.PlaylistID)
		if perr != nil {
			writeInternalError(w, "loading playlist", perr)
			return
		}
		if playlist == nil {
			writeError(w, http.StatusNotFound, "playlist not found")
			return
		}
		poses, err = a.Poses.ListByIDs(r.Context(), playlist.PoseIDs)
	} else {
		poses, err = a.Poses.List(r.Context())
	}
	if err != nil {
		writeInternalError(w, "loading pose pool", err)
		return
	}

	pool := make([]domain.Pose, len(poses))
	for i, p := range poses {
		pool[i] = *p
	}
	plan := engine.PlanSession(pool, cfg.MatchTerms, cfg.TargetCount(), cfg.Randomize, a.rng)

	record, err := a.Sessions.Create(r.Context(), domain.SessionRecord{
		HostID:            req.HostID,
		PoseLengthSeconds: cfg.PoseLengthSeconds,
		PoseCount:         len(plan.Poses),
		MatchTerms:        cfg.MatchTerms,
	})
	if err != nil {
		writeInternalError(w, "recording session", err)
		return
	}

	out := make([]poseJSON, 0, len(plan.Poses))
	for _, p := range plan.Poses {
		out = append(out, toPoseJSON(p))
	}
	writeJSON(w, http.StatusOK, planResponse{
		SessionID:         record.ID,
		PoseLengthSeconds: cfg.PoseLengthSeconds,
		PoseCount:         len(plan.Poses),
		Fallback:          plan.Fallback,
		AudioRef:          cfg.AudioRef,
		Poses:             out,
	})
}

func (a *App) handleListSessions(w http.ResponseWriter, r *http.Request) {
	var records []*domain.SessionRecord
	var err error
	if host := r.URL.Query().Get("host"); host != "" {
		records, err = a.Sessions.ListByHost(r.Context(), host)
	} else {
		records, err = a.Sessions.List(r.Context())
	}
	if err != nil {
		writeInternalError(w, "listing sessions", err)
		return
	}
	out := make([]sessionJSON, 0, len(records))
	for _, s := range records {
		out = append(out, toSessionJSON(*s))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *App) handleGetSession(w http.ResponseWriter, r *http.Request) {
	record, err := a.Sessions.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeInternalError(w, "loading session", err)
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, toSessionJSON(*record))
}

func (a *App) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	record, err := a.Sessions.GetByID(r.Context(), id)
	if err != nil {
		writeInternalError(w, "loading session", err)
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if err := a.Sessions.Complete(r.Context(), id, time.Now().UTC()); err != nil {
		writeInternalError(w, "completing session", err)
		return
	}
	record, err = a.Sessions.GetByID(r.Context(), id)
	if err != nil {
		writeInternalError(w, "reloading session", err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionJSON(*record))
}

func (a *App) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := a.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeInternalError(w, "deleting session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- blog ----

type blogPostJSON struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	PublishedAt time.Time `json:"publishedAt"`
}

type blogPostRequest struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

func toBlogPostJSON(p domain.BlogPost) blogPostJSON {
	return blogPostJSON{ID: p.ID, Slug: p.Slug, Title: p.Title, Body: p.Body, PublishedAt: p.PublishedAt}
}

func (a *App) handleListBlogPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := a.Blog.List(r.Context())
	if err != nil {
		writeInternalError(w, "listing blog posts", err)
		return
	}
	out := make([]blogPostJSON, 0, len(posts))
	for _, p := range posts {
		out = append(out, toBlogPostJSON(*p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *App) handleCreateBlogPost(w http.ResponseWriter, r *http.Request) {
	var req blogPostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Slug == "" || req.Title == "" {
		writeError(w, http.StatusBadRequest, "slug and title are required")
		return
	}
	post, err := a.Blog.Create(r.Context(), domain.BlogPost{Slug: req.Slug, Title: req.Title, Body: req.Body})
	if err != nil {
		writeInternalError(w, "creating blog post", err)
		return
	}
	writeJSON(w, http.StatusCreated, toBlogPostJSON(*post))
}

func (a *App) handleGetBlogPost(w http.ResponseWriter, r *http.Request) {
	post, err := a.Blog.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeInternalError(w, "loading blog post", err)
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "blog post not found")
		return
	}
	writeJSON(w, http.StatusOK, toBlogPostJSON(*post))
}

func (a *App) handleUpdateBlogPost(w http.ResponseWriter, r *http.Request) {
	var req blogPostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	post, err := a.Blog.Update(r.Context(), domain.BlogPost{
		ID:    chi.URLParam(r, "id"),
		Slug:  req.Slug,
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		writeInternalError(w, "updating blog post", err)
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "blog post not found")
		return
	}
	writeJSON(w, http.StatusOK, toBlogPostJSON(*post))
}

func (a *App) handleDeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	if err := a.Blog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeInternalError(w, "deleting blog post", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- playlists ----

type playlistJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	PoseIDs   []string  `json:"poseIds"`
	CreatedAt time.Time `json:"createdAt"`
}

type playlistRequest struct {
	Name    string   `json:"name"`
	PoseIDs []string `json:"poseIds"`
}

func toPlaylistJSON(p domain.Playlist) playlistJSON {
	ids := p.PoseIDs
	if ids == nil {
		ids = []string{}
	}
	return playlistJSON{ID: p.ID, Name: p.Name, PoseIDs: ids, CreatedAt: p.CreatedAt}
}

func (a *App) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	playlists, err := a.Playlists.List(r.Context())
	if err != nil {
		writeInternalError(w, "listing playlists", err)
		return
	}
	out := make([]playlistJSON, 0, len(playlists))
	for _, p := range playlists {
		out = append(out, toPlaylistJSON(*p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *App) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req playlistRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	playlist, err := a.Playlists.Create(r.Context(), domain.Playlist{Name: req.Name, PoseIDs: req.PoseIDs})
	if err != nil {
		writeInternalError(w, "creating playlist", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPlaylistJSON(*playlist))
}

func (a *App) handleGetPlaylist(w http.ResponseWriter, r *http.Request) {
	playlist, err := a.Playlists.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeInternalError(w, "loading playlist", err)
		return
	}
	if playlist == nil {
		writeError(w, http.StatusNotFound, "playlist not found")
		return
	}
	writeJSON(w, http.StatusOK, toPlaylistJSON(*playlist))
}

func (a *App) handleUpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req playlistRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	playlist, err := a.Playlists.Update(r.Context(), domain.Playlist{
		ID:      chi.URLParam(r, "id"),
		Name:    req.Name,
		PoseIDs: req.PoseIDs,
	})
	if err != nil {
		writeInternalError(w, "updating playlist", err)
		return
	}
	if playlist == nil {
		writeError(w, http.StatusNotFound, "playlist not found")
		return
	}
	writeJSON(w, http.StatusOK, toPlaylistJSON(*playlist))
}

func (a *App) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	if err := a.Playlists.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeInternalError(w, "deleting playlist", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
