package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/roooooh55roooooh55-star/Roohdodo/internal/describe"
	"github.com/roooooh55roooooh55-star/Roohdodo/internal/domain"
	"github.com/roooooh55roooooh55-star/Roohdodo/internal/feed"
	"github.com/roooooh55roooooh55-star/Roohdodo/internal/fetcher"
	"github.com/roooooh55roooooh55-star/Roohdodo/internal/interactions"
	"github.com/roooooh55roooooh55-star/Roohdodo/internal/narration"
	"github.com/roooooh55roooooh55-star/Roohdodo/internal/store"
)

// passcodeHeader carries the admin passcode on write requests.
const passcodeHeader = "X-Admin-Passcode"

// Server handles HTTP requests for the video service.
type Server struct {
	store    *store.Store
	poller   *feed.Poller
	addr     string
	passcode string
	model    string

	// interactionsMu serializes interaction mutations, which are otherwise
	// single-event-handler state.
	interactionsMu sync.Mutex
	interactions   *interactions.Store
}

// New creates a new API server.
func New(s *store.Store, p *feed.Poller, inter *interactions.Store, addr, passcode, model string) *Server {
	return &Server{
		store:        s,
		poller:       p,
		addr:         addr,
		passcode:     passcode,
		model:        model,
		interactions: inter,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Feed
	mux.HandleFunc("GET /videos", s.listVideos)
	mux.HandleFunc("GET /videos/{id}", s.getVideo)
	mux.HandleFunc("GET /trend", s.trend)

	// Admin content entry
	mux.HandleFunc("POST /videos", s.requireAdmin(s.addVideo))
	mux.HandleFunc("PUT /videos/{id}", s.requireAdmin(s.updateVideo))
	mux.HandleFunc("DELETE /videos/{id}", s.requireAdmin(s.deleteVideo))

	// Narration studio
	mux.HandleFunc("POST /narration/segments", s.segmentNarration)
	mux.HandleFunc("POST /narration/suggest", s.suggestNarration)

	// Profile interactions
	mux.HandleFunc("GET /interactions", s.getInteractions)
	mux.HandleFunc("POST /interactions/{action}", s.mutateInteractions)

	// Health check
	mux.HandleFunc("GET /health", s.health)

	return withCORS(mux)
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	fmt.Printf("Starting server on %s\n", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

// withCORS adds CORS headers for frontend development
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+passcodeHeader)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

// requireAdmin gates write endpoints behind the static passcode.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(passcodeHeader) != s.passcode {
			writeError(w, http.StatusUnauthorized, "invalid passcode")
			return
		}
		next(w, r)
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listVideos(w http.ResponseWriter, r *http.Request) {
	videos := s.poller.Videos()
	if videos == nil {
		videos = []domain.Video{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"videos": videos,
	})
}

func (s *Server) getVideo(w http.ResponseWriter, r *http.Request) {
	v, err := s.store.GetVideo(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "video not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) trend(w http.ResponseWriter, r *http.Request) {
	var excluded []string
	if q := r.URL.Query().Get("exclude"); q != "" {
		excluded = strings.Split(q, ",")
	}
	excluded = append(excluded, s.snapshotInteractions().DislikedIDs...)

	ranked := feed.Trending(s.poller.Videos(), excluded)

	type trendEntry struct {
		domain.Video
		Stats feed.Stats `json:"stats"`
	}
	entries := make([]trendEntry, 0, len(ranked))
	for _, v := range ranked {
		entries = append(entries, trendEntry{Video: v, Stats: feed.DeterministicStats(v.URL)})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"videos": entries,
	})
}

// PublishRequest is the body for creating or updating a video document.
type PublishRequest struct {
	Title       string                    `json:"title"`
	URL         string                    `json:"url"`
	FileName    string                    `json:"fileName,omitempty"`
	Narration   string                    `json:"narration,omitempty"`
	Segments    []domain.NarrationSegment `json:"narration_segments,omitempty"`
	Category    string                    `json:"category"`
	Type        domain.VideoType          `json:"type,omitempty"`
	Repository  domain.Repository         `json:"repository,omitempty"`
	AudioTarget domain.AudioTarget        `json:"audio_target,omitempty"`
	Featured    bool                      `json:"isFeatured,omitempty"`
}

func (p PublishRequest) video() domain.Video {
	return domain.Video{
		Title:       strings.TrimSpace(p.Title),
		URL:         strings.TrimSpace(p.URL),
		FileName:    p.FileName,
		Narration:   strings.TrimSpace(p.Narration),
		Segments:    p.Segments,
		Category:    p.Category,
		Type:        p.Type,
		Repository:  p.Repository,
		AudioTarget: p.AudioTarget,
		Featured:    p.Featured,
	}
}

func (s *Server) addVideo(w http.ResponseWriter, r *http.Request) {
	var req PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Missing required fields block the publish before anything is written.
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.URL) == "" {
		writeError(w, http.StatusBadRequest, "title and url are required")
		return
	}
	if req.Category != "" && !domain.ValidCategory(req.Category) {
		writeError(w, http.StatusBadRequest, "unknown category")
		return
	}

	v := req.video()
	if v.Category == "" {
		v.Category = domain.Categories[0]
	}

	added, err := s.store.AddVideo(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.poller.Refresh(r.Context())
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) updateVideo(w http.ResponseWriter, r *http.Request) {
	var req PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Category != "" && !domain.ValidCategory(req.Category) {
		writeError(w, http.StatusBadRequest, "unknown category")
		return
	}

	v := req.video()
	v.ID = r.PathValue("id")

	updated, err := s.store.UpdateVideo(v)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "video not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.poller.Refresh(r.Context())
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteVideo(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteVideo(r.PathValue("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "video not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.poller.Refresh(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// SegmentRequest is the body for splitting narration text.
type SegmentRequest struct {
	Text string `json:"text"`
}

func (s *Server) segmentNarration(w http.ResponseWriter, r *http.Request) {
	var req SegmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	segments, err := narration.Split(req.Text)
	if err != nil {
		if errors.Is(err, narration.ErrEmptyNarration) {
			writeError(w, http.StatusBadRequest, "narration text is required")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"segments": segments,
	})
}

// SuggestRequest asks for narration source material, either extracted from a
// link or drafted from a title.
type SuggestRequest struct {
	URL      string `json:"url,omitempty"`
	Title    string `json:"title,omitempty"`
	Category string `json:"category,omitempty"`
}

func (s *Server) suggestNarration(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.URL != "" {
		if !fetcher.IsURL(req.URL) {
			writeError(w, http.StatusBadRequest, "not a fetchable url")
			return
		}
		page, err := fetcher.Fetch(req.URL)
		if err != nil {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"title":     page.Title,
			"narration": page.Text,
		})
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "url or title is required")
		return
	}

	sug, err := describe.New(s.model)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	result, err := sug.Suggest(req.Title, req.Category)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"narration": result.Narration,
	})
}

func (s *Server) snapshotInteractions() domain.UserInteractions {
	s.interactionsMu.Lock()
	defer s.interactionsMu.Unlock()
	return s.interactions.State()
}

func (s *Server) getInteractions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotInteractions())
}

// InteractionRequest is the body for interaction mutations.
type InteractionRequest struct {
	ID       string  `json:"id,omitempty"`
	Category string  `json:"category,omitempty"`
	Progress float64 `json:"progress,omitempty"`
}

func (s *Server) mutateInteractions(w http.ResponseWriter, r *http.Request) {
	var req InteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	action := r.PathValue("action")
	if action == "save-category" {
		if req.Category == "" {
			writeError(w, http.StatusBadRequest, "category is required")
			return
		}
	} else if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	s.interactionsMu.Lock()
	var err error
	switch action {
	case "like":
		err = s.interactions.ToggleLike(req.ID)
	case "dislike":
		err = s.interactions.ToggleDislike(req.ID)
	case "save":
		err = s.interactions.ToggleSave(req.ID)
	case "save-category":
		err = s.interactions.ToggleSaveCategory(req.Category)
	case "progress":
		err = s.interactions.RecordProgress(req.ID, req.Progress)
	case "download":
		err = s.interactions.MarkDownloaded(req.ID)
	default:
		s.interactionsMu.Unlock()
		writeError(w, http.StatusNotFound, "unknown action")
		return
	}
	state := s.interactions.State()
	s.interactionsMu.Unlock()

	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
