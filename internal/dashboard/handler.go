package dashboard

import (
	"net/http"
	"strings"
	"time"

	"github.com/vilaca/bounty-board/internal/board"
)

// Handler handles HTTP requests for the dashboard.
// Each handler method has a Single Responsibility (SRP).
type Handler struct {
	renderer Renderer
	logger   Logger
	board    BoardService
	title    string
	now      func() time.Time
}

// Logger interface for logging operations (Interface Segregation Principle).
type Logger interface {
	Printf(format string, v ...interface{})
}

// BoardService interface for board operations (Dependency Inversion Principle).
type BoardService interface {
	Snapshot() board.Snapshot
	Start() bool
}

// HandlerConfig holds configuration for creating a new Handler
type HandlerConfig struct {
	Renderer Renderer
	Logger   Logger
	Board    BoardService
	Title    string
}

// NewHandler creates a new Handler with injected dependencies (Dependency Inversion Principle).
func NewHandler(cfg HandlerConfig) *Handler {
	title := cfg.Title
	if title == "" {
		title = "Bug Bounty Issues"
	}

	return &Handler{
		renderer: cfg.Renderer,
		logger:   cfg.Logger,
		board:    cfg.Board,
		title:    title,
		now:      time.Now,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", h.handleBoard)
	mux.HandleFunc("/api/health", h.handleHealth)
	mux.HandleFunc("/api/issues", h.handleIssues)
	mux.HandleFunc("/api/refresh", h.handleRefresh)
}

// handleHealth serves the health check endpoint.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := h.renderer.RenderHealth(w); err != nil {
		h.logger.Printf("failed to render health: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// handleBoard serves the board page, filtered by the tech and category query parameters.
func (h *Handler) handleBoard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	view := h.board.Snapshot().View(filterFromRequest(r))

	var sb strings.Builder
	page := Page{Title: h.title, View: view, Now: h.now()}
	if err := h.renderer.RenderBoard(&sb, page); err != nil {
		h.logger.Printf("failed to render board: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write([]byte(sb.String()))
}

// handleIssues serves the filtered issues as JSON.
func (h *Handler) handleIssues(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	view := h.board.Snapshot().View(filterFromRequest(r))
	if err := h.renderer.RenderIssuesJSON(w, view); err != nil {
		h.logger.Printf("failed to encode issues: %v", err)
	}
}

// handleRefresh starts a reload of the board unless one is already running.
func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if !h.board.Start() {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"status":"busy"}`))
		return
	}

	h.logger.Printf("refresh requested from %s", r.RemoteAddr)
	w.WriteHeader(http.StatusAccepted)
	w.Write([]byte(`{"status":"loading"}`))
}

// filterFromRequest reads the filter from the query string. Values are normalized by the view.
func filterFromRequest(r *http.Request) board.Filter {
	q := r.URL.Query()
	return board.Filter{
		Tech:     q.Get("tech"),
		Category: q.Get("category"),
	}
}
