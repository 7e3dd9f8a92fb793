package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hollowlog/yearshelf/internal/models"
	"github.com/hollowlog/yearshelf/internal/services"
	"github.com/hollowlog/yearshelf/internal/years"
)

// CompleteHandler serves the gallery's read API:
//
//	GET /api/                          liveness probe
//	GET /api/complete/{category}       current year
//	GET /api/complete/{category}/{year}
//
// Responses use the {"data": [...]} envelope the gallery front end consumes.
// Upstream failures are logged with their real cause and answered with a
// generic error body; upstream status codes and messages never pass through.
type CompleteHandler struct {
	service services.Service
	rng     years.Range
	logger  *log.Logger
}

// NewCompleteHandler creates the handler over the given shelf provider.
func NewCompleteHandler(service services.Service, rng years.Range, logger *log.Logger) *CompleteHandler {
	return &CompleteHandler{service: service, rng: rng, logger: logger}
}

// Routes returns the path patterns this handler serves.
func (h *CompleteHandler) Routes() []string {
	return []string{"/api/", "/api/complete/"}
}

// ServeHTTP handles the HTTP request and writes the response.
func (h *CompleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/")
	if path == "/api" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, "Alive!")
		return
	}

	rest, ok := strings.CutPrefix(path, "/api/complete/")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	h.serveComplete(w, r, rest)
}

func (h *CompleteHandler) serveComplete(w http.ResponseWriter, r *http.Request, rest string) {
	parts := strings.Split(rest, "/")
	if len(parts) < 1 || len(parts) > 2 || parts[0] == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	category, err := models.ParseCategory(parts[0])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category")
		return
	}

	year := h.rng.CurrentYear()
	if len(parts) == 2 {
		y, err := strconv.Atoi(parts[1])
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = y
	}

	records, err := h.service.FetchCategory(r.Context(), category, year)
	if err != nil {
		h.logger.Error("shelf fetch failed", "category", category, "year", year, "err", err)
		writeError(w, http.StatusBadGateway, "shelf data is unavailable right now")
		return
	}
	if records == nil {
		records = []models.CategoryRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"data": records})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// CORSMiddleware allows cross-origin reads, matching the original gallery
// backend's allow-all policy.
func CORSMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LoggingMiddleware logs one line per request.
func LoggingMiddleware(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Info("request", "method", r.Method, "path", r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}
}

// NewProxyRouter assembles the full proxy router with middleware applied.
func NewProxyRouter(service services.Service, rng years.Range, logger *log.Logger) *BasicRouter {
	router := NewBasicRouter()
	router.Use(LoggingMiddleware(logger), CORSMiddleware())
	router.Handler(NewCompleteHandler(service, rng, logger))
	return router
}
