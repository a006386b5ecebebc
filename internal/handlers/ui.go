package handlers

import (
	_ "embed"
	"log/slog"
	"net/http"
)

//go:embed web/index.html
var indexHTML []byte

// UIHandler serves the single page that plays the game through the API.
type UIHandler struct {
	logger *slog.Logger
}

func NewUIHandler(logger *slog.Logger) *UIHandler {
	return &UIHandler{logger: logger}
}

func (h *UIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		w.Header().Set("Content-Type", "application/json")
		writeError(w, h.logger, http.StatusNotFound, "Not found")
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only GET is supported.")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(indexHTML); err != nil {
		h.logger.Error("Failed to write page", "error", err)
	}
}
