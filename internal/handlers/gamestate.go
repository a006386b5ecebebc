package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/treasure-hunt/internal/storage"
	"github.com/jwebster45206/treasure-hunt/pkg/state"
)

type GameStateHandler struct {
	storage   storage.Storage
	logger    *slog.Logger
	modelName string
}

func NewGameStateHandler(modelName string, storage storage.Storage, logger *slog.Logger) *GameStateHandler {
	return &GameStateHandler{
		logger:    logger,
		modelName: modelName,
		storage:   storage,
	}
}

// CreateGameStateRequest is the optional body of POST /v1/gamestate.
type CreateGameStateRequest struct {
	ModelName string `json:"model_name,omitempty"`
}

// ServeHTTP handles HTTP requests for game state operations
// Routes:
// POST /v1/gamestate            - Create new game state
// GET /v1/gamestate/{id}        - Read game state by ID
// DELETE /v1/gamestate/{id}     - Delete game state by ID
// POST /v1/gamestate/{id}/reset - Start the game over, keeping the ID
func (h *GameStateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/gamestate"), "/")
	idStr, sub, _ := strings.Cut(path, "/")

	var gameStateID uuid.UUID
	if idStr != "" {
		var err error
		gameStateID, err = uuid.Parse(idStr)
		if err != nil {
			h.logger.Warn("Invalid game state ID", "id", idStr, "error", err)
			writeError(w, h.logger, http.StatusBadRequest, "Invalid game state ID format")
			return
		}
	}

	switch {
	case sub == "reset" && r.Method == http.MethodPost:
		h.handleReset(w, r, gameStateID)

	case sub != "":
		writeError(w, h.logger, http.StatusNotFound, "Not found")

	case r.Method == http.MethodPost && gameStateID == uuid.Nil:
		h.handleCreate(w, r)

	case r.Method == http.MethodGet || r.Method == http.MethodDelete:
		if gameStateID == uuid.Nil {
			h.logger.Warn("Request without game state ID", "method", r.Method)
			writeError(w, h.logger, http.StatusBadRequest, "Game state ID is required for "+r.Method+" requests")
			return
		}
		if r.Method == http.MethodGet {
			h.handleRead(w, r, gameStateID)
		} else {
			h.handleDelete(w, r, gameStateID)
		}

	default:
		h.logger.Warn("Method not allowed for game state endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST, GET, DELETE")
	}
}

func (h *GameStateHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Creating new game state")

	var req CreateGameStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	modelName := req.ModelName
	if modelName == "" {
		modelName = h.modelName
	}

	gs := state.NewGameState(modelName)
	if err := h.storage.SaveGameState(r.Context(), gs.ID, gs); err != nil {
		h.logger.Error("Failed to save new game state", "error", err, "gamestate_id", gs.ID.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to create game state")
		return
	}

	h.logger.Info("Game state created", "gamestate_id", gs.ID.String(), "model_name", modelName)
	writeJSON(w, h.logger, http.StatusCreated, gs)
}

func (h *GameStateHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	gs, ok := h.load(w, r, id)
	if !ok {
		return
	}
	writeJSON(w, h.logger, http.StatusOK, gs)
}

func (h *GameStateHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.storage.DeleteGameState(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete game state", "error", err, "gamestate_id", id.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete game state")
		return
	}
	h.logger.Info("Game state deleted", "gamestate_id", id.String())
	w.WriteHeader(http.StatusNoContent)
}

func (h *GameStateHandler) handleReset(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	gs, ok := h.load(w, r, id)
	if !ok {
		return
	}

	gs.Reset()
	if err := h.storage.SaveGameState(r.Context(), gs.ID, gs); err != nil {
		h.logger.Error("Failed to save reset game state", "error", err, "gamestate_id", id.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to reset game state")
		return
	}

	h.logger.Info("Game state reset", "gamestate_id", id.String())
	writeJSON(w, h.logger, http.StatusOK, gs)
}

func (h *GameStateHandler) load(w http.ResponseWriter, r *http.Request, id uuid.UUID) (*state.GameState, bool) {
	gs, err := h.storage.LoadGameState(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load game state", "error", err, "gamestate_id", id.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load game state")
		return nil, false
	}
	if gs == nil {
		writeError(w, h.logger, http.StatusNotFound, "Game state not found")
		return nil, false
	}
	return gs, true
}
