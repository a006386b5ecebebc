package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jwebster45206/treasure-hunt/internal/agent"
	"github.com/jwebster45206/treasure-hunt/pkg/action"
	"github.com/jwebster45206/treasure-hunt/pkg/chat"
	"github.com/jwebster45206/treasure-hunt/pkg/state"
)

// TurnResponse reports one applied action and the session it left behind.
type TurnResponse struct {
	GameStateID uuid.UUID     `json:"gamestate_id"`
	ActionText  string        `json:"action_text"`
	Action      action.Action `json:"action"`
	Feedback    string        `json:"feedback"`
	Reward      int           `json:"reward"`
	GameOver    bool          `json:"game_over"`
	Win         bool          `json:"win"`
	Location    string        `json:"location"`
	Inventory   []string      `json:"inventory"`
}

func newTurnResponse(gs *state.GameState, result *agent.TurnResult) TurnResponse {
	return TurnResponse{
		GameStateID: gs.ID,
		ActionText:  result.Text,
		Action:      result.Outcome.Action,
		Feedback:    result.Outcome.Feedback,
		Reward:      result.Outcome.Reward,
		GameOver:    gs.GameOver,
		Win:         gs.Win,
		Location:    gs.Location,
		Inventory:   gs.Inventory,
	}
}

// turnProcessor is the part of agent.TurnProcessor the handlers use.
type turnProcessor interface {
	ProcessAction(ctx context.Context, id uuid.UUID, text string) (*state.GameState, *agent.TurnResult, error)
	ProcessAgentTurn(ctx context.Context, id uuid.UUID) (*state.GameState, *agent.TurnResult, error)
}

// ActionHandler applies text sent by the caller as the agent's action.
type ActionHandler struct {
	processor turnProcessor
	logger    *slog.Logger
}

func NewActionHandler(processor turnProcessor, logger *slog.Logger) *ActionHandler {
	return &ActionHandler{
		processor: processor,
		logger:    logger,
	}
}

// ServeHTTP handles POST /v1/action
func (h *ActionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for action endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
		return
	}

	var req chat.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body. Expected JSON with 'gamestate_id' and 'message' fields.")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	gs, result, err := h.processor.ProcessAction(r.Context(), req.GameStateID, req.Message)
	if err != nil {
		writeTurnError(w, h.logger, req.GameStateID, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, newTurnResponse(gs, result))
}

// AgentHandler asks the configured agent to play one turn.
type AgentHandler struct {
	processor turnProcessor
	logger    *slog.Logger
}

func NewAgentHandler(processor turnProcessor, logger *slog.Logger) *AgentHandler {
	return &AgentHandler{
		processor: processor,
		logger:    logger,
	}
}

// ServeHTTP handles POST /v1/agent/turn
func (h *AgentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for agent endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
		return
	}

	var req chat.AgentTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body. Expected JSON with 'gamestate_id' field.")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	gs, result, err := h.processor.ProcessAgentTurn(r.Context(), req.GameStateID)
	if err != nil {
		writeTurnError(w, h.logger, req.GameStateID, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, newTurnResponse(gs, result))
}

func writeTurnError(w http.ResponseWriter, logger *slog.Logger, id uuid.UUID, err error) {
	switch {
	case errors.Is(err, agent.ErrGameStateNotFound):
		writeError(w, logger, http.StatusNotFound, "Game state not found")
	case errors.Is(err, agent.ErrGameOver):
		writeError(w, logger, http.StatusConflict, "The game is over. Please start a new game.")
	case errors.Is(err, agent.ErrPlayerFailed):
		writeError(w, logger, http.StatusBadGateway, "The agent could not produce an action: "+err.Error())
	default:
		logger.Error("Turn failed", "error", err, "gamestate_id", id.String())
		writeError(w, logger, http.StatusInternalServerError, "Failed to process turn")
	}
}
