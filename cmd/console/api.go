package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/jwebster45206/treasure-hunt/pkg/action"
	"github.com/jwebster45206/treasure-hunt/pkg/chat"
	"github.com/jwebster45206/treasure-hunt/pkg/state"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// TurnResponse matches the API's response to an action or agent turn
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

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

// doJSON sends payload (if any) and decodes a successful response into out.
func doJSON(client *http.Client, method, url string, payload any, wantStatus int, out any) error {
	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != wantStatus {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil || errorResp.Error == "" {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return fmt.Errorf("%s", errorResp.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func getGameState(client *http.Client, baseURL string, gameStateID uuid.UUID) (*state.GameState, error) {
	var gs state.GameState
	if err := doJSON(client, http.MethodGet, fmt.Sprintf("%s/v1/gamestate/%s", baseURL, gameStateID), nil, http.StatusOK, &gs); err != nil {
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}
	return &gs, nil
}

func createGameState(client *http.Client, baseURL string) (*state.GameState, error) {
	var gs state.GameState
	if err := doJSON(client, http.MethodPost, baseURL+"/v1/gamestate", struct{}{}, http.StatusCreated, &gs); err != nil {
		return nil, fmt.Errorf("failed to create game state: %w", err)
	}
	return &gs, nil
}

func resetGameState(client *http.Client, baseURL string, gameStateID uuid.UUID) (*state.GameState, error) {
	var gs state.GameState
	if err := doJSON(client, http.MethodPost, fmt.Sprintf("%s/v1/gamestate/%s/reset", baseURL, gameStateID), nil, http.StatusOK, &gs); err != nil {
		return nil, fmt.Errorf("failed to reset game state: %w", err)
	}
	return &gs, nil
}

func sendAction(client *http.Client, baseURL string, gameStateID uuid.UUID, message string) (*TurnResponse, error) {
	req := chat.ActionRequest{GameStateID: gameStateID, Message: message}
	var turn TurnResponse
	if err := doJSON(client, http.MethodPost, baseURL+"/v1/action", req, http.StatusOK, &turn); err != nil {
		return nil, fmt.Errorf("action failed: %w", err)
	}
	return &turn, nil
}

func requestAgentTurn(client *http.Client, baseURL string, gameStateID uuid.UUID) (*TurnResponse, error) {
	req := chat.AgentTurnRequest{GameStateID: gameStateID}
	var turn TurnResponse
	if err := doJSON(client, http.MethodPost, baseURL+"/v1/agent/turn", req, http.StatusOK, &turn); err != nil {
		return nil, fmt.Errorf("agent turn failed: %w", err)
	}
	return &turn, nil
}
