package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jwebster45206/treasure-hunt/internal/agent"
	"github.com/jwebster45206/treasure-hunt/pkg/state"
)

// Transcript is the record of one simulated game.
type Transcript struct {
	GameStateID string           `yaml:"gamestate_id"`
	Player      string           `yaml:"player"`
	Model       string           `yaml:"model,omitempty"`
	Result      string           `yaml:"result"`
	Turns       int              `yaml:"turns"`
	TotalReward int              `yaml:"total_reward"`
	Location    string           `yaml:"final_location"`
	Inventory   []string         `yaml:"inventory"`
	Steps       []TranscriptStep `yaml:"steps"`
	Error       string           `yaml:"error,omitempty"`
}

type TranscriptStep struct {
	Turn     int    `yaml:"turn"`
	Text     string `yaml:"text"`
	Action   string `yaml:"action"`
	Feedback string `yaml:"feedback"`
	Reward   int    `yaml:"reward,omitempty"`
}

func (t *Transcript) record(result *agent.TurnResult) {
	t.Steps = append(t.Steps, TranscriptStep{
		Turn:     len(t.Steps) + 1,
		Text:     result.Text,
		Action:   result.Outcome.Action.String(),
		Feedback: result.Outcome.Feedback,
		Reward:   result.Outcome.Reward,
	})
}

// finish copies the final session summary into the transcript.
func (t *Transcript) finish(gs *state.GameState, runErr error) {
	t.GameStateID = gs.ID.String()
	t.Result = string(gs.Status())
	t.Turns = gs.Turns
	t.TotalReward = gs.TotalReward
	t.Location = gs.Location
	t.Inventory = gs.Inventory
	if runErr != nil {
		t.Error = runErr.Error()
	}
}

func (t *Transcript) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("failed to encode transcript: %w", err)
	}
	return enc.Close()
}
