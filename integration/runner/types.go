package runner

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Special user prompt values that trigger non-action steps
const (
	ResetGameStatePrompt = "RESET_GAMESTATE"
	AgentTurnPrompt      = "AGENT_TURN"
)

// TestSuite defines a complete integration test scenario
// Can either be a regular test with Steps, or a suite that references other Cases
type TestSuite struct {
	Name  string     `json:"name"`
	Steps []TestStep `json:"steps,omitempty"` // Used for regular tests
	Cases []string   `json:"cases,omitempty"` // Used for suite tests (list of case files)
}

// IsSequence returns true if this is a suite that sequences other cases
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// TestStep defines a single action and its expected outcomes
// Use user_prompt: "RESET_GAMESTATE" to start the game over, or
// "AGENT_TURN" to let the configured agent choose the action.
type TestStep struct {
	Name         string       `json:"name,omitempty"`
	UserPrompt   string       `json:"user_prompt"`
	Expectations Expectations `json:"expect"`
}

// Expectations defines what to check after a test step executes
type Expectations struct {
	Location  *string             `json:"location,omitempty"`
	Inventory []string            `json:"inventory,omitempty"` // Full inventory contents (order independent)
	Turns     *int                `json:"turns,omitempty"`
	GameOver  *bool               `json:"game_over,omitempty"`
	Win       *bool               `json:"win,omitempty"`
	Reward    *int                `json:"reward,omitempty"`
	Action    *string             `json:"action,omitempty"` // e.g. "go(north)"
	ItemsAt   map[string][]string `json:"items_at,omitempty"`

	FeedbackContains    []string `json:"feedback_contains,omitempty"`
	FeedbackNotContains []string `json:"feedback_not_contains,omitempty"`
	FeedbackRegex       string   `json:"feedback_regex,omitempty"`
}

// Describe lists what the step checks, e.g. "location=dark_cave reward=0".
func (exp Expectations) Describe() string {
	var parts []string
	if exp.Location != nil {
		parts = append(parts, "location="+*exp.Location)
	}
	if exp.Inventory != nil {
		parts = append(parts, fmt.Sprintf("inventory=%v", exp.Inventory))
	}
	for _, location := range slices.Sorted(maps.Keys(exp.ItemsAt)) {
		parts = append(parts, fmt.Sprintf("items_at[%s]=%v", location, exp.ItemsAt[location]))
	}
	if exp.Action != nil {
		parts = append(parts, "action="+*exp.Action)
	}
	if exp.Reward != nil {
		parts = append(parts, fmt.Sprintf("reward=%d", *exp.Reward))
	}
	if exp.Turns != nil {
		parts = append(parts, fmt.Sprintf("turns=%d", *exp.Turns))
	}
	if exp.GameOver != nil {
		parts = append(parts, fmt.Sprintf("game_over=%t", *exp.GameOver))
	}
	if exp.Win != nil {
		parts = append(parts, fmt.Sprintf("win=%t", *exp.Win))
	}
	if len(exp.FeedbackContains)+len(exp.FeedbackNotContains) > 0 || exp.FeedbackRegex != "" {
		parts = append(parts, "feedback")
	}
	if len(parts) == 0 {
		return "no checks"
	}
	return strings.Join(parts, " ")
}

// TestResult contains the outcome of running a test step
type TestResult struct {
	StepName string
	Success  bool
	Error    error
	Duration time.Duration
	Feedback string
	IsReset  bool // Reset steps don't count toward pass/fail metrics
}

// TestJob represents a test suite to be executed
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult contains the results of running an entire test suite
type TestRunResult struct {
	Job       TestJob
	Results   []TestResult
	GameState uuid.UUID
	Duration  time.Duration
	Error     error
}
