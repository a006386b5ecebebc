package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/treasure-hunt/internal/handlers"
	"github.com/jwebster45206/treasure-hunt/pkg/chat"
	"github.com/jwebster45206/treasure-hunt/pkg/state"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// Runner executes integration tests against a running treasure-hunt API
type Runner struct {
	BaseURL           string
	Client            *http.Client
	Logger            func(format string, args ...interface{})
	ErrorHandlingMode ErrorHandlingMode
}

// NewRunner creates a new test runner
func NewRunner(baseURL string) *Runner {
	return &Runner{
		BaseURL:           strings.TrimSuffix(baseURL, "/"),
		Client:            &http.Client{Timeout: 60 * time.Second},
		Logger:            func(string, ...interface{}) {},
		ErrorHandlingMode: ErrorHandlingContinue,
	}
}

// LoadTestSuite loads a test suite from a JSON file
func LoadTestSuite(filename string) (TestSuite, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	if err := json.Unmarshal(content, &suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse JSON in %s: %w", filename, err)
	}

	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence
// Returns a list of actual test suites (expanded from the sequence if needed)
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		casePath := filepath.Join(casesDir, caseFile)

		// Recursively load (in case a sequence references another sequence)
		subJobs, err := LoadTestSuiteWithExpansion(casePath, casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}

		jobs = append(jobs, subJobs...)
	}

	return jobs, nil
}

// RunSuite plays every step of suite in a fresh game
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job: TestJob{
			Name:  suite.Name,
			Suite: suite,
		},
		Results: make([]TestResult, 0, len(suite.Steps)),
	}

	gs, err := r.createGameState(ctx)
	if err != nil {
		result.Error = fmt.Errorf("failed to create gamestate: %w", err)
		result.Duration = time.Since(start)
		return result, result.Error
	}
	result.GameState = gs.ID

	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), step.Name)
		stepResult := r.executeStep(ctx, gs.ID, step)
		result.Results = append(result.Results, stepResult)

		if stepResult.Error != nil {
			r.Logger("    [%d/%d] ✗ %s: %v", i+1, len(suite.Steps), step.Name, stepResult.Error)
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s) failed: %w", i, step.Name, stepResult.Error)
			}
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
			continue
		}

		r.Logger("    [%d/%d] ✓ %s (%v)", i+1, len(suite.Steps), step.Name, stepResult.Duration)
	}

	result.Duration = time.Since(start)
	return result, result.Error
}

// executeStep sends one action (or reset) and checks the expectations
func (r *Runner) executeStep(ctx context.Context, gameStateID uuid.UUID, step TestStep) TestResult {
	start := time.Now()
	result := TestResult{
		StepName: step.Name,
	}

	var turn *handlers.TurnResponse
	var err error
	switch step.UserPrompt {
	case ResetGameStatePrompt:
		result.IsReset = true
		err = r.do(ctx, http.MethodPost, "/v1/gamestate/"+gameStateID.String()+"/reset", nil, http.StatusOK, nil)
	case AgentTurnPrompt:
		turn = &handlers.TurnResponse{}
		err = r.do(ctx, http.MethodPost, "/v1/agent/turn", chat.AgentTurnRequest{GameStateID: gameStateID}, http.StatusOK, turn)
	default:
		turn = &handlers.TurnResponse{}
		err = r.do(ctx, http.MethodPost, "/v1/action", chat.ActionRequest{GameStateID: gameStateID, Message: step.UserPrompt}, http.StatusOK, turn)
	}
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		return result
	}

	postState, err := r.getGameState(ctx, gameStateID)
	if err != nil {
		result.Error = fmt.Errorf("failed to get gamestate after step: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	if turn != nil {
		result.Feedback = turn.Feedback
	}
	if err := checkExpectations(step.Expectations, postState, turn); err != nil {
		result.Error = fmt.Errorf("expectation failed: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	result.Success = true
	result.Duration = time.Since(start)
	return result
}

func (r *Runner) createGameState(ctx context.Context) (*state.GameState, error) {
	var gs state.GameState
	if err := r.do(ctx, http.MethodPost, "/v1/gamestate", struct{}{}, http.StatusCreated, &gs); err != nil {
		return nil, err
	}
	return &gs, nil
}

func (r *Runner) getGameState(ctx context.Context, gameStateID uuid.UUID) (*state.GameState, error) {
	var gs state.GameState
	if err := r.do(ctx, http.MethodGet, "/v1/gamestate/"+gameStateID.String(), nil, http.StatusOK, &gs); err != nil {
		return nil, err
	}
	return &gs, nil
}

func (r *Runner) do(ctx context.Context, method, path string, payload any, wantStatus int, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != wantStatus {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s returned %d: %s", method, path, resp.StatusCode, string(respBody))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// checkExpectations validates the expectations against the session after a
// step. turn is nil for reset steps.
func checkExpectations(exp Expectations, postState *state.GameState, turn *handlers.TurnResponse) error {
	if exp.Location != nil && postState.Location != *exp.Location {
		return fmt.Errorf("expected location %s, got %s", *exp.Location, postState.Location)
	}

	// Full inventory check (order independent)
	if exp.Inventory != nil {
		expected := slices.Sorted(slices.Values(exp.Inventory))
		actual := slices.Sorted(slices.Values(postState.Inventory))
		if !slices.Equal(expected, actual) {
			return fmt.Errorf("expected inventory %v, got %v", exp.Inventory, postState.Inventory)
		}
	}

	for location, items := range exp.ItemsAt {
		actual := postState.World.ItemsAt(location)
		if !slices.Equal(slices.Sorted(slices.Values(items)), slices.Sorted(slices.Values(actual))) {
			return fmt.Errorf("expected items %v at %s, got %v", items, location, actual)
		}
	}

	if exp.Turns != nil && postState.Turns != *exp.Turns {
		return fmt.Errorf("expected turns to be %d, got %d", *exp.Turns, postState.Turns)
	}
	if exp.GameOver != nil && postState.GameOver != *exp.GameOver {
		return fmt.Errorf("expected game_over to be %t, got %t", *exp.GameOver, postState.GameOver)
	}
	if exp.Win != nil && postState.Win != *exp.Win {
		return fmt.Errorf("expected win to be %t, got %t", *exp.Win, postState.Win)
	}

	if turn == nil {
		return nil
	}

	if exp.Reward != nil && turn.Reward != *exp.Reward {
		return fmt.Errorf("expected reward %d, got %d", *exp.Reward, turn.Reward)
	}
	if exp.Action != nil && turn.Action.String() != *exp.Action {
		return fmt.Errorf("expected action %s, got %s", *exp.Action, turn.Action.String())
	}

	for _, expectedText := range exp.FeedbackContains {
		if !strings.Contains(turn.Feedback, expectedText) {
			return fmt.Errorf("expected feedback to contain '%s', got '%s'", expectedText, turn.Feedback)
		}
	}
	for _, unexpectedText := range exp.FeedbackNotContains {
		if strings.Contains(turn.Feedback, unexpectedText) {
			return fmt.Errorf("expected feedback to NOT contain '%s', but it did", unexpectedText)
		}
	}

	if exp.FeedbackRegex != "" {
		matched, err := regexp.MatchString(exp.FeedbackRegex, turn.Feedback)
		if err != nil {
			return fmt.Errorf("invalid regex pattern: %w", err)
		}
		if !matched {
			return fmt.Errorf("feedback didn't match regex pattern: %s", exp.FeedbackRegex)
		}
	}

	return nil
}
