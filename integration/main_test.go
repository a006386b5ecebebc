//go:build integration

package integration

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jwebster45206/treasure-hunt/integration/runner"
)

var caseFlag = flag.String("case", "", "Comma separated case names to run (from integration/cases/); empty runs all")
var errFlag = flag.String("err", "continue", "Error handling mode: 'continue' (run all steps) or 'exit' (stop on first failure)")

const casesDir = "cases"

// TestCases plays every case file (or the ones named by -case) against
// API_BASE_URL and reports each step with the expectations it checked.
func TestCases(t *testing.T) {
	if *errFlag != string(runner.ErrorHandlingExit) && *errFlag != string(runner.ErrorHandlingContinue) {
		t.Fatalf("Invalid -err flag value: %s (must be 'exit' or 'continue')", *errFlag)
	}

	files, err := caseFiles(*caseFlag)
	if err != nil {
		t.Fatalf("Failed to find case files: %v", err)
	}

	var jobs []runner.TestJob
	for _, file := range files {
		expanded, err := runner.LoadTestSuiteWithExpansion(file, casesDir)
		if err != nil {
			t.Fatalf("Failed to load case %s: %v", file, err)
		}
		jobs = append(jobs, expanded...)
	}

	baseURL := getEnv("API_BASE_URL", "http://localhost:8080")
	testRunner := runner.NewRunner(baseURL)
	testRunner.Client.Timeout = time.Duration(getIntEnv("TEST_TIMEOUT_SECONDS", 30)) * time.Second
	testRunner.ErrorHandlingMode = runner.ErrorHandlingMode(*errFlag)
	t.Logf("Running %d case(s) against %s", len(jobs), baseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var failed []string
	for i, job := range jobs {
		result, err := testRunner.RunSuite(ctx, job.Suite)
		t.Logf("[%d/%d] %s (gamestate %s, %v)", i+1, len(jobs), job.Name, result.GameState, result.Duration)

		for j, step := range result.Results {
			checks := job.Suite.Steps[j].Expectations.Describe()
			switch {
			case step.Success && step.IsReset:
				t.Logf("   ↻ %s [%s]", step.StepName, checks)
			case step.Success:
				t.Logf("   ✓ %s [%s]", step.StepName, checks)
			default:
				t.Errorf("   ✗ %s [%s]: %v", step.StepName, checks, step.Error)
			}
		}

		if err != nil {
			failed = append(failed, job.Name)
			if testRunner.ErrorHandlingMode == runner.ErrorHandlingExit {
				t.Fatalf("Case '%s' failed: %v", job.Name, err)
			}
		}
	}

	t.Logf("Passed: %d, Failed: %d", len(jobs)-len(failed), len(failed))
	if len(failed) > 0 {
		t.Fatalf("Failed cases: %s", strings.Join(failed, ", "))
	}
}

func caseFiles(names string) ([]string, error) {
	if names == "" {
		return filepath.Glob(filepath.Join(casesDir, "*.json"))
	}

	var files []string
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !strings.HasSuffix(name, ".json") {
			name += ".json"
		}
		files = append(files, filepath.Join(casesDir, name))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no case names in %q", names)
	}
	return files, nil
}

func getEnv(name, defaultValue string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return defaultValue
}

func getIntEnv(name string, defaultValue int) int {
	val, err := strconv.Atoi(os.Getenv(name))
	if err != nil {
		return defaultValue
	}
	return val
}
