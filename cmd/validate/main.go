package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/jwebster45206/treasure-hunt/integration/runner"
	"github.com/jwebster45206/treasure-hunt/pkg/world"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <case.json> [case.json...]\n", os.Args[0])
		os.Exit(1)
	}

	if err := world.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "World map is invalid: %v\n", err)
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		validator := &CaseValidator{}
		if err := validator.validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}

	fmt.Println("Case files are valid!")
}

// CaseValidator checks integration case files against the fixed world map.
type CaseValidator struct {
	errors []string
}

func (v *CaseValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("case file must have .json extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, ".json")
	if !isValidID(nameWithoutExt) {
		return fmt.Errorf("case filename '%s' must be lowercase snake_case (e.g., locked_chest.json, not locked-chest.json or LockedChest.json)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	return v.validateData(filename, data)
}

func (v *CaseValidator) validateData(filename string, data []byte) error {
	v.errors = nil

	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	var suite runner.TestSuite
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&suite); err != nil {
		return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", filename, err)
	}

	v.validateSuite(&suite)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}

	return nil
}

func (v *CaseValidator) validateSuite(s *runner.TestSuite) {
	if s.Name == "" {
		v.addError("suite has no name")
	}

	if s.IsSequence() {
		if len(s.Steps) > 0 {
			v.addError("suite has both steps and cases")
		}
		for _, c := range s.Cases {
			if !strings.HasSuffix(c, ".json") {
				v.addError(fmt.Sprintf("case reference '%s' must be a .json file", c))
			}
		}
		return
	}

	if len(s.Steps) == 0 {
		v.addError("suite has no steps")
	}
	for i, step := range s.Steps {
		v.validateStep(i, &step)
	}
}

func (v *CaseValidator) validateStep(i int, step *runner.TestStep) {
	context := fmt.Sprintf("step %d (%s)", i, step.Name)
	if strings.TrimSpace(step.UserPrompt) == "" {
		v.addError(context + " has an empty user_prompt")
	}

	exp := step.Expectations
	if exp.Location != nil {
		v.validateLocation(context, *exp.Location)
	}
	for _, item := range exp.Inventory {
		v.validateItem(context, item)
	}
	for location, items := range exp.ItemsAt {
		v.validateLocation(context, location)
		for _, item := range items {
			v.validateItem(context, item)
		}
	}
	if exp.Turns != nil && *exp.Turns < 0 {
		v.addError(fmt.Sprintf("%s expects a negative turn count", context))
	}
	if exp.Action != nil && !validActionRegex.MatchString(*exp.Action) {
		v.addError(fmt.Sprintf("%s expects unknown action format '%s'", context, *exp.Action))
	}
	if exp.FeedbackRegex != "" {
		if _, err := regexp.Compile(exp.FeedbackRegex); err != nil {
			v.addError(fmt.Sprintf("%s has an invalid feedback_regex: %v", context, err))
		}
	}

	// Reset steps return no turn, so turn-only expectations never run.
	if step.UserPrompt == runner.ResetGameStatePrompt {
		if exp.Reward != nil || exp.Action != nil || len(exp.FeedbackContains) > 0 ||
			len(exp.FeedbackNotContains) > 0 || exp.FeedbackRegex != "" {
			v.addError(context + " is a reset but expects turn feedback")
		}
	}
}

func (v *CaseValidator) validateLocation(context, id string) {
	if !slices.Contains(world.LocationIDs(), id) {
		v.addError(fmt.Sprintf("%s references unknown location '%s'", context, id))
	}
}

func (v *CaseValidator) validateItem(context, item string) {
	if !slices.Contains(knownItems, item) {
		v.addError(fmt.Sprintf("%s references unknown item '%s'", context, item))
	}
}

func (v *CaseValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var knownItems = []string{world.ShinyKey, world.OldWoodenChest}

var (
	validIDRegex     = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)
	validActionRegex = regexp.MustCompile(`^(go\((north|south|east|west)\)|pick_up\(.+\)|open\(chest\)|unknown)$`)
)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}
