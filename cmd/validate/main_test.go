package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateData(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name: "valid steps",
			data: `{"name": "ok", "steps": [{"user_prompt": "go east", "expect": {"location": "riverbank", "action": "go(east)"}}]}`,
		},
		{
			name: "valid sequence",
			data: `{"name": "seq", "cases": ["walkthrough.json"]}`,
		},
		{
			name:    "invalid json",
			data:    `{"name": `,
			wantErr: "invalid JSON",
		},
		{
			name:    "unknown field",
			data:    `{"name": "x", "seed": 42, "steps": [{"user_prompt": "go east"}]}`,
			wantErr: "strict JSON",
		},
		{
			name:    "unknown location",
			data:    `{"name": "x", "steps": [{"user_prompt": "go east", "expect": {"location": "castle"}}]}`,
			wantErr: "unknown location 'castle'",
		},
		{
			name:    "unknown item",
			data:    `{"name": "x", "steps": [{"user_prompt": "take", "expect": {"items_at": {"dark_cave": ["sword"]}}}]}`,
			wantErr: "unknown item 'sword'",
		},
		{
			name:    "bad action format",
			data:    `{"name": "x", "steps": [{"user_prompt": "go east", "expect": {"action": "go east"}}]}`,
			wantErr: "unknown action format",
		},
		{
			name:    "empty prompt",
			data:    `{"name": "x", "steps": [{"user_prompt": " "}]}`,
			wantErr: "empty user_prompt",
		},
		{
			name:    "reset with feedback",
			data:    `{"name": "x", "steps": [{"user_prompt": "RESET_GAMESTATE", "expect": {"feedback_contains": ["hi"]}}]}`,
			wantErr: "is a reset but expects turn feedback",
		},
		{
			name:    "bad regex",
			data:    `{"name": "x", "steps": [{"user_prompt": "go east", "expect": {"feedback_regex": "("}}]}`,
			wantErr: "invalid feedback_regex",
		},
		{
			name:    "no steps",
			data:    `{"name": "x"}`,
			wantErr: "no steps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&CaseValidator{}).validateData("case.json", []byte(tt.data))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateFile_Filename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Bad-Name.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "x", "steps": [{"user_prompt": "go east"}]}`), 0o644))

	err := (&CaseValidator{}).validateFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lowercase snake_case")
}

func TestValidateFile_ShippedCases(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "integration", "cases", "*.json"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		assert.NoError(t, (&CaseValidator{}).validateFile(file), file)
	}
}
