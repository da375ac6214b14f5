package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenpomodoro/internal/core/model"
	"zenpomodoro/internal/planner"
	"zenpomodoro/internal/ui/preferences"
)

func TestResolveAPIKey(t *testing.T) {
	env := map[string]string{"GEMINI_API_KEY": "gemini", "API_KEY": "generic"}
	lookup := func(name string) string { return env[name] }

	assert.Equal(t, "flag", resolveAPIKey(" flag ", lookup))
	assert.Equal(t, "gemini", resolveAPIKey("", lookup))

	delete(env, "GEMINI_API_KEY")
	assert.Equal(t, "generic", resolveAPIKey("", lookup))

	delete(env, "API_KEY")
	assert.Equal(t, "", resolveAPIKey("", lookup))
}

func TestResolveModel(t *testing.T) {
	settings := preferences.DefaultSettings()
	assert.Equal(t, planner.DefaultModel, resolveModel("", settings))

	settings.AIModel = "from-settings"
	assert.Equal(t, "from-settings", resolveModel("", settings))
	assert.Equal(t, "from-flag", resolveModel("from-flag", settings))

	settings.AIModel = ""
	assert.Equal(t, planner.DefaultModel, resolveModel("", settings))
}

func TestWriteBreakdownPlain(t *testing.T) {
	var out bytes.Buffer
	drafts := []model.Draft{{Title: "Outline", EstimatedPomodoros: 1}, {Title: "Draft", EstimatedPomodoros: 3}}

	require.NoError(t, writeBreakdown(&out, "Write a post", drafts, formatPlain))

	assert.Equal(t, "1. Outline  1 pomodoro(s)\n2. Draft  3 pomodoro(s)\n", out.String())
}

func TestWriteBreakdownJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeBreakdown(&out, "goal", nil, formatJSON))

	var decoded struct {
		Tasks []model.Draft `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.NotNil(t, decoded.Tasks)
	assert.Empty(t, decoded.Tasks)
}

func TestWriteBreakdownStyledMentionsTotals(t *testing.T) {
	var out bytes.Buffer
	drafts := []model.Draft{{Title: "Outline", EstimatedPomodoros: 2}}

	require.NoError(t, writeBreakdown(&out, "Write a post", drafts, formatStyled))

	assert.Contains(t, out.String(), "Write a post")
	assert.Contains(t, out.String(), "Outline")
	assert.Contains(t, out.String(), "1 tasks · 2 pomodoros")
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, command := range rootCmd.Commands() {
		names[command.Name()] = true
	}
	assert.True(t, names["tui"])
	assert.True(t, names["breakdown"])
	for _, flag := range []string{"config", "api-key", "model", "log-file"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), flag)
	}
}
