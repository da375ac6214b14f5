// Package planner turns a free-text goal into pomodoro-sized tasks using a
// generative text model.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"zenpomodoro/internal/core/model"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-3-flash-preview"

// Request is a single structured-output generation call.
type Request struct {
	APIKey string
	Model  string
	Prompt string
	Schema *genai.Schema
}

// Generator performs the remote text generation and returns the raw body.
type Generator interface {
	Generate(ctx context.Context, request Request) (string, error)
}

// Config holds the credential and model name.
type Config struct {
	APIKey string
	Model  string
}

// Planner validates goals, calls the generator and checks the answer's shape.
type Planner struct {
	config    Config
	generator Generator
}

// New creates a planner. The credential is checked on every call, not here.
func New(config Config, generator Generator) *Planner {
	if config.Model == "" {
		config.Model = DefaultModel
	}
	return &Planner{config: config, generator: generator}
}

// Configured reports whether a credential is present.
func (planner *Planner) Configured() bool {
	return strings.TrimSpace(planner.config.APIKey) != ""
}

// Breakdown asks the model for a task list for goal. Estimates and titles
// are returned as the model produced them.
func (planner *Planner) Breakdown(ctx context.Context, goal string) ([]model.Draft, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, ErrEmptyGoal
	}
	if !planner.Configured() {
		return nil, fmt.Errorf("%w: API key is missing", ErrConfiguration)
	}
	if planner.generator == nil {
		return nil, fmt.Errorf("%w: no generator", ErrConfiguration)
	}

	body, err := planner.generator.Generate(ctx, Request{
		APIKey: planner.config.APIKey,
		Model:  planner.config.Model,
		Prompt: buildPrompt(goal),
		Schema: responseSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return parseResponse(body)
}

func buildPrompt(goal string) string {
	return "Break down the following goal into a list of specific, actionable tasks " +
		"that each fit 25-minute Pomodoro sessions.\n" +
		"Keep titles concise (under 50 characters). Estimate 1-4 pomodoros per task.\n" +
		"Goal: " + goal
}

func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"tasks": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title": {
							Type:        genai.TypeString,
							Description: "A concise task title",
						},
						"estimatedPomodoros": {
							Type:        genai.TypeInteger,
							Description: "Estimated number of 25-minute sessions (1-4)",
						},
					},
					Required: []string{"title", "estimatedPomodoros"},
				},
			},
		},
		Required: []string{"tasks"},
	}
}

type breakdownResponse struct {
	Tasks *[]breakdownItem `json:"tasks"`
}

type breakdownItem struct {
	Title              *string `json:"title"`
	EstimatedPomodoros *int    `json:"estimatedPomodoros"`
}

func parseResponse(body string) ([]model.Draft, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: empty body", ErrResponse)
	}

	var parsed breakdownResponse
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResponse, err)
	}
	if parsed.Tasks == nil {
		return nil, fmt.Errorf("%w: missing tasks", ErrResponse)
	}

	drafts := make([]model.Draft, 0, len(*parsed.Tasks))
	for index, item := range *parsed.Tasks {
		if item.Title == nil || item.EstimatedPomodoros == nil {
			return nil, fmt.Errorf("%w: task %d is missing a required field", ErrResponse, index)
		}
		drafts = append(drafts, model.Draft{
			Title:              *item.Title,
			EstimatedPomodoros: *item.EstimatedPomodoros,
		})
	}
	return drafts, nil
}
