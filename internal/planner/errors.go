package planner

import "errors"

// Failure kinds of a breakdown request. Returned errors wrap one of these
// together with the underlying cause.
var (
	ErrConfiguration = errors.New("planner not configured")
	ErrTransport     = errors.New("planner request failed")
	ErrResponse      = errors.New("planner response invalid")
)

// ErrEmptyGoal is returned when the goal is blank. No request is made.
var ErrEmptyGoal = errors.New("goal is empty")
