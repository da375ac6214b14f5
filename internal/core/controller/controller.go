// Package controller couples the timer, the task list and the planner.
package controller

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"zenpomodoro/internal/core/model"
	"zenpomodoro/internal/core/tasks"
	"zenpomodoro/internal/core/timekeeper"
	"zenpomodoro/internal/planner"
)

// PlanFailedNotice is the single message shown for any breakdown failure.
const PlanFailedNotice = "Failed to generate tasks. Please try again or check your API key."

var (
	// ErrPlanInProgress is returned when a breakdown is already pending.
	ErrPlanInProgress = errors.New("task breakdown already in progress")
	// ErrEmptyGoal is returned for a blank goal.
	ErrEmptyGoal = planner.ErrEmptyGoal
)

// Planner produces task drafts for a goal.
type Planner interface {
	Breakdown(ctx context.Context, goal string) ([]model.Draft, error)
}

// Notifier surfaces user-visible failure notices.
type Notifier interface {
	Notice(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

// Notice implements Notifier.
func (fn NotifierFunc) Notice(message string) {
	fn(message)
}

// Controller owns the session-scoped timer and task store.
type Controller struct {
	keeper   *timekeeper.TimeKeeper
	store    *tasks.Store
	planner  Planner
	notifier Notifier

	mu       sync.Mutex
	planning bool
}

// New wires focus completions into the store.
func New(keeper *timekeeper.TimeKeeper, store *tasks.Store, planner Planner, notifier Notifier) *Controller {
	keeper.OnSessionComplete(store.OnSessionComplete)
	return &Controller{
		keeper:   keeper,
		store:    store,
		planner:  planner,
		notifier: notifier,
	}
}

// Timer returns the timer state machine.
func (controller *Controller) Timer() *timekeeper.TimeKeeper {
	return controller.keeper
}

// Tasks returns the task store.
func (controller *Controller) Tasks() *tasks.Store {
	return controller.store
}

// SetNotifier replaces the notice sink. Surfaces call it once their
// widgets exist.
func (controller *Controller) SetNotifier(notifier Notifier) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.notifier = notifier
}

// SetPlanner replaces the breakdown source. A pending request keeps the
// planner it started with.
func (controller *Controller) SetPlanner(planner Planner) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.planner = planner
}

// Planning reports whether a breakdown request is pending.
func (controller *Controller) Planning() bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.planning
}

// PlanFromGoal requests a breakdown and appends the result to the store.
// On failure one notice is raised and the store is left untouched.
func (controller *Controller) PlanFromGoal(ctx context.Context, goal string) ([]model.Task, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, ErrEmptyGoal
	}

	controller.mu.Lock()
	if controller.planning {
		controller.mu.Unlock()
		return nil, ErrPlanInProgress
	}
	controller.planning = true
	source := controller.planner
	controller.mu.Unlock()

	defer func() {
		controller.mu.Lock()
		controller.planning = false
		controller.mu.Unlock()
	}()

	drafts, err := source.Breakdown(ctx, goal)
	if err != nil {
		log.Printf("plan from goal: %v", err)
		controller.notice(PlanFailedNotice)
		return nil, err
	}
	return controller.store.AddBatch(drafts), nil
}

func (controller *Controller) notice(message string) {
	controller.mu.Lock()
	notifier := controller.notifier
	controller.mu.Unlock()
	if notifier != nil {
		notifier.Notice(message)
	}
}
