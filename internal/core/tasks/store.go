// Package tasks holds the ordered task list and the selected-task pointer.
package tasks

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"zenpomodoro/internal/core/model"
)

// Sentinel errors for store operations.
var (
	ErrEmptyTitle   = errors.New("task title is empty")
	ErrTaskNotFound = errors.New("task not found")
)

// Store owns every task record. All methods are safe for concurrent use.
type Store struct {
	mu         sync.Mutex
	tasks      []model.Task
	selectedID string
	newID      func() string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{newID: uuid.NewString}
}

// Add appends a task and selects it when nothing is selected.
func (store *Store) Add(title string, estimatedPomodoros int) (model.Task, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	task, ok := store.buildLocked(model.Draft{Title: title, EstimatedPomodoros: estimatedPomodoros})
	if !ok {
		return model.Task{}, ErrEmptyTitle
	}
	store.tasks = append(store.tasks, task)
	if store.selectedID == "" {
		store.selectedID = task.ID
	}
	return task, nil
}

// AddBatch appends drafts in order, skipping empty titles. Estimates below
// one are stored as one. When nothing is selected the first inserted task
// becomes selected.
func (store *Store) AddBatch(drafts []model.Draft) []model.Task {
	store.mu.Lock()
	defer store.mu.Unlock()

	inserted := make([]model.Task, 0, len(drafts))
	for _, draft := range drafts {
		task, ok := store.buildLocked(draft)
		if !ok {
			continue
		}
		inserted = append(inserted, task)
	}
	store.tasks = append(store.tasks, inserted...)
	if store.selectedID == "" && len(inserted) > 0 {
		store.selectedID = inserted[0].ID
	}
	return inserted
}

// ToggleComplete flips the completed flag. It reports whether the task exists.
func (store *Store) ToggleComplete(id string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	index := store.indexLocked(id)
	if index < 0 {
		return false
	}
	store.tasks[index].Completed = !store.tasks[index].Completed
	return true
}

// Delete removes a task and clears the selection if it pointed at it.
func (store *Store) Delete(id string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	index := store.indexLocked(id)
	if index < 0 {
		return false
	}
	store.tasks = append(store.tasks[:index], store.tasks[index+1:]...)
	if store.selectedID == id {
		store.selectedID = ""
	}
	return true
}

// Select points the selection at id. An empty id clears it.
func (store *Store) Select(id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if id == "" {
		store.selectedID = ""
		return nil
	}
	if store.indexLocked(id) < 0 {
		return ErrTaskNotFound
	}
	store.selectedID = id
	return nil
}

// OnSessionComplete credits a finished focus session to the selected task.
func (store *Store) OnSessionComplete(mode model.TimerMode) {
	if mode != model.ModeFocus {
		return
	}
	store.mu.Lock()
	defer store.mu.Unlock()

	index := store.indexLocked(store.selectedID)
	if index < 0 {
		return
	}
	store.tasks[index].CompletedPomodoros++
}

// List returns a copy of the tasks in insertion order.
func (store *Store) List() []model.Task {
	store.mu.Lock()
	defer store.mu.Unlock()
	return append([]model.Task(nil), store.tasks...)
}

// Len returns the number of tasks.
func (store *Store) Len() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.tasks)
}

// Get returns the task with the given id.
func (store *Store) Get(id string) (model.Task, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()

	index := store.indexLocked(id)
	if index < 0 {
		return model.Task{}, false
	}
	return store.tasks[index], true
}

// SelectedID returns the selected task id, or "" when nothing is selected.
func (store *Store) SelectedID() string {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.selectedID
}

// Selected returns the selected task.
func (store *Store) Selected() (model.Task, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()

	index := store.indexLocked(store.selectedID)
	if index < 0 {
		return model.Task{}, false
	}
	return store.tasks[index], true
}

// Summary totals tasks and pomodoros.
func (store *Store) Summary() model.TaskSummary {
	store.mu.Lock()
	defer store.mu.Unlock()

	summary := model.TaskSummary{Tasks: len(store.tasks)}
	for _, task := range store.tasks {
		if task.Completed {
			summary.CompletedTasks++
		}
		summary.EstimatedPomodoros += task.EstimatedPomodoros
		summary.CompletedPomodoros += task.CompletedPomodoros
	}
	return summary
}

func (store *Store) buildLocked(draft model.Draft) (model.Task, bool) {
	if strings.TrimSpace(draft.Title) == "" {
		return model.Task{}, false
	}
	estimate := draft.EstimatedPomodoros
	if estimate < 1 {
		estimate = 1
	}
	return model.Task{
		ID:                 store.newID(),
		Title:              draft.Title,
		EstimatedPomodoros: estimate,
	}, true
}

func (store *Store) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for index := range store.tasks {
		if store.tasks[index].ID == id {
			return index
		}
	}
	return -1
}
