package model

// Task is a unit of work that earns pomodoro credit while selected.
type Task struct {
	ID                 string
	Title              string
	Completed          bool
	EstimatedPomodoros int
	CompletedPomodoros int
}

// Draft describes a task before it is inserted into the store.
type Draft struct {
	Title              string `json:"title"`
	EstimatedPomodoros int    `json:"estimatedPomodoros"`
}

// TaskSummary aggregates counters over the task list.
type TaskSummary struct {
	Tasks              int
	CompletedTasks     int
	EstimatedPomodoros int
	CompletedPomodoros int
}
