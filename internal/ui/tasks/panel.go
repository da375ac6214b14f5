// Package tasks renders the task list, the manual add form and the goal
// breakdown form.
package tasks

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"zenpomodoro/internal/core/controller"
	"zenpomodoro/internal/core/model"
	"zenpomodoro/internal/planner"
)

const maxEstimate = 8

// Panel is the task half of the main window.
type Panel struct {
	controller *controller.Controller
	window     fyne.Window
	onChange   func()

	titleEntry     *widget.Entry
	estimateSelect *widget.Select
	addButton      *widget.Button
	goalEntry      *widget.Entry
	planButton     *widget.Button
	planActivity   *widget.ProgressBarInfinite
	list           *widget.List
	summary        *widget.Label
	content        fyne.CanvasObject

	items   []model.Task
	syncing bool
}

// New builds the panel. onChange runs on the UI goroutine after every
// mutation the panel performs.
func New(ctrl *controller.Controller, onChange func()) *Panel {
	panel := &Panel{controller: ctrl, onChange: onChange}

	panel.titleEntry = widget.NewEntry()
	panel.titleEntry.SetPlaceHolder("What are you working on?")
	panel.titleEntry.OnSubmitted = func(string) { panel.addTask() }

	estimates := make([]string, 0, maxEstimate)
	for i := 1; i <= maxEstimate; i++ {
		estimates = append(estimates, strconv.Itoa(i))
	}
	panel.estimateSelect = widget.NewSelect(estimates, nil)
	panel.estimateSelect.SetSelected(estimates[0])

	panel.addButton = widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), panel.addTask)

	panel.goalEntry = widget.NewEntry()
	panel.goalEntry.SetPlaceHolder("Describe a goal and let AI plan it")
	panel.goalEntry.OnSubmitted = func(string) { panel.plan() }
	panel.planButton = widget.NewButtonWithIcon("Plan", theme.ComputerIcon(), panel.plan)
	panel.planActivity = widget.NewProgressBarInfinite()
	panel.planActivity.Hide()

	panel.list = widget.NewList(
		func() int { return len(panel.items) },
		func() fyne.CanvasObject { return newTaskRow() },
		func(id widget.ListItemID, object fyne.CanvasObject) {
			if id < 0 || id >= len(panel.items) {
				return
			}
			task := panel.items[id]
			object.(*taskRow).bind(task, task.ID == panel.controller.Tasks().SelectedID(),
				func() { panel.toggleTask(task.ID) },
				func() { panel.deleteTask(task.ID) },
			)
		},
	)
	panel.list.OnSelected = func(id widget.ListItemID) {
		if panel.syncing || id < 0 || id >= len(panel.items) {
			return
		}
		panel.selectTask(panel.items[id].ID)
	}

	panel.summary = widget.NewLabel("")

	addRow := container.NewBorder(nil, nil, nil, container.NewHBox(panel.estimateSelect, panel.addButton), panel.titleEntry)
	goalRow := container.NewBorder(nil, nil, nil, panel.planButton, panel.goalEntry)
	header := container.NewVBox(
		widget.NewLabelWithStyle("Tasks", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		addRow,
		goalRow,
		panel.planActivity,
	)
	panel.content = container.NewBorder(header, panel.summary, nil, nil, panel.list)

	panel.Refresh()
	return panel
}

// Content returns the root canvas object.
func (panel *Panel) Content() fyne.CanvasObject {
	return panel.content
}

// SetWindow sets the parent for notice dialogs.
func (panel *Panel) SetWindow(window fyne.Window) {
	panel.window = window
}

// ShowNotice displays a failure notice. Must run on the UI goroutine.
func (panel *Panel) ShowNotice(message string) {
	if panel.window == nil {
		return
	}
	dialog.ShowInformation("Task breakdown", message, panel.window)
}

// Refresh reloads the list and summary from the store.
func (panel *Panel) Refresh() {
	store := panel.controller.Tasks()
	panel.items = store.List()

	panel.syncing = true
	panel.list.Refresh()
	selected := -1
	selectedID := store.SelectedID()
	for i, task := range panel.items {
		if task.ID == selectedID {
			selected = i
			break
		}
	}
	if selected >= 0 {
		panel.list.Select(selected)
	} else {
		panel.list.UnselectAll()
	}
	panel.syncing = false

	summary := store.Summary()
	panel.summary.SetText(fmt.Sprintf("%d/%d tasks done · %d/%d pomodoros",
		summary.CompletedTasks, summary.Tasks, summary.CompletedPomodoros, summary.EstimatedPomodoros))
}

func (panel *Panel) addTask() {
	estimate, err := strconv.Atoi(panel.estimateSelect.Selected)
	if err != nil {
		estimate = 1
	}
	if _, err := panel.controller.Tasks().Add(panel.titleEntry.Text, estimate); err != nil {
		return
	}
	panel.titleEntry.SetText("")
	panel.estimateSelect.SetSelected("1")
	panel.changed()
}

func (panel *Panel) toggleTask(id string) {
	if panel.controller.Tasks().ToggleComplete(id) {
		panel.changed()
	}
}

func (panel *Panel) deleteTask(id string) {
	if panel.controller.Tasks().Delete(id) {
		panel.changed()
	}
}

func (panel *Panel) selectTask(id string) {
	if err := panel.controller.Tasks().Select(id); err != nil {
		return
	}
	panel.changed()
}

func (panel *Panel) plan() {
	goal := strings.TrimSpace(panel.goalEntry.Text)
	if goal == "" || panel.controller.Planning() {
		return
	}
	panel.setPlanning(true)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), planner.DefaultRequestTimeout)
		defer cancel()
		_, err := panel.controller.PlanFromGoal(ctx, goal)
		fyne.Do(func() {
			panel.setPlanning(false)
			if err == nil {
				panel.goalEntry.SetText("")
			}
			panel.changed()
		})
	}()
}

func (panel *Panel) setPlanning(planning bool) {
	if planning {
		panel.planButton.Disable()
		panel.goalEntry.Disable()
		panel.planActivity.Show()
		panel.planActivity.Start()
		return
	}
	panel.planActivity.Stop()
	panel.planActivity.Hide()
	panel.goalEntry.Enable()
	panel.planButton.Enable()
}

func (panel *Panel) changed() {
	panel.Refresh()
	if panel.onChange != nil {
		panel.onChange()
	}
}

type taskRow struct {
	widget.BaseWidget
	check  *widget.Check
	title  *widget.Label
	count  *widget.Label
	remove *widget.Button
}

func newTaskRow() *taskRow {
	row := &taskRow{
		check:  widget.NewCheck("", nil),
		title:  widget.NewLabel(""),
		count:  widget.NewLabel(""),
		remove: widget.NewButtonWithIcon("", theme.DeleteIcon(), nil),
	}
	row.title.Truncation = fyne.TextTruncateEllipsis
	row.remove.Importance = widget.LowImportance
	row.ExtendBaseWidget(row)
	return row
}

func (row *taskRow) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewBorder(nil, nil, row.check, container.NewHBox(row.count, row.remove), row.title))
}

func (row *taskRow) bind(task model.Task, selected bool, onToggle, onDelete func()) {
	row.check.OnChanged = nil
	row.check.SetChecked(task.Completed)
	row.check.OnChanged = func(bool) { onToggle() }

	row.title.TextStyle = fyne.TextStyle{Bold: selected}
	row.title.Importance = widget.MediumImportance
	if task.Completed {
		row.title.Importance = widget.LowImportance
	}
	row.title.SetText(task.Title)

	row.count.SetText(fmt.Sprintf("%d/%d", task.CompletedPomodoros, task.EstimatedPomodoros))
	row.remove.OnTapped = onDelete
}
