package tray

import (
	"fmt"

	"fyne.io/fyne/v2"

	"zenpomodoro/internal/core/model"
)

// Host is the part of desktop.App the tray uses.
type Host interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnReset       func()
	OnSwitchMode  func(model.TimerMode)
	OnPreferences func()
	OnQuit        func()
}

// Icons maps timer states to tray icons.
type Icons struct {
	Active fyne.Resource
	Break  fyne.Resource
	Paused fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	host       Host
	callbacks  Callbacks
	icons      Icons
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	modeItems  map[model.TimerMode]*fyne.MenuItem
	menu       *fyne.Menu
	state      model.TimerState
	taskTitle  string
	icon       fyne.Resource
}

// New creates a tray manager with the provided callbacks.
func New(host Host, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:      host,
		callbacks: callbacks,
		icons:     icons,
		modeItems: make(map[model.TimerMode]*fyne.MenuItem, len(model.Modes)),
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	show := fyne.NewMenuItem("Show ZenPomodoro", func() {
		if manager.callbacks.OnShow != nil {
			manager.callbacks.OnShow()
		}
	})

	manager.toggleItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})

	reset := fyne.NewMenuItem("Reset", func() {
		if manager.callbacks.OnReset != nil {
			manager.callbacks.OnReset()
		}
	})

	modeMenu := fyne.NewMenu("")
	for _, mode := range model.Modes {
		mode := mode
		item := fyne.NewMenuItem(mode.Label(), func() {
			if manager.callbacks.OnSwitchMode != nil {
				manager.callbacks.OnSwitchMode(mode)
			}
		})
		manager.modeItems[mode] = item
		modeMenu.Items = append(modeMenu.Items, item)
	}
	switchItem := fyne.NewMenuItem("Switch mode", nil)
	switchItem.ChildMenu = modeMenu

	preferences := fyne.NewMenuItem("Preferences", func() {
		if manager.callbacks.OnPreferences != nil {
			manager.callbacks.OnPreferences()
		}
	})

	quit := fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	quit.IsQuit = true

	manager.menu = fyne.NewMenu("ZenPomodoro",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		show,
		manager.toggleItem,
		reset,
		switchItem,
		fyne.NewMenuItemSeparator(),
		preferences,
		quit,
	)
	if host != nil {
		host.SetSystemTrayMenu(manager.menu)
	}

	return manager
}

// SetState updates the status line, toggle label, mode checks and icon.
func (manager *Manager) SetState(state model.TimerState) {
	manager.state = state
	if state.Active {
		manager.toggleItem.Label = "Pause"
	} else {
		manager.toggleItem.Label = "Start"
	}
	for mode, item := range manager.modeItems {
		item.Checked = mode == state.Mode
	}
	manager.refreshStatus()
	manager.refreshIcon()
}

// SetTask shows the selected task below the clock. Empty hides it.
func (manager *Manager) SetTask(title string) {
	manager.taskTitle = title
	manager.refreshStatus()
}

// StatusLabel returns the current status line.
func (manager *Manager) StatusLabel() string {
	return manager.statusItem.Label
}

func (manager *Manager) refreshStatus() {
	status := fmt.Sprintf("%s · %s", manager.state.Mode.Label(), model.FormatClock(manager.state.TimeLeft))
	if !manager.state.Active {
		status = fmt.Sprintf("%s (paused)", status)
	}
	if manager.taskTitle != "" {
		status = fmt.Sprintf("%s · %s", status, manager.taskTitle)
	}
	manager.statusItem.Label = status
	manager.refreshMenu()
}

func (manager *Manager) refreshIcon() {
	icon := manager.icons.Paused
	switch {
	case manager.state.Active && manager.state.Mode == model.ModeFocus:
		icon = manager.icons.Active
	case manager.state.Active:
		icon = manager.icons.Break
	}
	if icon == nil || icon == manager.icon {
		return
	}
	manager.icon = icon
	if manager.host != nil {
		manager.host.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) refreshMenu() {
	if manager.host != nil {
		manager.host.SetSystemTrayMenu(manager.menu)
	}
}
