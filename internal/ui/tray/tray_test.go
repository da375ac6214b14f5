package tray

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenpomodoro/internal/core/model"
)

type fakeHost struct {
	menus []*fyne.Menu
	icons []fyne.Resource
}

func (host *fakeHost) SetSystemTrayMenu(menu *fyne.Menu) { host.menus = append(host.menus, menu) }

func (host *fakeHost) SetSystemTrayIcon(icon fyne.Resource) { host.icons = append(host.icons, icon) }

func testIcons() Icons {
	return Icons{
		Active: fyne.NewStaticResource("active.png", []byte("a")),
		Break:  fyne.NewStaticResource("break.png", []byte("b")),
		Paused: fyne.NewStaticResource("paused.png", []byte("p")),
	}
}

func findItem(menu *fyne.Menu, label string) *fyne.MenuItem {
	for _, item := range menu.Items {
		if item.Label == label {
			return item
		}
	}
	return nil
}

func TestTrayStatusAndToggleLabel(t *testing.T) {
	host := &fakeHost{}
	manager := New(host, testIcons(), Callbacks{})
	require.Len(t, host.menus, 1)

	manager.SetState(model.TimerState{Mode: model.ModeFocus, TimeLeft: 1453 * time.Second, Duration: 25 * time.Minute, Active: true})
	assert.Equal(t, "Focus · 24:13", manager.StatusLabel())
	assert.Equal(t, "Pause", manager.toggleItem.Label)
	assert.True(t, manager.modeItems[model.ModeFocus].Checked)
	assert.False(t, manager.modeItems[model.ModeShortBreak].Checked)

	manager.SetTask("Write report")
	assert.Equal(t, "Focus · 24:13 · Write report", manager.StatusLabel())

	manager.SetState(model.TimerState{Mode: model.ModeShortBreak, TimeLeft: 5 * time.Minute, Duration: 5 * time.Minute})
	assert.Equal(t, "Short Break · 05:00 (paused) · Write report", manager.StatusLabel())
	assert.Equal(t, "Start", manager.toggleItem.Label)
}

func TestTrayIconFollowsState(t *testing.T) {
	host := &fakeHost{}
	icons := testIcons()
	manager := New(host, icons, Callbacks{})

	manager.SetState(model.TimerState{Mode: model.ModeFocus, Active: true})
	manager.SetState(model.TimerState{Mode: model.ModeFocus, Active: true, TimeLeft: time.Second})
	manager.SetState(model.TimerState{Mode: model.ModeLongBreak, Active: true})
	manager.SetState(model.TimerState{Mode: model.ModeLongBreak})

	assert.Equal(t, []fyne.Resource{icons.Active, icons.Break, icons.Paused}, host.icons)
}

func TestTrayCallbacks(t *testing.T) {
	host := &fakeHost{}
	var toggled, reset, quit, shown, prefs int
	var switched []model.TimerMode
	manager := New(host, testIcons(), Callbacks{
		OnShow:        func() { shown++ },
		OnToggle:      func() { toggled++ },
		OnReset:       func() { reset++ },
		OnSwitchMode:  func(mode model.TimerMode) { switched = append(switched, mode) },
		OnPreferences: func() { prefs++ },
		OnQuit:        func() { quit++ },
	})

	findItem(manager.menu, "Show ZenPomodoro").Action()
	manager.toggleItem.Action()
	findItem(manager.menu, "Reset").Action()
	findItem(manager.menu, "Preferences").Action()
	findItem(manager.menu, "Quit").Action()
	manager.modeItems[model.ModeLongBreak].Action()

	assert.Equal(t, 1, shown)
	assert.Equal(t, 1, toggled)
	assert.Equal(t, 1, reset)
	assert.Equal(t, 1, prefs)
	assert.Equal(t, 1, quit)
	assert.Equal(t, []model.TimerMode{model.ModeLongBreak}, switched)
}

func TestTrayWithoutHost(t *testing.T) {
	manager := New(nil, Icons{}, Callbacks{})
	assert.NotPanics(t, func() {
		manager.SetState(model.TimerState{Mode: model.ModeFocus, Active: true})
		manager.toggleItem.Action()
	})
}
