package main

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"

	"zenpomodoro/internal/core/controller"
	"zenpomodoro/internal/core/timekeeper"
	"zenpomodoro/internal/platform"
	"zenpomodoro/internal/storage"
	"zenpomodoro/internal/ui/preferences"
	uitasks "zenpomodoro/internal/ui/tasks"
	"zenpomodoro/internal/ui/timerview"
	"zenpomodoro/internal/ui/tray"
	"zenpomodoro/resources"
)

func runDesktop(cmd *cobra.Command, args []string) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return nil
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, settingsFile := loadSettings()
	ctrl := newController(settings, nil)
	keeper := ctrl.Timer()
	defer keeper.Close()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo(resources.IconActive))
	keeper.SetAlerter(platform.NewDesktopAlerter(fyneApp))

	autostart, err := platform.NewAutostart(appName)
	if err != nil {
		log.Printf("launch at login: %v", err)
	} else if settings.LaunchAtLogin {
		if err := autostart.Apply(true); err != nil {
			log.Printf("launch at login: %v", err)
		}
	}

	window := fyneApp.NewWindow(appName)
	timerView := timerview.New(keeper)

	var trayManager *tray.Manager
	syncSelection := func() {
		title := ""
		if task, ok := ctrl.Tasks().Selected(); ok {
			title = task.Title
		}
		timerView.SetCurrentTask(title)
		if trayManager != nil {
			trayManager.SetTask(title)
		}
	}

	taskPanel := uitasks.New(ctrl, syncSelection)
	taskPanel.SetWindow(window)
	ctrl.SetNotifier(controller.NotifierFunc(func(message string) {
		fyne.Do(func() {
			taskPanel.ShowNotice(message)
		})
	}))

	split := container.NewHSplit(container.NewPadded(timerView.Content()), container.NewPadded(taskPanel.Content()))
	split.Offset = 0.5
	window.SetContent(split)
	window.Resize(fyne.NewSize(860, 540))
	window.SetMaster()

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		if err := keeper.UpdateSettings(updated.TimerSettings()); err != nil {
			log.Printf("apply settings: %v", err)
			return
		}
		if settingsFile != "" {
			if err := storage.SaveSettings(settingsFile, updated); err != nil {
				log.Printf("save settings: %v", err)
			}
		}
		if autostart != nil && updated.LaunchAtLogin != settings.LaunchAtLogin {
			if err := autostart.Apply(updated.LaunchAtLogin); err != nil {
				log.Printf("launch at login: %v", err)
			}
		}
		if updated.AIModel != settings.AIModel {
			ctrl.SetPlanner(newPlanner(updated))
		}
		settings = updated
		timerView.Refresh()
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Icons{
			Active: resources.MustLogo(resources.IconActive),
			Break:  resources.MustLogo(resources.IconBreak),
			Paused: resources.MustLogo(resources.IconPaused),
		}, tray.Callbacks{
			OnShow: func() {
				window.Show()
				window.RequestFocus()
			},
			OnToggle:      func() { keeper.Toggle() },
			OnReset:       keeper.Reset,
			OnSwitchMode:  keeper.SwitchMode,
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		trayManager.SetState(keeper.Snapshot())
		window.SetCloseIntercept(window.Hide)
	} else {
		log.Printf("system tray unsupported on this platform")
	}

	window.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("File",
		fyne.NewMenuItem("Preferences", prefsWindow.Show),
	)))

	events := keeper.Subscribe(16)
	go func() {
		for event := range events {
			event := event
			fyne.Do(func() {
				timerView.Refresh()
				if trayManager != nil {
					trayManager.SetState(event.State)
				}
				if event.Type == timekeeper.EventSessionComplete {
					taskPanel.Refresh()
					syncSelection()
				}
			})
		}
	}()

	syncSelection()
	window.Show()
	fyneApp.Run()
	return nil
}
