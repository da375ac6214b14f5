package platform

import (
	"errors"
	"fmt"
	"io"

	"fyne.io/fyne/v2"
	"github.com/gen2brain/beeep"

	"zenpomodoro/internal/core/model"
)

// CompletionMessage returns the notification text for a finished session.
func CompletionMessage(mode model.TimerMode) string {
	if mode == model.ModeFocus {
		return "Focus session complete. Time for a break."
	}
	return fmt.Sprintf("%s is over. Ready to focus?", mode.Label())
}

// BellAlerter rings the terminal bell.
type BellAlerter struct {
	Writer io.Writer
}

// Alert implements timekeeper.Alerter.
func (alerter BellAlerter) Alert(model.TimerMode) error {
	if alerter.Writer == nil {
		return errors.New("bell: no writer")
	}
	_, err := io.WriteString(alerter.Writer, "\a")
	return err
}

// DesktopAlerter posts a system notification and plays a short beep.
type DesktopAlerter struct {
	app  fyne.App
	beep func() error
}

// NewDesktopAlerter returns an alerter bound to app.
func NewDesktopAlerter(app fyne.App) *DesktopAlerter {
	return &DesktopAlerter{
		app: app,
		beep: func() error {
			return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
		},
	}
}

// Alert implements timekeeper.Alerter. The notification is always sent;
// a beep failure is reported to the caller.
func (alerter *DesktopAlerter) Alert(mode model.TimerMode) error {
	if alerter.app != nil {
		alerter.app.SendNotification(fyne.NewNotification("ZenPomodoro", CompletionMessage(mode)))
	}
	if alerter.beep == nil {
		return nil
	}
	if err := alerter.beep(); err != nil {
		return fmt.Errorf("beep: %w", err)
	}
	return nil
}
