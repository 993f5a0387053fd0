package desktop

import (
	"fmt"
	"os"

	"github.com/emersion/go-autostart"
	"go.uber.org/zap"
)

// HiddenFlag is passed to the executable when it is launched hidden at login
const HiddenFlag = "--hidden"

// Autostart registers the application as a login item
type Autostart struct {
	name        string
	displayName string
	args        []string
	logger      *zap.Logger
}

// NewAutostart creates a login item manager. args are passed to the
// executable at login, before HiddenFlag.
func NewAutostart(name, displayName string, args []string, logger *zap.Logger) *Autostart {
	return &Autostart{
		name:        name,
		displayName: displayName,
		args:        args,
		logger:      logger,
	}
}

// SetLoginItem enables or disables launching at login
func (a *Autostart) SetLoginItem(openAtLogin, openAsHidden bool) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to resolve executable: %w", err)
	}

	app := &autostart.App{
		Name:        a.name,
		DisplayName: a.displayName,
		Exec:        a.exec(exe, openAsHidden),
	}

	if !openAtLogin {
		if !app.IsEnabled() {
			return nil
		}
		if err := app.Disable(); err != nil {
			return fmt.Errorf("failed to disable login item: %w", err)
		}
		a.logger.Info("Login item disabled")
		return nil
	}

	// Re-enable so a change of openAsHidden rewrites the entry
	if app.IsEnabled() {
		if err := app.Disable(); err != nil {
			return fmt.Errorf("failed to replace login item: %w", err)
		}
	}
	if err := app.Enable(); err != nil {
		return fmt.Errorf("failed to enable login item: %w", err)
	}

	a.logger.Info("Login item enabled", zap.Bool("hidden", openAsHidden))
	return nil
}

func (a *Autostart) exec(exe string, hidden bool) []string {
	cmd := append([]string{exe}, a.args...)
	if hidden {
		cmd = append(cmd, HiddenFlag)
	}
	return cmd
}
