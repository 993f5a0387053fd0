// Package host defines the OS capabilities the coordination core calls
// into: windows, tray, global shortcuts, process control, login items and
// the document vault.
package host

import "errors"

// ErrNotSupported is returned by capabilities a platform cannot provide
var ErrNotSupported = errors.New("not supported on this platform")

// ErrNotRegistered is returned when unregistering an accelerator that is not bound
var ErrNotRegistered = errors.New("accelerator not registered")

// Window is one top-level OS window
type Window interface {
	ID() string
	Show()
	Hide()
	Minimize()
	Focus()
	Blur()
	IsFocused() bool
	IsVisible() bool
	IsMinimized() bool
	SetSkipTaskbar(skip bool)
	Destroy()
	// OnClosed registers fn to run once the window has closed
	OnClosed(fn func())
}

// CloseHandler decides whether a close request should be prevented
type CloseHandler func(w Window) (prevent bool)

// WindowSource reports the application's windows
type WindowSource interface {
	Main() Window
	// OnWindowCreated subscribes to new child windows. The returned func unsubscribes.
	OnWindowCreated(fn func(Window)) (unsubscribe func())
	// SetCloseHandler installs the single close hook. The returned func removes it.
	SetCloseHandler(fn CloseHandler) (remove func())
}

// MenuItem is one entry of a tray context menu
type MenuItem struct {
	Label       string
	Accelerator string
	Separator   bool
	OnClick     func()
}

// Tray is a live tray icon
type Tray interface {
	SetMenu(items []MenuItem) error
	SetTooltip(text string)
	OnClick(fn func())
	Destroy()
}

// TrayFactory creates tray icons
type TrayFactory interface {
	NewTray(icon []byte) (Tray, error)
}

// Shortcuts registers global accelerators
type Shortcuts interface {
	Register(accelerator string, fn func()) error
	Unregister(accelerator string) error
}

// Process controls the running application
type Process interface {
	Relaunch() error
	Exit(code int)
}

// LoginItems controls launching at login
type LoginItems interface {
	SetLoginItem(openAtLogin, openAsHidden bool) error
}

// Vault is the document store windows display
type Vault interface {
	Name() string
	// CreateAndOpen creates a markdown document at path (without extension)
	// and opens it.
	CreateAndOpen(path string) error
}

// Host bundles every capability the core needs
type Host struct {
	Windows    WindowSource
	Trays      TrayFactory
	Shortcuts  Shortcuts
	Process    Process
	LoginItems LoginItems
	Vault      Vault
}
