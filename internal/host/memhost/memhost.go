// Package memhost is an in-memory implementation of the host capabilities.
// It backs headless runs and the tests of the coordination core.
package memhost

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/username/vault-tray/internal/host"
)

// Window is an in-memory window
type Window struct {
	id          string
	visible     bool
	focused     bool
	minimized   bool
	skipTaskbar bool
	destroyed   bool
	onClosed    []func()
	mu          sync.Mutex
}

// NewWindow creates a visible, unfocused window
func NewWindow() *Window {
	return &Window{id: uuid.NewString(), visible: true}
}

func (w *Window) ID() string { return w.id }

func (w *Window) Show() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visible = true
	w.minimized = false
}

func (w *Window) Hide() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visible = false
	w.focused = false
}

func (w *Window) Minimize() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.minimized = true
	w.visible = false
	w.focused = false
}

func (w *Window) Focus() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.focused = true
}

func (w *Window) Blur() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.focused = false
}

func (w *Window) IsFocused() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.focused
}

func (w *Window) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

func (w *Window) IsMinimized() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.minimized
}

func (w *Window) SetSkipTaskbar(skip bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.skipTaskbar = skip
}

// SkipTaskbar reports the last skip-taskbar value
func (w *Window) SkipTaskbar() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.skipTaskbar
}

// Destroy closes the window without consulting the close handler
func (w *Window) Destroy() {
	w.close()
}

// Destroyed reports whether the window has been closed
func (w *Window) Destroyed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.destroyed
}

func (w *Window) OnClosed(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onClosed = append(w.onClosed, fn)
}

func (w *Window) close() {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return
	}
	w.destroyed = true
	w.visible = false
	w.focused = false
	listeners := w.onClosed
	w.onClosed = nil
	w.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// Windows is an in-memory window source
type Windows struct {
	main     *Window
	created  map[int]func(host.Window)
	nextID   int
	onClose  host.CloseHandler
	closeGen int
	mu       sync.Mutex
}

// NewWindows creates a window source with a visible main window
func NewWindows() *Windows {
	return &Windows{
		main:    NewWindow(),
		created: make(map[int]func(host.Window)),
	}
}

func (ws *Windows) Main() host.Window { return ws.main }

// MainWindow returns the concrete main window
func (ws *Windows) MainWindow() *Window { return ws.main }

func (ws *Windows) OnWindowCreated(fn func(host.Window)) func() {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	id := ws.nextID
	ws.nextID++
	ws.created[id] = fn
	return func() {
		ws.mu.Lock()
		defer ws.mu.Unlock()
		delete(ws.created, id)
	}
}

func (ws *Windows) SetCloseHandler(fn host.CloseHandler) func() {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.onClose = fn
	ws.closeGen++
	gen := ws.closeGen
	return func() {
		ws.mu.Lock()
		defer ws.mu.Unlock()
		if ws.closeGen == gen {
			ws.onClose = nil
		}
	}
}

// HasCloseHandler reports whether a close hook is installed
func (ws *Windows) HasCloseHandler() bool {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.onClose != nil
}

// Open creates a child window and announces it to subscribers
func (ws *Windows) Open() *Window {
	w := NewWindow()
	ws.mu.Lock()
	subs := make([]func(host.Window), 0, len(ws.created))
	for i := 0; i < ws.nextID; i++ {
		if fn, ok := ws.created[i]; ok {
			subs = append(subs, fn)
		}
	}
	ws.mu.Unlock()

	for _, fn := range subs {
		fn(w)
	}
	return w
}

// RequestClose simulates the user pressing a window's close button.
// It reports whether the window actually closed.
func (ws *Windows) RequestClose(w *Window) bool {
	ws.mu.Lock()
	handler := ws.onClose
	ws.mu.Unlock()

	if handler != nil && handler(w) {
		return false
	}
	w.close()
	return true
}

// Tray is an in-memory tray icon
type Tray struct {
	factory   *Trays
	Icon      []byte
	Menu      []host.MenuItem
	Tooltip   string
	clickFn   func()
	destroyed bool
}

func (t *Tray) SetMenu(items []host.MenuItem) error {
	if t.factory.FailMenu {
		return fmt.Errorf("menu construction failed")
	}
	t.Menu = items
	return nil
}

func (t *Tray) SetTooltip(text string) { t.Tooltip = text }

func (t *Tray) OnClick(fn func()) { t.clickFn = fn }

// Click simulates a left click on the icon
func (t *Tray) Click() {
	if t.clickFn != nil && !t.destroyed {
		t.clickFn()
	}
}

// ClickItem invokes the menu item with the given label
func (t *Tray) ClickItem(label string) bool {
	for _, item := range t.Menu {
		if item.Label == label && item.OnClick != nil {
			item.OnClick()
			return true
		}
	}
	return false
}

func (t *Tray) Destroy() {
	t.factory.mu.Lock()
	defer t.factory.mu.Unlock()
	if t.destroyed {
		return
	}
	t.destroyed = true
	t.factory.live--
}

// Trays is an in-memory tray factory
type Trays struct {
	FailCreate bool
	FailMenu   bool
	live       int
	created    []*Tray
	mu         sync.Mutex
}

func (f *Trays) NewTray(icon []byte) (host.Tray, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailCreate {
		return nil, fmt.Errorf("tray creation failed")
	}
	t := &Tray{factory: f, Icon: icon}
	f.live++
	f.created = append(f.created, t)
	return t, nil
}

// Live returns the number of trays not yet destroyed
func (f *Trays) Live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.live
}

// Last returns the most recently created tray
func (f *Trays) Last() *Tray {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.created) == 0 {
		return nil
	}
	return f.created[len(f.created)-1]
}

// Shortcuts is an in-memory global shortcut table. Like the OS facility it
// happily stacks callbacks registered for the same accelerator.
type Shortcuts struct {
	Fail  map[string]bool
	bound map[string][]func()
	mu    sync.Mutex
}

// NewShortcuts creates an empty shortcut table
func NewShortcuts() *Shortcuts {
	return &Shortcuts{
		Fail:  make(map[string]bool),
		bound: make(map[string][]func()),
	}
}

func (s *Shortcuts) Register(accelerator string, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail[accelerator] {
		return fmt.Errorf("failed to register %q", accelerator)
	}
	s.bound[accelerator] = append(s.bound[accelerator], fn)
	return nil
}

func (s *Shortcuts) Unregister(accelerator string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bound[accelerator]; !ok {
		return host.ErrNotRegistered
	}
	delete(s.bound, accelerator)
	return nil
}

// Bindings returns how many callbacks are bound to accelerator
func (s *Shortcuts) Bindings(accelerator string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bound[accelerator])
}

// Press fires every callback bound to accelerator
func (s *Shortcuts) Press(accelerator string) {
	s.mu.Lock()
	fns := append([]func(){}, s.bound[accelerator]...)
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Process records relaunch and exit requests
type Process struct {
	FailRelaunch bool
	Relaunched   bool
	ExitCode     int
	Exited       bool
}

func (p *Process) Relaunch() error {
	if p.FailRelaunch {
		return fmt.Errorf("relaunch failed")
	}
	p.Relaunched = true
	return nil
}

func (p *Process) Exit(code int) {
	p.Exited = true
	p.ExitCode = code
}

// LoginItems records the last login item request
type LoginItems struct {
	OpenAtLogin  bool
	OpenAsHidden bool
	Calls        int
}

func (l *LoginItems) SetLoginItem(openAtLogin, openAsHidden bool) error {
	l.OpenAtLogin = openAtLogin
	l.OpenAsHidden = openAsHidden
	l.Calls++
	return nil
}

// Vault records created documents
type Vault struct {
	VaultName string
	Fail      bool
	Created   []string
}

func (v *Vault) Name() string { return v.VaultName }

func (v *Vault) CreateAndOpen(path string) error {
	if v.Fail {
		return fmt.Errorf("cannot create %s", path)
	}
	v.Created = append(v.Created, path)
	return nil
}

// Host is a complete in-memory host
type Host struct {
	Windows    *Windows
	Trays      *Trays
	Shortcuts  *Shortcuts
	Process    *Process
	LoginItems *LoginItems
	Vault      *Vault
}

// New creates an in-memory host for the named vault
func New(vaultName string) *Host {
	return &Host{
		Windows:    NewWindows(),
		Trays:      &Trays{},
		Shortcuts:  NewShortcuts(),
		Process:    &Process{},
		LoginItems: &LoginItems{},
		Vault:      &Vault{VaultName: vaultName},
	}
}

// Capabilities exposes the in-memory host as a host.Host
func (h *Host) Capabilities() host.Host {
	return host.Host{
		Windows:    h.Windows,
		Trays:      h.Trays,
		Shortcuts:  h.Shortcuts,
		Process:    h.Process,
		LoginItems: h.LoginItems,
		Vault:      h.Vault,
	}
}
