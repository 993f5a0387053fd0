package desktop

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/username/vault-tray/internal/host"
	"github.com/wailsapp/wails/v2/pkg/runtime"
	"go.uber.org/zap"
)

// EventOpenNote is emitted to the frontend with the relative note path
const EventOpenNote = "note:open"

// MainWindow adapts the wails application window. Calls made before the
// window has started only update the tracked state.
type MainWindow struct {
	id        string
	ctx       context.Context
	visible   bool
	focused   bool
	minimized bool
	closed    bool
	onClosed  []func()
	mu        sync.Mutex
	logger    *zap.Logger
}

// NewMainWindow creates the main window adapter
func NewMainWindow(startHidden bool, logger *zap.Logger) *MainWindow {
	return &MainWindow{
		id:      uuid.NewString(),
		visible: !startHidden,
		logger:  logger,
	}
}

// Attach binds the window to the wails runtime context from OnStartup
func (w *MainWindow) Attach(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ctx = ctx
}

func (w *MainWindow) runtimeCtx() context.Context {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ctx
}

func (w *MainWindow) ID() string { return w.id }

func (w *MainWindow) Show() {
	if ctx := w.runtimeCtx(); ctx != nil {
		runtime.WindowUnminimise(ctx)
		runtime.WindowShow(ctx)
	}
	w.mu.Lock()
	w.visible = true
	w.minimized = false
	w.mu.Unlock()
}

func (w *MainWindow) Hide() {
	if ctx := w.runtimeCtx(); ctx != nil {
		runtime.WindowHide(ctx)
	}
	w.mu.Lock()
	w.visible = false
	w.focused = false
	w.mu.Unlock()
}

func (w *MainWindow) Minimize() {
	if ctx := w.runtimeCtx(); ctx != nil {
		runtime.WindowMinimise(ctx)
	}
	w.mu.Lock()
	w.minimized = true
	w.focused = false
	w.mu.Unlock()
}

func (w *MainWindow) Focus() {
	if ctx := w.runtimeCtx(); ctx != nil {
		runtime.WindowShow(ctx)
	}
	w.SetFocused(true)
}

// Blur only drops the tracked focus; wails has no API to give focus away
func (w *MainWindow) Blur() {
	w.SetFocused(false)
}

// SetFocused records focus changes reported by the frontend
func (w *MainWindow) SetFocused(focused bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.focused = focused
}

func (w *MainWindow) IsFocused() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.focused
}

func (w *MainWindow) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible && !w.minimized
}

func (w *MainWindow) IsMinimized() bool {
	if ctx := w.runtimeCtx(); ctx != nil {
		return runtime.WindowIsMinimised(ctx)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.minimized
}

// SetSkipTaskbar is fixed at window creation in wails
func (w *MainWindow) SetSkipTaskbar(skip bool) {
	w.logger.Debug("Taskbar visibility of the main window cannot change at runtime",
		zap.Bool("skip", skip))
}

func (w *MainWindow) Destroy() {
	if ctx := w.runtimeCtx(); ctx != nil {
		runtime.Quit(ctx)
		return
	}
	w.MarkClosed()
}

func (w *MainWindow) OnClosed(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onClosed = append(w.onClosed, fn)
}

// MarkClosed runs the OnClosed listeners once, from OnShutdown
func (w *MainWindow) MarkClosed() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.visible = false
	listeners := w.onClosed
	w.onClosed = nil
	w.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// OpenNote asks the frontend to show a note
func (w *MainWindow) OpenNote(relPath string) error {
	ctx := w.runtimeCtx()
	if ctx == nil {
		return host.ErrNotSupported
	}
	runtime.EventsEmit(ctx, EventOpenNote, relPath)
	return nil
}

// Windows is the window source of a single-window wails application
type Windows struct {
	main    *MainWindow
	handler host.CloseHandler
	gen     int
	mu      sync.Mutex
}

// NewWindows creates the window source
func NewWindows(main *MainWindow) *Windows {
	return &Windows{main: main}
}

func (s *Windows) Main() host.Window { return s.main }

// OnWindowCreated never fires; wails v2 applications have one window
func (s *Windows) OnWindowCreated(fn func(host.Window)) func() {
	return func() {}
}

func (s *Windows) SetCloseHandler(fn host.CloseHandler) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = fn
	s.gen++
	gen := s.gen

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen == gen {
			s.handler = nil
		}
	}
}

// BeforeClose is the wails OnBeforeClose callback; true keeps the window
func (s *Windows) BeforeClose(ctx context.Context) bool {
	s.mu.Lock()
	handler := s.handler
	s.mu.Unlock()

	if handler == nil {
		return false
	}
	return handler(s.main)
}
