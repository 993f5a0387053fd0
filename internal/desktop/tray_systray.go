//go:build windows || darwin || linux

package desktop

import (
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"fyne.io/systray"
	"github.com/username/vault-tray/internal/host"
	"go.uber.org/zap"
)

// systray can only quit once per process, so a single session is started on
// first use and trays are handles onto it.
const trayReadyTimeout = 5 * time.Second

var blankIcon, _ = base64.StdEncoding.DecodeString(
	"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII=")

// SystrayFactory creates tray icons on the system tray
type SystrayFactory struct {
	started bool
	closed  bool
	ready   chan struct{}
	end     func()
	current *systrayTray
	mu      sync.Mutex
	logger  *zap.Logger
}

// NewSystrayFactory creates a tray factory
func NewSystrayFactory(logger *zap.Logger) *SystrayFactory {
	return &SystrayFactory{
		ready:  make(chan struct{}),
		logger: logger,
	}
}

// NewTray shows icon in the system tray, replacing any live tray
func (f *SystrayFactory) NewTray(icon []byte) (host.Tray, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, errors.New("system tray already closed")
	}

	if !f.started {
		start, end := systray.RunWithExternalLoop(f.onReady, f.onExit)
		start()
		f.end = end
		f.started = true
	}

	select {
	case <-f.ready:
	case <-time.After(trayReadyTimeout):
		return nil, errors.New("timed out waiting for system tray")
	}

	if f.current != nil {
		f.current.release()
	}

	systray.SetIcon(icon)
	t := &systrayTray{factory: f, quit: make(chan struct{}), once: &sync.Once{}}
	f.current = t
	return t, nil
}

// Close ends the tray session
func (f *SystrayFactory) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.current != nil {
		f.current.release()
		f.current = nil
	}
	if f.started && !f.closed {
		f.end()
	}
	f.closed = true
}

func (f *SystrayFactory) onReady() {
	f.logger.Debug("System tray ready")
	close(f.ready)
}

func (f *SystrayFactory) onExit() {
	f.logger.Info("System tray exited")
}

type systrayTray struct {
	factory *SystrayFactory
	quit    chan struct{}
	once    *sync.Once
}

func (t *systrayTray) SetMenu(items []host.MenuItem) error {
	t.stopListeners()
	systray.ResetMenu()

	t.quit = make(chan struct{})
	t.once = &sync.Once{}
	quit := t.quit

	for _, item := range items {
		if item.Separator {
			systray.AddSeparator()
			continue
		}

		mi := systray.AddMenuItem(item.Label, item.Label)
		onClick := item.OnClick
		go func() {
			for {
				select {
				case <-mi.ClickedCh:
					if onClick != nil {
						onClick()
					}
				case <-quit:
					return
				}
			}
		}()
	}

	return nil
}

func (t *systrayTray) SetTooltip(text string) {
	systray.SetTooltip(text)
}

func (t *systrayTray) OnClick(fn func()) {
	systray.SetOnTapped(fn)
}

func (t *systrayTray) Destroy() {
	f := t.factory
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.current == t {
		t.release()
		f.current = nil
	}
}

// release clears the menu and blanks the icon; f.mu must be held
func (t *systrayTray) release() {
	t.stopListeners()
	systray.ResetMenu()
	systray.SetOnTapped(nil)
	systray.SetTooltip("")
	systray.SetIcon(blankIcon)
}

func (t *systrayTray) stopListeners() {
	t.once.Do(func() { close(t.quit) })
}
