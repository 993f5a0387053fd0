package windows

import (
	"sync"

	"github.com/username/vault-tray/internal/host"
	"go.uber.org/zap"
)

// GuardState is the close interception state
type GuardState int

const (
	// Passive lets close requests behave natively
	Passive GuardState = iota
	// Intercepting turns close requests into hides
	Intercepting
)

func (s GuardState) String() string {
	if s == Intercepting {
		return "intercepting"
	}
	return "passive"
}

// CloseGuard owns the single close hook installed into the window source
type CloseGuard struct {
	source host.WindowSource
	state  GuardState
	remove func()
	mu     sync.Mutex
	logger *zap.Logger
}

// NewCloseGuard creates a passive close guard
func NewCloseGuard(source host.WindowSource, logger *zap.Logger) *CloseGuard {
	return &CloseGuard{
		source: source,
		logger: logger,
	}
}

// State returns the current state
func (g *CloseGuard) State() GuardState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Intercept enters the intercepting state
func (g *CloseGuard) Intercept() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == Intercepting {
		return
	}
	g.remove = g.source.SetCloseHandler(g.beforeClose)
	g.state = Intercepting
	g.logger.Info("Close interception enabled")
}

// Release returns to the passive state
func (g *CloseGuard) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == Passive {
		return
	}
	if g.remove != nil {
		g.remove()
		g.remove = nil
	}
	g.state = Passive
	g.logger.Info("Close interception disabled")
}

// Sync intercepts when runInBackground is set and releases otherwise
func (g *CloseGuard) Sync(runInBackground bool) {
	if runInBackground {
		g.Intercept()
	} else {
		g.Release()
	}
}

// BeforeClose is the close hook. While intercepting it hides the window and
// prevents the close.
func (g *CloseGuard) BeforeClose(w host.Window) bool {
	return g.beforeClose(w)
}

func (g *CloseGuard) beforeClose(w host.Window) bool {
	if g.State() != Intercepting {
		return false
	}
	g.logger.Info("Intercepting window close", zap.String("window", w.ID()))
	w.Hide()
	return true
}
