package hotkeys

import (
	"errors"
	"sync"

	"github.com/username/vault-tray/internal/host"
	"github.com/username/vault-tray/internal/settings"
	"go.uber.org/zap"
)

// Slot identifies one bindable action
type Slot int

const (
	SlotToggleVisibility Slot = iota
	SlotQuickNote
)

func (s Slot) String() string {
	switch s {
	case SlotToggleVisibility:
		return "toggle-visibility"
	case SlotQuickNote:
		return "quick-note"
	default:
		return "unknown"
	}
}

// Settings is the read side of the settings store
type Settings interface {
	String(opt settings.Option) string
}

// Actions are the operations bound to hotkeys
type Actions interface {
	ToggleVisibility()
	QuickNote()
}

type binding struct {
	slot   Slot
	option settings.Option
	action func()
}

// Controller keeps at most one OS registration per slot
type Controller struct {
	shortcuts host.Shortcuts
	settings  Settings
	bindings  []binding
	bound     map[Slot]string
	mu        sync.Mutex
	logger    *zap.Logger
}

// NewController creates a hotkey controller with nothing registered
func NewController(shortcuts host.Shortcuts, s Settings, actions Actions, logger *zap.Logger) *Controller {
	return &Controller{
		shortcuts: shortcuts,
		settings:  s,
		bindings: []binding{
			{slot: SlotToggleVisibility, option: settings.ToggleWindowFocusHotkey, action: actions.ToggleVisibility},
			{slot: SlotQuickNote, option: settings.QuickNoteHotkey, action: actions.QuickNote},
		},
		bound:  make(map[Slot]string),
		logger: logger,
	}
}

// RegisterAll registers every slot with a configured accelerator. A slot
// that is already bound is released first, so repeated calls never stack.
// A failure on one slot does not stop the other.
func (c *Controller) RegisterAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Info("Registering hotkeys")

	for _, b := range c.bindings {
		if prev, ok := c.bound[b.slot]; ok {
			c.unregisterLocked(b.slot, prev)
		}
	}

	taken := make(map[string]Slot)
	for _, b := range c.bindings {
		accel := c.settings.String(b.option)
		if accel == "" {
			continue
		}
		if other, ok := taken[accel]; ok {
			c.logger.Warn("Hotkey already used by another action",
				zap.String("accelerator", accel),
				zap.Stringer("slot", b.slot),
				zap.Stringer("bound_to", other))
			continue
		}

		if err := c.shortcuts.Register(accel, b.action); err != nil {
			c.logger.Warn("Failed to register hotkey",
				zap.String("accelerator", accel),
				zap.Stringer("slot", b.slot),
				zap.Error(err))
			continue
		}
		c.bound[b.slot] = accel
		taken[accel] = b.slot
	}
}

// UnregisterAll releases every registered slot
func (c *Controller) UnregisterAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Info("Unregistering hotkeys")
	for _, b := range c.bindings {
		if accel, ok := c.bound[b.slot]; ok {
			c.unregisterLocked(b.slot, accel)
		}
	}
}

// Bound returns the accelerator currently registered for each slot
func (c *Controller) Bound() map[Slot]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[Slot]string, len(c.bound))
	for k, v := range c.bound {
		out[k] = v
	}
	return out
}

func (c *Controller) unregisterLocked(slot Slot, accel string) {
	delete(c.bound, slot)
	if err := c.shortcuts.Unregister(accel); err != nil {
		if errors.Is(err, host.ErrNotRegistered) {
			c.logger.Debug("Hotkey was not registered",
				zap.String("accelerator", accel),
				zap.Stringer("slot", slot))
			return
		}
		c.logger.Warn("Failed to unregister hotkey",
			zap.String("accelerator", accel),
			zap.Stringer("slot", slot),
			zap.Error(err))
	}
}
