//go:build windows || darwin || (linux && cgo)

package desktop

import (
	"fmt"
	"sync"

	"github.com/username/vault-tray/internal/host"
	"go.uber.org/zap"
	"golang.design/x/hotkey"
)

var commonKeys = map[string]hotkey.Key{
	"A": hotkey.KeyA, "B": hotkey.KeyB, "C": hotkey.KeyC, "D": hotkey.KeyD,
	"E": hotkey.KeyE, "F": hotkey.KeyF, "G": hotkey.KeyG, "H": hotkey.KeyH,
	"I": hotkey.KeyI, "J": hotkey.KeyJ, "K": hotkey.KeyK, "L": hotkey.KeyL,
	"M": hotkey.KeyM, "N": hotkey.KeyN, "O": hotkey.KeyO, "P": hotkey.KeyP,
	"Q": hotkey.KeyQ, "R": hotkey.KeyR, "S": hotkey.KeyS, "T": hotkey.KeyT,
	"U": hotkey.KeyU, "V": hotkey.KeyV, "W": hotkey.KeyW, "X": hotkey.KeyX,
	"Y": hotkey.KeyY, "Z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"F1": hotkey.KeyF1, "F2": hotkey.KeyF2, "F3": hotkey.KeyF3, "F4": hotkey.KeyF4,
	"F5": hotkey.KeyF5, "F6": hotkey.KeyF6, "F7": hotkey.KeyF7, "F8": hotkey.KeyF8,
	"F9": hotkey.KeyF9, "F10": hotkey.KeyF10, "F11": hotkey.KeyF11, "F12": hotkey.KeyF12,
	"Space":  hotkey.KeySpace,
	"Enter":  hotkey.KeyReturn,
	"Escape": hotkey.KeyEscape,
	"Delete": hotkey.KeyDelete,
	"Tab":    hotkey.KeyTab,
	"Left":   hotkey.KeyLeft,
	"Right":  hotkey.KeyRight,
	"Up":     hotkey.KeyUp,
	"Down":   hotkey.KeyDown,
}

type binding struct {
	hk   *hotkey.Hotkey
	done chan struct{}
}

// Shortcuts registers system-wide accelerators
type Shortcuts struct {
	bound  map[string]*binding
	mu     sync.Mutex
	logger *zap.Logger
}

// NewShortcuts creates a global shortcut registry
func NewShortcuts(logger *zap.Logger) *Shortcuts {
	return &Shortcuts{
		bound:  make(map[string]*binding),
		logger: logger,
	}
}

// Register binds accelerator to fn
func (s *Shortcuts) Register(accelerator string, fn func()) error {
	a, err := ParseAccelerator(accelerator)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := a.String()
	if _, ok := s.bound[id]; ok {
		return fmt.Errorf("accelerator %q is already registered", accelerator)
	}

	key, ok := nativeKey(a.Key)
	if !ok {
		return fmt.Errorf("key %q: %w", a.Key, host.ErrNotSupported)
	}

	hk := hotkey.New(nativeModifiers(a), key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("failed to register %q: %w", accelerator, err)
	}

	b := &binding{hk: hk, done: make(chan struct{})}
	s.bound[id] = b
	go s.listen(id, b, fn)

	s.logger.Debug("Registered global shortcut", zap.String("accelerator", id))
	return nil
}

func (s *Shortcuts) listen(id string, b *binding, fn func()) {
	keydown := b.hk.Keydown()
	for {
		select {
		case <-b.done:
			return
		case _, ok := <-keydown:
			if !ok {
				return
			}
			s.logger.Debug("Global shortcut pressed", zap.String("accelerator", id))
			fn()
		}
	}
}

// Unregister releases accelerator
func (s *Shortcuts) Unregister(accelerator string) error {
	a, err := ParseAccelerator(accelerator)
	if err != nil {
		return host.ErrNotRegistered
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := a.String()
	b, ok := s.bound[id]
	if !ok {
		return host.ErrNotRegistered
	}
	delete(s.bound, id)
	close(b.done)

	if err := b.hk.Unregister(); err != nil {
		return fmt.Errorf("failed to unregister %q: %w", accelerator, err)
	}
	return nil
}

func nativeKey(name string) (hotkey.Key, bool) {
	if k, ok := commonKeys[name]; ok {
		return k, true
	}
	k, ok := platformKeys[name]
	return k, ok
}
