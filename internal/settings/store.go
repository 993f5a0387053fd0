package settings

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Store holds the current value of every known option
type Store struct {
	options map[string]Option
	values  map[string]Value
	mu      sync.RWMutex
	logger  *zap.Logger
}

// NewStore creates a store for the given options
func NewStore(options []Option, logger *zap.Logger) *Store {
	byKey := make(map[string]Option, len(options))
	for _, opt := range options {
		byKey[opt.Key] = opt
	}

	return &Store{
		options: byKey,
		values:  make(map[string]Value),
		logger:  logger,
	}
}

// Get returns the option's value, falling back to the option default and
// then to the global default table.
func (s *Store) Get(opt Option) Value {
	s.mu.RLock()
	v, ok := s.values[opt.Key]
	s.mu.RUnlock()
	if ok {
		return v
	}
	return defaultFor(opt)
}

// Bool returns a toggle option's value
func (s *Store) Bool(opt Option) bool {
	if t, ok := s.Get(opt).(Toggle); ok {
		return bool(t)
	}
	return false
}

// String returns the string form of an option's value
func (s *Store) String(opt Option) string {
	return s.Get(opt).String()
}

// Set stores a value. Invalid writes are logged and dropped.
func (s *Store) Set(opt Option, v Value) {
	if err := s.set(opt, v); err != nil {
		s.logger.Error("Failed to update setting",
			zap.String("key", opt.Key),
			zap.Error(err))
	}
}

func (s *Store) set(opt Option, v Value) error {
	known, ok := s.options[opt.Key]
	if !ok {
		return fmt.Errorf("unknown option %q", opt.Key)
	}
	if v == nil {
		return fmt.Errorf("nil value")
	}
	if v.Kind() != known.Kind {
		return fmt.Errorf("expected %s value, got %s", known.Kind, v.Kind())
	}

	s.mu.Lock()
	s.values[opt.Key] = v
	s.mu.Unlock()
	return nil
}

// Option returns the registered option for key
func (s *Store) Option(key string) (Option, bool) {
	opt, ok := s.options[key]
	return opt, ok
}

// LoadFrom replaces the current values with the known keys of a persisted
// mapping. Unknown keys are ignored and ill-typed entries keep their default.
// A mapping that cannot be merged leaves the store at defaults.
func (s *Store) LoadFrom(data map[string]any) {
	loaded := make(map[string]Value, len(data))

	func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Warn("Failed to merge persisted settings, using defaults",
					zap.Any("panic", r))
				loaded = map[string]Value{}
			}
		}()

		for key, raw := range data {
			opt, ok := s.options[key]
			if !ok {
				s.logger.Debug("Ignoring unknown setting", zap.String("key", key))
				continue
			}
			v, err := Decode(opt.Kind, raw)
			if err != nil {
				s.logger.Warn("Ignoring invalid setting value",
					zap.String("key", key),
					zap.Error(err))
				continue
			}
			loaded[key] = v
		}
	}()

	s.mu.Lock()
	s.values = loaded
	s.mu.Unlock()
}

// ToPersistedMapping returns the effective value of every known option in
// persisted form.
func (s *Store) ToPersistedMapping() map[string]any {
	out := make(map[string]any, len(s.options))
	for key, opt := range s.options {
		out[key] = Encode(s.Get(opt))
	}
	return out
}

func defaultFor(opt Option) Value {
	if opt.Default != nil {
		return opt.Default
	}
	if v, ok := Defaults[opt.Key]; ok {
		return v
	}
	return zeroValue(opt.Kind)
}

func zeroValue(kind Kind) Value {
	if kind == KindToggle {
		return Toggle(false)
	}
	return fromString(kind, "")
}
