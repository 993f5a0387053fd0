package settings

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"go.uber.org/zap"
)

// Persister saves the flat settings mapping
type Persister interface {
	Save(data map[string]any) error
}

// Widget is the editor control a settings surface should render
type Widget string

const (
	WidgetToggle      Widget = "toggle"
	WidgetText        Widget = "text"
	WidgetAccelerator Widget = "accelerator"
	WidgetDatePattern Widget = "date-pattern"
	WidgetImage       Widget = "image-upload"
)

// Descriptor is a declarative description of one option for a settings surface
type Descriptor struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Section     string `json:"section"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
	Widget      Widget `json:"widget"`
	Value       any    `json:"value"`
	Placeholder string `json:"placeholder,omitempty"`
	Preview     string `json:"preview,omitempty"`
}

// Editor drives a setting edit: before-reactions, write, persist,
// after-reactions. Edits are serialized.
type Editor struct {
	store     *Store
	reactions *Reactions
	persister Persister
	previews  map[string]func(string) string
	mu        sync.Mutex
	logger    *zap.Logger
}

// NewEditor creates a settings editor
func NewEditor(store *Store, reactions *Reactions, persister Persister, logger *zap.Logger) *Editor {
	return &Editor{
		store:     store,
		reactions: reactions,
		persister: persister,
		previews:  make(map[string]func(string) string),
		logger:    logger,
	}
}

// SetPreview registers a preview renderer for key
func (e *Editor) SetPreview(key string, fn func(string) string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.previews[key] = fn
}

// Apply edits a single option
func (e *Editor) Apply(key string, v Value) error {
	opt, ok := e.store.Option(key)
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.apply(opt, v, true)
	return nil
}

// ApplyInput parses user input for key and applies it
func (e *Editor) ApplyInput(key, input string) error {
	opt, ok := e.store.Option(key)
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	v, err := Parse(opt.Kind, input)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return e.Apply(key, v)
}

// Sync applies every known key of an already-persisted mapping whose value
// differs from the store. Reactions fire as for Apply; nothing is re-saved.
func (e *Editor) Sync(data map[string]any) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	changed := 0
	for _, opt := range orderedOptions(e.store) {
		raw, ok := data[opt.Key]
		if !ok {
			continue
		}
		v, err := Decode(opt.Kind, raw)
		if err != nil {
			e.logger.Warn("Ignoring invalid setting value",
				zap.String("key", opt.Key),
				zap.Error(err))
			continue
		}
		if v == e.store.Get(opt) {
			continue
		}
		e.apply(opt, v, false)
		changed++
	}
	return changed
}

func (e *Editor) apply(opt Option, v Value, persist bool) {
	change := Change{Key: opt.Key, Old: e.store.Get(opt), New: v}

	e.reactions.fireBefore(change)
	e.store.Set(opt, v)

	if persist && e.persister != nil {
		if err := e.persister.Save(e.store.ToPersistedMapping()); err != nil {
			e.logger.Error("Failed to save settings",
				zap.String("key", opt.Key),
				zap.Error(err))
		}
	}

	change.New = e.store.Get(opt)
	e.reactions.fireAfter(change)

	e.logger.Debug("Setting changed",
		zap.String("key", opt.Key),
		zap.Stringer("old", change.Old),
		zap.Stringer("new", change.New))
}

// Descriptors returns declarative descriptors for every visible option
func (e *Editor) Descriptors() []Descriptor {
	e.mu.Lock()
	previews := make(map[string]func(string) string, len(e.previews))
	for k, fn := range e.previews {
		previews[k] = fn
	}
	e.mu.Unlock()

	var out []Descriptor
	for _, opt := range orderedOptions(e.store) {
		if opt.Hidden {
			continue
		}
		v := e.store.Get(opt)
		d := Descriptor{
			Key:         opt.Key,
			Label:       KeyToLabel(opt.Key),
			Section:     opt.Section,
			Description: opt.Description,
			Kind:        opt.Kind.String(),
			Widget:      widgetFor(opt.Kind),
			Value:       Encode(v),
			Placeholder: opt.Placeholder,
		}
		if d.Placeholder == "" && opt.Default != nil && opt.Kind != KindImage && opt.Kind != KindToggle {
			d.Placeholder = "Example: " + opt.Default.String()
		}
		if fn, ok := previews[opt.Key]; ok {
			d.Preview = fn(v.String())
		} else if opt.Kind == KindImage {
			d.Preview = v.String()
		}
		out = append(out, d)
	}
	return out
}

func widgetFor(kind Kind) Widget {
	switch kind {
	case KindToggle:
		return WidgetToggle
	case KindHotkey:
		return WidgetAccelerator
	case KindMoment:
		return WidgetDatePattern
	case KindImage:
		return WidgetImage
	case KindText:
		return WidgetText
	default:
		panic(fmt.Sprintf("settings: unhandled kind %s", kind))
	}
}

// orderedOptions returns the store's options in catalog order, followed by
// any non-catalog options.
func orderedOptions(s *Store) []Option {
	out := make([]Option, 0, len(s.options))
	seen := make(map[string]bool, len(s.options))
	for _, opt := range Catalog() {
		if registered, ok := s.options[opt.Key]; ok {
			out = append(out, registered)
			seen[opt.Key] = true
		}
	}
	for key, opt := range s.options {
		if !seen[key] {
			out = append(out, opt)
		}
	}
	return out
}

// KeyToLabel turns a camelCase key into a sentence-case label,
// e.g. "launchOnStartup" -> "Launch on startup".
func KeyToLabel(key string) string {
	if key == "" {
		return ""
	}

	var words []string
	var current []rune
	for _, r := range key {
		if unicode.IsUpper(r) && len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
		current = append(current, unicode.ToLower(r))
	}
	words = append(words, string(current))

	label := strings.Join(words, " ")
	runes := []rune(label)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
