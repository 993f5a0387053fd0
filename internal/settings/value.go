package settings

import (
	"fmt"
)

// Kind identifies the type of value an option holds
type Kind int

const (
	KindText Kind = iota + 1
	KindHotkey
	KindMoment
	KindImage
	KindToggle
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindHotkey:
		return "hotkey"
	case KindMoment:
		return "moment"
	case KindImage:
		return "image"
	case KindToggle:
		return "toggle"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a setting value. The set of implementations is closed:
// Text, Accelerator, DatePattern, Image and Toggle.
type Value interface {
	Kind() Kind
	String() string
	sealed()
}

// Text is free-form text
type Text string

// Accelerator is a global key combination, e.g. "CmdOrCtrl+Shift+Q"
type Accelerator string

// DatePattern is a moment-style date format, e.g. "YYYY-MM-DD"
type DatePattern string

// Image is a base64 data URL
type Image string

// Toggle is an on/off switch
type Toggle bool

func (Text) Kind() Kind        { return KindText }
func (Accelerator) Kind() Kind { return KindHotkey }
func (DatePattern) Kind() Kind { return KindMoment }
func (Image) Kind() Kind       { return KindImage }
func (Toggle) Kind() Kind      { return KindToggle }

func (v Text) String() string        { return string(v) }
func (v Accelerator) String() string { return string(v) }
func (v DatePattern) String() string { return string(v) }
func (v Image) String() string       { return string(v) }
func (v Toggle) String() string {
	if v {
		return "true"
	}
	return "false"
}

func (Text) sealed()        {}
func (Accelerator) sealed() {}
func (DatePattern) sealed() {}
func (Image) sealed()       {}
func (Toggle) sealed()      {}

// Encode converts a value to its persisted form: bool for toggles,
// string for everything else.
func Encode(v Value) any {
	switch tv := v.(type) {
	case Toggle:
		return bool(tv)
	case Text:
		return string(tv)
	case Accelerator:
		return string(tv)
	case DatePattern:
		return string(tv)
	case Image:
		return string(tv)
	default:
		panic(fmt.Sprintf("settings: unhandled value type %T", v))
	}
}

// Decode converts a persisted value into a value of the given kind
func Decode(kind Kind, raw any) (Value, error) {
	switch kind {
	case KindToggle:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool for %s, got %T", kind, raw)
		}
		return Toggle(b), nil
	case KindText, KindHotkey, KindMoment, KindImage:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected string for %s, got %T", kind, raw)
		}
		return fromString(kind, s), nil
	default:
		return nil, fmt.Errorf("unknown kind %s", kind)
	}
}

// Parse converts user input (for example a CLI argument) into a value of
// the given kind.
func Parse(kind Kind, input string) (Value, error) {
	switch kind {
	case KindToggle:
		switch input {
		case "true", "on", "yes", "1":
			return Toggle(true), nil
		case "false", "off", "no", "0":
			return Toggle(false), nil
		}
		return nil, fmt.Errorf("invalid toggle value %q", input)
	case KindText, KindHotkey, KindMoment, KindImage:
		return fromString(kind, input), nil
	default:
		return nil, fmt.Errorf("unknown kind %s", kind)
	}
}

func fromString(kind Kind, s string) Value {
	switch kind {
	case KindHotkey:
		return Accelerator(s)
	case KindMoment:
		return DatePattern(s)
	case KindImage:
		return Image(s)
	default:
		return Text(s)
	}
}
