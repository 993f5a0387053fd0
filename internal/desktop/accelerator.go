package desktop

import (
	"fmt"
	"runtime"
	"strings"
)

// Accelerator is a parsed shortcut such as "CmdOrCtrl+Shift+Q"
type Accelerator struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Super bool
	Key   string
}

var keyAliases = map[string]string{
	"return":   "Enter",
	"enter":    "Enter",
	"esc":      "Escape",
	"escape":   "Escape",
	"space":    "Space",
	"tab":      "Tab",
	"delete":   "Delete",
	"del":      "Delete",
	"up":       "Up",
	"down":     "Down",
	"left":     "Left",
	"right":    "Right",
	"home":     "Home",
	"end":      "End",
	"pageup":   "PageUp",
	"pagedown": "PageDown",
}

// ParseAccelerator parses an Electron style accelerator. CmdOrCtrl maps to
// Command on macOS and Control elsewhere.
func ParseAccelerator(s string) (Accelerator, error) {
	return parseAccelerator(s, runtime.GOOS)
}

func parseAccelerator(s, goos string) (Accelerator, error) {
	var a Accelerator

	parts := strings.Split(strings.TrimSpace(s), "+")
	if len(parts) == 0 || strings.TrimSpace(s) == "" {
		return a, fmt.Errorf("empty accelerator")
	}

	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return a, fmt.Errorf("invalid accelerator %q", s)
		}
		last := i == len(parts)-1

		switch strings.ToLower(part) {
		case "cmdorctrl", "commandorcontrol":
			if goos == "darwin" {
				a.Super = true
			} else {
				a.Ctrl = true
			}
			continue
		case "ctrl", "control":
			a.Ctrl = true
			continue
		case "alt", "option":
			a.Alt = true
			continue
		case "shift":
			a.Shift = true
			continue
		case "cmd", "command", "meta", "super", "win":
			a.Super = true
			continue
		}

		if !last {
			return a, fmt.Errorf("invalid modifier %q in accelerator %q", part, s)
		}
		key, ok := normalizeKey(part)
		if !ok {
			return a, fmt.Errorf("unsupported key %q in accelerator %q", part, s)
		}
		a.Key = key
	}

	if a.Key == "" {
		return a, fmt.Errorf("accelerator %q has no key", s)
	}
	return a, nil
}

func normalizeKey(k string) (string, bool) {
	if alias, ok := keyAliases[strings.ToLower(k)]; ok {
		return alias, true
	}

	if len(k) == 1 {
		c := strings.ToUpper(k)[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return string(c), true
		}
		return "", false
	}

	upper := strings.ToUpper(k)
	if strings.HasPrefix(upper, "F") {
		var n int
		if _, err := fmt.Sscanf(upper, "F%d", &n); err == nil && n >= 1 && n <= 12 && fmt.Sprintf("F%d", n) == upper {
			return upper, true
		}
	}
	return "", false
}

// String renders the accelerator in a canonical form
func (a Accelerator) String() string {
	var parts []string
	if a.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if a.Alt {
		parts = append(parts, "Alt")
	}
	if a.Shift {
		parts = append(parts, "Shift")
	}
	if a.Super {
		parts = append(parts, "Super")
	}
	return strings.Join(append(parts, a.Key), "+")
}
