//go:build darwin

package desktop

import "golang.design/x/hotkey"

// Carbon kVK codes
var platformKeys = map[string]hotkey.Key{
	"Home":     hotkey.Key(0x73),
	"End":      hotkey.Key(0x77),
	"PageUp":   hotkey.Key(0x74),
	"PageDown": hotkey.Key(0x79),
}

func nativeModifiers(a Accelerator) []hotkey.Modifier {
	var mods []hotkey.Modifier
	if a.Ctrl {
		mods = append(mods, hotkey.ModCtrl)
	}
	if a.Alt {
		mods = append(mods, hotkey.ModOption)
	}
	if a.Shift {
		mods = append(mods, hotkey.ModShift)
	}
	if a.Super {
		mods = append(mods, hotkey.ModCmd)
	}
	return mods
}
