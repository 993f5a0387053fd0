//go:build windows

package desktop

import "golang.design/x/hotkey"

// Virtual-key codes
var platformKeys = map[string]hotkey.Key{
	"Home":     hotkey.Key(0x24),
	"End":      hotkey.Key(0x23),
	"PageUp":   hotkey.Key(0x21),
	"PageDown": hotkey.Key(0x22),
}

func nativeModifiers(a Accelerator) []hotkey.Modifier {
	var mods []hotkey.Modifier
	if a.Ctrl {
		mods = append(mods, hotkey.ModCtrl)
	}
	if a.Alt {
		mods = append(mods, hotkey.ModAlt)
	}
	if a.Shift {
		mods = append(mods, hotkey.ModShift)
	}
	if a.Super {
		mods = append(mods, hotkey.ModWin)
	}
	return mods
}
