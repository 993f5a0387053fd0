//go:build linux && cgo

package desktop

import "golang.design/x/hotkey"

// X11 keysyms
var platformKeys = map[string]hotkey.Key{
	"Home":     hotkey.Key(0xff50),
	"End":      hotkey.Key(0xff57),
	"PageUp":   hotkey.Key(0xff55),
	"PageDown": hotkey.Key(0xff56),
}

// Mod1 is Alt and Mod4 is Super on common X11 layouts
func nativeModifiers(a Accelerator) []hotkey.Modifier {
	var mods []hotkey.Modifier
	if a.Ctrl {
		mods = append(mods, hotkey.ModCtrl)
	}
	if a.Alt {
		mods = append(mods, hotkey.Mod1)
	}
	if a.Shift {
		mods = append(mods, hotkey.ModShift)
	}
	if a.Super {
		mods = append(mods, hotkey.Mod4)
	}
	return mods
}
