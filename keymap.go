package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/cellux/infiniboard/internal/keys"
)

// baseKeyName returns the unmodified name of key, or "" for bare modifier
// keys and keys without a name.
func baseKeyName(key glfw.Key, scancode int) string {
	switch key {
	case glfw.KeyLeftShift, glfw.KeyLeftControl, glfw.KeyLeftAlt, glfw.KeyLeftSuper:
		return ""
	case glfw.KeyRightShift, glfw.KeyRightControl, glfw.KeyRightAlt, glfw.KeyRightSuper:
		return ""
	case glfw.KeySpace:
		return "Space"
	case glfw.KeyEscape:
		return "Escape"
	case glfw.KeyEnter:
		return "Enter"
	case glfw.KeyTab:
		return "Tab"
	case glfw.KeyF1:
		return "F1"
	case glfw.KeyF2:
		return "F2"
	case glfw.KeyF3:
		return "F3"
	}
	return glfw.GetKeyName(key, scancode)
}

func keyMods(mods glfw.ModifierKey) keys.Mods {
	var m keys.Mods
	if mods&glfw.ModShift != 0 {
		m |= keys.Shift
	}
	if mods&glfw.ModAlt != 0 {
		m |= keys.Alt
	}
	if mods&glfw.ModControl != 0 {
		m |= keys.Control
	}
	return m
}
