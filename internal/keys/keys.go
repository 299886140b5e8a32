// Package keys names key presses and maps them to actions.
//
// A key name is a base name such as "q", "F1" or "Escape", prefixed by the
// active modifiers in the order C-, M-, S-: Control+Shift+x is "C-S-x".
package keys

type Mods uint8

const (
	Shift Mods = 1 << iota
	Alt
	Control
)

// Name returns base with its modifier prefixes, or "" when base is empty.
func Name(base string, mods Mods) string {
	if base == "" {
		return ""
	}
	name := base
	if mods&Shift != 0 {
		name = "S-" + name
	}
	if mods&Alt != 0 {
		name = "M-" + name
	}
	if mods&Control != 0 {
		name = "C-" + name
	}
	return name
}

// KeyMap binds actions either to an exact key name or to a base name
// under any modifiers.
type KeyMap struct {
	exact   map[string]func()
	anyMods map[string]func()
}

func New() *KeyMap {
	return &KeyMap{
		exact:   make(map[string]func()),
		anyMods: make(map[string]func()),
	}
}

// Bind runs f when exactly name is pressed, e.g. "C-c".
func (km *KeyMap) Bind(name string, f func()) {
	km.exact[name] = f
}

// BindAnyMods runs f when base is pressed, whatever modifiers are held.
func (km *KeyMap) BindAnyMods(base string, f func()) {
	km.anyMods[base] = f
}

// HandleKey runs the action bound to the press and reports whether there
// was one. Exact bindings win over BindAnyMods ones.
func (km *KeyMap) HandleKey(base string, mods Mods) bool {
	if base == "" {
		return false
	}
	if f, ok := km.exact[Name(base, mods)]; ok {
		f()
		return true
	}
	if f, ok := km.anyMods[base]; ok {
		f()
		return true
	}
	return false
}
