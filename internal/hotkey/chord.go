package hotkey

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mobile/event/key"
)

// Set is the collection of keys currently held down.
type Set map[key.Code]struct{}

// Has reports whether c is held.
func (s Set) Has(c key.Code) bool {
	_, ok := s[c]
	return ok
}

// Chord is a key combination. Each element lists interchangeable keys, any
// one of which satisfies that position, so {{LeftControl, RightControl}}
// means "either Control".
type Chord [][]key.Code

// DefaultChord is Control+Alt+N.
var DefaultChord = Chord{
	{key.CodeLeftControl, key.CodeRightControl},
	{key.CodeLeftAlt, key.CodeRightAlt},
	{key.CodeN},
}

// Held reports whether pressed is a superset of the chord.
func (c Chord) Held(pressed Set) bool {
	if len(c) == 0 {
		return false
	}
	for _, alts := range c {
		ok := false
		for _, k := range alts {
			if pressed.Has(k) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func (c Chord) String() string {
	parts := make([]string, 0, len(c))
	for _, alts := range c {
		if len(alts) == 0 {
			continue
		}
		parts = append(parts, codeName(alts[0]))
	}
	return strings.Join(parts, "+")
}

var modifiers = map[string][]key.Code{
	"ctrl":    {key.CodeLeftControl, key.CodeRightControl},
	"control": {key.CodeLeftControl, key.CodeRightControl},
	"alt":     {key.CodeLeftAlt, key.CodeRightAlt},
	"option":  {key.CodeLeftAlt, key.CodeRightAlt},
	"shift":   {key.CodeLeftShift, key.CodeRightShift},
	"super":   {key.CodeLeftGUI, key.CodeRightGUI},
	"cmd":     {key.CodeLeftGUI, key.CodeRightGUI},
	"win":     {key.CodeLeftGUI, key.CodeRightGUI},
}

// ParseChord parses bindings such as "ctrl+alt+n". At least one modifier
// and exactly one trailing key are required.
func ParseChord(binding string) (Chord, error) {
	parts := strings.Split(binding, "+")
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid chord %q: need modifier+key", binding)
	}
	var c Chord
	for _, p := range parts[:len(parts)-1] {
		m, ok := modifiers[strings.ToLower(strings.TrimSpace(p))]
		if !ok {
			return nil, fmt.Errorf("invalid chord %q: unknown modifier %q", binding, p)
		}
		c = append(c, m)
	}
	last := strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
	code, ok := namedCode(last)
	if !ok {
		return nil, fmt.Errorf("invalid chord %q: unknown key %q", binding, last)
	}
	return append(c, []key.Code{code}), nil
}

func namedCode(name string) (key.Code, bool) {
	if len(name) == 1 {
		switch r := name[0]; {
		case r >= 'a' && r <= 'z':
			return key.CodeA + key.Code(r-'a'), true
		case r == '0':
			return key.Code0, true
		case r >= '1' && r <= '9':
			return key.Code1 + key.Code(r-'1'), true
		}
	}
	switch name {
	case "space":
		return key.CodeSpacebar, true
	case "enter", "return":
		return key.CodeReturnEnter, true
	case "tab":
		return key.CodeTab, true
	case "esc", "escape":
		return key.CodeEscape, true
	}
	if len(name) >= 2 && name[0] == 'f' {
		if n, err := strconv.Atoi(name[1:]); err == nil && n >= 1 && n <= 12 {
			return key.CodeF1 + key.Code(n-1), true
		}
	}
	return key.CodeUnknown, false
}

func codeName(c key.Code) string {
	switch {
	case c >= key.CodeA && c <= key.CodeZ:
		return string(rune('a' + rune(c-key.CodeA)))
	case c == key.Code0:
		return "0"
	case c >= key.Code1 && c <= key.Code9:
		return string(rune('1' + rune(c-key.Code1)))
	case c >= key.CodeF1 && c <= key.CodeF12:
		return fmt.Sprintf("f%d", int(c-key.CodeF1)+1)
	}
	switch c {
	case key.CodeLeftControl, key.CodeRightControl:
		return "ctrl"
	case key.CodeLeftAlt, key.CodeRightAlt:
		return "alt"
	case key.CodeLeftShift, key.CodeRightShift:
		return "shift"
	case key.CodeLeftGUI, key.CodeRightGUI:
		return "super"
	case key.CodeSpacebar:
		return "space"
	case key.CodeReturnEnter:
		return "enter"
	case key.CodeTab:
		return "tab"
	case key.CodeEscape:
		return "esc"
	}
	return c.String()
}
