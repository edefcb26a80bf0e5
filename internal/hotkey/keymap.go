package hotkey

import "golang.org/x/mobile/event/key"

// codeForKeysym maps an X keysym to the key code used by chords.
func codeForKeysym(sym uint32) key.Code {
	switch {
	case sym >= 'a' && sym <= 'z':
		return key.CodeA + key.Code(sym-'a')
	case sym >= 'A' && sym <= 'Z':
		return key.CodeA + key.Code(sym-'A')
	case sym == '0':
		return key.Code0
	case sym >= '1' && sym <= '9':
		return key.Code1 + key.Code(sym-'1')
	case sym >= 0xffbe && sym <= 0xffc9:
		return key.CodeF1 + key.Code(sym-0xffbe)
	}
	switch sym {
	case 0x20:
		return key.CodeSpacebar
	case 0xff09:
		return key.CodeTab
	case 0xff0d:
		return key.CodeReturnEnter
	case 0xff1b:
		return key.CodeEscape
	case 0xffe1:
		return key.CodeLeftShift
	case 0xffe2:
		return key.CodeRightShift
	case 0xffe3:
		return key.CodeLeftControl
	case 0xffe4:
		return key.CodeRightControl
	case 0xffe9, 0xffe7:
		return key.CodeLeftAlt
	case 0xffea, 0xffe8, 0xfe03:
		return key.CodeRightAlt
	case 0xffeb:
		return key.CodeLeftGUI
	case 0xffec:
		return key.CodeRightGUI
	}
	return key.CodeUnknown
}

// diffKeymap compares two keymap bitmaps, one bit per keycode, and emits a
// transition for every keycode whose state changed. Releases are reported
// before presses.
func diffKeymap(prev, next []byte, fn func(keycode int, down bool)) {
	n := min(len(prev), len(next))
	for pass := 0; pass < 2; pass++ {
		down := pass == 1
		for i := 0; i < n; i++ {
			changed := prev[i] ^ next[i]
			if changed == 0 {
				continue
			}
			for bit := 0; bit < 8; bit++ {
				mask := byte(1) << bit
				if changed&mask == 0 {
					continue
				}
				if (next[i]&mask != 0) == down {
					fn(i*8+bit, down)
				}
			}
		}
	}
}

// translate turns keymap transitions into events through a keycode table,
// skipping keycodes with no known mapping.
func translate(table []key.Code, fn func(Event)) func(int, bool) {
	return func(keycode int, down bool) {
		if keycode >= len(table) || table[keycode] == key.CodeUnknown {
			return
		}
		dir := key.DirRelease
		if down {
			dir = key.DirPress
		}
		fn(Event{Code: table[keycode], Direction: dir})
	}
}
