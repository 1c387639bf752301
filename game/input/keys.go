package input

import (
	"strings"

	"github.com/wricardo/mcp-training/fibbox/game/engine"
)

// Terminal key names produced by DecodeTerminal for non-arrow input
const (
	KeyQuit   = "quit"
	KeyReset  = "reset"
	KeyEscape = "escape"
)

var keymap = map[string]engine.Direction{
	"left":        engine.Left,
	"right":       engine.Right,
	"up":          engine.Up,
	"down":        engine.Down,
	"arrow_left":  engine.Left,
	"arrow_right": engine.Right,
	"arrow_up":    engine.Up,
	"arrow_down":  engine.Down,
	"arrowleft":   engine.Left,
	"arrowright":  engine.Right,
	"arrowup":     engine.Up,
	"arrowdown":   engine.Down,
	// wasd
	"a": engine.Left,
	"d": engine.Right,
	"w": engine.Up,
	"s": engine.Down,
	// vi
	"h": engine.Left,
	"l": engine.Right,
	"k": engine.Up,
	"j": engine.Down,
}

// MapKey converts a key name into a direction. Unknown keys return false.
func MapKey(key string) (engine.Direction, bool) {
	d, ok := keymap[strings.ToLower(strings.TrimSpace(key))]
	return d, ok
}

// Keys returns every key name MapKey accepts, in lower case
func Keys() []string {
	out := make([]string, 0, len(keymap))
	for k := range keymap {
		out = append(out, k)
	}
	return out
}

// DecodeTerminal decodes the first key in a raw terminal byte stream and
// returns its name along with the number of bytes consumed. Arrow keys are
// recognized in both CSI (ESC [ A) and SS3 (ESC O A) form. Printable bytes
// are returned as themselves. n is 0 when b holds an incomplete sequence.
func DecodeTerminal(b []byte) (key string, n int) {
	if len(b) == 0 {
		return "", 0
	}

	switch b[0] {
	case 0x03, 0x04: // Ctrl-C, Ctrl-D
		return KeyQuit, 1
	case 0x12: // Ctrl-R
		return KeyReset, 1
	case 0x1b:
		return decodeEscape(b)
	}

	if b[0] >= 0x20 && b[0] < 0x7f {
		return string(b[0]), 1
	}
	return "", 1
}

func decodeEscape(b []byte) (string, int) {
	if len(b) == 1 {
		return KeyEscape, 1
	}
	if b[1] != '[' && b[1] != 'O' {
		return KeyEscape, 1
	}
	if len(b) < 3 {
		return "", 0
	}

	if b[1] == 'O' {
		if name, ok := arrowFinal(b[2]); ok {
			return name, 3
		}
		return "", 3
	}

	// CSI: skip parameter bytes (modifiers like ESC [ 1 ; 5 A) up to the final byte
	for i := 2; i < len(b); i++ {
		c := b[i]
		if c >= 0x40 && c <= 0x7e {
			if name, ok := arrowFinal(c); ok {
				return name, i + 1
			}
			return "", i + 1
		}
	}
	return "", 0
}

func arrowFinal(c byte) (string, bool) {
	switch c {
	case 'A':
		return "arrow_up", true
	case 'B':
		return "arrow_down", true
	case 'C':
		return "arrow_right", true
	case 'D':
		return "arrow_left", true
	}
	return "", false
}
