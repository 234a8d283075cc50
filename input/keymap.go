package input

import (
	"unicode/utf8"

	"github.com/kamstrup/intmap"
)

// Virtual runes for keys that have no printable character. Arrow keys use
// negative values so they never clash with a real rune.
const (
	RuneEsc   rune = 0x1b
	RuneCtrlC rune = 0x03
)

const (
	RuneUp rune = -(iota + 1)
	RuneDown
	RuneRight
	RuneLeft
)

// Keymap binds runes, including the virtual ones above, to keys.
type Keymap struct {
	bindings *intmap.Map[rune, Key]
}

func NewKeymap() *Keymap {
	return &Keymap{bindings: intmap.New[rune, Key](32)}
}

// DefaultKeymap returns the fixed in-game bindings.
func DefaultKeymap() *Keymap {
	km := NewKeymap()
	km.Bind(Quit, 'q', RuneEsc, RuneCtrlC)
	km.Bind(RotateCW, 'w', RuneUp)
	km.Bind(RotateCCW, 'e')
	km.Bind(Left, 'a', RuneLeft)
	km.Bind(Right, 'd', RuneRight)
	km.Bind(SoftDrop, 's', RuneDown)
	km.Bind(HardDrop, ' ')
	km.Bind(Pause, 'p')
	km.Bind(NewGame, 'n')
	return km
}

// Bind maps every rune in runes to k.
func (km *Keymap) Bind(k Key, runes ...rune) {
	for _, r := range runes {
		km.bindings.Put(r, k)
	}
}

// Lookup returns the key bound to r, or Unknown.
func (km *Keymap) Lookup(r rune) Key {
	if k, ok := km.bindings.Get(r); ok {
		return k
	}
	return Unknown
}

// Decode turns a chunk of raw terminal bytes into keys, in order. It
// recognises the CSI arrow sequences ESC [ A..D; an ESC that does not start
// one is a key of its own. Unbound input decodes to Unknown.
func (km *Keymap) Decode(b []byte) []Key {
	keys, _ := km.decode(b, true)
	return keys
}

// decode is Decode for a stream read in chunks. Unless final is set, an
// unfinished escape sequence or rune at the end of b is not decoded and is
// returned as rest, to be prepended to the next chunk.
func (km *Keymap) decode(b []byte, final bool) (keys []Key, rest []byte) {
	for len(b) > 0 {
		if b[0] == byte(RuneEsc) {
			if !final && (len(b) == 1 || len(b) == 2 && b[1] == '[') {
				return keys, b
			}
			if len(b) >= 3 && b[1] == '[' {
				if r, ok := arrow(b[2]); ok {
					keys = append(keys, km.Lookup(r))
				} else {
					keys = append(keys, Unknown)
				}
				b = b[3:]
				continue
			}
			keys = append(keys, km.Lookup(RuneEsc))
			b = b[1:]
			continue
		}

		if !final && !utf8.FullRune(b) {
			return keys, b
		}
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError {
			keys = append(keys, Unknown)
		} else {
			keys = append(keys, km.Lookup(r))
		}
		b = b[size:]
	}
	return keys, nil
}

func arrow(final byte) (rune, bool) {
	switch final {
	case 'A':
		return RuneUp, true
	case 'B':
		return RuneDown, true
	case 'C':
		return RuneRight, true
	case 'D':
		return RuneLeft, true
	}
	return 0, false
}

// Decode decodes b with the default bindings.
func Decode(b []byte) []Key {
	return DefaultKeymap().Decode(b)
}
