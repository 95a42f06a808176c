package layout

import "fmt"

// KeyCodeKind discriminates the KeyCode variants.
type KeyCodeKind uint8

const (
	// KeyCodeUnicode emits a single character.
	KeyCodeUnicode KeyCodeKind = iota
	// KeyCodeKeysym emits a named system keysym ("Shift_L", "Return").
	KeyCodeKeysym
)

// KeyCode is what a key emits when pressed: a Unicode character or a
// named keysym. KeyCode is comparable and safe to use as a map key.
type KeyCode struct {
	Kind KeyCodeKind
	Char rune
	Name string
}

// UnicodeKey constructs a character-emitting KeyCode.
func UnicodeKey(r rune) KeyCode {
	return KeyCode{Kind: KeyCodeUnicode, Char: r}
}

// KeysymKey constructs a keysym-emitting KeyCode.
func KeysymKey(name string) KeyCode {
	return KeyCode{Kind: KeyCodeKeysym, Name: name}
}

// DefaultKeyCode is the substitute for an absent key code.
func DefaultKeyCode() KeyCode {
	return UnicodeKey(' ')
}

func (k KeyCode) String() string {
	if k.Kind == KeyCodeKeysym {
		return fmt.Sprintf("Keysym(%s)", k.Name)
	}
	return fmt.Sprintf("%q", k.Char)
}
