package layout

import (
	"sort"
	"strings"
)

// Modifier is a keyboard modifier. The declaration order is the canonical
// sort order used for modifier combinations.
type Modifier uint8

const (
	ModShift Modifier = iota
	ModCtrl
	ModAlt
	ModSuper
)

var modifierNames = [...]string{"Shift", "Ctrl", "Alt", "Super"}

func (m Modifier) String() string {
	if int(m) < len(modifierNames) {
		return modifierNames[m]
	}
	return "Unknown"
}

// ParseModifier maps a wire-format modifier name to a Modifier.
func ParseModifier(name string) (Modifier, bool) {
	for i, n := range modifierNames {
		if n == name {
			return Modifier(i), true
		}
	}
	return 0, false
}

// SwipeDirection is a gesture direction for swipe alternatives.
type SwipeDirection uint8

const (
	SwipeUp SwipeDirection = iota
	SwipeDown
	SwipeLeft
	SwipeRight
)

var swipeNames = [...]string{"Up", "Down", "Left", "Right"}

func (d SwipeDirection) String() string {
	if int(d) < len(swipeNames) {
		return swipeNames[d]
	}
	return "Unknown"
}

// ParseSwipeDirection maps a wire-format direction name to a
// SwipeDirection.
func ParseSwipeDirection(name string) (SwipeDirection, bool) {
	for i, n := range swipeNames {
		if n == name {
			return SwipeDirection(i), true
		}
	}
	return 0, false
}

// AltKeyKind discriminates the AlternativeKey variants.
type AltKeyKind uint8

const (
	// AltSingleModifier binds to one held modifier.
	AltSingleModifier AltKeyKind = iota
	// AltModifierCombo binds to a set of modifiers held together.
	AltModifierCombo
	// AltSwipe binds to a swipe gesture.
	AltSwipe
)

// AlternativeKey identifies one activation method for a key alternative.
// It is comparable and used as the Alternatives map key. ModifierCombo
// members are stored in one canonical sort order so equal sets always
// produce equal keys (invariant for override matching and hashing).
type AlternativeKey struct {
	kind  AltKeyKind
	mod   Modifier
	combo string
	swipe SwipeDirection
}

// SingleModifier constructs a single-modifier activation.
func SingleModifier(m Modifier) AlternativeKey {
	return AlternativeKey{kind: AltSingleModifier, mod: m}
}

// ModifierCombo constructs a multi-modifier activation. Modifiers are
// sorted into canonical order; duplicates are preserved so validation
// can flag them.
func ModifierCombo(mods ...Modifier) AlternativeKey {
	sorted := append([]Modifier(nil), mods...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	names := make([]string, len(sorted))
	for i, m := range sorted {
		names[i] = m.String()
	}
	return AlternativeKey{kind: AltModifierCombo, combo: strings.Join(names, "+")}
}

// Swipe constructs a gesture activation.
func Swipe(d SwipeDirection) AlternativeKey {
	return AlternativeKey{kind: AltSwipe, swipe: d}
}

// Kind reports which variant this activation is.
func (k AlternativeKey) Kind() AltKeyKind { return k.kind }

// Modifier returns the single modifier for AltSingleModifier keys.
func (k AlternativeKey) Modifier() Modifier { return k.mod }

// Combo returns the canonical modifier sequence for AltModifierCombo
// keys, duplicates included.
func (k AlternativeKey) Combo() []Modifier {
	if k.kind != AltModifierCombo || k.combo == "" {
		return nil
	}
	parts := strings.Split(k.combo, "+")
	mods := make([]Modifier, 0, len(parts))
	for _, p := range parts {
		if m, ok := ParseModifier(p); ok {
			mods = append(mods, m)
		}
	}
	return mods
}

// SwipeDirection returns the direction for AltSwipe keys.
func (k AlternativeKey) SwipeDirection() SwipeDirection { return k.swipe }

// Equal reports value equality; go-cmp picks this up so Layouts with
// alternatives diff cleanly in tests.
func (k AlternativeKey) Equal(other AlternativeKey) bool { return k == other }

func (k AlternativeKey) String() string {
	switch k.kind {
	case AltModifierCombo:
		return k.combo
	case AltSwipe:
		return k.swipe.String()
	default:
		return k.mod.String()
	}
}

// ActionKind discriminates the Action variants.
type ActionKind uint8

const (
	// ActionCharacter emits a single character.
	ActionCharacter ActionKind = iota
	// ActionKeyCode emits a key code.
	ActionKeyCode
	// ActionScript names a script. The reference is opaque here; it is
	// never resolved or executed by this package.
	ActionScript
	// ActionPanelSwitch switches the visible panel.
	ActionPanelSwitch
)

// Action is what an activated key or alternative does. Comparable.
type Action struct {
	Kind ActionKind
	Char rune
	Code KeyCode
	Name string
}

// CharacterAction emits a single character.
func CharacterAction(r rune) Action {
	return Action{Kind: ActionCharacter, Char: r}
}

// KeyCodeAction emits a key code.
func KeyCodeAction(code KeyCode) Action {
	return Action{Kind: ActionKeyCode, Code: code}
}

// ScriptAction references a script by name.
func ScriptAction(name string) Action {
	return Action{Kind: ActionScript, Name: name}
}

// PanelSwitchAction switches to the named panel.
func PanelSwitchAction(panelID string) Action {
	return Action{Kind: ActionPanelSwitch, Name: panelID}
}
