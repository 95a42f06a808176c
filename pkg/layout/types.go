package layout

// Layout is the root document describing one complete keyboard definition.
// A Layout returned by the parser is fully resolved: inheritance has been
// flattened, advisory defaults have been substituted, and nesting depths
// have been computed. Callers must treat it as immutable.
type Layout struct {
	// Name identifies the layout to users.
	Name string

	// Description, Author, Language and Locale are optional metadata.
	// Empty string means absent.
	Description string
	Author      string
	Language    string
	Locale      string

	// Version is the layout document version string.
	Version string

	// DefaultPanelID names the panel shown when the layout is activated.
	DefaultPanelID string

	// Inherits points at a parent layout document. It is cleared once
	// inheritance has been resolved.
	Inherits string

	// Panels maps panel id to Panel. Key uniqueness is structural.
	Panels map[string]Panel
}

// Panel is a named, independently addressable group of rows.
type Panel struct {
	// ID is unique within the owning Layout and matches its Panels key.
	ID string

	// Padding and Margin are advisory spacing hints in pixels. Nil means
	// the renderer picks its own.
	Padding *float64
	Margin  *float64

	// NestingDepth records how deep this panel sits in the embedding
	// graph (0 = embeds nothing). Computed during analysis; ignored on
	// input.
	NestingDepth uint8

	// Rows in top-to-bottom order.
	Rows []Row
}

// Row is an ordered sequence of cells; order is the visual left-to-right
// order.
type Row struct {
	Cells []Cell
}

// Cell is one slot in a row: a Key, a Widget, or a PanelRef. The set of
// implementations is closed.
type Cell interface {
	isCell()
}

// Key is a keyboard key definition.
type Key struct {
	// Label is the display string shown on the key.
	Label string

	// Code is emitted when the key is pressed.
	Code KeyCode

	// Identifier is the override-matching key for inheritance. Keys
	// without one can never be targeted by an override.
	Identifier string

	// Width and Height size the key; zero value means Relative(1.0).
	Width  Sizing
	Height Sizing

	// MinWidth and MinHeight are optional pixel floors. Nil means unset.
	MinWidth  *uint32
	MinHeight *uint32

	// Sticky keys toggle their pressed state instead of releasing on
	// lift. Used for modifiers.
	Sticky bool

	// StickyRelease controls sticky behavior: true (the default) is
	// one-shot, the modifier releases after the next key press; false is
	// toggle, it stays active until tapped again. Only meaningful when
	// Sticky is true.
	StickyRelease bool

	// Alternatives binds actions to modifier combinations and swipe
	// gestures, distinct from the key's primary action.
	Alternatives map[AlternativeKey]Action
}

// Widget is an embedded UI component such as a trackpad.
type Widget struct {
	// WidgetType is an open-ended identifier (e.g. "trackpad").
	WidgetType string

	Width  Sizing
	Height Sizing
}

// PanelRef embeds another panel of the same layout.
type PanelRef struct {
	// PanelID names the embedded panel.
	PanelID string

	Width  Sizing
	Height Sizing
}

func (Key) isCell()      {}
func (Widget) isCell()   {}
func (PanelRef) isCell() {}

// NewKey returns a Key with the documented field defaults applied.
func NewKey(label string, code KeyCode) Key {
	return Key{
		Label:         label,
		Code:          code,
		Width:         DefaultSizing(),
		Height:        DefaultSizing(),
		StickyRelease: true,
	}
}
