package layout

import "fmt"

// SizingKind discriminates the Sizing variants.
type SizingKind uint8

const (
	// SizingRelative sizes as a multiple of the standard key size.
	SizingRelative SizingKind = iota
	// SizingPixels carries a verbatim pixel override string ("20px").
	// Physical scaling is a renderer concern, not this package's.
	SizingPixels
)

// Sizing is either a relative multiplier or a pixel override. The zero
// value is Relative(0), which validation treats as invalid and defaults;
// use DefaultSizing or the constructors.
type Sizing struct {
	Kind     SizingKind
	Relative float64
	Pixels   string
}

// Relative constructs a relative Sizing.
func Relative(multiplier float64) Sizing {
	return Sizing{Kind: SizingRelative, Relative: multiplier}
}

// Pixels constructs a pixel-override Sizing. The string is stored
// verbatim; validity ("<digits>px") is checked during validation.
func Pixels(value string) Sizing {
	return Sizing{Kind: SizingPixels, Pixels: value}
}

// DefaultSizing is the substitute for absent or invalid sizing values.
func DefaultSizing() Sizing {
	return Relative(1.0)
}

// AsRelative returns the multiplier used for proportional layout math.
// Pixel overrides contribute 1.0, matching a standard-size slot.
func (s Sizing) AsRelative() float64 {
	if s.Kind == SizingPixels {
		return 1.0
	}
	return s.Relative
}

func (s Sizing) String() string {
	if s.Kind == SizingPixels {
		return s.Pixels
	}
	return fmt.Sprintf("%g", s.Relative)
}
