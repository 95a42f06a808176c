package layout

// Clone returns a deep copy. The parser hands out layouts that must stay
// immutable, so every pass that rewrites fields works on a clone.
func (l Layout) Clone() Layout {
	out := l
	if l.Panels != nil {
		out.Panels = make(map[string]Panel, len(l.Panels))
		for id, p := range l.Panels {
			out.Panels[id] = p.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the panel.
func (p Panel) Clone() Panel {
	out := p
	out.Padding = cloneFloat(p.Padding)
	out.Margin = cloneFloat(p.Margin)
	if p.Rows != nil {
		out.Rows = make([]Row, len(p.Rows))
		for i, r := range p.Rows {
			out.Rows[i] = r.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	out := Row{}
	if r.Cells != nil {
		out.Cells = make([]Cell, len(r.Cells))
		for i, c := range r.Cells {
			out.Cells[i] = CloneCell(c)
		}
	}
	return out
}

// CloneCell deep-copies any cell variant.
func CloneCell(c Cell) Cell {
	switch v := c.(type) {
	case Key:
		return v.Clone()
	case Widget:
		return v
	case PanelRef:
		return v
	default:
		return c
	}
}

// Clone returns a deep copy of the key.
func (k Key) Clone() Key {
	out := k
	out.MinWidth = cloneUint(k.MinWidth)
	out.MinHeight = cloneUint(k.MinHeight)
	if k.Alternatives != nil {
		out.Alternatives = make(map[AlternativeKey]Action, len(k.Alternatives))
		for ak, a := range k.Alternatives {
			out.Alternatives[ak] = a
		}
	}
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneUint(v *uint32) *uint32 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
