package decoder

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/cotw-fabier/cosboard/pkg/layout"
)

// converter walks the raw document and builds the typed model,
// accumulating issues. Shape problems (unknown tags, wrong payload
// types) become Error issues; anything recoverable gets a default and a
// Warning. Value-range checks belong to the validator, not here.
type converter struct {
	issues []layout.Issue
}

func (c *converter) errorf(path, format string, args ...any) {
	c.issues = append(c.issues, layout.NewIssue(layout.SeverityError, fmt.Sprintf(format, args...), path))
}

func (c *converter) warnf(path, suggestion, format string, args ...any) {
	issue := layout.NewIssue(layout.SeverityWarning, fmt.Sprintf(format, args...), path)
	if suggestion != "" {
		issue = issue.WithSuggestion(suggestion)
	}
	c.issues = append(c.issues, issue)
}

func (c *converter) layout(raw rawLayout) layout.Layout {
	result := layout.Layout{
		Name:           deref(raw.Name),
		Description:    deref(raw.Description),
		Author:         deref(raw.Author),
		Language:       deref(raw.Language),
		Locale:         deref(raw.Locale),
		Version:        deref(raw.Version),
		DefaultPanelID: deref(raw.DefaultPanelID),
		Inherits:       deref(raw.Inherits),
		Panels:         map[string]layout.Panel{},
	}
	c.panels(raw.Panels, result.Panels)
	return result
}

// panels accepts both wire shapes: an object keyed by panel id, or an
// array of panels carrying their own ids.
func (c *converter) panels(raw json.RawMessage, out map[string]layout.Panel) {
	if len(raw) == 0 || string(raw) == "null" {
		return
	}
	var byID map[string]rawPanel
	if err := json.Unmarshal(raw, &byID); err == nil {
		ids := make([]string, 0, len(byID))
		for id := range byID {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			out[id] = c.panel(byID[id], id, fmt.Sprintf("panels[%q]", id))
		}
		return
	}
	var list []rawPanel
	if err := json.Unmarshal(raw, &list); err == nil {
		for i, rp := range list {
			path := fmt.Sprintf("panels[%d]", i)
			id := deref(rp.ID)
			if id == "" {
				c.errorf(path, "panel in array form has no id")
				continue
			}
			if _, exists := out[id]; exists {
				c.errorf(path, "duplicate panel id %q", id)
				continue
			}
			out[id] = c.panel(rp, id, path)
		}
		return
	}
	c.errorf("panels", "panels must be an object keyed by id or an array of panels")
}

func (c *converter) panel(raw rawPanel, id, path string) layout.Panel {
	if raw.ID != nil && *raw.ID != id {
		c.warnf(path+".id", fmt.Sprintf("remove the id field or change it to %q", id),
			"panel id %q does not match its map key %q; the map key wins", *raw.ID, id)
	}
	p := layout.Panel{
		ID:      id,
		Padding: raw.Padding,
		Margin:  raw.Margin,
	}
	for i, rr := range raw.Rows {
		row := layout.Row{}
		for j, rawCell := range rr.Cells {
			cellPath := fmt.Sprintf("%s.rows[%d].cells[%d]", path, i, j)
			if cell := c.cell(rawCell, cellPath); cell != nil {
				row.Cells = append(row.Cells, cell)
			}
		}
		p.Rows = append(p.Rows, row)
	}
	return p
}

// cell dispatches on the "type" discriminator. A nil return means the
// cell was dropped; an Error issue explains why.
func (c *converter) cell(raw json.RawMessage, path string) layout.Cell {
	var tag rawCellTag
	if err := json.Unmarshal(raw, &tag); err != nil {
		c.errorf(path, "cell must be an object with a \"type\" field")
		return nil
	}
	switch tag.Type {
	case "key":
		var rk rawKey
		if err := json.Unmarshal(raw, &rk); err != nil {
			c.errorf(path, "malformed key cell: %v", err)
			return nil
		}
		return c.key(rk, path)
	case "widget":
		var rw rawWidget
		if err := json.Unmarshal(raw, &rw); err != nil {
			c.errorf(path, "malformed widget cell: %v", err)
			return nil
		}
		if deref(rw.WidgetType) == "" {
			c.errorf(path+".widget_type", "widget cell missing widget_type")
			return nil
		}
		return layout.Widget{
			WidgetType: *rw.WidgetType,
			Width:      c.sizing(rw.Width, path+".width"),
			Height:     c.sizing(rw.Height, path+".height"),
		}
	case "panel_ref":
		var rp rawPanelRef
		if err := json.Unmarshal(raw, &rp); err != nil {
			c.errorf(path, "malformed panel_ref cell: %v", err)
			return nil
		}
		if deref(rp.PanelID) == "" {
			c.errorf(path+".panel_id", "panel_ref cell missing panel_id")
			return nil
		}
		return layout.PanelRef{
			PanelID: *rp.PanelID,
			Width:   c.sizing(rp.Width, path+".width"),
			Height:  c.sizing(rp.Height, path+".height"),
		}
	case "":
		c.errorf(path, "cell missing \"type\" field")
	default:
		c.issues = append(c.issues, layout.NewIssue(layout.SeverityError,
			fmt.Sprintf("unknown cell type %q", tag.Type), path).
			WithSuggestion(`valid cell types are "key", "widget" and "panel_ref"`))
	}
	return nil
}

func (c *converter) key(raw rawKey, path string) layout.Key {
	k := layout.NewKey(deref(raw.Label), c.keyCode(raw.Code, path+".code"))
	k.Identifier = deref(raw.Identifier)
	k.Width = c.sizing(raw.Width, path+".width")
	k.Height = c.sizing(raw.Height, path+".height")
	k.MinWidth = c.pixelFloor(raw.MinWidth, path+".min_width")
	k.MinHeight = c.pixelFloor(raw.MinHeight, path+".min_height")
	if raw.Sticky != nil {
		k.Sticky = *raw.Sticky
	}
	if raw.StickyRelease != nil {
		k.StickyRelease = *raw.StickyRelease
	}
	if len(raw.Alternatives) > 0 {
		k.Alternatives = c.alternatives(raw.Alternatives, path+".alternatives")
	}
	return k
}

// pixelFloor narrows a JSON number to the uint32 the model carries.
// Out-of-range values are dropped with a Warning.
func (c *converter) pixelFloor(v *float64, path string) *uint32 {
	if v == nil {
		return nil
	}
	if *v < 0 || *v > math.MaxUint32 || *v != math.Trunc(*v) {
		c.warnf(path, "use a non-negative whole pixel count", "invalid pixel floor %g; ignoring", *v)
		return nil
	}
	floor := uint32(*v)
	return &floor
}

func (c *converter) sizing(raw json.RawMessage, path string) layout.Sizing {
	if len(raw) == 0 || string(raw) == "null" {
		return layout.DefaultSizing()
	}
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return layout.Relative(num)
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return layout.Pixels(str)
	}
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(raw, &tagged); err == nil && len(tagged) == 1 {
		if rel, ok := tagged["Relative"]; ok {
			if err := json.Unmarshal(rel, &num); err == nil {
				return layout.Relative(num)
			}
		}
		if px, ok := tagged["Pixels"]; ok {
			if err := json.Unmarshal(px, &str); err == nil {
				return layout.Pixels(str)
			}
		}
	}
	c.warnf(path, `use a number (relative) or a string like "20px"`,
		"unrecognized sizing value %s; using default", compact(raw))
	return layout.DefaultSizing()
}

func (c *converter) keyCode(raw json.RawMessage, path string) layout.KeyCode {
	if len(raw) == 0 || string(raw) == "null" {
		return layout.DefaultKeyCode()
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return keyCodeFromString(str)
	}
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(raw, &tagged); err == nil && len(tagged) == 1 {
		if uni, ok := tagged["Unicode"]; ok {
			if err := json.Unmarshal(uni, &str); err == nil && utf8.RuneCountInString(str) == 1 {
				r, _ := utf8.DecodeRuneInString(str)
				return layout.UnicodeKey(r)
			}
			c.errorf(path, "Unicode key code payload must be a single character")
			return layout.DefaultKeyCode()
		}
		if sym, ok := tagged["Keysym"]; ok {
			if err := json.Unmarshal(sym, &str); err == nil {
				return layout.KeysymKey(str)
			}
		}
	}
	c.errorf(path, "unrecognized key code value %s", compact(raw))
	return layout.DefaultKeyCode()
}

// keyCodeFromString maps the compact form: a single character is a
// Unicode code, anything longer is a keysym name.
func keyCodeFromString(s string) layout.KeyCode {
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return layout.UnicodeKey(r)
	}
	return layout.KeysymKey(s)
}

// alternatives decodes the activation map. Keys come in two shapes: the
// compact form, where the map key names the activation directly
// ("Shift", "Ctrl+Alt", "Up"), and the tagged form, where the map key is
// the variant name and the value is a [payload, action] pair.
func (c *converter) alternatives(raw map[string]json.RawMessage, path string) map[layout.AlternativeKey]layout.Action {
	out := make(map[layout.AlternativeKey]layout.Action, len(raw))
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		entryPath := fmt.Sprintf("%s[%q]", path, name)
		altKey, actionRaw, ok := c.alternativeEntry(name, raw[name], entryPath)
		if !ok {
			continue
		}
		action, ok := c.action(actionRaw, entryPath)
		if !ok {
			continue
		}
		if _, exists := out[altKey]; exists {
			c.warnf(entryPath, "merge the duplicate entries",
				"duplicate alternative activation %s; keeping the last entry", altKey)
		}
		out[altKey] = action
	}
	return out
}

func (c *converter) alternativeEntry(name string, value json.RawMessage, path string) (layout.AlternativeKey, json.RawMessage, bool) {
	switch name {
	case "SingleModifier", "ModifierCombo", "Swipe":
		var pair []json.RawMessage
		if err := json.Unmarshal(value, &pair); err != nil || len(pair) != 2 {
			c.errorf(path, "%s entry must be a [payload, action] pair", name)
			return layout.AlternativeKey{}, nil, false
		}
		altKey, ok := c.alternativePayload(name, pair[0], path)
		return altKey, pair[1], ok
	}
	altKey, ok := c.alternativeName(name, path)
	return altKey, value, ok
}

func (c *converter) alternativePayload(variant string, payload json.RawMessage, path string) (layout.AlternativeKey, bool) {
	switch variant {
	case "SingleModifier":
		var name string
		if err := json.Unmarshal(payload, &name); err == nil {
			if m, ok := layout.ParseModifier(name); ok {
				return layout.SingleModifier(m), true
			}
		}
		c.errorf(path, "unknown modifier %s", compact(payload))
	case "ModifierCombo":
		var names []string
		if err := json.Unmarshal(payload, &names); err == nil {
			mods := make([]layout.Modifier, 0, len(names))
			for _, n := range names {
				m, ok := layout.ParseModifier(n)
				if !ok {
					c.errorf(path, "unknown modifier %q in combination", n)
					return layout.AlternativeKey{}, false
				}
				mods = append(mods, m)
			}
			c.checkComboOrder(mods, path)
			return layout.ModifierCombo(mods...), true
		}
		c.errorf(path, "ModifierCombo payload must be an array of modifier names")
	case "Swipe":
		var name string
		if err := json.Unmarshal(payload, &name); err == nil {
			if d, ok := layout.ParseSwipeDirection(name); ok {
				return layout.Swipe(d), true
			}
		}
		c.errorf(path, "unknown swipe direction %s", compact(payload))
	}
	return layout.AlternativeKey{}, false
}

// alternativeName parses the compact map-key form.
func (c *converter) alternativeName(name, path string) (layout.AlternativeKey, bool) {
	if m, ok := layout.ParseModifier(name); ok {
		return layout.SingleModifier(m), true
	}
	if d, ok := layout.ParseSwipeDirection(name); ok {
		return layout.Swipe(d), true
	}
	if strings.Contains(name, "+") {
		parts := strings.Split(name, "+")
		mods := make([]layout.Modifier, 0, len(parts))
		for _, p := range parts {
			m, ok := layout.ParseModifier(p)
			if !ok {
				c.errorf(path, "unknown modifier %q in combination %q", p, name)
				return layout.AlternativeKey{}, false
			}
			mods = append(mods, m)
		}
		c.checkComboOrder(mods, path)
		return layout.ModifierCombo(mods...), true
	}
	c.issues = append(c.issues, layout.NewIssue(layout.SeverityError,
		fmt.Sprintf("unknown alternative activation %q", name), path).
		WithSuggestion("use a modifier name, a +-joined modifier combination, or a swipe direction (Up, Down, Left, Right)"))
	return layout.AlternativeKey{}, false
}

// checkComboOrder flags combinations written out of canonical order.
// The model canonicalizes on construction, so the authored order is only
// visible here.
func (c *converter) checkComboOrder(mods []layout.Modifier, path string) {
	for i := 1; i < len(mods); i++ {
		if mods[i] < mods[i-1] {
			c.warnf(path, "sort modifiers for consistent matching", "modifiers are not in canonical order")
			return
		}
	}
}

// action decodes both the compact string form ("a", "script:macro",
// "panel(numpad)", "Shift_L") and the tagged object form.
func (c *converter) action(raw json.RawMessage, path string) (layout.Action, bool) {
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return actionFromString(str), true
	}
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(raw, &tagged); err == nil && len(tagged) == 1 {
		if char, ok := tagged["Character"]; ok {
			if err := json.Unmarshal(char, &str); err == nil && utf8.RuneCountInString(str) == 1 {
				r, _ := utf8.DecodeRuneInString(str)
				return layout.CharacterAction(r), true
			}
			c.errorf(path, "Character action payload must be a single character")
			return layout.Action{}, false
		}
		if code, ok := tagged["KeyCode"]; ok {
			return layout.KeyCodeAction(c.keyCode(code, path)), true
		}
		if script, ok := tagged["Script"]; ok {
			if err := json.Unmarshal(script, &str); err == nil {
				return layout.ScriptAction(str), true
			}
		}
		if panel, ok := tagged["PanelSwitch"]; ok {
			if err := json.Unmarshal(panel, &str); err == nil {
				return layout.PanelSwitchAction(str), true
			}
		}
	}
	c.errorf(path, "unrecognized action value %s", compact(raw))
	return layout.Action{}, false
}

func actionFromString(s string) layout.Action {
	if name, ok := strings.CutPrefix(s, "script:"); ok {
		return layout.ScriptAction(name)
	}
	if inner, ok := strings.CutPrefix(s, "panel("); ok {
		if id, ok := strings.CutSuffix(inner, ")"); ok {
			return layout.PanelSwitchAction(id)
		}
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return layout.CharacterAction(r)
	}
	return layout.KeyCodeAction(layout.KeysymKey(s))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// compact renders a raw value for an issue message, truncated so one bad
// field cannot flood the report.
func compact(raw json.RawMessage) string {
	s := string(raw)
	if len(s) > 40 {
		s = s[:40] + "..."
	}
	return s
}
