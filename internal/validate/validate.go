// Package validate implements the advisory rule set for decoded layouts.
// Validation is permissive: every rule here produces a Warning and,
// where a value is unusable, substitutes the documented default. Fatal
// conditions (malformed text, unknown tags, reference cycles) are the
// business of the decoder and the reference-graph analysis, not this
// package.
package validate

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cotw-fabier/cosboard/pkg/layout"
)

// Validate inspects a layout and returns a normalized copy together with
// the issues found. The input is never mutated. Normalization replaces
// unusable sizing values with the default and strips empty or
// duplicated modifier combinations, so downstream consumers can rely on
// every Sizing being well-formed and every combo being non-empty and
// duplicate-free.
func Validate(l layout.Layout) (layout.Layout, []layout.Issue) {
	v := &validator{layout: l.Clone()}
	v.requiredFields()
	v.cells()
	v.panelReferences()
	layout.SortIssues(v.issues)
	return v.layout, v.issues
}

type validator struct {
	layout layout.Layout
	issues []layout.Issue
}

func (v *validator) warn(path, message, suggestion string) {
	issue := layout.NewIssue(layout.SeverityWarning, message, path)
	if suggestion != "" {
		issue = issue.WithSuggestion(suggestion)
	}
	v.issues = append(v.issues, issue)
}

func (v *validator) requiredFields() {
	if v.layout.Name == "" {
		v.warn("name", "layout name is empty", "provide a descriptive name for the layout")
	}
	if v.layout.Version == "" {
		v.warn("version", "layout version is empty", "use semantic versioning (e.g. '1.0', '1.0.0')")
	}
	if v.layout.DefaultPanelID == "" {
		v.warn("default_panel_id", "default panel ID is empty", "specify which panel should be shown by default")
	}
	if v.layout.Description == "" {
		v.warn("description", "missing layout description", "")
	}
	if v.layout.Author == "" {
		v.warn("author", "missing layout author", "")
	}
	for _, id := range v.panelIDs() {
		if id == "" {
			v.warn(`panels[""].id`, "panel ID is empty", "provide a unique identifier for the panel")
		}
	}
}

// cells walks every cell, checking sizing and key rules and normalizing
// unusable values in place.
func (v *validator) cells() {
	for _, id := range v.panelIDs() {
		panel := v.layout.Panels[id]
		panelPath := fmt.Sprintf("panels[%s]", id)
		for i := range panel.Rows {
			for j, cell := range panel.Rows[i].Cells {
				cellPath := fmt.Sprintf("%s.rows[%d].cells[%d]", panelPath, i, j)
				switch c := cell.(type) {
				case layout.Key:
					c = v.checkKey(c, cellPath)
					panel.Rows[i].Cells[j] = c
				case layout.Widget:
					c.Width = v.checkSizing(c.Width, cellPath+".width")
					c.Height = v.checkSizing(c.Height, cellPath+".height")
					panel.Rows[i].Cells[j] = c
				case layout.PanelRef:
					c.Width = v.checkSizing(c.Width, cellPath+".width")
					c.Height = v.checkSizing(c.Height, cellPath+".height")
					panel.Rows[i].Cells[j] = c
				}
			}
		}
		v.layout.Panels[id] = panel
	}
}

func (v *validator) checkKey(k layout.Key, path string) layout.Key {
	if k.Label == "" {
		v.warn(path+".label", "key label is empty", "provide a display label for the key")
	}
	k.Width = v.checkSizing(k.Width, path+".width")
	k.Height = v.checkSizing(k.Height, path+".height")
	if k.Width.Kind == layout.SizingRelative && k.Width.Relative > 10.0 {
		v.warn(path+".width", fmt.Sprintf("key width %g is unusually large", k.Width.Relative),
			"typical key widths are between 1.0 and 5.0")
	}
	if k.Height.Kind == layout.SizingRelative && k.Height.Relative > 5.0 {
		v.warn(path+".height", fmt.Sprintf("key height %g is unusually large", k.Height.Relative),
			"typical key heights are between 1.0 and 3.0")
	}
	k.Alternatives = v.checkAlternatives(k.Alternatives, path)
	return k
}

// checkSizing validates one sizing value, returning the default when the
// value is unusable.
func (v *validator) checkSizing(s layout.Sizing, path string) layout.Sizing {
	switch s.Kind {
	case layout.SizingRelative:
		if s.Relative <= 0 {
			v.warn(path, fmt.Sprintf("relative size %g is not positive", s.Relative),
				"use a positive number (e.g. 1.0 for standard size)")
			return layout.DefaultSizing()
		}
		if s.Relative > 10.0 {
			v.warn(path, fmt.Sprintf("relative size %g is unusually large", s.Relative),
				"consider using a smaller value (typical range: 0.5-5.0)")
		}
	case layout.SizingPixels:
		if !validPixels(s.Pixels) {
			v.warn(path, fmt.Sprintf("invalid pixel format %q", s.Pixels),
				"use a positive integer followed by 'px' (e.g. '20px')")
			return layout.DefaultSizing()
		}
	}
	return s
}

// validPixels reports whether the value matches <digits>px.
func validPixels(s string) bool {
	num, ok := strings.CutSuffix(s, "px")
	if !ok || num == "" {
		return false
	}
	_, err := strconv.ParseUint(num, 10, 32)
	return err == nil
}

// checkAlternatives validates modifier combinations and returns a
// normalized map: empty combinations are dropped and duplicate
// modifiers within a combination are removed, so returned layouts only
// carry non-empty, duplicate-free combos.
func (v *validator) checkAlternatives(alts map[layout.AlternativeKey]layout.Action, keyPath string) map[layout.AlternativeKey]layout.Action {
	if len(alts) == 0 {
		return alts
	}
	path := keyPath + ".alternatives"
	normalized := make(map[layout.AlternativeKey]layout.Action, len(alts))
	for _, ak := range sortedAltKeys(alts) {
		action := alts[ak]
		if ak.Kind() != layout.AltModifierCombo {
			normalized[ak] = action
			continue
		}
		combo := ak.Combo()
		if len(combo) == 0 {
			v.warn(path, "modifier combination is empty",
				"remove empty modifier combinations or add modifiers")
			continue
		}
		seen := map[layout.Modifier]bool{}
		unique := make([]layout.Modifier, 0, len(combo))
		for _, m := range combo {
			if seen[m] {
				v.warn(path, fmt.Sprintf("duplicate modifier %s in combination", m),
					"remove duplicate modifiers from the combination")
				continue
			}
			seen[m] = true
			unique = append(unique, m)
		}
		if len(unique) == 4 {
			v.warn(path, "modifier combination uses all four modifiers",
				"this combination may be difficult for users to trigger")
		}
		deduped := layout.ModifierCombo(unique...)
		if _, exists := normalized[deduped]; !exists {
			normalized[deduped] = action
		}
	}
	return normalized
}

// panelReferences checks that the default panel and every embedded panel
// exist, and flags panels nothing points at. A dangling default panel is
// advisory here; rendering falls back to any panel it can find.
func (v *validator) panelReferences() {
	if v.layout.DefaultPanelID != "" {
		if _, ok := v.layout.Panels[v.layout.DefaultPanelID]; !ok {
			v.warn("default_panel_id",
				fmt.Sprintf("default panel %q does not exist", v.layout.DefaultPanelID),
				"use one of the existing panel IDs: "+v.quotedPanelIDs())
		}
	}

	referenced := map[string]bool{v.layout.DefaultPanelID: true}
	for _, id := range v.panelIDs() {
		panel := v.layout.Panels[id]
		for i, row := range panel.Rows {
			for j, cell := range row.Cells {
				ref, ok := cell.(layout.PanelRef)
				if !ok {
					continue
				}
				referenced[ref.PanelID] = true
				if _, exists := v.layout.Panels[ref.PanelID]; exists {
					continue
				}
				refPath := fmt.Sprintf("panels[%s].rows[%d].cells[%d].panel_id", id, i, j)
				suggestion := "available panels: " + v.quotedPanelIDs()
				if similar := v.similarPanelName(ref.PanelID); similar != "" {
					suggestion = fmt.Sprintf("did you mean %q?", similar)
				}
				v.warn(refPath, fmt.Sprintf("panel %q does not exist", ref.PanelID), suggestion)
			}
		}
	}

	for _, id := range v.panelIDs() {
		if !referenced[id] {
			v.warn(fmt.Sprintf("panels[%s]", id), fmt.Sprintf("panel %q is never referenced", id), "")
		}
	}
}

// similarPanelName finds an existing panel whose name is close to the
// target, for typo suggestions. Close means similar length with mostly
// shared characters, or one name containing the other.
func (v *validator) similarPanelName(target string) string {
	targetLower := strings.ToLower(target)
	for _, id := range v.panelIDs() {
		idLower := strings.ToLower(id)
		if diff := len(idLower) - len(targetLower); diff >= -2 && diff <= 2 {
			shared := 0
			for _, r := range targetLower {
				if strings.ContainsRune(idLower, r) {
					shared++
				}
			}
			if shared >= len(targetLower)-2 {
				return id
			}
		}
		if strings.Contains(idLower, targetLower) || strings.Contains(targetLower, idLower) {
			return id
		}
	}
	return ""
}

func (v *validator) panelIDs() []string {
	ids := make([]string, 0, len(v.layout.Panels))
	for id := range v.layout.Panels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (v *validator) quotedPanelIDs() string {
	ids := v.panelIDs()
	for i, id := range ids {
		ids[i] = strconv.Quote(id)
	}
	return strings.Join(ids, ", ")
}

func sortedAltKeys(alts map[layout.AlternativeKey]layout.Action) []layout.AlternativeKey {
	keys := make([]layout.AlternativeKey, 0, len(alts))
	for k := range alts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}
