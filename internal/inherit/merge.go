package inherit

import "github.com/cotw-fabier/cosboard/pkg/layout"

// Merge flattens one inheritance step: the parent supplies the base and
// the child overrides it. Identifying metadata (name, description,
// author, version, default panel) always comes from the child, even
// when empty; a derived layout describes itself, not its ancestor.
// Language and locale fall back to the parent when the child leaves
// them unset. The merged layout carries no inherits reference.
func Merge(child, parent layout.Layout) layout.Layout {
	merged := parent.Clone()
	merged.Name = child.Name
	merged.Description = child.Description
	merged.Author = child.Author
	merged.Version = child.Version
	merged.DefaultPanelID = child.DefaultPanelID
	if child.Language != "" {
		merged.Language = child.Language
	}
	if child.Locale != "" {
		merged.Locale = child.Locale
	}
	merged.Inherits = ""
	if merged.Panels == nil {
		merged.Panels = map[string]layout.Panel{}
	}
	overridePanels(child.Panels, merged.Panels)
	return merged
}

// overridePanels merges child panels into the parent map. Panels
// sharing an id are merged structurally; child-only panels are added;
// parent-only panels survive untouched.
func overridePanels(child map[string]layout.Panel, parent map[string]layout.Panel) {
	for id, childPanel := range child {
		if parentPanel, ok := parent[id]; ok {
			parent[id] = overridePanel(childPanel, parentPanel)
		} else {
			parent[id] = childPanel.Clone()
		}
	}
}

// overridePanel merges two panels with the same id. The child's row
// structure wins; rows are paired positionally up to the shorter list
// and merged cell by cell.
func overridePanel(child, parent layout.Panel) layout.Panel {
	merged := child.Clone()
	for i := 0; i < len(merged.Rows) && i < len(parent.Rows); i++ {
		merged.Rows[i] = overrideRow(merged.Rows[i], parent.Rows[i])
	}
	return merged
}

func overrideRow(child, parent layout.Row) layout.Row {
	merged := child
	for i := 0; i < len(merged.Cells) && i < len(parent.Cells); i++ {
		merged.Cells[i] = overrideCell(merged.Cells[i], parent.Cells[i])
	}
	return merged
}

// overrideCell merges two cells at the same position. Keys merge only
// when both carry the same identifier; widgets of the same type take
// the child's definition; everything else is a plain replacement.
func overrideCell(child, parent layout.Cell) layout.Cell {
	childKey, childIsKey := child.(layout.Key)
	parentKey, parentIsKey := parent.(layout.Key)
	if childIsKey && parentIsKey &&
		childKey.Identifier != "" && childKey.Identifier == parentKey.Identifier {
		return overrideKey(childKey, parentKey)
	}
	return child
}

// overrideKey merges identifier-matched keys. The child's fields win
// wholesale; alternatives are unioned with the child taking precedence
// on shared activations.
func overrideKey(child, parent layout.Key) layout.Key {
	merged := child.Clone()
	if len(parent.Alternatives) > 0 {
		alts := make(map[layout.AlternativeKey]layout.Action, len(parent.Alternatives)+len(child.Alternatives))
		for k, v := range parent.Alternatives {
			alts[k] = v
		}
		for k, v := range child.Alternatives {
			alts[k] = v
		}
		merged.Alternatives = alts
	}
	return merged
}
