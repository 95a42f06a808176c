package validate

import (
	"strings"
	"testing"

	"github.com/cotw-fabier/cosboard/pkg/layout"
)

func minimalLayout() layout.Layout {
	return layout.Layout{
		Name:           "test",
		Description:    "d",
		Author:         "a",
		Version:        "1.0",
		DefaultPanelID: "main",
		Panels: map[string]layout.Panel{
			"main": {ID: "main", Rows: []layout.Row{
				{Cells: []layout.Cell{layout.NewKey("q", layout.UnicodeKey('q'))}},
			}},
		},
	}
}

func hasWarning(issues []layout.Issue, substr string) bool {
	for _, issue := range issues {
		if issue.Severity == layout.SeverityWarning && strings.Contains(issue.Message, substr) {
			return true
		}
	}
	return false
}

func TestValidateCleanLayout(t *testing.T) {
	_, issues := Validate(minimalLayout())
	if len(issues) != 0 {
		t.Fatalf("clean layout should produce no issues, got %v", issues)
	}
}

func TestValidateMissingMetadata(t *testing.T) {
	l := minimalLayout()
	l.Name = ""
	l.Version = ""
	l.Description = ""
	l.Author = ""
	_, issues := Validate(l)
	for _, want := range []string{
		"layout name is empty",
		"layout version is empty",
		"missing layout description",
		"missing layout author",
	} {
		if !hasWarning(issues, want) {
			t.Errorf("missing warning %q in %v", want, issues)
		}
	}
}

func TestValidateDanglingDefaultPanelIsWarning(t *testing.T) {
	l := minimalLayout()
	l.DefaultPanelID = "nope"
	normalized, issues := Validate(l)
	errs, _ := layout.SplitIssues(issues)
	if len(errs) != 0 {
		t.Fatalf("dangling default panel must stay advisory, got errors %v", errs)
	}
	if !hasWarning(issues, `default panel "nope" does not exist`) {
		t.Fatalf("missing dangling-default warning in %v", issues)
	}
	// The layout itself is untouched; consumers decide the fallback.
	if normalized.DefaultPanelID != "nope" {
		t.Errorf("DefaultPanelID = %q, want preserved", normalized.DefaultPanelID)
	}
}

func TestValidateNormalizesNonPositiveSizing(t *testing.T) {
	l := minimalLayout()
	key := layout.NewKey("q", layout.UnicodeKey('q'))
	key.Width = layout.Relative(-1)
	l.Panels["main"] = layout.Panel{ID: "main", Rows: []layout.Row{{Cells: []layout.Cell{key}}}}

	normalized, issues := Validate(l)
	if !hasWarning(issues, "relative size -1 is not positive") {
		t.Fatalf("missing sizing warning in %v", issues)
	}
	got := normalized.Panels["main"].Rows[0].Cells[0].(layout.Key)
	if got.Width != layout.DefaultSizing() {
		t.Errorf("width = %v, want default substitute", got.Width)
	}
	// Validate works on a copy.
	original := l.Panels["main"].Rows[0].Cells[0].(layout.Key)
	if original.Width != layout.Relative(-1) {
		t.Errorf("input layout was mutated: %v", original.Width)
	}
}

func TestValidateNormalizesBadPixelFormat(t *testing.T) {
	l := minimalLayout()
	key := layout.NewKey("q", layout.UnicodeKey('q'))
	key.Height = layout.Pixels("20")
	l.Panels["main"] = layout.Panel{ID: "main", Rows: []layout.Row{{Cells: []layout.Cell{key}}}}

	normalized, issues := Validate(l)
	if !hasWarning(issues, `invalid pixel format "20"`) {
		t.Fatalf("missing pixel warning in %v", issues)
	}
	got := normalized.Panels["main"].Rows[0].Cells[0].(layout.Key)
	if got.Height != layout.DefaultSizing() {
		t.Errorf("height = %v, want default substitute", got.Height)
	}
}

func TestValidateLargeSizes(t *testing.T) {
	l := minimalLayout()
	key := layout.NewKey("wide", layout.UnicodeKey(' '))
	key.Width = layout.Relative(12)
	key.Height = layout.Relative(6)
	l.Panels["main"] = layout.Panel{ID: "main", Rows: []layout.Row{{Cells: []layout.Cell{key}}}}

	_, issues := Validate(l)
	if !hasWarning(issues, "key width 12 is unusually large") {
		t.Errorf("missing width warning in %v", issues)
	}
	if !hasWarning(issues, "key height 6 is unusually large") {
		t.Errorf("missing height warning in %v", issues)
	}
}

func TestValidateModifierCombos(t *testing.T) {
	l := minimalLayout()
	key := layout.NewKey("q", layout.UnicodeKey('q'))
	key.Alternatives = map[layout.AlternativeKey]layout.Action{
		layout.ModifierCombo(layout.ModShift, layout.ModShift):                                  layout.CharacterAction('Q'),
		layout.ModifierCombo(layout.ModShift, layout.ModCtrl, layout.ModAlt, layout.ModSuper):   layout.CharacterAction('!'),
		layout.ModifierCombo():                                                                  layout.CharacterAction('?'),
	}
	l.Panels["main"] = layout.Panel{ID: "main", Rows: []layout.Row{{Cells: []layout.Cell{key}}}}

	_, issues := Validate(l)
	if !hasWarning(issues, "duplicate modifier Shift in combination") {
		t.Errorf("missing duplicate-modifier warning in %v", issues)
	}
	if !hasWarning(issues, "all four modifiers") {
		t.Errorf("missing all-four warning in %v", issues)
	}
	if !hasWarning(issues, "modifier combination is empty") {
		t.Errorf("missing empty-combo warning in %v", issues)
	}
}

func TestValidateNormalizesModifierCombos(t *testing.T) {
	l := minimalLayout()
	key := layout.NewKey("q", layout.UnicodeKey('q'))
	key.Alternatives = map[layout.AlternativeKey]layout.Action{
		layout.ModifierCombo(layout.ModShift, layout.ModShift): layout.CharacterAction('Q'),
		layout.ModifierCombo():                                 layout.CharacterAction('?'),
		layout.SingleModifier(layout.ModCtrl):                  layout.CharacterAction('c'),
	}
	l.Panels["main"] = layout.Panel{ID: "main", Rows: []layout.Row{{Cells: []layout.Cell{key}}}}

	normalized, _ := Validate(l)
	got := normalized.Panels["main"].Rows[0].Cells[0].(layout.Key)
	if len(got.Alternatives) != 2 {
		t.Fatalf("alternatives = %v, want empty combo dropped and duplicate deduped", got.Alternatives)
	}
	if _, ok := got.Alternatives[layout.ModifierCombo(layout.ModShift)]; !ok {
		t.Errorf("deduplicated combo missing from %v", got.Alternatives)
	}
	if action := got.Alternatives[layout.ModifierCombo(layout.ModShift)]; action != layout.CharacterAction('Q') {
		t.Errorf("action = %v, want the original binding preserved", action)
	}
	if _, ok := got.Alternatives[layout.SingleModifier(layout.ModCtrl)]; !ok {
		t.Errorf("single-modifier entry must survive normalization: %v", got.Alternatives)
	}
	// Validate works on a copy.
	original := l.Panels["main"].Rows[0].Cells[0].(layout.Key)
	if len(original.Alternatives) != 3 {
		t.Errorf("input alternatives were mutated: %v", original.Alternatives)
	}
}

func TestValidateDanglingPanelRefSuggestsSimilar(t *testing.T) {
	l := minimalLayout()
	main := l.Panels["main"]
	main.Rows = append(main.Rows, layout.Row{Cells: []layout.Cell{
		layout.PanelRef{PanelID: "numpda", Width: layout.DefaultSizing(), Height: layout.DefaultSizing()},
	}})
	l.Panels["main"] = main
	l.Panels["numpad"] = layout.Panel{ID: "numpad"}

	_, issues := Validate(l)
	found := false
	for _, issue := range issues {
		if strings.Contains(issue.Message, `panel "numpda" does not exist`) {
			found = true
			if !strings.Contains(issue.Suggestion, `"numpad"`) {
				t.Errorf("suggestion should name the similar panel, got %q", issue.Suggestion)
			}
		}
	}
	if !found {
		t.Fatalf("missing dangling-ref warning in %v", issues)
	}
}

func TestValidateUnreferencedPanel(t *testing.T) {
	l := minimalLayout()
	l.Panels["orphan"] = layout.Panel{ID: "orphan"}
	_, issues := Validate(l)
	if !hasWarning(issues, `panel "orphan" is never referenced`) {
		t.Fatalf("missing unreferenced-panel warning in %v", issues)
	}
}

func TestValidateIssuesAreSorted(t *testing.T) {
	l := minimalLayout()
	l.Name = ""
	l.Author = ""
	_, issues := Validate(l)
	for i := 1; i < len(issues); i++ {
		if issues[i-1].Severity == layout.SeverityWarning && issues[i].Severity == layout.SeverityError {
			t.Fatalf("errors must sort before warnings: %v", issues)
		}
		if issues[i-1].Severity == issues[i].Severity && issues[i-1].FieldPath > issues[i].FieldPath {
			t.Fatalf("issues not sorted by field path: %v", issues)
		}
	}
}
