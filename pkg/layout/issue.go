package layout

import (
	"fmt"
	"sort"
	"strings"
)

// Severity classifies a validation issue.
type Severity uint8

const (
	// SeverityError marks a fatal issue; the parse fails if any remain
	// after defaulting.
	SeverityError Severity = iota
	// SeverityWarning marks an advisory issue; a default has been
	// substituted and the layout is still usable.
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityError {
		return "ERROR"
	}
	return "WARNING"
}

// Issue is one problem discovered while validating a layout document.
type Issue struct {
	Severity Severity

	// Message is a human-readable description.
	Message string

	// Line is the 1-based source line, 0 when unknown.
	Line int

	// FieldPath locates the offending field, e.g.
	// `panels["main"].rows[0].cells[2].width`.
	FieldPath string

	// Suggestion optionally tells the author how to fix it.
	Suggestion string
}

// NewIssue constructs an Issue for the given field path.
func NewIssue(severity Severity, message, fieldPath string) Issue {
	return Issue{Severity: severity, Message: message, FieldPath: fieldPath}
}

// WithLine returns a copy carrying a source line number.
func (i Issue) WithLine(line int) Issue {
	i.Line = line
	return i
}

// WithSuggestion returns a copy carrying a fix suggestion.
func (i Issue) WithSuggestion(suggestion string) Issue {
	i.Suggestion = suggestion
	return i
}

func (i Issue) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", i.Severity, i.FieldPath, i.Message)
	if i.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", i.Line)
	}
	if i.Suggestion != "" {
		fmt.Fprintf(&b, "\n  Suggestion: %s", i.Suggestion)
	}
	return b.String()
}

// SortIssues orders issues errors-first, then by field path. The sort is
// stable so issues on the same field keep discovery order.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(a, b int) bool {
		if issues[a].Severity != issues[b].Severity {
			return issues[a].Severity == SeverityError
		}
		return issues[a].FieldPath < issues[b].FieldPath
	})
}

// SplitIssues partitions issues into fatal errors and advisory warnings.
func SplitIssues(issues []Issue) (errs, warnings []Issue) {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			errs = append(errs, issue)
		} else {
			warnings = append(warnings, issue)
		}
	}
	return errs, warnings
}
