package layout

// ParseResult is a successfully parsed layout together with the advisory
// issues collected along the way. Warnings never block a parse; callers
// may surface or discard them.
type ParseResult struct {
	Layout   Layout
	Warnings []Issue
}

// HasWarnings reports whether any advisory issues were collected.
func (r *ParseResult) HasWarnings() bool { return len(r.Warnings) > 0 }

// WarningCount returns the number of advisory issues.
func (r *ParseResult) WarningCount() int { return len(r.Warnings) }
