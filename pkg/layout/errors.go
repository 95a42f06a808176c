package layout

import (
	"fmt"
	"strings"
)

// IOError reports a failure to read a layout document. It is distinct
// from SyntaxError so callers can give different guidance (check the
// path vs. fix the document).
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("layout: reading %q: %v\n  Suggestion: check that the file exists and is readable", e.Path, e.Err)
	}
	return fmt.Sprintf("layout: read error: %v", e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// SyntaxError reports malformed document text. Always fatal.
type SyntaxError struct {
	Path string
	Line int
	Err  error
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	b.WriteString("layout: syntax error")
	if e.Path != "" {
		fmt.Fprintf(&b, " in %q", e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	fmt.Fprintf(&b, ": %v\n  Suggestion: check the document syntax at the indicated line", e.Err)
	return b.String()
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// ValidationError reports fatal structural issues. Only Error-severity
// issues appear here; warnings travel with the ParseResult instead.
type ValidationError struct {
	Path   string
	Issues []Issue
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("layout: validation failed")
	if e.Path != "" {
		fmt.Fprintf(&b, " for %q", e.Path)
	}
	fmt.Fprintf(&b, " with %d issue(s):", len(e.Issues))
	for i, issue := range e.Issues {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, issue)
	}
	return b.String()
}

// CircularReferenceError reports a cycle in the panel-embedding graph or
// the inheritance graph. Chain holds the full reference path that closed
// the cycle, first node repeated at the end.
type CircularReferenceError struct {
	Message string
	Chain   []string
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("layout: circular reference: %s\n  Dependency chain: %s\n  Suggestion: remove or break the circular dependency",
		e.Message, strings.Join(e.Chain, " -> "))
}

// MaxDepthError reports that panel nesting or inheritance chaining
// exceeded its bound. Path holds the chain that overran the limit.
type MaxDepthError struct {
	Message string
	Path    []string
	Limit   int
	Actual  int
}

func (e *MaxDepthError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "layout: maximum depth exceeded: %s (limit: %d, actual: %d)", e.Message, e.Limit, e.Actual)
	if len(e.Path) > 0 {
		fmt.Fprintf(&b, "\n  Path: %s", strings.Join(e.Path, " -> "))
	}
	fmt.Fprintf(&b, "\n  Suggestion: reduce nesting depth to %d or less", e.Limit)
	return b.String()
}
