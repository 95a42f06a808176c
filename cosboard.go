// Package cosboard parses declarative keyboard layout documents into
// validated, fully resolved layouts. The root package re-exports the
// model types and offers the two simplest entry points; callers needing
// custom loaders, depth bounds or logging use pkg/parser directly.
package cosboard

import (
	"context"

	"github.com/cotw-fabier/cosboard/pkg/layout"
	"github.com/cotw-fabier/cosboard/pkg/parser"
)

// Layout is the root document type; aliased here for convenience.
type Layout = layout.Layout

// Panel is one named group of rows.
type Panel = layout.Panel

// Row is an ordered sequence of cells.
type Row = layout.Row

// Cell is one slot in a row: Key, Widget or PanelRef.
type Cell = layout.Cell

// Key is a keyboard key definition.
type Key = layout.Key

// Widget is an embedded UI component.
type Widget = layout.Widget

// PanelRef embeds another panel.
type PanelRef = layout.PanelRef

// ParseResult is a parsed layout plus advisory warnings.
type ParseResult = layout.ParseResult

// Issue is one validation finding.
type Issue = layout.Issue

// NewParser exposes the parser constructor from the root package.
func NewParser(options ...parser.Option) *parser.Parser {
	return parser.New(options...)
}

// ParseLayoutFile reads, parses and fully resolves the layout document
// at path, following inheritance references relative to it.
func ParseLayoutFile(ctx context.Context, path string, options ...parser.Option) (*ParseResult, error) {
	return parser.New(options...).ParseFile(ctx, path)
}

// ParseLayoutFromString parses a layout document held in memory.
// Inheritance is resolved only when a loader option is supplied; a
// bare string has no location to anchor parent references.
func ParseLayoutFromString(ctx context.Context, document string, options ...parser.Option) (*ParseResult, error) {
	return parser.New(options...).Parse(ctx, []byte(document))
}
