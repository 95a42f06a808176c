package parser

import (
	"io/fs"
	"log/slog"

	"github.com/cotw-fabier/cosboard/internal/inherit"
	"github.com/cotw-fabier/cosboard/internal/refgraph"
)

// Option configures a Parser.
type Option func(*Parser)

// WithLoader sets the loader used to fetch parent documents during
// inheritance resolution. Configuring a loader also enables inheritance
// resolution for Parse, which otherwise leaves parents unresolved.
func WithLoader(loader inherit.Loader) Option {
	return func(p *Parser) {
		p.loader = loader
	}
}

// WithFileSystem reads layout documents and their parents from fsys
// instead of the operating-system filesystem. Paths use fs.FS rules:
// slash-separated, no leading slash.
func WithFileSystem(fsys fs.FS) Option {
	return func(p *Parser) {
		p.fsys = fsys
		p.loader = inherit.FSLoader{FS: fsys}
	}
}

// WithMaxInheritanceDepth bounds how many inheritance links a document
// may follow; the document itself sits at depth 0. The default is 5.
func WithMaxInheritanceDepth(n int) Option {
	return func(p *Parser) {
		p.maxInheritanceDepth = n
	}
}

// WithMaxNestingDepth bounds panel embedding depth. The default is 5.
func WithMaxNestingDepth(n int) Option {
	return func(p *Parser) {
		p.maxNestingDepth = n
	}
}

// WithLogger sets the structured logger for parse tracing. The default
// discards nothing and uses slog's process default.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

func defaultParser() *Parser {
	return &Parser{
		maxInheritanceDepth: refgraph.MaxInheritanceDepth,
		maxNestingDepth:     refgraph.MaxNestingDepth,
		logger:              slog.Default(),
	}
}
