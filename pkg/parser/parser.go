// Package parser is the front door of the layout compiler. It wires the
// pipeline together: decode, advisory validation, inheritance
// resolution, reference-graph analysis, and a final validation of the
// flattened result. Successful parses return an immutable layout plus
// the advisory issues collected along the way; fatal problems come back
// as typed errors.
package parser

import (
	"context"
	"io/fs"
	"log/slog"
	"os"

	"github.com/cotw-fabier/cosboard/internal/ctxlog"
	"github.com/cotw-fabier/cosboard/internal/decoder"
	"github.com/cotw-fabier/cosboard/internal/inherit"
	"github.com/cotw-fabier/cosboard/internal/refgraph"
	"github.com/cotw-fabier/cosboard/internal/validate"
	"github.com/cotw-fabier/cosboard/pkg/layout"
)

// Parser parses layout documents. The zero configuration reads files
// from the operating-system filesystem and resolves inheritance
// relative to the parsed document. A Parser is immutable after New and
// safe for concurrent use.
type Parser struct {
	fsys                fs.FS
	loader              inherit.Loader
	maxInheritanceDepth int
	maxNestingDepth     int
	logger              *slog.Logger
}

// New returns a Parser with the given options applied.
func New(opts ...Option) *Parser {
	p := defaultParser()
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile reads, parses and fully resolves the layout document at
// path. Inheritance references are resolved relative to the document.
func (p *Parser) ParseFile(ctx context.Context, path string) (*layout.ParseResult, error) {
	data, err := p.readFile(ctx, path)
	if err != nil {
		return nil, &layout.IOError{Path: path, Err: err}
	}
	loader := p.loader
	if loader == nil {
		loader = inherit.OSLoader{}
	}
	return p.parse(ctx, data, path, loader)
}

// Parse parses a layout document held in memory. Without a configured
// loader, a document that declares inheritance comes back with its
// parent unresolved and a warning saying so; there is no document
// location to anchor the parent reference.
func (p *Parser) Parse(ctx context.Context, data []byte) (*layout.ParseResult, error) {
	return p.parse(ctx, data, "", p.loader)
}

func (p *Parser) parse(ctx context.Context, data []byte, path string, loader inherit.Loader) (*layout.ParseResult, error) {
	ctx = ctxlog.With(ctx, p.logger)
	log := p.logger.With("path", path)

	doc, issues, err := decoder.Decode(data, path)
	if err != nil {
		return nil, err
	}
	errs, warnings := layout.SplitIssues(issues)
	if len(errs) > 0 {
		return nil, &layout.ValidationError{Path: path, Issues: errs}
	}

	normalized, validationIssues := validate.Validate(doc)
	warnings = append(warnings, validationIssues...)
	log.Debug("layout decoded", "panels", len(normalized.Panels), "warnings", len(warnings))

	hadParent := normalized.Inherits != ""
	resolver := inherit.NewResolver(loader, p.maxInheritanceDepth)
	resolved, resolveIssues, err := resolver.Resolve(ctx, normalized, path)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, resolveIssues...)

	if hadParent && resolved.Inherits == "" {
		// The flattened layout is a new document; check it as a whole.
		resolved, validationIssues = validate.Validate(resolved)
		warnings = append(warnings, validationIssues...)
		log.Debug("inheritance resolved", "panels", len(resolved.Panels))
	}

	analyzed, err := refgraph.Analyze(resolved, p.maxNestingDepth)
	if err != nil {
		return nil, err
	}

	warnings = dedupIssues(warnings)
	layout.SortIssues(warnings)
	return &layout.ParseResult{Layout: analyzed, Warnings: warnings}, nil
}

func (p *Parser) readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.fsys != nil {
		return fs.ReadFile(p.fsys, path)
	}
	return os.ReadFile(path)
}

// dedupIssues removes exact repeats. Validating both the document and
// its flattened form reports shared findings twice; one is enough.
func dedupIssues(issues []layout.Issue) []layout.Issue {
	type issueKey struct {
		severity  layout.Severity
		message   string
		fieldPath string
	}
	seen := map[issueKey]bool{}
	out := issues[:0]
	for _, issue := range issues {
		k := issueKey{issue.Severity, issue.Message, issue.FieldPath}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, issue)
	}
	return out
}
