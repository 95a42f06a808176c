// Package inherit resolves layout inheritance chains: it loads each
// ancestor document, decodes and checks it, and flattens the chain into
// a single layout with the child's overrides applied.
package inherit

import (
	"context"

	"github.com/cotw-fabier/cosboard/internal/ctxlog"
	"github.com/cotw-fabier/cosboard/internal/decoder"
	"github.com/cotw-fabier/cosboard/internal/refgraph"
	"github.com/cotw-fabier/cosboard/internal/validate"
	"github.com/cotw-fabier/cosboard/pkg/layout"
)

// Resolver flattens inheritance chains. A nil Loader disables
// resolution: layouts that declare a parent come back unchanged with an
// advisory issue, which is the behavior for documents parsed from bare
// strings.
type Resolver struct {
	loader   Loader
	maxDepth int
}

// NewResolver returns a Resolver using loader to fetch ancestors.
// maxDepth bounds the number of inheritance links from the root
// document; values below 1 fall back to the default.
func NewResolver(loader Loader, maxDepth int) *Resolver {
	if maxDepth < 1 {
		maxDepth = refgraph.MaxInheritanceDepth
	}
	return &Resolver{loader: loader, maxDepth: maxDepth}
}

// Resolve flattens the inheritance chain of doc. docPath is the name of
// the document doc was decoded from; it anchors relative parent
// references and seeds cycle detection. Layouts without a parent are
// returned as-is. The returned issues are advisory findings from
// ancestor documents.
func (r *Resolver) Resolve(ctx context.Context, doc layout.Layout, docPath string) (layout.Layout, []layout.Issue, error) {
	if doc.Inherits == "" {
		return doc, nil, nil
	}
	if r.loader == nil {
		issue := layout.NewIssue(layout.SeverityWarning,
			"layout declares inheritance but no document loader is configured; parent not resolved",
			"inherits").
			WithSuggestion("parse from a file, or configure a loader to resolve inheritance")
		return doc, []layout.Issue{issue}, nil
	}

	// The root document seeds the chain at depth 0; only ancestor
	// links count toward the depth limit.
	chain := refgraph.NewChain(r.maxDepth)
	if err := chain.Push(docPath); err != nil {
		return layout.Layout{}, nil, err
	}
	session := &resolveSession{resolver: r, chain: chain}
	resolved, err := session.resolve(ctx, doc, docPath)
	if err != nil {
		return layout.Layout{}, nil, err
	}
	return resolved, session.issues, nil
}

// resolveSession holds per-call state; Resolver itself stays stateless
// and safe for concurrent use.
type resolveSession struct {
	resolver *Resolver
	chain    *refgraph.Chain
	issues   []layout.Issue
}

func (s *resolveSession) resolve(ctx context.Context, doc layout.Layout, docPath string) (layout.Layout, error) {
	if doc.Inherits == "" {
		return doc, nil
	}
	if err := ctx.Err(); err != nil {
		return layout.Layout{}, err
	}

	parentPath := s.resolver.loader.Resolve(docPath, doc.Inherits)
	if err := s.chain.Push(parentPath); err != nil {
		return layout.Layout{}, err
	}
	defer s.chain.Pop()

	ctxlog.From(ctx).Debug("resolving parent layout",
		"child", docPath, "parent", parentPath, "depth", s.chain.Len())

	parent, err := s.loadParent(ctx, parentPath)
	if err != nil {
		return layout.Layout{}, err
	}
	resolvedParent, err := s.resolve(ctx, parent, parentPath)
	if err != nil {
		return layout.Layout{}, err
	}
	return Merge(doc, resolvedParent), nil
}

// loadParent fetches and decodes one ancestor. Decode-stage errors in an
// ancestor are fatal for the whole chain; its advisory findings are
// collected and surfaced with the final result.
func (s *resolveSession) loadParent(ctx context.Context, parentPath string) (layout.Layout, error) {
	data, err := s.resolver.loader.Load(ctx, parentPath)
	if err != nil {
		return layout.Layout{}, &layout.IOError{Path: parentPath, Err: err}
	}
	parent, issues, err := decoder.Decode(data, parentPath)
	if err != nil {
		return layout.Layout{}, err
	}
	errs, warnings := layout.SplitIssues(issues)
	if len(errs) > 0 {
		return layout.Layout{}, &layout.ValidationError{Path: parentPath, Issues: errs}
	}
	s.issues = append(s.issues, warnings...)

	normalized, validationIssues := validate.Validate(parent)
	s.issues = append(s.issues, validationIssues...)
	return normalized, nil
}
