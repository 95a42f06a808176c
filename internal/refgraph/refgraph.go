// Package refgraph analyzes the panel-embedding graph of a layout:
// cycle detection, nesting-depth computation and depth enforcement. It
// also provides the Chain tracker the inheritance resolver uses for the
// same bookkeeping across documents.
//
// All traversals run on explicit stacks so a hostile document cannot
// overflow the goroutine stack.
package refgraph

import (
	"fmt"
	"sort"

	"github.com/cotw-fabier/cosboard/pkg/layout"
)

// MaxNestingDepth is the default bound on panel embedding.
const MaxNestingDepth = 5

// Analyze checks the embedding graph and returns a copy of the layout
// with NestingDepth filled in on every panel. A cycle yields a
// *layout.CircularReferenceError; a chain deeper than maxDepth yields a
// *layout.MaxDepthError. References to missing panels are not errors
// here (the validator already flagged them); they contribute depth 0.
func Analyze(l layout.Layout, maxDepth int) (layout.Layout, error) {
	a := &analyzer{
		layout:   l.Clone(),
		maxDepth: maxDepth,
		refs:     map[string][]string{},
		memo:     map[string]uint8{},
	}
	for id, panel := range a.layout.Panels {
		a.refs[id] = panelRefs(panel)
	}
	if err := a.detectCycles(); err != nil {
		return layout.Layout{}, err
	}
	for _, id := range a.panelIDs() {
		depth, err := a.depth(id)
		if err != nil {
			return layout.Layout{}, err
		}
		panel := a.layout.Panels[id]
		panel.NestingDepth = depth
		a.layout.Panels[id] = panel
	}
	return a.layout, nil
}

// Depths returns the nesting depth of every panel without mutating the
// input. Used by inspection tooling.
func Depths(l layout.Layout, maxDepth int) (map[string]uint8, error) {
	analyzed, err := Analyze(l, maxDepth)
	if err != nil {
		return nil, err
	}
	depths := make(map[string]uint8, len(analyzed.Panels))
	for id, panel := range analyzed.Panels {
		depths[id] = panel.NestingDepth
	}
	return depths, nil
}

type analyzer struct {
	layout   layout.Layout
	maxDepth int
	refs     map[string][]string
	memo     map[string]uint8
}

// frame is one level of the explicit DFS stack; next indexes the
// panel's reference list.
type frame struct {
	id   string
	next int
}

// detectCycles runs depth-first search over the embedding graph.
func (a *analyzer) detectCycles() error {
	visited := map[string]bool{}
	for _, start := range a.panelIDs() {
		if visited[start] {
			continue
		}
		onStack := map[string]bool{}
		stack := []frame{{id: start}}
		visited[start] = true
		onStack[start] = true
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			refs := a.refs[top.id]
			if top.next >= len(refs) {
				onStack[top.id] = false
				stack = stack[:len(stack)-1]
				continue
			}
			ref := refs[top.next]
			top.next++
			if onStack[ref] {
				return &layout.CircularReferenceError{
					Message: fmt.Sprintf("panel %q creates a circular reference", ref),
					Chain:   cycleChain(stack, ref),
				}
			}
			if _, exists := a.layout.Panels[ref]; !exists || visited[ref] {
				continue
			}
			visited[ref] = true
			onStack[ref] = true
			stack = append(stack, frame{id: ref})
		}
	}
	return nil
}

// cycleChain extracts the closing cycle from the DFS stack, repeating
// the entry node at the end.
func cycleChain(stack []frame, ref string) []string {
	start := 0
	for i, f := range stack {
		if f.id == ref {
			start = i
			break
		}
	}
	chain := make([]string, 0, len(stack)-start+1)
	for _, f := range stack[start:] {
		chain = append(chain, f.id)
	}
	return append(chain, ref)
}

// depth computes the nesting depth of one panel with post-order DFS.
// A panel embedding nothing has depth 0; otherwise depth is one more
// than the deepest embedded panel. Cycles have already been ruled out.
func (a *analyzer) depth(root string) (uint8, error) {
	if d, done := a.memo[root]; done {
		return d, nil
	}
	stack := []frame{{id: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		refs := a.refs[top.id]
		if top.next < len(refs) {
			child := refs[top.next]
			top.next++
			if _, done := a.memo[child]; done {
				continue
			}
			if _, exists := a.layout.Panels[child]; !exists {
				a.memo[child] = 0
				continue
			}
			stack = append(stack, frame{id: child})
			continue
		}
		var maxChild uint8
		for _, child := range refs {
			if d := a.memo[child]; d > maxChild {
				maxChild = d
			}
		}
		var depth uint8
		if len(refs) > 0 {
			depth = 1 + maxChild
		}
		if int(depth) > a.maxDepth {
			return 0, &layout.MaxDepthError{
				Message: fmt.Sprintf("panel %q nesting depth too deep", top.id),
				Path:    stackPath(stack),
				Limit:   a.maxDepth,
				Actual:  int(depth),
			}
		}
		a.memo[top.id] = depth
		stack = stack[:len(stack)-1]
	}
	return a.memo[root], nil
}

func stackPath(stack []frame) []string {
	path := make([]string, len(stack))
	for i, f := range stack {
		path[i] = f.id
	}
	return path
}

func (a *analyzer) panelIDs() []string {
	ids := make([]string, 0, len(a.layout.Panels))
	for id := range a.layout.Panels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func panelRefs(p layout.Panel) []string {
	var refs []string
	for _, row := range p.Rows {
		for _, cell := range row.Cells {
			if ref, ok := cell.(layout.PanelRef); ok {
				refs = append(refs, ref.PanelID)
			}
		}
	}
	return refs
}
