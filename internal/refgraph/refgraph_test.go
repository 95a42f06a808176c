package refgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotw-fabier/cosboard/pkg/layout"
)

func panelWithRefs(id string, refs ...string) layout.Panel {
	row := layout.Row{}
	for _, ref := range refs {
		row.Cells = append(row.Cells, layout.PanelRef{
			PanelID: ref,
			Width:   layout.DefaultSizing(),
			Height:  layout.DefaultSizing(),
		})
	}
	return layout.Panel{ID: id, Rows: []layout.Row{row}}
}

func graph(panels ...layout.Panel) layout.Layout {
	l := layout.Layout{Name: "g", Version: "1", Panels: map[string]layout.Panel{}}
	for _, p := range panels {
		l.Panels[p.ID] = p
	}
	return l
}

func TestAnalyzeDetectsCycle(t *testing.T) {
	l := graph(
		panelWithRefs("main", "panel_a"),
		panelWithRefs("panel_a", "panel_b"),
		panelWithRefs("panel_b", "main"),
	)
	_, err := Analyze(l, MaxNestingDepth)
	require.Error(t, err)

	var circular *layout.CircularReferenceError
	require.ErrorAs(t, err, &circular)
	require.GreaterOrEqual(t, len(circular.Chain), 4)
	assert.Equal(t, circular.Chain[0], circular.Chain[len(circular.Chain)-1],
		"chain should close on the entry node")
	assert.Contains(t, err.Error(), "->")
}

func TestAnalyzeSelfReference(t *testing.T) {
	l := graph(panelWithRefs("main", "main"))
	_, err := Analyze(l, MaxNestingDepth)
	var circular *layout.CircularReferenceError
	require.ErrorAs(t, err, &circular)
	assert.Equal(t, []string{"main", "main"}, circular.Chain)
}

func TestAnalyzeComputesDepths(t *testing.T) {
	l := graph(
		panelWithRefs("leaf"),
		panelWithRefs("mid", "leaf"),
		panelWithRefs("top", "mid", "leaf"),
	)
	analyzed, err := Analyze(l, MaxNestingDepth)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), analyzed.Panels["leaf"].NestingDepth)
	assert.Equal(t, uint8(1), analyzed.Panels["mid"].NestingDepth)
	assert.Equal(t, uint8(2), analyzed.Panels["top"].NestingDepth)
}

func TestAnalyzeDiamondIsLegal(t *testing.T) {
	// Two paths to the same panel is sharing, not a cycle.
	l := graph(
		panelWithRefs("shared"),
		panelWithRefs("left", "shared"),
		panelWithRefs("right", "shared"),
		panelWithRefs("top", "left", "right"),
	)
	analyzed, err := Analyze(l, MaxNestingDepth)
	require.NoError(t, err)
	assert.Equal(t, uint8(2), analyzed.Panels["top"].NestingDepth)
}

func TestAnalyzeDanglingRefContributesZero(t *testing.T) {
	l := graph(panelWithRefs("main", "missing"))
	analyzed, err := Analyze(l, MaxNestingDepth)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), analyzed.Panels["main"].NestingDepth)
}

func TestAnalyzeEnforcesMaxDepth(t *testing.T) {
	l := graph(
		panelWithRefs("p0", "p1"),
		panelWithRefs("p1", "p2"),
		panelWithRefs("p2", "p3"),
		panelWithRefs("p3", "p4"),
		panelWithRefs("p4", "p5"),
		panelWithRefs("p5", "p6"),
		panelWithRefs("p6"),
	)
	_, err := Analyze(l, MaxNestingDepth)
	var tooDeep *layout.MaxDepthError
	require.ErrorAs(t, err, &tooDeep)
	assert.Equal(t, MaxNestingDepth, tooDeep.Limit)
	assert.Greater(t, tooDeep.Actual, tooDeep.Limit)
}

func TestAnalyzeDepthAtLimitPasses(t *testing.T) {
	l := graph(
		panelWithRefs("p0", "p1"),
		panelWithRefs("p1", "p2"),
		panelWithRefs("p2", "p3"),
		panelWithRefs("p3", "p4"),
		panelWithRefs("p4", "p5"),
		panelWithRefs("p5"),
	)
	analyzed, err := Analyze(l, MaxNestingDepth)
	require.NoError(t, err)
	assert.Equal(t, uint8(MaxNestingDepth), analyzed.Panels["p0"].NestingDepth)
}

func TestAnalyzeDoesNotMutateInput(t *testing.T) {
	l := graph(panelWithRefs("mid", "leaf"), panelWithRefs("leaf"))
	_, err := Analyze(l, MaxNestingDepth)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), l.Panels["mid"].NestingDepth)
}

func TestChainDetectsCycle(t *testing.T) {
	chain := NewChain(MaxInheritanceDepth)
	require.NoError(t, chain.Push("child.json"))
	require.NoError(t, chain.Push("parent.json"))

	err := chain.Push("child.json")
	var circular *layout.CircularReferenceError
	require.ErrorAs(t, err, &circular)
	assert.Equal(t, []string{"child.json", "parent.json", "child.json"}, circular.Chain)
}

func TestChainAllowsRevisitAfterPop(t *testing.T) {
	// The same document on two sibling branches is legal.
	chain := NewChain(MaxInheritanceDepth)
	require.NoError(t, chain.Push("a"))
	require.NoError(t, chain.Push("b"))
	chain.Pop()
	require.NoError(t, chain.Push("b"))
}

func TestChainEnforcesLimit(t *testing.T) {
	// The root sits at depth 0, so a limit of 2 admits three documents.
	chain := NewChain(2)
	require.NoError(t, chain.Push("a"))
	require.NoError(t, chain.Push("b"))
	require.NoError(t, chain.Push("c"))

	err := chain.Push("d")
	var tooDeep *layout.MaxDepthError
	require.ErrorAs(t, err, &tooDeep)
	assert.Equal(t, 2, tooDeep.Limit)
	assert.Equal(t, 3, tooDeep.Actual)
	assert.Equal(t, []string{"a", "b", "c", "d"}, tooDeep.Path)
}
