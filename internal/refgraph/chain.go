package refgraph

import (
	"fmt"

	"github.com/cotw-fabier/cosboard/pkg/layout"
)

// MaxInheritanceDepth is the default bound on inheritance chaining.
const MaxInheritanceDepth = 5

// Chain tracks the documents on the current inheritance path. Push
// fails when a document revisits itself (cycle) or sits deeper than the
// limit. Membership is checked against the active path only, so a
// document may legally appear on two separate branches.
type Chain struct {
	limit  int
	path   []string
	active map[string]bool
}

// NewChain returns a Chain bounded at limit inheritance links: the
// first document pushed is depth 0 and does not count against the
// limit, so a chain may hold limit+1 documents.
func NewChain(limit int) *Chain {
	return &Chain{limit: limit, active: map[string]bool{}}
}

// Push adds a document to the path.
func (c *Chain) Push(id string) error {
	if c.active[id] {
		return &layout.CircularReferenceError{
			Message: fmt.Sprintf("layout %q creates a circular inheritance chain", id),
			Chain:   append(append([]string(nil), c.path...), id),
		}
	}
	// The pushed document's depth is the number already on the path.
	if len(c.path) > c.limit {
		return &layout.MaxDepthError{
			Message: "inheritance chain too deep",
			Path:    append(append([]string(nil), c.path...), id),
			Limit:   c.limit,
			Actual:  len(c.path),
		}
	}
	c.path = append(c.path, id)
	c.active[id] = true
	return nil
}

// Pop removes the most recent document.
func (c *Chain) Pop() {
	if len(c.path) == 0 {
		return
	}
	last := c.path[len(c.path)-1]
	c.path = c.path[:len(c.path)-1]
	delete(c.active, last)
}

// Path returns a copy of the current path, root first.
func (c *Chain) Path() []string {
	return append([]string(nil), c.path...)
}

// Len reports the number of documents on the path.
func (c *Chain) Len() int { return len(c.path) }
