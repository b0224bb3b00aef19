// Package navtree holds the static navigation tree of the alert center and
// read-only queries over it.
//
// Lookups never fail loudly: an unknown id or route yields nil (or an empty
// path) and the caller picks its own fallback.
package navtree

// BadgeType selects how a node badge is highlighted.
type BadgeType string

const (
	BadgeDefault  BadgeType = "default"
	BadgeWarning  BadgeType = "warning"
	BadgeCritical BadgeType = "critical"
)

// NavNode is one entry of the navigation tree.
type NavNode struct {
	ID        string
	Label     string
	Route     string
	Badge     string // empty means no badge
	BadgeType BadgeType
	Children  []NavNode
}

// Tree is the forest of top-level categories.
type Tree []NavNode

// IsLeaf reports whether the node has no children.
func (n *NavNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// Clone returns a deep copy of the tree.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for i, n := range t {
		out[i] = n.clone()
	}
	return out
}

func (n NavNode) clone() NavNode {
	if len(n.Children) > 0 {
		n.Children = []NavNode(Tree(n.Children).Clone())
	}
	return n
}
