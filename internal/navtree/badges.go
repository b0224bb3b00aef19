package navtree

import "strconv"

// WithBadges returns a copy of t whose badges show counts[node.ID].
// Nodes without a positive count lose their badge. t is left untouched.
func WithBadges(t Tree, counts map[string]int) Tree {
	out := t.Clone()
	Walk(out, func(n *NavNode, _ int) bool {
		if c := counts[n.ID]; c > 0 {
			n.Badge = strconv.Itoa(c)
		} else {
			n.Badge = ""
		}
		return true
	})
	return out
}
