package navtree

import "strings"

// FindByID returns the first node with the given id in depth-first order,
// or nil. The returned pointer aliases the node inside t.
func FindByID(t Tree, id string) *NavNode {
	if id == "" {
		return nil
	}
	return find(t, func(n *NavNode) bool { return n.ID == id })
}

// FindByRoute returns the node whose route equals route, ignoring trailing
// slashes, or nil.
func FindByRoute(t Tree, route string) *NavNode {
	route = normalizeRoute(route)
	if route == "" {
		return nil
	}
	return find(t, func(n *NavNode) bool { return normalizeRoute(n.Route) == route })
}

// PathTo returns the chain of nodes from a top-level category down to the
// node with the given id, inclusive. It returns nil when id is not in t.
func PathTo(t Tree, id string) []NavNode {
	if id == "" {
		return nil
	}
	var path []NavNode
	if !pathTo(t, id, &path) {
		return nil
	}
	return path
}

func pathTo(nodes []NavNode, id string, path *[]NavNode) bool {
	for i := range nodes {
		*path = append(*path, nodes[i])
		if nodes[i].ID == id || pathTo(nodes[i].Children, id, path) {
			return true
		}
		*path = (*path)[:len(*path)-1]
	}
	return false
}

// Walk visits every node in pre-order. depth is 0 for top-level nodes.
// Returning false from fn skips the node's children.
func Walk(t Tree, fn func(n *NavNode, depth int) bool) {
	walk(t, 0, fn)
}

func walk(nodes []NavNode, depth int, fn func(n *NavNode, depth int) bool) {
	for i := range nodes {
		if fn(&nodes[i], depth) {
			walk(nodes[i].Children, depth+1, fn)
		}
	}
}

// IDs returns every node id in pre-order.
func IDs(t Tree) []string {
	var ids []string
	Walk(t, func(n *NavNode, _ int) bool {
		ids = append(ids, n.ID)
		return true
	})
	return ids
}

func find(nodes []NavNode, pred func(*NavNode) bool) *NavNode {
	for i := range nodes {
		if pred(&nodes[i]) {
			return &nodes[i]
		}
		if n := find(nodes[i].Children, pred); n != nil {
			return n
		}
	}
	return nil
}

func normalizeRoute(r string) string {
	r = strings.TrimSpace(r)
	if len(r) > 1 {
		r = strings.TrimRight(r, "/")
	}
	return r
}
