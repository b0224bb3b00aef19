package formatter

import (
	"strings"

	"github.com/alexanderramin/bmo/internal/navtree"
	"github.com/charmbracelet/lipgloss"
	"github.com/xlab/treeprint"
)

// RenderNavTree prints the navigation tree with its badges. With routes set,
// each node also shows its route, dimmed.
func RenderNavTree(title string, t navtree.Tree, routes bool) string {
	tree := treeprint.NewWithRoot(StyleHeader.Render(title))
	addNavNodes(tree, t, routes)
	return tree.String()
}

func addNavNodes(branch treeprint.Tree, nodes []navtree.NavNode, routes bool) {
	for i := range nodes {
		n := &nodes[i]
		label := n.Label
		if b := Badge(n.Badge, n.BadgeType); b != "" {
			label += " " + b
		}
		if routes {
			label += "  " + Dim(n.Route)
		}
		if n.IsLeaf() {
			branch.AddNode(label)
			continue
		}
		addNavNodes(branch.AddBranch(label), n.Children, routes)
	}
}

// SidebarItem is one visible line of the TUI sidebar.
type SidebarItem struct {
	Label       string
	Badge       string
	BadgeType   navtree.BadgeType
	Depth       int
	HasChildren bool
	Expanded    bool
	Active      bool // on the active navigation path
	Cursor      bool
}

const (
	markerCollapsed = "▸ "
	markerExpanded  = "▾ "
	markerLeaf      = "  "
)

// RenderSidebar renders sidebar lines, each cut to width visible cells.
func RenderSidebar(items []SidebarItem, width int) string {
	var b strings.Builder
	for _, it := range items {
		cursor := "  "
		if it.Cursor {
			cursor = StyleGreen.Render("› ")
		}
		marker := markerLeaf
		if it.HasChildren {
			marker = markerCollapsed
			if it.Expanded {
				marker = markerExpanded
			}
		}
		style := StyleFg
		if it.Active {
			style = StyleHeader
		}
		indent := strings.Repeat("  ", it.Depth)
		badge := Badge(it.Badge, it.BadgeType)

		room := width - lipgloss.Width(cursor+indent+marker)
		if badge != "" {
			room -= lipgloss.Width(badge) + 1
		}
		line := cursor + indent + Dim(marker) + style.Render(Truncate(it.Label, room))
		if badge != "" {
			line += " " + badge
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
