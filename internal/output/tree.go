package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	// Tree characters
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// Description alignment column
	descriptionColumn = 40
)

// TreeNode represents a node in a rendered tree. Children render in
// insertion order.
type TreeNode struct {
	Name        string
	Description string
	Children    []*TreeNode
}

// NewTree creates a root node.
func NewTree(name string) *TreeNode {
	return &TreeNode{Name: name}
}

// Add appends a child and returns it.
func (n *TreeNode) Add(name, description string) *TreeNode {
	child := &TreeNode{Name: name, Description: description}
	n.Children = append(n.Children, child)
	return child
}

// RenderTree renders root and its descendants with box-drawing connectors,
// descriptions aligned at a fixed column.
func RenderTree(root *TreeNode) string {
	if root == nil {
		return ""
	}
	var sb strings.Builder
	renderNode(&sb, root, "", true, true)
	return sb.String()
}

// renderNode recursively renders a tree node with proper indentation and styling.
func renderNode(sb *strings.Builder, node *TreeNode, prefix string, isRoot, isLast bool) {
	if isRoot {
		sb.WriteString(StyleNoun.Render(node.Name))
		if node.Description != "" {
			sb.WriteString("  ")
			sb.WriteString(StyleDim.Render(node.Description))
		}
		sb.WriteString("\n")
	} else {
		connector := treeEdge
		if isLast {
			connector = treeLast
		}

		line := prefix + connector + node.Name

		if node.Description != "" {
			padding := descriptionColumn - lipgloss.Width(line)
			if padding < 2 {
				padding = 2
			}
			line += strings.Repeat(" ", padding)
			line += StyleDim.Render(node.Description)
		}

		sb.WriteString(line)
		sb.WriteString("\n")
	}

	for i, child := range node.Children {
		childIsLast := i == len(node.Children)-1

		var childPrefix string
		switch {
		case isRoot:
			childPrefix = ""
		case isLast:
			childPrefix = prefix + treeSpace
		default:
			childPrefix = prefix + treeVert
		}

		renderNode(sb, child, childPrefix, false, childIsLast)
	}
}
