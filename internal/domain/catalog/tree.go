// internal/domain/catalog/tree.go
package catalog

import (
	"github.com/tulqinjon2001/zakaz-web-app/internal/backend"
	"github.com/tulqinjon2001/zakaz-web-app/internal/pkg/icons"
)

// Node is a category tree node. The tree is rebuilt from scratch whenever
// the category list changes and never mutated in place.
type Node struct {
	backend.Category
	Icon     string  `json:"icon"`
	Children []*Node `json:"children,omitempty"`
}

// BuildTree builds a category forest from a flat category list. A category
// whose parent is missing from the list is dropped, matching the web
// client's tree construction.
func BuildTree(categories []backend.Category) []*Node {
	nodes := make(map[string]*Node, len(categories))
	for _, cat := range categories {
		nodes[cat.ID] = &Node{
			Category: cat,
			Icon:     icons.ForCategory(cat.Name),
		}
	}

	var roots []*Node
	for _, cat := range categories {
		node := nodes[cat.ID]
		if cat.ParentID != nil && *cat.ParentID != "" {
			if parent, ok := nodes[*cat.ParentID]; ok {
				parent.Children = append(parent.Children, node)
			}
		} else {
			roots = append(roots, node)
		}
	}

	return roots
}

// AllCategoryIDs returns the ids a category selection covers: the node
// itself, its direct children and its grandchildren. Deeper descendants are
// NOT included; this two-level limit is a known limitation carried over
// from the web client, not a feature.
func AllCategoryIDs(node *Node) []string {
	ids := []string{node.ID}
	for _, child := range node.Children {
		ids = append(ids, child.ID)
		for _, grandchild := range child.Children {
			ids = append(ids, grandchild.ID)
		}
	}
	return ids
}

// FindNode locates a category node by id anywhere in the forest
func FindNode(roots []*Node, id string) *Node {
	for _, root := range roots {
		if root.ID == id {
			return root
		}
		if found := FindNode(root.Children, id); found != nil {
			return found
		}
	}
	return nil
}
