// internal/domain/catalog/tree_test.go
package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tulqinjon2001/zakaz-web-app/internal/backend"
)

func strPtr(s string) *string { return &s }

func sampleCategories() []backend.Category {
	return []backend.Category{
		{ID: "root", Name: "Oziq-ovqat"},
		{ID: "child", Name: "Ichimliklar", ParentID: strPtr("root")},
		{ID: "grandchild", Name: "Sharbatlar", ParentID: strPtr("child")},
		{ID: "greatgrandchild", Name: "Olma sharbati", ParentID: strPtr("grandchild")},
	}
}

func TestBuildTree(t *testing.T) {
	roots := BuildTree(sampleCategories())

	require.Len(t, roots, 1)
	root := roots[0]
	assert.Equal(t, "root", root.ID)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "child", root.Children[0].ID)
	require.Len(t, root.Children[0].Children, 1)
	assert.Equal(t, "grandchild", root.Children[0].Children[0].ID)
}

func TestBuildTreeAssignsIcons(t *testing.T) {
	roots := BuildTree(sampleCategories())

	assert.Equal(t, "utensils-crossed", roots[0].Icon)
	assert.Equal(t, "glass-water", roots[0].Children[0].Icon)
}

func TestBuildTreeDropsOrphans(t *testing.T) {
	roots := BuildTree([]backend.Category{
		{ID: "a", Name: "Visible"},
		{ID: "b", Name: "Orphan", ParentID: strPtr("missing-parent")},
	})

	require.Len(t, roots, 1)
	assert.Equal(t, "a", roots[0].ID)
}

func TestBuildTreeEmptyParentIDIsRoot(t *testing.T) {
	roots := BuildTree([]backend.Category{
		{ID: "a", Name: "Root", ParentID: strPtr("")},
	})

	require.Len(t, roots, 1)
	assert.Equal(t, "a", roots[0].ID)
}

func TestAllCategoryIDsStopsAtGrandchildren(t *testing.T) {
	roots := BuildTree(sampleCategories())
	root := FindNode(roots, "root")
	require.NotNil(t, root)

	ids := AllCategoryIDs(root)
	assert.ElementsMatch(t, []string{"root", "child", "grandchild"}, ids)
	assert.NotContains(t, ids, "greatgrandchild")
}

func TestAllCategoryIDsLeaf(t *testing.T) {
	roots := BuildTree(sampleCategories())
	leaf := FindNode(roots, "greatgrandchild")
	require.NotNil(t, leaf)

	assert.Equal(t, []string{"greatgrandchild"}, AllCategoryIDs(leaf))
}

func TestFindNode(t *testing.T) {
	roots := BuildTree(sampleCategories())

	assert.NotNil(t, FindNode(roots, "grandchild"))
	assert.Nil(t, FindNode(roots, "unknown"))
}
