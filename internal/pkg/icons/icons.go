// internal/pkg/icons/icons.go
package icons

import "strings"

// DefaultIcon is used when no keyword matches a category name
const DefaultIcon = "layout-grid"

// keywordIcons maps category-name keywords to icon names. Order matters:
// the first matching keyword wins.
var keywordIcons = []struct {
	keyword string
	icon    string
}{
	{"ichimlik", "glass-water"},
	{"drink", "glass-water"},
	{"shirinlik", "cake"},
	{"sweet", "cake"},
	{"oziq", "utensils-crossed"},
	{"food", "utensils-crossed"},
	{"fast", "sandwich"},
	{"burger", "sandwich"},
}

// ForCategory resolves the icon name for a category by keyword match on the
// lowercased category name
func ForCategory(name string) string {
	lowered := strings.ToLower(name)
	for _, entry := range keywordIcons {
		if strings.Contains(lowered, entry.keyword) {
			return entry.icon
		}
	}
	return DefaultIcon
}
