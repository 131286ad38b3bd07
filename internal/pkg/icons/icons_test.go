// internal/pkg/icons/icons_test.go
package icons

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForCategory(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Ichimliklar", "glass-water"},
		{"Soft Drinks", "glass-water"},
		{"Shirinliklar", "cake"},
		{"Sweets", "cake"},
		{"Oziq-ovqat", "utensils-crossed"},
		{"Food", "utensils-crossed"},
		{"Fast food", "utensils-crossed"},
		{"Burgerlar", "sandwich"},
		{"Elektronika", "layout-grid"},
		{"", "layout-grid"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ForCategory(tc.name))
		})
	}
}
