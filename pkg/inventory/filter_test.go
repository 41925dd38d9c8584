package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ratio1/grocery_manager_go/pkg/grocery"
)

func names(items []grocery.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func TestFilterByName(t *testing.T) {
	items := []grocery.Item{{ID: "1", Name: "Rice"}, {ID: "2", Name: "Brown Rice"}, {ID: "3", Name: "Milk"}}

	tests := []struct {
		filter string
		want   []string
	}{
		{"", []string{"Rice", "Brown Rice", "Milk"}},
		{"ri", []string{"Rice", "Brown Rice"}},
		{"RICE", []string{"Rice", "Brown Rice"}},
		{"ilk", []string{"Milk"}},
		{"xyz", []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.filter, func(t *testing.T) {
			assert.Equal(t, tc.want, names(FilterByName(items, tc.filter)))
		})
	}
}

func TestFilterByNameDoesNotAlias(t *testing.T) {
	items := []grocery.Item{{ID: "1", Name: "Rice"}}
	out := FilterByName(items, "")
	out[0].Name = "changed"
	assert.Equal(t, "Rice", items[0].Name)
}
