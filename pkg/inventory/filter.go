package inventory

import (
	"strings"

	"github.com/Ratio1/grocery_manager_go/pkg/grocery"
)

// FilterByName returns the items whose name contains filter, ignoring case,
// in their original order. An empty filter returns every item. The result
// never aliases items.
func FilterByName(items []grocery.Item, filter string) []grocery.Item {
	needle := strings.ToLower(filter)
	out := make([]grocery.Item, 0, len(items))
	for _, it := range items {
		if needle == "" || strings.Contains(strings.ToLower(it.Name), needle) {
			out = append(out, it)
		}
	}
	return out
}
