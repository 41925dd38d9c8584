// Package devseed loads JSON fixtures used to pre-populate mock backends.
package devseed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Ratio1/grocery_manager_go/internal/groceryapi"
	"github.com/Ratio1/grocery_manager_go/pkg/grocery"
)

// LoadItemSeed reads grocery items from path. The file may hold a bare JSON
// array or the list endpoint's {"result": [...]} envelope, so a captured
// /getdata response can be used as-is.
func LoadItemSeed(path string) ([]grocery.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("devseed: read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	items, err := groceryapi.DecodeList[grocery.Item](data)
	if err != nil {
		return nil, fmt.Errorf("devseed: decode %s: %w", path, err)
	}
	for i, it := range items {
		if it.ID.IsZero() {
			return nil, fmt.Errorf("devseed: %s: entry %d missing id", path, i)
		}
	}
	return items, nil
}

// WriteItemSeed stores items as a JSON array, in the format LoadItemSeed reads.
func WriteItemSeed(path string, items []grocery.Item) error {
	if items == nil {
		items = []grocery.Item{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("devseed: encode: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("devseed: write %s: %w", path, err)
	}
	return nil
}
