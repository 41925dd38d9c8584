package grocery

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when the backend has no item with the given id.
	ErrNotFound = errors.New("grocery: item not found")
	// ErrConflict is returned when an item with the same id already exists.
	ErrConflict = errors.New("grocery: item already exists")
	// ErrMissingID is returned when a write targets an empty id.
	ErrMissingID = errors.New("grocery: item id is required")
)

// ID identifies an item. Backends in the wild return ids either as JSON
// numbers (millisecond timestamps) or strings, so both decode into ID.
type ID string

// String implements fmt.Stringer.
func (id ID) String() string { return string(id) }

// IsZero reports whether the id is empty.
func (id ID) IsZero() bool { return strings.TrimSpace(string(id)) == "" }

// MarshalJSON writes ids that decoded from a JSON number back as that same
// number literal, so 1.5e3 stays 1.5e3. The decoded form does not record the
// original JSON type: a string id that happens to read as a number literal,
// such as "-1" or "1.5e3", is also written as a number. Integers longer than
// 18 digits and ids with leading zeros stay strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if isNumberLiteral(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a JSON string, a JSON number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("grocery: invalid id %s", data)
		}
		*id = ID(n.String())
		return nil
	}
}

func isNumberLiteral(s string) bool {
	if s == "" || s != strings.TrimSpace(s) || (s[0] != '-' && (s[0] < '0' || s[0] > '9')) {
		return false
	}
	if !json.Valid([]byte(s)) {
		return false
	}
	if strings.ContainsAny(s, ".eE") {
		return true
	}
	return len(strings.TrimPrefix(s, "-")) <= 18
}

// Item is a single grocery record. Price and Quantity are decimals so money
// values round-trip exactly.
type Item struct {
	ID          ID              `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
}

type itemWire struct {
	ID          ID              `json:"id"`
	Name        string          `json:"name"`
	Price       json.RawMessage `json:"price"`
	Description string          `json:"description"`
	Quantity    json.RawMessage `json:"quantity"`
}

// MarshalJSON writes price and quantity as JSON numbers.
func (it Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(itemWire{
		ID:          it.ID,
		Name:        it.Name,
		Price:       json.RawMessage(it.Price.String()),
		Description: it.Description,
		Quantity:    json.RawMessage(it.Quantity.String()),
	})
}

// UnmarshalJSON accepts numerics encoded as numbers or as strings, since the
// web form this backend was built for posts raw input values. Empty strings
// and null decode to zero.
func (it *Item) UnmarshalJSON(data []byte) error {
	var w itemWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	price, err := parseNumeric(w.Price)
	if err != nil {
		return fmt.Errorf("grocery: item %s: price: %w", w.ID, err)
	}
	quantity, err := parseNumeric(w.Quantity)
	if err != nil {
		return fmt.Errorf("grocery: item %s: quantity: %w", w.ID, err)
	}
	*it = Item{
		ID:          w.ID,
		Name:        w.Name,
		Price:       price,
		Description: w.Description,
		Quantity:    quantity,
	}
	return nil
}

func parseNumeric(raw json.RawMessage) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero, nil
	}
	s := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return decimal.Zero, nil
		}
	}
	return decimal.NewFromString(s)
}
