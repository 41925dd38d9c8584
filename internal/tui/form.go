package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/Ratio1/grocery_manager_go/pkg/inventory"
)

var fieldLabels = map[inventory.Field]string{
	inventory.FieldName:        "Name*",
	inventory.FieldPrice:       "Price (₹)*",
	inventory.FieldDescription: "Description",
	inventory.FieldQuantity:    "Quantity*",
}

var fieldPlaceholders = map[inventory.Field]string{
	inventory.FieldName:        "Item name",
	inventory.FieldPrice:       "0.00",
	inventory.FieldDescription: "Optional",
	inventory.FieldQuantity:    "0",
}

func newFieldInputs() []textinput.Model {
	fields := inventory.Fields()
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = fieldPlaceholders[f]
		in.CharLimit = 64
		in.Width = 32
		if f == inventory.FieldPrice || f == inventory.FieldQuantity {
			in.CharLimit = 16
		}
		inputs[i] = in
	}
	return inputs
}

func newSearchInput() textinput.Model {
	in := textinput.New()
	in.Prompt = "/ "
	in.Placeholder = "Search by name"
	in.CharLimit = 64
	in.Width = 32
	return in
}

// syncInputs copies the view-model draft into the inputs, keeping the cursor
// of inputs whose value did not change.
func syncInputs(inputs []textinput.Model, d inventory.Draft) {
	for i, f := range inventory.Fields() {
		if v := d.Get(f); inputs[i].Value() != v {
			inputs[i].SetValue(v)
		}
	}
}
