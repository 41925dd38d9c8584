package inventory

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Ratio1/grocery_manager_go/pkg/grocery"
)

// Field names one editable form field.
type Field string

const (
	FieldName        Field = "name"
	FieldPrice       Field = "price"
	FieldDescription Field = "description"
	FieldQuantity    Field = "quantity"
)

// Fields lists the form fields in display order.
func Fields() []Field {
	return []Field{FieldName, FieldPrice, FieldDescription, FieldQuantity}
}

// ParseField maps a field name to a Field.
func ParseField(name string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(name)))
	switch f {
	case FieldName, FieldPrice, FieldDescription, FieldQuantity:
		return f, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownField, name)
}

// Draft is the record bound to the form. Values are kept exactly as typed so
// a half-entered price such as "12." survives until submission.
type Draft struct {
	ID          grocery.ID `json:"id"`
	Name        string     `json:"name" validate:"required"`
	Price       string     `json:"price" validate:"required,numeric"`
	Description string     `json:"description"`
	Quantity    string     `json:"quantity" validate:"required,numeric"`
}

// DraftFromItem copies item into a draft.
func DraftFromItem(item grocery.Item) Draft {
	return Draft{
		ID:          item.ID,
		Name:        item.Name,
		Price:       item.Price.String(),
		Description: item.Description,
		Quantity:    item.Quantity.String(),
	}
}

// Get returns the value of f.
func (d Draft) Get(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldPrice:
		return d.Price
	case FieldDescription:
		return d.Description
	case FieldQuantity:
		return d.Quantity
	}
	return ""
}

// Set assigns value to f.
func (d *Draft) Set(f Field, value string) error {
	switch f {
	case FieldName:
		d.Name = value
	case FieldPrice:
		d.Price = value
	case FieldDescription:
		d.Description = value
	case FieldQuantity:
		d.Quantity = value
	default:
		return fmt.Errorf("%w %q", ErrUnknownField, string(f))
	}
	return nil
}

// IsZero reports whether every field is empty.
func (d Draft) IsZero() bool {
	return d == Draft{}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that name, price and quantity are present and that price
// and quantity are numbers. Surrounding whitespace is ignored.
func (d Draft) Validate() error {
	trimmed := d.trimmed()
	err := validate.Struct(trimmed)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidDraft, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "numeric":
			msgs = append(msgs, fe.Field()+" must be a number")
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidDraft, strings.Join(msgs, "; "))
}

// Item validates the draft and converts it into an item.
func (d Draft) Item() (grocery.Item, error) {
	if err := d.Validate(); err != nil {
		return grocery.Item{}, err
	}
	t := d.trimmed()
	price, err := decimal.NewFromString(t.Price)
	if err != nil {
		return grocery.Item{}, fmt.Errorf("%w: price: %w", ErrInvalidDraft, err)
	}
	quantity, err := decimal.NewFromString(t.Quantity)
	if err != nil {
		return grocery.Item{}, fmt.Errorf("%w: quantity: %w", ErrInvalidDraft, err)
	}
	return grocery.Item{
		ID:          t.ID,
		Name:        t.Name,
		Price:       price,
		Description: t.Description,
		Quantity:    quantity,
	}, nil
}

func (d Draft) trimmed() Draft {
	return Draft{
		ID:          d.ID,
		Name:        strings.TrimSpace(d.Name),
		Price:       strings.TrimSpace(d.Price),
		Description: strings.TrimSpace(d.Description),
		Quantity:    strings.TrimSpace(d.Quantity),
	}
}
