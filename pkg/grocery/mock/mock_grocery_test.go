package mock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ratio1/grocery_manager_go/pkg/grocery"
	"github.com/Ratio1/grocery_manager_go/pkg/grocery/mock"
)

func item(id, name string) grocery.Item {
	return grocery.Item{
		ID:       grocery.ID(id),
		Name:     name,
		Price:    decimal.NewFromInt(10),
		Quantity: decimal.NewFromInt(1),
	}
}

func TestMockCRUDKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	m := mock.New(mock.WithItems(item("1", "Rice"), item("2", "Milk")))

	require.NoError(t, m.Create(ctx, item("3", "Eggs")))

	updated := item("1", "Basmati Rice")
	updated.Description = "5kg"
	require.NoError(t, m.Update(ctx, updated))

	items, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"Basmati Rice", "Milk", "Eggs"}, []string{items[0].Name, items[1].Name, items[2].Name})
	assert.Equal(t, "5kg", items[0].Description)

	require.NoError(t, m.Delete(ctx, "2"))
	items, err = m.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, grocery.ID("3"), items[1].ID)
	assert.Equal(t, 2, m.Len())
}

func TestMockErrors(t *testing.T) {
	ctx := context.Background()
	m := mock.New(mock.WithItems(item("1", "Rice")))

	assert.ErrorIs(t, m.Create(ctx, item("1", "Again")), grocery.ErrConflict)
	assert.ErrorIs(t, m.Create(ctx, item("", "NoID")), grocery.ErrMissingID)
	assert.ErrorIs(t, m.Update(ctx, item("9", "Ghost")), grocery.ErrNotFound)
	assert.ErrorIs(t, m.Delete(ctx, "9"), grocery.ErrNotFound)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err := m.List(canceled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockSeedRejectsDuplicates(t *testing.T) {
	m := mock.New()
	err := m.Seed([]grocery.Item{item("1", "Rice"), item("1", "Rice")})
	assert.ErrorIs(t, err, grocery.ErrConflict)
	assert.Equal(t, 1, m.Len())
}

func TestMockFailureHook(t *testing.T) {
	boom := errors.New("boom")
	m := mock.New(mock.WithFailure(func(op string, id grocery.ID) error {
		if op == "delete" {
			return boom
		}
		return nil
	}), mock.WithItems(item("1", "Rice")))

	assert.ErrorIs(t, m.Delete(context.Background(), "1"), boom)
	assert.Equal(t, 1, m.Len())

	items, err := m.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestMockListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := mock.New(mock.WithItems(item("1", "Rice")))

	items, err := m.List(ctx)
	require.NoError(t, err)
	items[0].Name = "mutated"

	again, err := m.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Rice", again[0].Name)
}
