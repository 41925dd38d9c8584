package sandbox

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ratio1/grocery_manager_go/pkg/grocery"
)

func setupRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	repo := NewRepository(db)
	require.NoError(t, repo.Migrate())
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func item(id grocery.ID, name, price, quantity string) grocery.Item {
	return grocery.Item{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Quantity: decimal.RequireFromString(quantity),
	}
}

func TestRepositoryCRUD(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Seed(ctx, []grocery.Item{
		item("b", "Rice", "40", "5"),
		item("a", "Milk", "49.50", "2"),
	}))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, grocery.ID("b"), items[0].ID, "insertion order")
	assert.Equal(t, "49.5", items[1].Price.String())

	updated := item("a", "Milk", "52", "0")
	updated.Description = ""
	require.NoError(t, repo.Update(ctx, updated))
	items, err = repo.List(ctx)
	require.NoError(t, err)
	assert.True(t, items[1].Quantity.IsZero())
	assert.Equal(t, "52", items[1].Price.String())

	require.NoError(t, repo.Delete(ctx, "b"))
	items, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, grocery.ID("a"), items[0].ID)
}

func TestRepositoryErrors(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, item("1", "Rice", "40", "5")))

	assert.ErrorIs(t, repo.Create(ctx, item("1", "Again", "1", "1")), grocery.ErrConflict)
	assert.ErrorIs(t, repo.Update(ctx, item("2", "Ghost", "1", "1")), grocery.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "2"), grocery.ErrNotFound)
	assert.ErrorIs(t, repo.Create(ctx, grocery.Item{Name: "no id"}), grocery.ErrMissingID)
	assert.ErrorIs(t, repo.Delete(ctx, ""), grocery.ErrMissingID)
}
