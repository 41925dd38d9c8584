package sandbox

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Ratio1/grocery_manager_go/pkg/grocery"
)

// itemRecord is the persisted form of grocery.Item. Seq keeps insertion
// order; numerics are stored as text so decimals round-trip exactly.
type itemRecord struct {
	Seq         uint   `gorm:"primaryKey;autoIncrement"`
	ItemID      string `gorm:"size:64;not null;uniqueIndex"`
	Name        string `gorm:"size:200"`
	Price       string `gorm:"size:40"`
	Description string `gorm:"size:500"`
	Quantity    string `gorm:"size:40"`
}

func (itemRecord) TableName() string {
	return "grocery_items"
}

func recordFromItem(it grocery.Item) itemRecord {
	return itemRecord{
		ItemID:      it.ID.String(),
		Name:        it.Name,
		Price:       it.Price.String(),
		Description: it.Description,
		Quantity:    it.Quantity.String(),
	}
}

func (r itemRecord) item() (grocery.Item, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return grocery.Item{}, fmt.Errorf("sandbox: item %s: price: %w", r.ItemID, err)
	}
	quantity, err := decimal.NewFromString(r.Quantity)
	if err != nil {
		return grocery.Item{}, fmt.Errorf("sandbox: item %s: quantity: %w", r.ItemID, err)
	}
	return grocery.Item{
		ID:          grocery.ID(r.ItemID),
		Name:        r.Name,
		Price:       price,
		Description: r.Description,
		Quantity:    quantity,
	}, nil
}

// OpenDB opens (or creates) the SQLite database at path. ":memory:" gives a
// private in-memory database.
func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("sandbox: open database: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise see its own empty database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sandbox: open database: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Repository stores items in SQLite through gorm. It implements
// grocery.Backend.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository on db. Call Migrate before use.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the items table.
func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(&itemRecord{}); err != nil {
		return fmt.Errorf("sandbox: migrate: %w", err)
	}
	return nil
}

// Seed inserts items in order.
func (r *Repository) Seed(ctx context.Context, items []grocery.Item) error {
	for _, it := range items {
		if err := r.Create(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

// List returns every item in insertion order.
func (r *Repository) List(ctx context.Context) ([]grocery.Item, error) {
	var records []itemRecord
	if err := r.db.WithContext(ctx).Order("seq ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("sandbox: list items: %w", err)
	}
	items := make([]grocery.Item, 0, len(records))
	for _, rec := range records {
		it, err := rec.item()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// Create inserts item, failing with grocery.ErrConflict when the id exists.
func (r *Repository) Create(ctx context.Context, item grocery.Item) error {
	if item.ID.IsZero() {
		return grocery.ErrMissingID
	}
	rec := recordFromItem(item)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&itemRecord{}).Where("item_id = ?", rec.ItemID).Count(&existing).Error; err != nil {
			return fmt.Errorf("sandbox: create item: %w", err)
		}
		if existing > 0 {
			return fmt.Errorf("%w: %s", grocery.ErrConflict, item.ID)
		}
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("sandbox: create item: %w", err)
		}
		return nil
	})
}

// Update replaces every field of the stored item.
func (r *Repository) Update(ctx context.Context, item grocery.Item) error {
	if item.ID.IsZero() {
		return grocery.ErrMissingID
	}
	rec := recordFromItem(item)
	// A map so that empty strings are written too.
	res := r.db.WithContext(ctx).Model(&itemRecord{}).
		Where("item_id = ?", rec.ItemID).
		Updates(map[string]any{
			"name":        rec.Name,
			"price":       rec.Price,
			"description": rec.Description,
			"quantity":    rec.Quantity,
		})
	if res.Error != nil {
		return fmt.Errorf("sandbox: update item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", grocery.ErrNotFound, item.ID)
	}
	return nil
}

// Delete removes the item with id.
func (r *Repository) Delete(ctx context.Context, id grocery.ID) error {
	if id.IsZero() {
		return grocery.ErrMissingID
	}
	res := r.db.WithContext(ctx).Where("item_id = ?", id.String()).Delete(&itemRecord{})
	if res.Error != nil {
		return fmt.Errorf("sandbox: delete item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", grocery.ErrNotFound, id)
	}
	return nil
}

// Close releases the underlying connection pool.
func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ grocery.Backend = (*Repository)(nil)
