package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopgrid/marketplace-api/internal/domains/orders/domain"
	"github.com/shopgrid/marketplace-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM. The two write paths —
// placement and status transition — each run inside a single transaction, and
// every stock mutation is a conditional UPDATE whose affected-row count is
// checked. Two concurrent placements can therefore never oversell a
// variation, and a failed line rolls the whole operation back.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed order repository. Caller manages
// the DB lifecycle; schema is applied by platform migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type orderRecord struct {
	ID            int64     `gorm:"primaryKey;column:id"`
	StoreID       int64     `gorm:"column:store_id;index:idx_orders_store_status"`
	CustomerName  string    `gorm:"column:customer_name"`
	CustomerPhone string    `gorm:"column:customer_phone;type:varchar(64)"`
	CustomerEmail string    `gorm:"column:customer_email"`
	Status        string    `gorm:"column:status;type:varchar(32);index:idx_orders_store_status"`
	Total         int64     `gorm:"column:total"`
	Notes         string    `gorm:"column:notes"`
	CreatedAt     time.Time `gorm:"column:created_at;index"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID          int64 `gorm:"primaryKey;column:id"`
	OrderID     int64 `gorm:"column:order_id;index"`
	VariationID int64 `gorm:"column:variation_id;index"`
	Quantity    int32 `gorm:"column:quantity"`
	UnitPrice   int64 `gorm:"column:unit_price"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// variationStockRecord maps the stock columns of the catalog's
// product_variations table for the conditional updates below.
type variationStockRecord struct {
	ID    int64 `gorm:"primaryKey;column:id"`
	Stock int32 `gorm:"column:stock"`
}

func (variationStockRecord) TableName() string { return "product_variations" }

// Create inserts the order with its items and deducts stock for every line in
// one transaction. Lines are applied in variation-id order so two concurrent
// multi-line placements cannot deadlock on row locks.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}

	var orderID int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := toOrderRecord(order)
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		orderID = record.ID

		items := make([]orderItemRecord, 0, len(order.Items))
		for _, item := range order.Items {
			items = append(items, orderItemRecord{
				OrderID:     record.ID,
				VariationID: item.VariationID,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		return applyStockAction(tx, items, domain.ActionDeduct)
	})
	if err != nil {
		return nil, wrapStorage(err)
	}
	return r.GetByID(ctx, orderID)
}

// GetByID fetches an order with its items.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, wrapStorage(err)
	}
	items, err := r.loadItems(ctx, r.db.WithContext(ctx), id)
	if err != nil {
		return nil, wrapStorage(err)
	}
	return record.toDomain(items), nil
}

// ListByStore returns all orders of a store, newest first, items included.
func (r *Repository) ListByStore(ctx context.Context, storeID int64) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Where("store_id = ?", storeID).Order("id DESC").Find(&records).Error; err != nil {
		return nil, wrapStorage(err)
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		items, err := r.loadItems(ctx, r.db.WithContext(ctx), records[i].ID)
		if err != nil {
			return nil, wrapStorage(err)
		}
		orders = append(orders, records[i].toDomain(items))
	}
	return orders, nil
}

// Transition locks the order row, resolves the stock action from the stored
// status, applies every line's stock adjustment, and writes the new status —
// all in one transaction. An insufficient line aborts everything: the status
// stays unchanged and no partial adjustment survives.
func (r *Repository) Transition(ctx context.Context, id int64, next domain.Status) (*domain.Order, domain.Status, error) {
	if err := r.ensureDB(); err != nil {
		return nil, "", err
	}

	var old domain.Status
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record orderRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&record, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrNotFound
			}
			return err
		}
		old = domain.Status(record.Status)

		action, err := domain.StockActionFor(old, next)
		if err != nil {
			return err
		}
		if action != domain.ActionNone {
			var items []orderItemRecord
			if err := tx.Where("order_id = ?", id).Find(&items).Error; err != nil {
				return err
			}
			if err := applyStockAction(tx, items, action); err != nil {
				return err
			}
		}

		return tx.Model(&orderRecord{}).Where("id = ?", id).
			Updates(map[string]any{"status": string(next), "updated_at": gorm.Expr("NOW()")}).Error
	})
	if err != nil {
		return nil, "", wrapStorage(err)
	}

	updated, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return updated, old, nil
}

// ListStalePending returns PENDING orders created before the cutoff.
func (r *Repository) ListStalePending(ctx context.Context, before time.Time) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", string(domain.StatusPending), before).
		Order("id").Find(&records).Error; err != nil {
		return nil, wrapStorage(err)
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain(nil))
	}
	return orders, nil
}

// applyStockAction mutates stock for every line inside the caller's
// transaction. Each deduct is a compare-and-deduct in a single UPDATE; zero
// affected rows is disambiguated into not-found versus insufficient.
func applyStockAction(tx *gorm.DB, items []orderItemRecord, action domain.StockAction) error {
	sorted := make([]orderItemRecord, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].VariationID < sorted[j].VariationID })

	for _, item := range sorted {
		var result *gorm.DB
		switch action {
		case domain.ActionDeduct:
			result = tx.Model(&variationStockRecord{}).
				Where("id = ? AND stock >= ?", item.VariationID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
		case domain.ActionReturn:
			result = tx.Model(&variationStockRecord{}).
				Where("id = ?", item.VariationID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity))
		default:
			return nil
		}
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			continue
		}
		var current variationStockRecord
		if err := tx.First(&current, "id = ?", item.VariationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrVariationNotFound
			}
			return err
		}
		return &ports.InsufficientStockError{
			VariationID: item.VariationID,
			Available:   current.Stock,
			Requested:   item.Quantity,
		}
	}
	return nil
}

func (r *Repository) loadItems(_ context.Context, db *gorm.DB, orderID int64) ([]domain.Item, error) {
	var records []orderItemRecord
	if err := db.Where("order_id = ?", orderID).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(records))
	for _, record := range records {
		items = append(items, domain.Item{
			ID:          record.ID,
			OrderID:     record.OrderID,
			VariationID: record.VariationID,
			Quantity:    record.Quantity,
			UnitPrice:   record.UnitPrice,
		})
	}
	return items, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

// wrapStorage tags infrastructure failures with ports.ErrStorage while
// letting business sentinels pass through untouched, so callers can tell a
// degraded backend apart from a rule rejection.
func wrapStorage(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ports.ErrNotFound) ||
		errors.Is(err, ports.ErrVariationNotFound) ||
		errors.Is(err, ports.ErrInsufficientStock) ||
		errors.Is(err, domain.ErrInvalidStatus) {
		return err
	}
	return fmt.Errorf("%w: %v", ports.ErrStorage, err)
}

func toOrderRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:            order.ID,
		StoreID:       order.StoreID,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		CustomerEmail: order.CustomerEmail,
		Status:        string(order.Status),
		Total:         order.Total,
		Notes:         order.Notes,
	}
}

func (r orderRecord) toDomain(items []domain.Item) *domain.Order {
	return &domain.Order{
		ID:            r.ID,
		StoreID:       r.StoreID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		Status:        domain.Status(r.Status),
		Total:         r.Total,
		Notes:         r.Notes,
		Items:         items,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
