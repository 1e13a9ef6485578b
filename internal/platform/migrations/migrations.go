package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&storeRecord{},
		&productRecord{},
		&variationRecord{},
		&orderRecord{},
		&orderItemRecord{},
		&idempotencyRecord{},
	)
}

// Store schema mirrors the stores Postgres adapter.
type storeRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	Name        string    `gorm:"column:name"`
	Slug        string    `gorm:"column:slug;uniqueIndex"`
	Phone       string    `gorm:"column:phone;type:varchar(64)"`
	Email       string    `gorm:"column:email"`
	Description string    `gorm:"column:description"`
	Active      bool      `gorm:"column:active"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (storeRecord) TableName() string { return "stores" }

// Product schema mirrors the catalog Postgres adapter.
type productRecord struct {
	ID          int64          `gorm:"primaryKey;column:id"`
	StoreID     int64          `gorm:"column:store_id;index"`
	Name        string         `gorm:"column:name"`
	Description string         `gorm:"column:description"`
	Category    string         `gorm:"column:category;type:varchar(128)"`
	ImageURLs   pq.StringArray `gorm:"column:image_urls;type:text[]"`
	Status      string         `gorm:"column:status;type:varchar(32);index"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Variation schema carries the stock counter the order flow mutates through
// conditional updates, so no committed row may hold negative stock.
type variationRecord struct {
	ID            int64     `gorm:"primaryKey;column:id"`
	ProductID     int64     `gorm:"column:product_id;index"`
	Size          string    `gorm:"column:size;type:varchar(64)"`
	Color         string    `gorm:"column:color;type:varchar(64)"`
	Price         int64     `gorm:"column:price"`
	DiscountPrice *int64    `gorm:"column:discount_price"`
	Stock         int32     `gorm:"column:stock"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (variationRecord) TableName() string { return "product_variations" }

// Order schema mirrors the orders Postgres adapter.
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

// Line items are immutable unit-price snapshots taken at placement time.
type orderItemRecord struct {
	ID          int64 `gorm:"primaryKey;column:id"`
	OrderID     int64 `gorm:"column:order_id;index"`
	VariationID int64 `gorm:"column:variation_id;index"`
	Quantity    int32 `gorm:"column:quantity"`
	UnitPrice   int64 `gorm:"column:unit_price"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// Placement idempotency keys.
type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	OrderID     int64     `gorm:"column:order_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (idempotencyRecord) TableName() string { return "order_idempotency_keys" }
