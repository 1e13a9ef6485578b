package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopgrid/marketplace-api/internal/domains/catalog/domain"
	"github.com/shopgrid/marketplace-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists the catalog in PostgreSQL using GORM. Stock mutations
// are expressed as single conditional UPDATE statements so the availability
// check and the write commit as one operation.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed catalog repository. Caller manages
// the DB lifecycle; schema is applied by platform migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

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

func (r *Repository) SaveProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toProductRecord(product)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"store_id":    record.StoreID,
				"name":        record.Name,
				"description": record.Description,
				"category":    record.Category,
				"image_urls":  record.ImageURLs,
				"status":      record.Status,
				"updated_at":  gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetProduct(ctx, record.ID)
}

func (r *Repository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrProductNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListStoreProducts(ctx context.Context, storeID int64) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Where("store_id = ?", storeID).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&productRecord{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrProductNotFound
		}
		return tx.Where("product_id = ?", id).Delete(&variationRecord{}).Error
	})
}

func (r *Repository) SaveVariation(ctx context.Context, variation *domain.Variation) (*domain.Variation, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if variation == nil {
		return nil, errors.New("variation is nil")
	}
	record := toVariationRecord(variation)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"product_id":     record.ProductID,
				"size":           record.Size,
				"color":          record.Color,
				"price":          record.Price,
				"discount_price": record.DiscountPrice,
				"stock":          record.Stock,
				"updated_at":     gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetVariation(ctx, record.ID)
}

func (r *Repository) GetVariation(ctx context.Context, id int64) (*domain.Variation, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record variationRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrVariationNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListProductVariations(ctx context.Context, productID int64) ([]*domain.Variation, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []variationRecord
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	variations := make([]*domain.Variation, 0, len(records))
	for i := range records {
		variations = append(variations, records[i].toDomain())
	}
	return variations, nil
}

func (r *Repository) SetStock(ctx context.Context, id int64, stock int32) (*domain.Variation, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if stock < 0 {
		return nil, domain.ErrNegativeStock
	}
	result := r.db.WithContext(ctx).Model(&variationRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{"stock": stock, "updated_at": gorm.Expr("NOW()")})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrVariationNotFound
	}
	return r.GetVariation(ctx, id)
}

// DeductStock runs the compare-and-deduct as one UPDATE; zero affected rows
// means either an unknown variation or not enough stock, disambiguated by a
// follow-up read.
func (r *Repository) DeductStock(ctx context.Context, id int64, qty int32) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return deductStock(r.db.WithContext(ctx), id, qty)
}

func (r *Repository) ReturnStock(ctx context.Context, id int64, qty int32) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return returnStock(r.db.WithContext(ctx), id, qty)
}

func deductStock(db *gorm.DB, id int64, qty int32) error {
	result := db.Model(&variationRecord{}).
		Where("id = ? AND stock >= ?", id, qty).
		Updates(map[string]any{"stock": gorm.Expr("stock - ?", qty), "updated_at": gorm.Expr("NOW()")})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	var record variationRecord
	if err := db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ErrVariationNotFound
		}
		return err
	}
	return &ports.InsufficientStockError{VariationID: id, Available: record.Stock, Requested: qty}
}

func returnStock(db *gorm.DB, id int64, qty int32) error {
	result := db.Model(&variationRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{"stock": gorm.Expr("stock + ?", qty), "updated_at": gorm.Expr("NOW()")})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrVariationNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func toProductRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:          product.ID,
		StoreID:     product.StoreID,
		Name:        product.Name,
		Description: product.Description,
		Category:    product.Category,
		ImageURLs:   append(pq.StringArray{}, product.ImageURLs...),
		Status:      string(product.Status),
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:          r.ID,
		StoreID:     r.StoreID,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		ImageURLs:   append([]string{}, r.ImageURLs...),
		Status:      domain.Status(r.Status),
	}
}

func toVariationRecord(variation *domain.Variation) variationRecord {
	record := variationRecord{
		ID:        variation.ID,
		ProductID: variation.ProductID,
		Size:      variation.Size,
		Color:     variation.Color,
		Price:     variation.Price,
		Stock:     variation.Stock,
	}
	if variation.DiscountPrice != nil {
		d := *variation.DiscountPrice
		record.DiscountPrice = &d
	}
	return record
}

func (r variationRecord) toDomain() *domain.Variation {
	variation := &domain.Variation{
		ID:        r.ID,
		ProductID: r.ProductID,
		Size:      r.Size,
		Color:     r.Color,
		Price:     r.Price,
		Stock:     r.Stock,
	}
	if r.DiscountPrice != nil {
		d := *r.DiscountPrice
		variation.DiscountPrice = &d
	}
	return variation
}
