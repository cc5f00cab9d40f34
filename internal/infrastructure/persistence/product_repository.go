package persistence

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/staging"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements staging.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// ---------------------------------------------------------------------------
// Upserts
// ---------------------------------------------------------------------------

// UpsertProduct inserts the product when its ShopifyID is unseen, otherwise
// writes back descriptive fields that changed
func (r *GormProductRepository) UpsertProduct(ctx context.Context, product *staging.Product) (staging.UpsertResult, error) {
	var existing models.ProductModel
	err := r.db.WithContext(ctx).First(&existing, "shopify_id = ?", product.ShopifyID).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return staging.UpsertUnchanged, err
		}

		if product.ID == uuid.Nil {
			product.ID = uuid.New()
		}
		now := time.Now()
		product.CreatedAt = now
		product.UpdatedAt = now

		if err := r.db.WithContext(ctx).Create(models.ProductModelFromDomain(product)).Error; err != nil {
			return staging.UpsertUnchanged, err
		}
		return staging.UpsertCreated, nil
	}

	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt

	updates := map[string]any{}
	if existing.Title != product.Title {
		updates["title"] = product.Title
	}
	if existing.Handle != product.Handle {
		updates["handle"] = product.Handle
	}
	if existing.Vendor != product.Vendor {
		updates["vendor"] = product.Vendor
	}
	if existing.ProductType != product.ProductType {
		updates["product_type"] = product.ProductType
	}
	if existing.DescriptionHTML != product.DescriptionHTML {
		updates["description_html"] = product.DescriptionHTML
	}
	if !slices.Equal(existing.Tags, product.Tags) {
		updates["tags"] = models.ProductModelFromDomain(product).Tags
	}
	if existing.PrdID != product.PrdID {
		updates["prd_id"] = product.PrdID
	}

	if len(updates) == 0 {
		product.UpdatedAt = existing.UpdatedAt
		return staging.UpsertUnchanged, nil
	}

	updates["updated_at"] = time.Now()
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", existing.ID).
		Updates(updates).Error; err != nil {
		return staging.UpsertUnchanged, err
	}
	return staging.UpsertUpdated, nil
}

// UpsertVariant inserts an unseen variant. An existing variant only has its
// inventory quantity compared and written back when it differs; descriptive
// fields are never rewritten after first staging.
func (r *GormProductRepository) UpsertVariant(ctx context.Context, variant *staging.Variant) (staging.UpsertResult, error) {
	var existing models.VariantModel
	err := r.db.WithContext(ctx).First(&existing, "shopify_id = ?", variant.ShopifyID).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return staging.UpsertUnchanged, err
		}

		if variant.ID == uuid.Nil {
			variant.ID = uuid.New()
		}
		now := time.Now()
		variant.CreatedAt = now
		variant.UpdatedAt = now

		if err := r.db.WithContext(ctx).Create(models.VariantModelFromDomain(variant)).Error; err != nil {
			return staging.UpsertUnchanged, err
		}
		return staging.UpsertCreated, nil
	}

	variant.ID = existing.ID
	variant.CreatedAt = existing.CreatedAt

	if existing.InventoryQuantity == variant.InventoryQuantity {
		variant.UpdatedAt = existing.UpdatedAt
		return staging.UpsertUnchanged, nil
	}

	if err := r.db.WithContext(ctx).
		Model(&models.VariantModel{}).
		Where("id = ?", existing.ID).
		Updates(map[string]any{
			"inventory_quantity": variant.InventoryQuantity,
			"updated_at":         time.Now(),
		}).Error; err != nil {
		return staging.UpsertUnchanged, err
	}
	return staging.UpsertUpdated, nil
}

// UpsertMetafield inserts or overwrites a metafield keyed by owner, namespace
// and key
func (r *GormProductRepository) UpsertMetafield(ctx context.Context, field *staging.Metafield) (staging.UpsertResult, error) {
	query := r.db.WithContext(ctx).Model(&models.MetafieldModel{}).
		Where("namespace = ? AND key = ?", field.Namespace, field.Key)
	switch {
	case field.ProductID != nil:
		query = query.Where("product_id = ?", *field.ProductID)
	case field.OrderID != nil:
		query = query.Where("order_id = ?", *field.OrderID)
	default:
		return staging.UpsertUnchanged, staging.ErrMissingNaturalKey
	}

	var existing models.MetafieldModel
	err := query.First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return staging.UpsertUnchanged, err
		}

		if field.ID == uuid.Nil {
			field.ID = uuid.New()
		}
		now := time.Now()
		field.CreatedAt = now
		field.UpdatedAt = now

		if err := r.db.WithContext(ctx).Create(models.MetafieldModelFromDomain(field)).Error; err != nil {
			return staging.UpsertUnchanged, err
		}
		return staging.UpsertCreated, nil
	}

	field.ID = existing.ID
	field.CreatedAt = existing.CreatedAt

	if existing.Value == field.Value && existing.Type == field.Type {
		field.UpdatedAt = existing.UpdatedAt
		return staging.UpsertUnchanged, nil
	}

	if err := r.db.WithContext(ctx).
		Model(&models.MetafieldModel{}).
		Where("id = ?", existing.ID).
		Updates(map[string]any{
			"value":      field.Value,
			"type":       field.Type,
			"updated_at": time.Now(),
		}).Error; err != nil {
		return staging.UpsertUnchanged, err
	}
	return staging.UpsertUpdated, nil
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// FindByShopifyID finds a staged product by its storefront id
func (r *GormProductRepository) FindByShopifyID(ctx context.Context, shopifyID string) (*staging.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "shopify_id = ?", shopifyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, staging.ErrProductNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPrdID finds the staged product linked to an ERP product
func (r *GormProductRepository) FindByPrdID(ctx context.Context, prdID string) (*staging.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "prd_id = ?", prdID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, staging.ErrProductNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// VariantsByProduct lists all staged variants of a product
func (r *GormProductRepository) VariantsByProduct(ctx context.Context, productID uuid.UUID) ([]staging.Variant, error) {
	var variantModels []models.VariantModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&variantModels).Error; err != nil {
		return nil, err
	}

	variants := make([]staging.Variant, len(variantModels))
	for i, model := range variantModels {
		variants[i] = *model.ToDomain()
	}
	return variants, nil
}

// FindVariantBySKU finds one variant of a product by SKU
func (r *GormProductRepository) FindVariantBySKU(ctx context.Context, productID uuid.UUID, sku string) (*staging.Variant, error) {
	var model models.VariantModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND sku = ?", productID, sku).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, staging.ErrVariantNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormProductRepository implements staging.ProductRepository
var _ staging.ProductRepository = (*GormProductRepository)(nil)
