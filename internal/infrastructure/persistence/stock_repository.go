package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/staging"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStockRepository implements staging.StockRepository using GORM
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// ---------------------------------------------------------------------------
// Upserts
// ---------------------------------------------------------------------------

// UpsertStockProduct inserts an unseen ERP product. An existing row is only
// written when its label is still empty, so a catalog row staged from the
// stock listing gets backfilled once the per-product info call succeeds.
func (r *GormStockRepository) UpsertStockProduct(ctx context.Context, product *staging.StockProduct) (staging.UpsertResult, error) {
	var existing models.StockProductModel
	err := r.db.WithContext(ctx).First(&existing, "prd_id = ?", product.PrdID).Error
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

		if err := r.db.WithContext(ctx).Create(models.StockProductModelFromDomain(product)).Error; err != nil {
			return staging.UpsertUnchanged, err
		}
		return staging.UpsertCreated, nil
	}

	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt

	if existing.Label != "" || product.Label == "" {
		product.UpdatedAt = existing.UpdatedAt
		return staging.UpsertUnchanged, nil
	}

	model := models.StockProductModelFromDomain(product)
	if err := r.db.WithContext(ctx).
		Model(&models.StockProductModel{}).
		Where("id = ?", existing.ID).
		Updates(map[string]any{
			"label":             model.Label,
			"small_description": model.SmallDescription,
			"large_description": model.LargeDescription,
			"price_eur":         model.PriceEUR,
			"price_promo":       model.PricePromo,
			"price_pro":         model.PricePro,
			"canal_soft":        model.CanalSoft,
			"canal_femme":       model.CanalFemme,
			"weight":            model.Weight,
			"category":          model.Category,
			"barcode":           model.Barcode,
			"updated_at":        time.Now(),
		}).Error; err != nil {
		return staging.UpsertUnchanged, err
	}
	return staging.UpsertUpdated, nil
}

// UpsertStockVariant inserts an unseen stock variant; for an existing one
// only the quantity is compared and written back when it differs
func (r *GormStockRepository) UpsertStockVariant(ctx context.Context, variant *staging.StockVariant) (staging.UpsertResult, error) {
	var existing models.StockVariantModel
	err := r.db.WithContext(ctx).First(&existing, "ean = ?", variant.EAN).Error
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

		if err := r.db.WithContext(ctx).Create(models.StockVariantModelFromDomain(variant)).Error; err != nil {
			return staging.UpsertUnchanged, err
		}
		return staging.UpsertCreated, nil
	}

	variant.ID = existing.ID
	variant.CreatedAt = existing.CreatedAt

	if existing.Quantity == variant.Quantity {
		variant.UpdatedAt = existing.UpdatedAt
		return staging.UpsertUnchanged, nil
	}

	if err := r.db.WithContext(ctx).
		Model(&models.StockVariantModel{}).
		Where("id = ?", existing.ID).
		Updates(map[string]any{
			"quantity":   variant.Quantity,
			"updated_at": time.Now(),
		}).Error; err != nil {
		return staging.UpsertUnchanged, err
	}
	return staging.UpsertUpdated, nil
}

// EnsureOption returns the option axis for (prdID, name), creating it when
// absent. A new axis takes the next position for the product so the axes
// keep their derivation order.
func (r *GormStockRepository) EnsureOption(ctx context.Context, prdID, name string) (*staging.ProductOption, error) {
	var existing models.ProductOptionModel
	err := r.db.WithContext(ctx).
		Where("prd_id = ? AND name = ?", prdID, name).
		First(&existing).Error
	if err == nil {
		option := existing.ToDomain()
		values, err := r.valuesByOption(ctx, option.ID)
		if err != nil {
			return nil, err
		}
		option.Values = values
		return option, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductOptionModel{}).
		Where("prd_id = ?", prdID).
		Count(&count).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	model := &models.ProductOptionModel{
		ID:        uuid.New(),
		PrdID:     prdID,
		Name:      name,
		Position:  int(count),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// EnsureOptionValue adds a value to an option axis when not yet present
func (r *GormStockRepository) EnsureOptionValue(ctx context.Context, optionID uuid.UUID, label string) (staging.UpsertResult, error) {
	var existing models.OptionValueModel
	err := r.db.WithContext(ctx).
		Where("option_id = ? AND label = ?", optionID, label).
		First(&existing).Error
	if err == nil {
		return staging.UpsertUnchanged, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return staging.UpsertUnchanged, err
	}

	now := time.Now()
	model := &models.OptionValueModel{
		ID:        uuid.New(),
		OptionID:  optionID,
		Label:     label,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return staging.UpsertUnchanged, err
	}
	return staging.UpsertCreated, nil
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// AllStockProducts lists every staged ERP product
func (r *GormStockRepository) AllStockProducts(ctx context.Context) ([]staging.StockProduct, error) {
	var productModels []models.StockProductModel
	if err := r.db.WithContext(ctx).
		Order("prd_id ASC").
		Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]staging.StockProduct, len(productModels))
	for i, model := range productModels {
		products[i] = *model.ToDomain()
	}
	return products, nil
}

// StockVariantsByPrdID lists the staged stock variants of one ERP product
func (r *GormStockRepository) StockVariantsByPrdID(ctx context.Context, prdID string) ([]staging.StockVariant, error) {
	var variantModels []models.StockVariantModel
	if err := r.db.WithContext(ctx).
		Where("prd_id = ?", prdID).
		Order("ean ASC").
		Find(&variantModels).Error; err != nil {
		return nil, err
	}

	variants := make([]staging.StockVariant, len(variantModels))
	for i, model := range variantModels {
		variants[i] = *model.ToDomain()
	}
	return variants, nil
}

// FindStockVariantByEAN finds one staged stock variant by its EAN
func (r *GormStockRepository) FindStockVariantByEAN(ctx context.Context, ean string) (*staging.StockVariant, error) {
	var model models.StockVariantModel
	if err := r.db.WithContext(ctx).First(&model, "ean = ?", ean).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, staging.ErrStockVariantNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// OptionsByPrdID lists the option axes of one ERP product with their
// values, in derivation order
func (r *GormStockRepository) OptionsByPrdID(ctx context.Context, prdID string) ([]staging.ProductOption, error) {
	var optionModels []models.ProductOptionModel
	if err := r.db.WithContext(ctx).
		Where("prd_id = ?", prdID).
		Order("position ASC").
		Find(&optionModels).Error; err != nil {
		return nil, err
	}

	options := make([]staging.ProductOption, len(optionModels))
	for i, model := range optionModels {
		option := model.ToDomain()
		values, err := r.valuesByOption(ctx, option.ID)
		if err != nil {
			return nil, err
		}
		option.Values = values
		options[i] = *option
	}
	return options, nil
}

// valuesByOption loads the values of one option axis
func (r *GormStockRepository) valuesByOption(ctx context.Context, optionID uuid.UUID) ([]staging.OptionValue, error) {
	var valueModels []models.OptionValueModel
	if err := r.db.WithContext(ctx).
		Where("option_id = ?", optionID).
		Order("label ASC").
		Find(&valueModels).Error; err != nil {
		return nil, err
	}

	values := make([]staging.OptionValue, len(valueModels))
	for i, model := range valueModels {
		values[i] = *model.ToDomain()
	}
	return values, nil
}

// Ensure GormStockRepository implements staging.StockRepository
var _ staging.StockRepository = (*GormStockRepository)(nil)
