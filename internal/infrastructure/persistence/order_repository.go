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

// GormOrderRepository implements staging.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// ---------------------------------------------------------------------------
// Inserts
// ---------------------------------------------------------------------------

// InsertOrderIfAbsent stages a storefront order with its line items and
// metafields in one transaction. Staged orders are immutable, so an order
// whose ShopifyID is already present is left untouched.
func (r *GormOrderRepository) InsertOrderIfAbsent(ctx context.Context, order *staging.Order, fields []staging.Metafield) (staging.UpsertResult, error) {
	var existing models.OrderModel
	err := r.db.WithContext(ctx).First(&existing, "shopify_id = ?", order.ShopifyID).Error
	if err == nil {
		order.ID = existing.ID
		order.CreatedAt = existing.CreatedAt
		order.UpdatedAt = existing.UpdatedAt
		return staging.UpsertUnchanged, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return staging.UpsertUnchanged, err
	}

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	txErr := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.OrderModelFromDomain(order)).Error; err != nil {
			return err
		}

		for i := range order.LineItems {
			li := &order.LineItems[i]
			if li.ID == uuid.Nil {
				li.ID = uuid.New()
			}
			li.OrderID = order.ID
			li.CreatedAt = now
			if err := tx.Create(models.LineItemModelFromDomain(li)).Error; err != nil {
				return err
			}
		}

		for i := range fields {
			f := &fields[i]
			if f.ID == uuid.Nil {
				f.ID = uuid.New()
			}
			f.OrderID = &order.ID
			f.CreatedAt = now
			f.UpdatedAt = now
			if err := tx.Create(models.MetafieldModelFromDomain(f)).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return staging.UpsertUnchanged, txErr
	}
	return staging.UpsertCreated, nil
}

// InsertErpOrderIfAbsent stages an ERP order keyed by CdeID
func (r *GormOrderRepository) InsertErpOrderIfAbsent(ctx context.Context, order *staging.ErpOrder) (staging.UpsertResult, error) {
	var existing models.ErpOrderModel
	err := r.db.WithContext(ctx).First(&existing, "cde_id = ?", order.CdeID).Error
	if err == nil {
		order.ID = existing.ID
		order.CreatedAt = existing.CreatedAt
		order.UpdatedAt = existing.UpdatedAt
		return staging.UpsertUnchanged, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return staging.UpsertUnchanged, err
	}

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(models.ErpOrderModelFromDomain(order)).Error; err != nil {
		return staging.UpsertUnchanged, err
	}
	return staging.UpsertCreated, nil
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// AllOrders lists every staged storefront order, oldest first, without line
// items
func (r *GormOrderRepository) AllOrders(ctx context.Context) ([]staging.Order, error) {
	var orderModels []models.OrderModel
	if err := r.db.WithContext(ctx).
		Order("placed_at ASC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]staging.Order, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders, nil
}

// LineItemsByOrder lists the staged line items of one order
func (r *GormOrderRepository) LineItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]staging.LineItem, error) {
	var itemModels []models.LineItemModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}

	items := make([]staging.LineItem, len(itemModels))
	for i, model := range itemModels {
		items[i] = *model.ToDomain()
	}
	return items, nil
}

// FindErpOrderByInternalRef looks up the ERP mirror row by storefront order
// name. ErrErpOrderNotFound means the order has not been mirrored yet.
func (r *GormOrderRepository) FindErpOrderByInternalRef(ctx context.Context, ref string) (*staging.ErpOrder, error) {
	var model models.ErpOrderModel
	if err := r.db.WithContext(ctx).First(&model, "internal_ref = ?", ref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, staging.ErrErpOrderNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormOrderRepository implements staging.OrderRepository
var _ staging.OrderRepository = (*GormOrderRepository)(nil)
