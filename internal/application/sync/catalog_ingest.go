package sync

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/staging"
	domain "github.com/shopsync/backend/internal/domain/sync"
)

// CatalogIngestService walks the storefront product listing and stages every
// product, variant and metafield it yields. Ingestion is idempotent: a page
// replayed after a walker retry converges on the same staging rows.
type CatalogIngestService struct {
	storefront domain.Storefront
	products   staging.ProductRepository
	logger     *zap.Logger

	fetchRetries int
	fetchPause   time.Duration
}

// NewCatalogIngestService creates a new CatalogIngestService
func NewCatalogIngestService(storefront domain.Storefront, products staging.ProductRepository, logger *zap.Logger) *CatalogIngestService {
	return &CatalogIngestService{
		storefront:   storefront,
		products:     products,
		logger:       logger,
		fetchRetries: 5,
		fetchPause:   2 * time.Second,
	}
}

// SetRetryPolicy overrides the per-page retry budget and pause
func (s *CatalogIngestService) SetRetryPolicy(retries int, pause time.Duration) {
	s.fetchRetries = retries
	s.fetchPause = pause
}

// Run ingests the full product listing. A failure staging one product is
// logged and does not abort the pass; a failed page fetch after all retries
// does.
func (s *CatalogIngestService) Run(ctx context.Context) error {
	walker := domain.NewWalker(
		s.storefront.FetchProductPage,
		domain.WithRetries[domain.StorefrontProduct](s.fetchRetries),
		domain.WithRetryPause[domain.StorefrontProduct](s.fetchPause),
	)

	var staged, failed int
	err := walker.Walk(ctx, func(record domain.StorefrontProduct) error {
		if err := s.ingestProduct(ctx, &record); err != nil {
			failed++
			s.logger.Warn("Failed to stage storefront product",
				zap.String("shopify_id", record.ID),
				zap.Error(err))
			return nil
		}
		staged++
		return nil
	})
	if err != nil {
		return fmt.Errorf("catalog ingestion: %w", err)
	}

	s.logger.Info("Catalog ingestion finished",
		zap.Int("staged", staged),
		zap.Int("failed", failed))
	return nil
}

func (s *CatalogIngestService) ingestProduct(ctx context.Context, record *domain.StorefrontProduct) error {
	product := &staging.Product{
		ShopifyID:       record.ID,
		Title:           record.Title,
		Handle:          record.Handle,
		Vendor:          record.Vendor,
		ProductType:     record.ProductType,
		DescriptionHTML: record.DescriptionHTML,
		Tags:            record.Tags,
		PrdID:           record.PrdID(),
	}
	if _, err := s.products.UpsertProduct(ctx, product); err != nil {
		return fmt.Errorf("product %s: %w", record.ID, err)
	}

	for i := range record.Variants {
		v := &record.Variants[i]
		variant := &staging.Variant{
			ShopifyID:           v.ID,
			ProductID:           product.ID,
			Title:               v.Title,
			Price:               v.Price,
			SKU:                 v.SKU,
			InventoryQuantity:   v.InventoryQuantity,
			InventoryManagement: v.InventoryManagement,
			RequiresShipping:    v.RequiresShipping,
			Weight:              v.Weight,
			WeightUnit:          v.WeightUnit,
			Taxable:             v.Taxable,
			CompareAtPrice:      v.CompareAtPrice,
			InventoryItemID:     v.InventoryItemID,
		}
		if _, err := s.products.UpsertVariant(ctx, variant); err != nil {
			return fmt.Errorf("variant %s: %w", v.ID, err)
		}
	}

	for i := range record.Metafields {
		m := &record.Metafields[i]
		field := &staging.Metafield{
			ProductID: &product.ID,
			Namespace: m.Namespace,
			Key:       m.Key,
			Value:     m.Value,
			Type:      m.Type,
		}
		if _, err := s.products.UpsertMetafield(ctx, field); err != nil {
			return fmt.Errorf("metafield %s/%s: %w", m.Namespace, m.Key, err)
		}
	}
	return nil
}
