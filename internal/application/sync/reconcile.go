package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/staging"
	domain "github.com/shopsync/backend/internal/domain/sync"
)

// platformManaged is the inventory management value of variants the platform
// already tracks
const platformManaged = "SHOPIFY"

// InventoryReconcileService compares staged ERP quantities against staged
// storefront quantities and pushes the minimal set of corrective mutations:
// product/variant creation for unmatched stock, relative quantity deltas for
// matched variants, nothing at all when both sides agree.
type InventoryReconcileService struct {
	storefront domain.Storefront
	products   staging.ProductRepository
	stocks     staging.StockRepository
	logger     *zap.Logger

	batchSize  int
	batchPause time.Duration
	sleep      SleepFunc
}

// NewInventoryReconcileService creates a new InventoryReconcileService
func NewInventoryReconcileService(storefront domain.Storefront, products staging.ProductRepository, stocks staging.StockRepository, logger *zap.Logger) *InventoryReconcileService {
	return &InventoryReconcileService{
		storefront: storefront,
		products:   products,
		stocks:     stocks,
		logger:     logger,
		batchSize:  10,
		batchPause: 2 * time.Second,
		sleep:      sleepCtx,
	}
}

// SetBatchPolicy overrides the mutation batch size and inter-batch pause
func (s *InventoryReconcileService) SetBatchPolicy(size int, pause time.Duration) {
	s.batchSize = size
	s.batchPause = pause
}

// Run reconciles every staged ERP product. The fulfillment location is
// resolved once per run; a failure on one product never aborts the batch.
func (s *InventoryReconcileService) Run(ctx context.Context) error {
	locationID, err := s.storefront.PrimaryLocationID(ctx)
	if err != nil {
		return fmt.Errorf("inventory reconciliation: %w", err)
	}

	stockProducts, err := s.stocks.AllStockProducts(ctx)
	if err != nil {
		return fmt.Errorf("inventory reconciliation: %w", err)
	}

	return RunInBatches(ctx, stockProducts, s.batchSize, s.batchPause, s.sleep, func(ctx context.Context, sp staging.StockProduct) {
		if err := s.reconcileProduct(ctx, locationID, &sp); err != nil {
			s.logger.Warn("Failed to reconcile product",
				zap.String("prd_id", sp.PrdID),
				zap.Error(err))
		}
	})
}

func (s *InventoryReconcileService) reconcileProduct(ctx context.Context, locationID string, sp *staging.StockProduct) error {
	stockVariants, err := s.stocks.StockVariantsByPrdID(ctx, sp.PrdID)
	if err != nil {
		return err
	}
	if len(stockVariants) == 0 {
		return nil
	}

	product, err := s.products.FindByPrdID(ctx, sp.PrdID)
	if errors.Is(err, staging.ErrProductNotFound) {
		return s.createProduct(ctx, locationID, sp, stockVariants)
	}
	if err != nil {
		return err
	}

	// A placeholder title from an earlier partial sync is replaced once the
	// ERP label is known.
	if product.Title == sp.PrdID && sp.Label != "" {
		s.pushProductDetails(ctx, product, sp)
	}

	for i := range stockVariants {
		sv := &stockVariants[i]
		if err := s.reconcileVariant(ctx, locationID, product, sv, sp); err != nil {
			s.logger.Warn("Failed to reconcile variant",
				zap.String("prd_id", sp.PrdID),
				zap.String("ean", sv.EAN),
				zap.Error(err))
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Product creation
// ---------------------------------------------------------------------------

// createProduct pushes an ERP product the storefront has never seen,
// then writes the link metafield and the opening quantity of every variant.
// Opening quantities are the one place an ABSOLUTE set is allowed: the
// variants cannot have concurrent storefront-side changes yet.
func (s *InventoryReconcileService) createProduct(ctx context.Context, locationID string, sp *staging.StockProduct, stockVariants []staging.StockVariant) error {
	options, err := s.stocks.OptionsByPrdID(ctx, sp.PrdID)
	if err != nil {
		return err
	}
	axisNames := make([]string, len(options))
	for i, o := range options {
		axisNames[i] = o.Name
	}

	input := domain.ProductCreateInput{
		Title:           sp.Label,
		DescriptionHTML: sp.LargeDescription,
		PrdID:           sp.PrdID,
		Options:         axisNames,
	}
	if input.Title == "" {
		input.Title = sp.PrdID
	}
	for i := range stockVariants {
		sv := &stockVariants[i]
		input.Variants = append(input.Variants, domain.VariantCreateInput{
			SKU:     sv.EAN,
			Price:   variantPrice(sp),
			Options: optionValuesFor(axisNames, sv),
		})
	}

	created, userErrs, err := s.storefront.CreateProduct(ctx, input)
	if err != nil {
		return err
	}
	s.logUserErrors("productCreate", sp.PrdID, userErrs)
	if created == nil {
		return nil
	}

	if linkErrs, err := s.storefront.SetLinkMetafield(ctx, created.ID, sp.PrdID); err != nil {
		return err
	} else {
		s.logUserErrors("metafieldsSet", sp.PrdID, linkErrs)
	}

	quantityBySKU := make(map[string]int, len(stockVariants))
	for _, sv := range stockVariants {
		quantityBySKU[sv.EAN] = sv.Quantity
	}
	for _, cv := range created.Variants {
		quantity, ok := quantityBySKU[cv.SKU]
		if !ok {
			continue
		}
		setErrs, err := s.storefront.SetOnHandQuantity(ctx, cv.InventoryItemID, locationID, quantity)
		if err != nil {
			return err
		}
		s.logUserErrors("inventorySet", cv.SKU, setErrs)
	}

	s.logger.Info("Created storefront product",
		zap.String("prd_id", sp.PrdID),
		zap.String("shopify_id", created.ID),
		zap.Int("variants", len(created.Variants)))
	return nil
}

// ---------------------------------------------------------------------------
// Variant reconciliation
// ---------------------------------------------------------------------------

func (s *InventoryReconcileService) reconcileVariant(ctx context.Context, locationID string, product *staging.Product, sv *staging.StockVariant, sp *staging.StockProduct) error {
	variant, err := s.products.FindVariantBySKU(ctx, product.ID, sv.EAN)
	if errors.Is(err, staging.ErrVariantNotFound) {
		return s.createVariant(ctx, locationID, product, sv, sp)
	}
	if err != nil {
		return err
	}

	delta := sv.Quantity - variant.InventoryQuantity
	if delta == 0 {
		return nil
	}

	if variant.InventoryManagement != platformManaged {
		trackErrs, err := s.storefront.EnablePlatformTracking(ctx, variant.ShopifyID, variant.InventoryItemID, locationID)
		if err != nil {
			return err
		}
		s.logUserErrors("enableTracking", sv.EAN, trackErrs)
	}

	adjustErrs, err := s.storefront.AdjustAvailableQuantity(ctx, variant.InventoryItemID, locationID, delta)
	if err != nil {
		return err
	}
	s.logUserErrors("inventoryAdjust", sv.EAN, adjustErrs)

	s.logger.Info("Adjusted inventory",
		zap.String("ean", sv.EAN),
		zap.Int("erp_quantity", sv.Quantity),
		zap.Int("storefront_quantity", variant.InventoryQuantity),
		zap.Int("delta", delta))
	return nil
}

// createVariant adds a stock variant the linked product does not carry yet.
// The opening quantity is an absolute set, not an adjustment, since the
// platform has never tracked this variant.
func (s *InventoryReconcileService) createVariant(ctx context.Context, locationID string, product *staging.Product, sv *staging.StockVariant, sp *staging.StockProduct) error {
	options, err := s.stocks.OptionsByPrdID(ctx, sp.PrdID)
	if err != nil {
		return err
	}
	axisNames := make([]string, len(options))
	for i, o := range options {
		axisNames[i] = o.Name
	}

	created, userErrs, err := s.storefront.CreateVariant(ctx, domain.VariantCreateInput{
		ProductID: product.ShopifyID,
		SKU:       sv.EAN,
		Price:     variantPrice(sp),
		Options:   optionValuesFor(axisNames, sv),
	})
	if err != nil {
		return err
	}
	s.logUserErrors("variantCreate", sv.EAN, userErrs)
	if created == nil {
		return nil
	}

	setErrs, err := s.storefront.SetOnHandQuantity(ctx, created.InventoryItemID, locationID, sv.Quantity)
	if err != nil {
		return err
	}
	s.logUserErrors("inventorySet", sv.EAN, setErrs)
	return nil
}

// pushProductDetails replaces the placeholder title with the ERP label and
// refreshes every variant's price
func (s *InventoryReconcileService) pushProductDetails(ctx context.Context, product *staging.Product, sp *staging.StockProduct) {
	userErrs, err := s.storefront.UpdateProduct(ctx, domain.ProductUpdateInput{
		ID:              product.ShopifyID,
		Title:           sp.Label,
		DescriptionHTML: sp.LargeDescription,
	})
	if err != nil {
		s.logger.Warn("Failed to push product details",
			zap.String("prd_id", sp.PrdID),
			zap.Error(err))
		return
	}
	s.logUserErrors("productUpdate", sp.PrdID, userErrs)

	variants, err := s.products.VariantsByProduct(ctx, product.ID)
	if err != nil {
		s.logger.Warn("Failed to list variants for price refresh",
			zap.String("prd_id", sp.PrdID),
			zap.Error(err))
		return
	}
	for i := range variants {
		v := &variants[i]
		priceErrs, err := s.storefront.UpdateVariantPrice(ctx, v.ShopifyID, variantPrice(sp))
		if err != nil {
			s.logger.Warn("Failed to refresh variant price",
				zap.String("sku", v.SKU),
				zap.Error(err))
			continue
		}
		s.logUserErrors("priceUpdate", v.SKU, priceErrs)
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// variantPrice picks the promo price when one is set
func variantPrice(sp *staging.StockProduct) decimal.Decimal {
	if sp.PricePromo.IsPositive() {
		return sp.PricePromo
	}
	return sp.PriceEUR
}

// optionValuesFor aligns a stock variant's size and color with the product's
// option axes, in axis order
func optionValuesFor(axisNames []string, sv *staging.StockVariant) []string {
	values := make([]string, 0, len(axisNames))
	for _, name := range axisNames {
		switch name {
		case staging.OptionNameSize:
			values = append(values, sv.Size)
		case staging.OptionNameColor:
			values = append(values, sv.Color)
		}
	}
	return values
}

func (s *InventoryReconcileService) logUserErrors(operation, key string, userErrs []domain.UserError) {
	for _, ue := range userErrs {
		s.logger.Warn("Storefront rejected mutation",
			zap.String("operation", operation),
			zap.String("key", key),
			zap.String("field", ue.Field),
			zap.String("message", ue.Message))
	}
}
