package sync

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/staging"
	domain "github.com/shopsync/backend/internal/domain/sync"
)

// StockIngestService pulls the full ERP stock listing, enriches each product
// with its catalog payload and stages the result. Per-product info calls run
// in small batches with a pause in between.
type StockIngestService struct {
	erp    domain.ErpGateway
	stocks staging.StockRepository
	logger *zap.Logger

	batchSize  int
	batchPause time.Duration
	sleep      SleepFunc
}

// NewStockIngestService creates a new StockIngestService
func NewStockIngestService(erp domain.ErpGateway, stocks staging.StockRepository, logger *zap.Logger) *StockIngestService {
	return &StockIngestService{
		erp:        erp,
		stocks:     stocks,
		logger:     logger,
		batchSize:  10,
		batchPause: 2 * time.Second,
		sleep:      sleepCtx,
	}
}

// SetBatchPolicy overrides the info-call batch size and inter-batch pause
func (s *StockIngestService) SetBatchPolicy(size int, pause time.Duration) {
	s.batchSize = size
	s.batchPause = pause
}

// stockGroup is the union of stock records sharing one ERP product id
type stockGroup struct {
	prdID   string
	records []domain.StockRecord
}

// Run stages the whole stock listing. A product whose info call keeps
// failing is staged from its stock rows alone; the empty label is backfilled
// on a later cycle.
func (s *StockIngestService) Run(ctx context.Context) error {
	records, err := s.erp.FetchAllProductStock(ctx)
	if err != nil {
		return fmt.Errorf("stock ingestion: %w", err)
	}

	groups := groupStockRecords(records)
	if err := RunInBatches(ctx, groups, s.batchSize, s.batchPause, s.sleep, s.ingestGroup); err != nil {
		return err
	}

	s.logger.Info("Stock ingestion finished", zap.Int("products", len(groups)))
	return nil
}

// groupStockRecords buckets the flat stock listing by product id, keeping
// listing order
func groupStockRecords(records []domain.StockRecord) []stockGroup {
	index := make(map[string]int)
	var groups []stockGroup
	for _, r := range records {
		if r.PrdID == "" {
			continue
		}
		i, ok := index[r.PrdID]
		if !ok {
			i = len(groups)
			index[r.PrdID] = i
			groups = append(groups, stockGroup{prdID: r.PrdID})
		}
		groups[i].records = append(groups[i].records, r)
	}
	return groups
}

func (s *StockIngestService) ingestGroup(ctx context.Context, group stockGroup) {
	product := &staging.StockProduct{PrdID: group.prdID}

	info, err := s.erp.FetchProductInfo(ctx, group.prdID)
	if err != nil {
		s.logger.Warn("Product info fetch failed, staging stock only",
			zap.String("prd_id", group.prdID),
			zap.Error(err))
	} else {
		product.Label = info.Label
		product.SmallDescription = info.SmallDescription
		product.LargeDescription = info.LargeDescription
		product.PriceEUR = info.PriceEUR
		product.PricePromo = info.PricePromo
		product.PricePro = info.PricePro
		product.CanalSoft = info.CanalSoft
		product.CanalFemme = info.CanalFemme
		product.Weight = info.Weight
		product.Category = info.Category
		product.Barcode = info.Barcode
	}

	if _, err := s.stocks.UpsertStockProduct(ctx, product); err != nil {
		s.logger.Error("Failed to stage ERP product",
			zap.String("prd_id", group.prdID),
			zap.Error(err))
		return
	}

	for _, r := range group.records {
		variant := &staging.StockVariant{
			PrdID:    r.PrdID,
			EAN:      r.EAN,
			Quantity: r.Quantity,
			Active:   r.Active,
			Tracked:  r.Tracked,
			Size:     r.Size,
			Color:    r.Color,
		}
		if _, err := s.stocks.UpsertStockVariant(ctx, variant); err != nil {
			s.logger.Warn("Failed to stage stock variant",
				zap.String("prd_id", r.PrdID),
				zap.String("ean", r.EAN),
				zap.Error(err))
		}
	}

	s.ingestOptions(ctx, group)
}

// ingestOptions derives the Size and Color axes from the union of the
// product's stock variants, de-duplicated in listing order
func (s *StockIngestService) ingestOptions(ctx context.Context, group stockGroup) {
	axes := []struct {
		name   string
		pick   func(domain.StockRecord) string
	}{
		{staging.OptionNameSize, func(r domain.StockRecord) string { return r.Size }},
		{staging.OptionNameColor, func(r domain.StockRecord) string { return r.Color }},
	}

	for _, axis := range axes {
		values := distinctValues(group.records, axis.pick)
		if len(values) == 0 {
			continue
		}

		option, err := s.stocks.EnsureOption(ctx, group.prdID, axis.name)
		if err != nil {
			s.logger.Warn("Failed to ensure option axis",
				zap.String("prd_id", group.prdID),
				zap.String("option", axis.name),
				zap.Error(err))
			continue
		}
		for _, value := range values {
			if _, err := s.stocks.EnsureOptionValue(ctx, option.ID, value); err != nil {
				s.logger.Warn("Failed to ensure option value",
					zap.String("prd_id", group.prdID),
					zap.String("option", axis.name),
					zap.String("value", value),
					zap.Error(err))
			}
		}
	}
}

func distinctValues(records []domain.StockRecord, pick func(domain.StockRecord) string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, r := range records {
		v := pick(r)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}
