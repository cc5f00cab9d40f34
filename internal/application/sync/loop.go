package sync

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/infrastructure/logger"
)

// cycleStep is one sequential phase of a reconciliation cycle
type cycleStep struct {
	name string
	run  func(ctx context.Context) error
}

// Loop drives the reconciliation cycle: ingest both catalogs, ingest both
// order listings, reconcile inventory, mirror orders. Steps run strictly
// sequentially; a failed step is logged and the cycle moves on, since every
// step re-derives its work from the staging store on the next pass.
type Loop struct {
	interval time.Duration
	logger   *zap.Logger
	steps    []cycleStep
}

// NewLoop assembles the cycle from the five services
func NewLoop(
	interval time.Duration,
	catalog *CatalogIngestService,
	stock *StockIngestService,
	orders *OrderIngestService,
	reconcile *InventoryReconcileService,
	mirror *OrderMirrorService,
	log *zap.Logger,
) *Loop {
	return &Loop{
		interval: interval,
		logger:   log,
		steps: []cycleStep{
			{"catalog_ingest", catalog.Run},
			{"order_ingest_storefront", orders.RunStorefront},
			{"stock_ingest", stock.Run},
			{"order_ingest_erp", orders.RunErp},
			{"inventory_reconcile", reconcile.Run},
			{"order_mirror", mirror.Run},
		},
	}
}

// Start runs cycles until the context is cancelled. The first cycle starts
// immediately; afterwards a full cycle is separated from the next by the
// configured interval.
func (l *Loop) Start(ctx context.Context) error {
	l.logger.Info("Sync loop starting", zap.Duration("interval", l.interval))

	for {
		l.RunCycle(ctx)

		timer := time.NewTimer(l.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			l.logger.Info("Sync loop stopped")
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// RunCycle executes one full cycle under a fresh cycle id
func (l *Loop) RunCycle(ctx context.Context) {
	cycleID := uuid.New().String()
	ctx, log := logger.WithCycleID(ctx, l.logger, cycleID)

	started := time.Now()
	log.Info("Sync cycle started")

	for _, step := range l.steps {
		if ctx.Err() != nil {
			return
		}
		if err := step.run(ctx); err != nil {
			log.Error("Sync step failed",
				zap.String("step", step.name),
				zap.Error(err))
		}
	}

	log.Info("Sync cycle finished", zap.Duration("duration", time.Since(started)))
}
