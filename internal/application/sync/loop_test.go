package sync

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "github.com/shopsync/backend/internal/domain/sync"
)

func TestLoop_RunCycle(t *testing.T) {
	storefront := newFakeStorefront()
	gateway := newFakeGateway()
	products := newMemProductRepo()
	stocks := newMemStockRepo()
	orders := newMemOrderRepo()

	gateway.stock = []domain.StockRecord{
		{PrdID: "PRD-7", EAN: "3660000000017", Quantity: 5, Active: true, Size: "M", Color: "Noir"},
	}
	gateway.infos["PRD-7"] = &domain.ProductInfoRecord{
		PrdID:    "PRD-7",
		Label:    "Blouson cuir",
		PriceEUR: decimal.RequireFromString("99.00"),
	}
	storefront.orderPages = [][]domain.StorefrontOrder{
		{
			{
				ID:         "gid://shopify/Order/1",
				Name:       "#1001",
				TotalPrice: decimal.RequireFromString("29.90"),
				LineItems: []domain.StorefrontLineItem{
					{ID: "li-1", SKU: "3660000000017", Quantity: 1},
				},
			},
		},
	}

	log := zaptest.NewLogger(t)
	catalog := NewCatalogIngestService(storefront, products, log)
	stock := NewStockIngestService(gateway, stocks, log)
	stock.sleep = noPause
	orderIngest := NewOrderIngestService(storefront, gateway, orders, log)
	reconcile := NewInventoryReconcileService(storefront, products, stocks, log)
	reconcile.sleep = noPause
	mirror := NewOrderMirrorService(gateway, orders, stocks, log)

	loop := NewLoop(time.Minute, catalog, stock, orderIngest, reconcile, mirror, log)
	loop.RunCycle(context.Background())

	// the ERP product reached the storefront with its link and opening stock
	require.Len(t, storefront.created, 1)
	assert.Equal(t, "Blouson cuir", storefront.created[0].Title)
	require.Len(t, storefront.onHandSets, 1)
	assert.Equal(t, 5, storefront.onHandSets[0].value)

	// the storefront order reached the ERP
	require.Len(t, gateway.submitted, 1)
	assert.Equal(t, "#1001", gateway.submitted[0].order.InternalRef)

	staged, err := stocks.AllStockProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, staged, 1)
}

func TestLoop_StepOrder(t *testing.T) {
	log := zaptest.NewLogger(t)
	loop := NewLoop(time.Minute,
		NewCatalogIngestService(newFakeStorefront(), newMemProductRepo(), log),
		NewStockIngestService(newFakeGateway(), newMemStockRepo(), log),
		NewOrderIngestService(newFakeStorefront(), newFakeGateway(), newMemOrderRepo(), log),
		NewInventoryReconcileService(newFakeStorefront(), newMemProductRepo(), newMemStockRepo(), log),
		NewOrderMirrorService(newFakeGateway(), newMemOrderRepo(), newMemStockRepo(), log),
		log)

	var names []string
	for _, step := range loop.steps {
		names = append(names, step.name)
	}
	assert.Equal(t, []string{
		"catalog_ingest",
		"order_ingest_storefront",
		"stock_ingest",
		"order_ingest_erp",
		"inventory_reconcile",
		"order_mirror",
	}, names)
}

func TestLoop_StartStopsOnCancel(t *testing.T) {
	log := zaptest.NewLogger(t)
	loop := NewLoop(time.Hour,
		NewCatalogIngestService(newFakeStorefront(), newMemProductRepo(), log),
		NewStockIngestService(newFakeGateway(), newMemStockRepo(), log),
		NewOrderIngestService(newFakeStorefront(), newFakeGateway(), newMemOrderRepo(), log),
		NewInventoryReconcileService(newFakeStorefront(), newMemProductRepo(), newMemStockRepo(), log),
		NewOrderMirrorService(newFakeGateway(), newMemOrderRepo(), newMemStockRepo(), log),
		log)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- loop.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop after cancellation")
	}
}
