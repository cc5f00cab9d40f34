package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/shopsync/backend/internal/domain/staging"
	domain "github.com/shopsync/backend/internal/domain/sync"
)

type mirrorFixture struct {
	gateway *fakeGateway
	orders  *memOrderRepo
	stocks  *memStockRepo
	svc     *OrderMirrorService
}

func newMirrorFixture(t *testing.T) *mirrorFixture {
	t.Helper()
	f := &mirrorFixture{
		gateway: newFakeGateway(),
		orders:  newMemOrderRepo(),
		stocks:  newMemStockRepo(),
	}
	f.svc = NewOrderMirrorService(f.gateway, f.orders, f.stocks, zap.NewNop())
	return f
}

func (f *mirrorFixture) stageOrder(t *testing.T, name string, items ...staging.LineItem) *staging.Order {
	t.Helper()
	order := &staging.Order{
		ShopifyID:         "gid://shopify/Order/" + name,
		Name:              name,
		Email:             "client@example.com",
		TotalPrice:        decimal.RequireFromString("59.80"),
		CustomerFirstName: "Jean",
		CustomerLastName:  "Dupont",
		CustomerPhone:     "+33100000000",
		ShippingAddress1:  "1 rue de la Paix",
		ShippingZip:       "75002",
		ShippingCity:      "Paris",
		ShippingCountry:   "France",
		LineItems:         items,
	}
	_, err := f.orders.InsertOrderIfAbsent(context.Background(), order, nil)
	require.NoError(t, err)
	return order
}

func (f *mirrorFixture) stageStockVariant(t *testing.T, prdID, ean, size, color string) {
	t.Helper()
	_, err := f.stocks.UpsertStockVariant(context.Background(), &staging.StockVariant{
		PrdID: prdID,
		EAN:   ean,
		Size:  size,
		Color: color,
	})
	require.NoError(t, err)
}

func TestOrderMirrorService_Run(t *testing.T) {
	t.Run("mirrors an order through the full cart protocol", func(t *testing.T) {
		f := newMirrorFixture(t)
		f.stageStockVariant(t, "PRD-7", "3660000000017", "M", "Noir")
		f.stageOrder(t, "#1001",
			staging.LineItem{ShopifyID: "li-1", Title: "Blouson cuir", SKU: "3660000000017", Quantity: 2},
		)
		// leftovers from a crashed attempt under the SID the ERP will hand out
		f.gateway.cartLines["sid-1"] = []domain.CartLine{
			{LineID: "31", PrdID: "PRD-3", Quantity: 1},
			{LineID: "32", PrdID: "PRD-4", Quantity: 1},
		}

		require.NoError(t, f.svc.Run(context.Background()))

		assert.Equal(t, []string{"31", "32"}, f.gateway.deletedLines)

		added := f.gateway.addedItems["sid-1"]
		require.Len(t, added, 1)
		assert.Equal(t, domain.CartItem{PrdID: "PRD-7", Size: "M", Color: "Noir", Quantity: 2}, added[0])

		require.Len(t, f.gateway.submitted, 1)
		sub := f.gateway.submitted[0]
		assert.Equal(t, "sid-1", sub.sid)
		assert.Equal(t, "#1001", sub.order.InternalRef)
		assert.Equal(t, "Dupont", sub.order.LastName)
		assert.Equal(t, "France", sub.order.GeoCountry)
		assert.True(t, sub.order.TotalTTC.Equal(decimal.RequireFromString("59.80")))
	})

	t.Run("skips orders that already have a mirror row", func(t *testing.T) {
		f := newMirrorFixture(t)
		f.stageStockVariant(t, "PRD-7", "3660000000017", "M", "Noir")
		f.stageOrder(t, "#1001",
			staging.LineItem{ShopifyID: "li-1", SKU: "3660000000017", Quantity: 1},
		)
		_, err := f.orders.InsertErpOrderIfAbsent(context.Background(), &staging.ErpOrder{
			CdeID:       "77001",
			InternalRef: "#1001",
		})
		require.NoError(t, err)

		require.NoError(t, f.svc.Run(context.Background()))

		assert.Equal(t, 0, f.gateway.sessions)
		assert.Empty(t, f.gateway.submitted)
	})

	t.Run("unresolvable lines are skipped, the rest is submitted", func(t *testing.T) {
		f := newMirrorFixture(t)
		f.stageStockVariant(t, "PRD-7", "3660000000017", "M", "Noir")
		f.stageOrder(t, "#1001",
			staging.LineItem{ShopifyID: "li-1", SKU: "3660000000017", Quantity: 1},
			staging.LineItem{ShopifyID: "li-2", SKU: "unknown-sku", Quantity: 3},
		)

		require.NoError(t, f.svc.Run(context.Background()))

		require.Len(t, f.gateway.addedItems["sid-1"], 1)
		assert.Len(t, f.gateway.submitted, 1)
	})

	t.Run("aborts without submitting when no line resolves", func(t *testing.T) {
		f := newMirrorFixture(t)
		f.stageOrder(t, "#1001",
			staging.LineItem{ShopifyID: "li-1", SKU: "unknown-sku", Quantity: 1},
		)

		require.NoError(t, f.svc.Run(context.Background()))

		assert.Equal(t, 1, f.gateway.sessions)
		assert.Empty(t, f.gateway.addedItems["sid-1"])
		assert.Empty(t, f.gateway.submitted)
	})

	t.Run("a failed submission leaves the order eligible for retry", func(t *testing.T) {
		f := newMirrorFixture(t)
		f.stageStockVariant(t, "PRD-7", "3660000000017", "M", "Noir")
		f.stageOrder(t, "#1001",
			staging.LineItem{ShopifyID: "li-1", SKU: "3660000000017", Quantity: 1},
		)
		f.gateway.submitErr = errors.New("soap fault")

		require.NoError(t, f.svc.Run(context.Background()))
		assert.Empty(t, f.gateway.submitted)

		// the next cycle retries with a fresh SID
		f.gateway.submitErr = nil
		require.NoError(t, f.svc.Run(context.Background()))

		require.Len(t, f.gateway.submitted, 1)
		assert.Equal(t, "sid-2", f.gateway.submitted[0].sid)
	})

	t.Run("each order gets its own session", func(t *testing.T) {
		f := newMirrorFixture(t)
		f.stageStockVariant(t, "PRD-7", "3660000000017", "M", "Noir")
		f.stageOrder(t, "#1001", staging.LineItem{ShopifyID: "li-1", SKU: "3660000000017", Quantity: 1})
		f.stageOrder(t, "#1002", staging.LineItem{ShopifyID: "li-2", SKU: "3660000000017", Quantity: 2})

		require.NoError(t, f.svc.Run(context.Background()))

		require.Len(t, f.gateway.submitted, 2)
		assert.NotEqual(t, f.gateway.submitted[0].sid, f.gateway.submitted[1].sid)
	})

	t.Run("every attempt is logged under its own attempt id", func(t *testing.T) {
		core, observed := observer.New(zapcore.InfoLevel)
		f := newMirrorFixture(t)
		f.svc = NewOrderMirrorService(f.gateway, f.orders, f.stocks, zap.New(core))
		f.stageStockVariant(t, "PRD-7", "3660000000017", "M", "Noir")
		f.stageOrder(t, "#1001", staging.LineItem{ShopifyID: "li-1", SKU: "3660000000017", Quantity: 1})
		f.stageOrder(t, "#1002", staging.LineItem{ShopifyID: "li-2", SKU: "3660000000017", Quantity: 2})

		require.NoError(t, f.svc.Run(context.Background()))

		entries := observed.FilterMessage("Order mirrored to ERP").All()
		require.Len(t, entries, 2)
		var attemptIDs []string
		for _, e := range entries {
			fields := e.ContextMap()
			id, ok := fields["attempt_id"].(string)
			require.True(t, ok)
			assert.NotEmpty(t, id)
			assert.Contains(t, fields, "took")
			attemptIDs = append(attemptIDs, id)
		}
		assert.NotEqual(t, attemptIDs[0], attemptIDs[1])
	})
}
