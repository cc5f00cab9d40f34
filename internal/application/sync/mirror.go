package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/staging"
	domain "github.com/shopsync/backend/internal/domain/sync"
	"github.com/shopsync/backend/internal/infrastructure/logger"
)

// OrderMirrorService replays staged storefront orders into the ERP through
// the session-scoped cart protocol. An order is mirrored at most once: the
// ERP mirror row carrying the order name as internal reference is the only
// idempotency guard, so an attempt that fails before AddCommande leaves the
// order eligible for retry on the next cycle.
type OrderMirrorService struct {
	erp    domain.ErpGateway
	orders staging.OrderRepository
	stocks staging.StockRepository
	logger *zap.Logger
}

// NewOrderMirrorService creates a new OrderMirrorService
func NewOrderMirrorService(erp domain.ErpGateway, orders staging.OrderRepository, stocks staging.StockRepository, log *zap.Logger) *OrderMirrorService {
	return &OrderMirrorService{
		erp:    erp,
		orders: orders,
		stocks: stocks,
		logger: log,
	}
}

// Run walks every staged storefront order and mirrors the ones without an
// ERP mirror row. Failures are per-order; the pass continues.
func (s *OrderMirrorService) Run(ctx context.Context) error {
	orders, err := s.orders.AllOrders(ctx)
	if err != nil {
		return fmt.Errorf("order mirroring: %w", err)
	}

	var mirrored, skipped int
	for i := range orders {
		order := &orders[i]

		_, err := s.orders.FindErpOrderByInternalRef(ctx, order.Name)
		if err == nil {
			skipped++
			continue
		}
		if !errors.Is(err, staging.ErrErpOrderNotFound) {
			s.logger.Error("Mirror lookup failed",
				zap.String("order_name", order.Name),
				zap.Error(err))
			continue
		}

		if err := s.mirrorOrder(ctx, order); err != nil {
			s.logger.Warn("Order mirroring attempt failed",
				zap.String("order_name", order.Name),
				zap.Error(err))
			continue
		}
		mirrored++
	}

	s.logger.Info("Order mirroring finished",
		zap.Int("mirrored", mirrored),
		zap.Int("already_mirrored", skipped))
	return nil
}

// mirrorOrder drives one mirroring attempt through the cart state machine:
// acquire a fresh SID, purge stray lines, add every resolvable line, submit.
// Zero resolvable lines abort the attempt without submitting.
func (s *OrderMirrorService) mirrorOrder(ctx context.Context, order *staging.Order) error {
	ctx, log := logger.WithOrderName(ctx, s.logger, order.Name)

	session := domain.NewCartSession(order.Name)
	defer session.Abort()
	log = log.With(zap.String("attempt_id", session.AttemptID.String()))

	sid, err := s.erp.NewSession(ctx)
	if err != nil {
		return err
	}
	if err := session.AcquireSession(sid); err != nil {
		return err
	}

	strays, err := s.erp.CartLines(ctx, sid)
	if err != nil {
		return err
	}
	for _, line := range strays {
		if err := s.erp.DeleteCartLine(ctx, sid, line.LineID); err != nil {
			return err
		}
	}
	if len(strays) > 0 {
		log.Info("Purged stray cart lines", zap.Int("count", len(strays)))
	}
	if err := session.MarkCartCleared(); err != nil {
		return err
	}

	items, err := s.orders.LineItemsByOrder(ctx, order.ID)
	if err != nil {
		return err
	}
	for i := range items {
		item := &items[i]

		stockVariant, err := s.stocks.FindStockVariantByEAN(ctx, item.SKU)
		if errors.Is(err, staging.ErrStockVariantNotFound) {
			log.Warn("Line item SKU unknown to the ERP, skipping line",
				zap.String("sku", item.SKU),
				zap.String("title", item.Title))
			continue
		}
		if err != nil {
			return err
		}

		if err := s.erp.AddCartItem(ctx, sid, domain.CartItem{
			PrdID:    stockVariant.PrdID,
			Size:     stockVariant.Size,
			Color:    stockVariant.Color,
			Quantity: item.Quantity,
		}); err != nil {
			return err
		}
		if err := session.AddLine(); err != nil {
			return err
		}
	}

	if session.LinesAdded == 0 {
		log.Warn("No line item resolved against ERP stock, aborting attempt")
		session.Abort()
		return nil
	}

	if err := s.erp.SubmitOrder(ctx, sid, domain.ErpOrderSubmission{
		LastName:    order.CustomerLastName,
		FirstName:   order.CustomerFirstName,
		Email:       order.Email,
		Street:      order.ShippingAddress1,
		PostalCode:  order.ShippingZip,
		City:        order.ShippingCity,
		Country:     order.ShippingCountry,
		Phone:       order.CustomerPhone,
		TotalTTC:    order.TotalPrice,
		GeoCountry:  order.ShippingCountry,
		InternalRef: order.Name,
	}); err != nil {
		return err
	}
	if err := session.Submit(); err != nil {
		return err
	}

	log.Info("Order mirrored to ERP",
		zap.String("sid", sid),
		zap.Int("lines", session.LinesAdded),
		zap.Duration("took", time.Since(session.StartedAt)))
	return nil
}
