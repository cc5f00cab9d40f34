package sync

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/staging"
	domain "github.com/shopsync/backend/internal/domain/sync"
)

// OrderIngestService stages orders from both systems. Orders are staged
// once when first observed and never touched again.
type OrderIngestService struct {
	storefront domain.Storefront
	erp        domain.ErpGateway
	orders     staging.OrderRepository
	logger     *zap.Logger

	fetchRetries int
	fetchPause   time.Duration
}

// NewOrderIngestService creates a new OrderIngestService
func NewOrderIngestService(storefront domain.Storefront, erp domain.ErpGateway, orders staging.OrderRepository, logger *zap.Logger) *OrderIngestService {
	return &OrderIngestService{
		storefront:   storefront,
		erp:          erp,
		orders:       orders,
		logger:       logger,
		fetchRetries: 5,
		fetchPause:   2 * time.Second,
	}
}

// SetRetryPolicy overrides the per-page retry budget and pause
func (s *OrderIngestService) SetRetryPolicy(retries int, pause time.Duration) {
	s.fetchRetries = retries
	s.fetchPause = pause
}

// RunStorefront walks the storefront order listing and stages every new
// order with its line items and metafields
func (s *OrderIngestService) RunStorefront(ctx context.Context) error {
	walker := domain.NewWalker(
		s.storefront.FetchOrderPage,
		domain.WithRetries[domain.StorefrontOrder](s.fetchRetries),
		domain.WithRetryPause[domain.StorefrontOrder](s.fetchPause),
	)

	var created, seen int
	err := walker.Walk(ctx, func(record domain.StorefrontOrder) error {
		result, err := s.stageOrder(ctx, &record)
		if err != nil {
			s.logger.Warn("Failed to stage storefront order",
				zap.String("order_name", record.Name),
				zap.Error(err))
			return nil
		}
		if result == staging.UpsertCreated {
			created++
		} else {
			seen++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("order ingestion: %w", err)
	}

	s.logger.Info("Storefront order ingestion finished",
		zap.Int("created", created),
		zap.Int("already_staged", seen))
	return nil
}

func (s *OrderIngestService) stageOrder(ctx context.Context, record *domain.StorefrontOrder) (staging.UpsertResult, error) {
	order := &staging.Order{
		ShopifyID:         record.ID,
		Name:              record.Name,
		Email:             record.Email,
		TotalPrice:        record.TotalPrice,
		CurrencyCode:      record.CurrencyCode,
		FinancialStatus:   record.FinancialStatus,
		FulfillmentStatus: record.FulfillmentStatus,
		PlacedAt:          record.PlacedAt,
		CustomerFirstName: record.CustomerFirstName,
		CustomerLastName:  record.CustomerLastName,
		CustomerPhone:     record.CustomerPhone,
		ShippingAddress1:  record.ShippingAddress.Address1,
		ShippingAddress2:  record.ShippingAddress.Address2,
		ShippingCity:      record.ShippingAddress.City,
		ShippingZip:       record.ShippingAddress.Zip,
		ShippingCountry:   record.ShippingAddress.Country,
		BillingAddress1:   record.BillingAddress.Address1,
		BillingAddress2:   record.BillingAddress.Address2,
		BillingCity:       record.BillingAddress.City,
		BillingZip:        record.BillingAddress.Zip,
		BillingCountry:    record.BillingAddress.Country,
	}
	for _, li := range record.LineItems {
		order.LineItems = append(order.LineItems, staging.LineItem{
			ShopifyID: li.ID,
			Title:     li.Title,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
			SKU:       li.SKU,
		})
	}

	var fields []staging.Metafield
	for _, m := range record.Metafields {
		fields = append(fields, staging.Metafield{
			Namespace: m.Namespace,
			Key:       m.Key,
			Value:     m.Value,
			Type:      m.Type,
		})
	}

	return s.orders.InsertOrderIfAbsent(ctx, order, fields)
}

// RunErp stages the ERP-side order listing keyed by cde_id. Rows carrying an
// internal reference are the mirror markers checked before replaying a
// storefront order.
func (s *OrderIngestService) RunErp(ctx context.Context) error {
	records, err := s.erp.FetchOrders(ctx)
	if err != nil {
		return fmt.Errorf("erp order ingestion: %w", err)
	}

	var created int
	for i := range records {
		r := &records[i]
		order := &staging.ErpOrder{
			CdeID:         r.CdeID,
			PlacedAt:      r.PlacedAt,
			Number:        r.Number,
			ClientID:      r.ClientID,
			LastName:      r.LastName,
			FirstName:     r.FirstName,
			Email:         r.Email,
			Address:       r.Address,
			PostalCode:    r.PostalCode,
			City:          r.City,
			Country:       r.Country,
			Phone:         r.Phone,
			Fax:           r.Fax,
			Message:       r.Message,
			DeliveryLast:  r.DeliveryLast,
			DeliveryFirst: r.DeliveryFirst,
			DeliveryRue:   r.DeliveryRue,
			DeliveryRue2:  r.DeliveryRue2,
			DeliveryRue3:  r.DeliveryRue3,
			DeliveryZip:   r.DeliveryZip,
			TotalHT:       r.TotalHT,
			TotalTTC:      r.TotalTTC,
			PaymentMode:   r.PaymentMode,
			Status:        r.Status,
			PaidAt:        r.PaidAt,
			TransportMode: r.TransportMode,
			GeoCountry:    r.GeoCountry,
			InternalRef:   r.InternalRef,
		}
		result, err := s.orders.InsertErpOrderIfAbsent(ctx, order)
		if err != nil {
			s.logger.Warn("Failed to stage ERP order",
				zap.String("cde_id", r.CdeID),
				zap.Error(err))
			continue
		}
		if result == staging.UpsertCreated {
			created++
		}
	}

	s.logger.Info("ERP order ingestion finished",
		zap.Int("created", created),
		zap.Int("total", len(records)))
	return nil
}
