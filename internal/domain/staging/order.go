package staging

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is the staged mirror of a storefront order. Natural key: ShopifyID.
// Rows are created once when first observed and are immutable afterwards.
type Order struct {
	ID                uuid.UUID
	ShopifyID         string
	Name              string
	Email             string
	TotalPrice        decimal.Decimal
	CurrencyCode      string
	FinancialStatus   string
	FulfillmentStatus string
	PlacedAt          time.Time

	CustomerFirstName string
	CustomerLastName  string
	CustomerPhone     string

	ShippingAddress1 string
	ShippingAddress2 string
	ShippingCity     string
	ShippingZip      string
	ShippingCountry  string

	BillingAddress1 string
	BillingAddress2 string
	BillingCity     string
	BillingZip      string
	BillingCountry  string

	LineItems []LineItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LineItem belongs to exactly one Order. The SKU is resolved against ERP
// stock variants during mirroring.
type LineItem struct {
	ID        uuid.UUID
	ShopifyID string
	OrderID   uuid.UUID
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
	SKU       string
	CreatedAt time.Time
}

// ErpOrder is the staged mirror of an ERP-side order (order_soap). Natural
// key: CdeID. The InternalRef field equals the storefront Order.Name for
// mirrored orders; its existence is the sole idempotency guard against
// re-mirroring.
type ErpOrder struct {
	ID            uuid.UUID
	CdeID         string
	PlacedAt      string
	Number        string
	ClientID      string
	LastName      string
	FirstName     string
	Email         string
	Address       string
	PostalCode    string
	City          string
	Country       string
	Phone         string
	Fax           string
	Message       string
	DeliveryLast  string
	DeliveryFirst string
	DeliveryRue   string
	DeliveryRue2  string
	DeliveryRue3  string
	DeliveryZip   string
	TotalHT       decimal.Decimal
	TotalTTC      decimal.Decimal
	PaymentMode   int
	Status        int
	PaidAt        string
	TransportMode int
	GeoCountry    string
	InternalRef   string

	CreatedAt time.Time
	UpdatedAt time.Time
}
