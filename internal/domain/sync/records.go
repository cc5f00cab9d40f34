package sync

import (
	"time"

	"github.com/shopspring/decimal"
)

// Normalized records produced by the remote adapters. Optional remote
// fields are filled with their defaults once, at the adapter boundary, so
// nothing downstream has to re-check presence.

// StorefrontVariant is a normalized storefront product variant.
type StorefrontVariant struct {
	ID                  string
	Title               string
	Price               decimal.Decimal
	SKU                 string
	InventoryQuantity   int
	InventoryManagement string
	RequiresShipping    bool
	Weight              decimal.Decimal
	WeightUnit          string
	Taxable             bool
	CompareAtPrice      *decimal.Decimal
	InventoryItemID     string
}

// StorefrontMetafield is a normalized metafield node.
type StorefrontMetafield struct {
	Namespace string
	Key       string
	Value     string
	Type      string
}

// StorefrontProduct is a normalized storefront product with its variants
// and metafields.
type StorefrontProduct struct {
	ID              string
	Title           string
	Handle          string
	Vendor          string
	ProductType     string
	DescriptionHTML string
	Tags            []string
	Variants        []StorefrontVariant
	Metafields      []StorefrontMetafield
}

// PrdID returns the ERP correlation key from the custom metafields, or ""
// when the product is not linked.
func (p *StorefrontProduct) PrdID() string {
	for _, m := range p.Metafields {
		if m.Key == "prd_id" {
			return m.Value
		}
	}
	return ""
}

// StorefrontAddress is a normalized shipping or billing address.
type StorefrontAddress struct {
	Address1 string
	Address2 string
	City     string
	Zip      string
	Country  string
}

// StorefrontLineItem is a normalized order line.
type StorefrontLineItem struct {
	ID        string
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
	SKU       string
}

// StorefrontOrder is a normalized storefront order.
type StorefrontOrder struct {
	ID                string
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
	ShippingAddress   StorefrontAddress
	BillingAddress    StorefrontAddress
	LineItems         []StorefrontLineItem
	Metafields        []StorefrontMetafield
}

// StockRecord is one normalized row of the ERP stock listing.
type StockRecord struct {
	PrdID    string
	EAN      string
	Quantity int
	Active   bool
	Tracked  bool
	Size     string
	Color    string
}

// ProductInfoRecord is the normalized per-product ERP catalog payload.
type ProductInfoRecord struct {
	PrdID            string
	Barcode          string
	Label            string
	SmallDescription string
	LargeDescription string
	PriceEUR         decimal.Decimal
	PricePromo       decimal.Decimal
	PricePro         decimal.Decimal
	CanalSoft        string
	CanalFemme       string
	Weight           decimal.Decimal
	Category         string
}

// ErpOrderRecord is one normalized row of the ERP order listing.
type ErpOrderRecord struct {
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
}

// ErpOrderSubmission carries the customer, address and total fields for
// AddCommande. The SID is the correlation token tying the submission to the
// assembled cart.
type ErpOrderSubmission struct {
	LastName    string
	FirstName   string
	Email       string
	Street      string
	PostalCode  string
	City        string
	Country     string
	Phone       string
	TotalTTC    decimal.Decimal
	GeoCountry  string
	InternalRef string
}
