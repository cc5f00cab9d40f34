package staging

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockProduct is the staged mirror of an ERP catalog product (product_info).
// Natural key: PrdID.
type StockProduct struct {
	ID               uuid.UUID
	PrdID            string
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
	Barcode          string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StockVariant is the staged mirror of an ERP stock record. The EAN doubles
// as the SKU on the storefront side and is the only join key between the two
// catalogs at variant granularity. The ERP is the source of truth for
// Quantity.
type StockVariant struct {
	ID       uuid.UUID
	PrdID    string
	EAN      string
	Quantity int
	Active   bool
	Tracked  bool
	Size     string
	Color    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductOption is a named option axis (Size, Color) derived from the union
// of an ERP product's stock variants. Position preserves the derivation
// order, which is also the order the axes appear in on the storefront.
type ProductOption struct {
	ID        uuid.UUID
	PrdID     string
	Name      string
	Position  int
	Values    []OptionValue
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OptionValue is one distinct value of an option axis.
type OptionValue struct {
	ID        uuid.UUID
	OptionID  uuid.UUID
	Label     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Option axis names used when deriving options from stock variants.
const (
	OptionNameSize  = "Size"
	OptionNameColor = "Color"
)
