package staging

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the staged mirror of a storefront catalog product.
// Natural key: ShopifyID. At most one row per remote catalog id.
type Product struct {
	ID              uuid.UUID
	ShopifyID       string
	Title           string
	Handle          string
	Vendor          string
	ProductType     string
	DescriptionHTML string
	Tags            []string

	// PrdID is the cross-system link to the ERP catalog, populated from the
	// custom/prd_id metafield. Empty means the product is staged but not
	// eligible for cross-system matching.
	PrdID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Linked reports whether the product carries the ERP correlation key.
func (p *Product) Linked() bool {
	return p.PrdID != ""
}

// Variant is the staged mirror of a storefront product variant.
// Natural key: ShopifyID. SKU is the join key against ERP stock variants
// and must be unique within a product.
type Variant struct {
	ID                  uuid.UUID
	ShopifyID           string
	ProductID           uuid.UUID
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

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Metafield is a staged custom metadata field attached to a product or order.
type Metafield struct {
	ID        uuid.UUID
	ProductID *uuid.UUID
	OrderID   *uuid.UUID
	Namespace string
	Key       string
	Value     string
	Type      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PrdIDMetafieldKey is the metafield key carrying the ERP product id on the
// storefront side.
const PrdIDMetafieldKey = "prd_id"
