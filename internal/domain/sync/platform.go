package sync

import (
	"context"

	"github.com/shopspring/decimal"
)

// UserError is a remote-reported validation error. Mutations returning user
// errors are soft failures: logged, never thrown.
type UserError struct {
	Field   string
	Message string
}

// ProductCreateInput assembles a storefront product from staged ERP data.
type ProductCreateInput struct {
	Title           string
	DescriptionHTML string
	PrdID           string
	Options         []string
	Variants        []VariantCreateInput
}

// VariantCreateInput creates one variant under a product.
type VariantCreateInput struct {
	ProductID string
	SKU       string
	Price     decimal.Decimal
	Options   []string
}

// CreatedVariant is a variant echoed back by a product create call, with
// the inventory item assigned by the platform.
type CreatedVariant struct {
	ID              string
	SKU             string
	InventoryItemID string
}

// CreatedProduct is the result of a successful product create.
type CreatedProduct struct {
	ID       string
	Title    string
	Variants []CreatedVariant
}

// ProductUpdateInput pushes label/description changes to the storefront.
type ProductUpdateInput struct {
	ID              string
	Title           string
	DescriptionHTML string
}

// Storefront is the paginated query/mutation surface of the storefront
// platform the engine consumes. Adapters normalize payloads at the boundary
// per the record types in this package.
type Storefront interface {
	// FetchProductPage fetches one page of the product listing.
	FetchProductPage(ctx context.Context, cursor string) (Page[StorefrontProduct], error)

	// FetchOrderPage fetches one page of the order listing.
	FetchOrderPage(ctx context.Context, cursor string) (Page[StorefrontOrder], error)

	// PrimaryLocationID resolves the fulfillment location used for all
	// inventory writes. Resolved once per reconciliation run.
	PrimaryLocationID(ctx context.Context) (string, error)

	// CreateProduct creates a product with variants, option axes and the
	// cross-system link metafield in one mutation.
	CreateProduct(ctx context.Context, input ProductCreateInput) (*CreatedProduct, []UserError, error)

	// UpdateProduct pushes title/description changes.
	UpdateProduct(ctx context.Context, input ProductUpdateInput) ([]UserError, error)

	// UpdateVariantPrice refreshes one variant's price.
	UpdateVariantPrice(ctx context.Context, variantID string, price decimal.Decimal) ([]UserError, error)

	// CreateVariant adds a variant to an existing product. The returned
	// variant carries the inventory item assigned by the platform so its
	// opening quantity can be set.
	CreateVariant(ctx context.Context, input VariantCreateInput) (*CreatedVariant, []UserError, error)

	// SetLinkMetafield writes the custom/prd_id metafield on a product.
	SetLinkMetafield(ctx context.Context, productID, prdID string) ([]UserError, error)

	// SetOnHandQuantity sets an ABSOLUTE opening quantity. Only used for
	// variants the platform has never tracked before.
	SetOnHandQuantity(ctx context.Context, inventoryItemID, locationID string, quantity int) ([]UserError, error)

	// AdjustAvailableQuantity submits a RELATIVE inventory delta, never an
	// absolute set, so concurrent storefront-side changes are not clobbered.
	AdjustAvailableQuantity(ctx context.Context, inventoryItemID, locationID string, delta int) ([]UserError, error)

	// EnablePlatformTracking switches a variant to platform-managed
	// inventory and activates it at the location. Idempotent; required once
	// before the first relative adjustment for a variant.
	EnablePlatformTracking(ctx context.Context, variantID, inventoryItemID, locationID string) ([]UserError, error)
}

// ErpGateway is the session-scoped RPC surface of the ERP the engine
// consumes.
type ErpGateway interface {
	// FetchAllProductStock lists every active stock record.
	FetchAllProductStock(ctx context.Context) ([]StockRecord, error)

	// FetchProductInfo fetches the catalog payload for one ERP product.
	FetchProductInfo(ctx context.Context, prdID string) (*ProductInfoRecord, error)

	// FetchOrders lists ERP-side orders.
	FetchOrders(ctx context.Context) ([]ErpOrderRecord, error)

	// NewSession requests a fresh cart session id (GetSid). SIDs are
	// single-use per mirroring attempt.
	NewSession(ctx context.Context) (string, error)

	// CartLines lists lines currently under the session (CartGetData).
	CartLines(ctx context.Context, sid string) ([]CartLine, error)

	// DeleteCartLine removes one stray line (CartDeleteLine).
	DeleteCartLine(ctx context.Context, sid, lineID string) error

	// AddCartItem adds one resolved line to the session cart (CartAddItemPro).
	AddCartItem(ctx context.Context, sid string, item CartItem) error

	// SubmitOrder submits the assembled cart as an ERP order (AddCommande).
	// On success the ERP creates the mirror row observed on the next cycle.
	SubmitOrder(ctx context.Context, sid string, order ErpOrderSubmission) error
}
