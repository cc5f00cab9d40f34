package staging

import (
	"context"

	"github.com/google/uuid"
)

// UpsertResult describes what an upsert did to the staging row.
type UpsertResult int

const (
	// UpsertUnchanged means the row existed and no tracked field differed.
	UpsertUnchanged UpsertResult = iota
	// UpsertCreated means a new row was inserted.
	UpsertCreated
	// UpsertUpdated means an existing row had changed fields written back.
	UpsertUpdated
)

// String returns the result name for log fields.
func (r UpsertResult) String() string {
	switch r {
	case UpsertCreated:
		return "created"
	case UpsertUpdated:
		return "updated"
	default:
		return "unchanged"
	}
}

// ProductRepository persists the storefront side of the staging store.
//
// Upsert methods follow a select-then-write pattern and are NOT safe under
// concurrent writers for the same natural key. The reconciliation loop runs
// ingestion passes strictly sequentially, which makes this safe for a
// single-process deployment; a multi-instance deployment would need atomic
// upserts backed by the unique indexes in the migrations.
type ProductRepository interface {
	// UpsertProduct inserts the product when its ShopifyID is unseen,
	// updates title and descriptive fields when they changed, and reports
	// which of the three happened.
	UpsertProduct(ctx context.Context, product *Product) (UpsertResult, error)

	// UpsertVariant inserts an unseen variant. For an existing variant only
	// the inventory quantity is compared and, when it differs, written back
	// as a single-column update.
	UpsertVariant(ctx context.Context, variant *Variant) (UpsertResult, error)

	// UpsertMetafield inserts or overwrites a metafield value keyed by
	// (owner, namespace, key).
	UpsertMetafield(ctx context.Context, field *Metafield) (UpsertResult, error)

	FindByShopifyID(ctx context.Context, shopifyID string) (*Product, error)
	FindByPrdID(ctx context.Context, prdID string) (*Product, error)
	VariantsByProduct(ctx context.Context, productID uuid.UUID) ([]Variant, error)
	FindVariantBySKU(ctx context.Context, productID uuid.UUID, sku string) (*Variant, error)
}

// StockRepository persists the ERP side of the staging store.
type StockRepository interface {
	// UpsertStockProduct inserts an unseen ERP product. An existing row is
	// only backfilled when its label is still empty (the stock listing
	// arrives before the per-product info call succeeds).
	UpsertStockProduct(ctx context.Context, product *StockProduct) (UpsertResult, error)

	// UpsertStockVariant inserts an unseen stock variant; for an existing
	// one only the quantity is compared and written back when it differs.
	UpsertStockVariant(ctx context.Context, variant *StockVariant) (UpsertResult, error)

	// EnsureOption returns the option axis for (prdID, name), creating it
	// when absent.
	EnsureOption(ctx context.Context, prdID, name string) (*ProductOption, error)

	// EnsureOptionValue adds a value to an option axis when not yet present.
	EnsureOptionValue(ctx context.Context, optionID uuid.UUID, label string) (UpsertResult, error)

	AllStockProducts(ctx context.Context) ([]StockProduct, error)
	StockVariantsByPrdID(ctx context.Context, prdID string) ([]StockVariant, error)
	FindStockVariantByEAN(ctx context.Context, ean string) (*StockVariant, error)
	OptionsByPrdID(ctx context.Context, prdID string) ([]ProductOption, error)
}

// OrderRepository persists staged orders from both systems.
type OrderRepository interface {
	// InsertOrderIfAbsent stages a storefront order with its line items and
	// metafields. Returns UpsertUnchanged when the order was already staged;
	// staged orders are immutable.
	InsertOrderIfAbsent(ctx context.Context, order *Order, fields []Metafield) (UpsertResult, error)

	// InsertErpOrderIfAbsent stages an ERP order keyed by CdeID.
	InsertErpOrderIfAbsent(ctx context.Context, order *ErpOrder) (UpsertResult, error)

	AllOrders(ctx context.Context) ([]Order, error)
	LineItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]LineItem, error)

	// FindErpOrderByInternalRef looks up the ERP mirror row by the
	// storefront order name. ErrErpOrderNotFound means the order has not
	// been mirrored yet.
	FindErpOrderByInternalRef(ctx context.Context, ref string) (*ErpOrder, error)
}
