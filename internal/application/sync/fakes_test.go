package sync

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	gosync "sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopsync/backend/internal/domain/staging"
	domain "github.com/shopsync/backend/internal/domain/sync"
)

// ---------------------------------------------------------------------------
// Fake storefront
// ---------------------------------------------------------------------------

type quantityWrite struct {
	inventoryItemID string
	locationID      string
	value           int
}

type fakeStorefront struct {
	mu gosync.Mutex

	productPages [][]domain.StorefrontProduct
	orderPages   [][]domain.StorefrontOrder
	locationID   string

	created         []domain.ProductCreateInput
	createdResults  []*domain.CreatedProduct
	updates         []domain.ProductUpdateInput
	priceUpdates    map[string]decimal.Decimal
	variantCreates  []domain.VariantCreateInput
	linkMetafields  map[string]string
	onHandSets      []quantityWrite
	adjustments     []quantityWrite
	trackingEnabled []string
}

func newFakeStorefront() *fakeStorefront {
	return &fakeStorefront{
		locationID:     "gid://shopify/Location/5",
		priceUpdates:   make(map[string]decimal.Decimal),
		linkMetafields: make(map[string]string),
	}
}

// fakePage serves pages with the last-item cursor convention
func fakePage[T any](pages [][]T, cursor string) (domain.Page[T], error) {
	idx := 0
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil {
			return domain.Page[T]{}, fmt.Errorf("bad cursor %q", cursor)
		}
		idx = n + 1
	}
	if idx >= len(pages) {
		return domain.Page[T]{}, nil
	}
	return domain.Page[T]{
		Items:   pages[idx],
		Cursor:  strconv.Itoa(idx),
		HasMore: idx < len(pages)-1,
	}, nil
}

func (f *fakeStorefront) FetchProductPage(ctx context.Context, cursor string) (domain.Page[domain.StorefrontProduct], error) {
	return fakePage(f.productPages, cursor)
}

func (f *fakeStorefront) FetchOrderPage(ctx context.Context, cursor string) (domain.Page[domain.StorefrontOrder], error) {
	return fakePage(f.orderPages, cursor)
}

func (f *fakeStorefront) PrimaryLocationID(ctx context.Context) (string, error) {
	if f.locationID == "" {
		return "", domain.ErrNoLocation
	}
	return f.locationID, nil
}

func (f *fakeStorefront) CreateProduct(ctx context.Context, input domain.ProductCreateInput) (*domain.CreatedProduct, []domain.UserError, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, input)

	created := &domain.CreatedProduct{
		ID:    "gid://shopify/Product/created-" + input.PrdID,
		Title: input.Title,
	}
	for i, v := range input.Variants {
		created.Variants = append(created.Variants, domain.CreatedVariant{
			ID:              fmt.Sprintf("%s/variant-%d", created.ID, i),
			SKU:             v.SKU,
			InventoryItemID: fmt.Sprintf("%s/item-%d", created.ID, i),
		})
	}
	f.createdResults = append(f.createdResults, created)
	return created, nil, nil
}

func (f *fakeStorefront) UpdateProduct(ctx context.Context, input domain.ProductUpdateInput) ([]domain.UserError, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, input)
	return nil, nil
}

func (f *fakeStorefront) UpdateVariantPrice(ctx context.Context, variantID string, price decimal.Decimal) ([]domain.UserError, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.priceUpdates[variantID] = price
	return nil, nil
}

func (f *fakeStorefront) CreateVariant(ctx context.Context, input domain.VariantCreateInput) (*domain.CreatedVariant, []domain.UserError, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.variantCreates = append(f.variantCreates, input)
	n := len(f.variantCreates)
	return &domain.CreatedVariant{
		ID:              fmt.Sprintf("gid://shopify/ProductVariant/new-%d", n),
		SKU:             input.SKU,
		InventoryItemID: fmt.Sprintf("gid://shopify/InventoryItem/new-%d", n),
	}, nil, nil
}

func (f *fakeStorefront) SetLinkMetafield(ctx context.Context, productID, prdID string) ([]domain.UserError, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.linkMetafields[productID] = prdID
	return nil, nil
}

func (f *fakeStorefront) SetOnHandQuantity(ctx context.Context, inventoryItemID, locationID string, quantity int) ([]domain.UserError, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onHandSets = append(f.onHandSets, quantityWrite{inventoryItemID, locationID, quantity})
	return nil, nil
}

func (f *fakeStorefront) AdjustAvailableQuantity(ctx context.Context, inventoryItemID, locationID string, delta int) ([]domain.UserError, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adjustments = append(f.adjustments, quantityWrite{inventoryItemID, locationID, delta})
	return nil, nil
}

func (f *fakeStorefront) EnablePlatformTracking(ctx context.Context, variantID, inventoryItemID, locationID string) ([]domain.UserError, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trackingEnabled = append(f.trackingEnabled, variantID)
	return nil, nil
}

var _ domain.Storefront = (*fakeStorefront)(nil)

// ---------------------------------------------------------------------------
// Fake ERP gateway
// ---------------------------------------------------------------------------

type submittedOrder struct {
	sid   string
	order domain.ErpOrderSubmission
}

type fakeGateway struct {
	mu gosync.Mutex

	stock     []domain.StockRecord
	infos     map[string]*domain.ProductInfoRecord
	infoErrs  map[string]error
	erpOrders []domain.ErpOrderRecord

	sessions  int
	cartLines map[string][]domain.CartLine

	deletedLines []string
	addedItems   map[string][]domain.CartItem
	submitted    []submittedOrder
	submitErr    error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		infos:      make(map[string]*domain.ProductInfoRecord),
		infoErrs:   make(map[string]error),
		cartLines:  make(map[string][]domain.CartLine),
		addedItems: make(map[string][]domain.CartItem),
	}
}

func (f *fakeGateway) FetchAllProductStock(ctx context.Context) ([]domain.StockRecord, error) {
	return f.stock, nil
}

func (f *fakeGateway) FetchProductInfo(ctx context.Context, prdID string) (*domain.ProductInfoRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.infoErrs[prdID]; ok {
		return nil, err
	}
	info, ok := f.infos[prdID]
	if !ok {
		return nil, fmt.Errorf("no product info for %s", prdID)
	}
	return info, nil
}

func (f *fakeGateway) FetchOrders(ctx context.Context) ([]domain.ErpOrderRecord, error) {
	return f.erpOrders, nil
}

func (f *fakeGateway) NewSession(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions++
	return fmt.Sprintf("sid-%d", f.sessions), nil
}

func (f *fakeGateway) CartLines(ctx context.Context, sid string) ([]domain.CartLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	// callers range over the result while DeleteCartLine rewrites the
	// backing slice, so hand out a copy
	return slices.Clone(f.cartLines[sid]), nil
}

func (f *fakeGateway) DeleteCartLine(ctx context.Context, sid, lineID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedLines = append(f.deletedLines, lineID)
	f.cartLines[sid] = slices.DeleteFunc(f.cartLines[sid], func(l domain.CartLine) bool {
		return l.LineID == lineID
	})
	return nil
}

func (f *fakeGateway) AddCartItem(ctx context.Context, sid string, item domain.CartItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addedItems[sid] = append(f.addedItems[sid], item)
	return nil
}

func (f *fakeGateway) SubmitOrder(ctx context.Context, sid string, order domain.ErpOrderSubmission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return f.submitErr
	}
	f.submitted = append(f.submitted, submittedOrder{sid: sid, order: order})
	return nil
}

var _ domain.ErpGateway = (*fakeGateway)(nil)

// ---------------------------------------------------------------------------
// In-memory staging repositories
// ---------------------------------------------------------------------------

type memProductRepo struct {
	mu         gosync.Mutex
	products   []*staging.Product
	variants   []*staging.Variant
	metafields []*staging.Metafield

	upsertErr map[string]error // keyed by ShopifyID
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{upsertErr: make(map[string]error)}
}

func (r *memProductRepo) UpsertProduct(ctx context.Context, product *staging.Product) (staging.UpsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.upsertErr[product.ShopifyID]; ok {
		return staging.UpsertUnchanged, err
	}
	for _, p := range r.products {
		if p.ShopifyID != product.ShopifyID {
			continue
		}
		product.ID = p.ID
		if p.Title == product.Title && p.DescriptionHTML == product.DescriptionHTML && p.PrdID == product.PrdID {
			return staging.UpsertUnchanged, nil
		}
		*p = *product
		return staging.UpsertUpdated, nil
	}
	product.ID = uuid.New()
	stored := *product
	r.products = append(r.products, &stored)
	return staging.UpsertCreated, nil
}

func (r *memProductRepo) UpsertVariant(ctx context.Context, variant *staging.Variant) (staging.UpsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.variants {
		if v.ShopifyID != variant.ShopifyID {
			continue
		}
		variant.ID = v.ID
		if v.InventoryQuantity == variant.InventoryQuantity {
			return staging.UpsertUnchanged, nil
		}
		v.InventoryQuantity = variant.InventoryQuantity
		return staging.UpsertUpdated, nil
	}
	variant.ID = uuid.New()
	stored := *variant
	r.variants = append(r.variants, &stored)
	return staging.UpsertCreated, nil
}

func (r *memProductRepo) UpsertMetafield(ctx context.Context, field *staging.Metafield) (staging.UpsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if field.ProductID == nil && field.OrderID == nil {
		return staging.UpsertUnchanged, staging.ErrMissingNaturalKey
	}
	for _, m := range r.metafields {
		if m.Namespace != field.Namespace || m.Key != field.Key {
			continue
		}
		if field.ProductID != nil && m.ProductID != nil && *m.ProductID == *field.ProductID {
			if m.Value == field.Value {
				return staging.UpsertUnchanged, nil
			}
			m.Value = field.Value
			return staging.UpsertUpdated, nil
		}
	}
	field.ID = uuid.New()
	stored := *field
	r.metafields = append(r.metafields, &stored)
	return staging.UpsertCreated, nil
}

func (r *memProductRepo) FindByShopifyID(ctx context.Context, shopifyID string) (*staging.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.ShopifyID == shopifyID {
			found := *p
			return &found, nil
		}
	}
	return nil, staging.ErrProductNotFound
}

func (r *memProductRepo) FindByPrdID(ctx context.Context, prdID string) (*staging.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.PrdID == prdID {
			found := *p
			return &found, nil
		}
	}
	return nil, staging.ErrProductNotFound
}

func (r *memProductRepo) VariantsByProduct(ctx context.Context, productID uuid.UUID) ([]staging.Variant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []staging.Variant
	for _, v := range r.variants {
		if v.ProductID == productID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *memProductRepo) FindVariantBySKU(ctx context.Context, productID uuid.UUID, sku string) (*staging.Variant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.variants {
		if v.ProductID == productID && v.SKU == sku {
			found := *v
			return &found, nil
		}
	}
	return nil, staging.ErrVariantNotFound
}

var _ staging.ProductRepository = (*memProductRepo)(nil)

type memStockRepo struct {
	mu       gosync.Mutex
	products []*staging.StockProduct
	variants []*staging.StockVariant
	options  []*staging.ProductOption
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{}
}

func (r *memStockRepo) UpsertStockProduct(ctx context.Context, product *staging.StockProduct) (staging.UpsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.PrdID != product.PrdID {
			continue
		}
		product.ID = p.ID
		if p.Label != "" || product.Label == "" {
			return staging.UpsertUnchanged, nil
		}
		*p = *product
		return staging.UpsertUpdated, nil
	}
	product.ID = uuid.New()
	stored := *product
	r.products = append(r.products, &stored)
	return staging.UpsertCreated, nil
}

func (r *memStockRepo) UpsertStockVariant(ctx context.Context, variant *staging.StockVariant) (staging.UpsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.variants {
		if v.EAN != variant.EAN {
			continue
		}
		variant.ID = v.ID
		if v.Quantity == variant.Quantity {
			return staging.UpsertUnchanged, nil
		}
		v.Quantity = variant.Quantity
		return staging.UpsertUpdated, nil
	}
	variant.ID = uuid.New()
	stored := *variant
	r.variants = append(r.variants, &stored)
	return staging.UpsertCreated, nil
}

func (r *memStockRepo) EnsureOption(ctx context.Context, prdID, name string) (*staging.ProductOption, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.options {
		if o.PrdID == prdID && o.Name == name {
			found := *o
			return &found, nil
		}
	}
	position := 0
	for _, o := range r.options {
		if o.PrdID == prdID {
			position++
		}
	}
	option := &staging.ProductOption{ID: uuid.New(), PrdID: prdID, Name: name, Position: position}
	r.options = append(r.options, option)
	found := *option
	return &found, nil
}

func (r *memStockRepo) EnsureOptionValue(ctx context.Context, optionID uuid.UUID, label string) (staging.UpsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.options {
		if o.ID != optionID {
			continue
		}
		for _, v := range o.Values {
			if v.Label == label {
				return staging.UpsertUnchanged, nil
			}
		}
		o.Values = append(o.Values, staging.OptionValue{ID: uuid.New(), OptionID: optionID, Label: label})
		return staging.UpsertCreated, nil
	}
	return staging.UpsertUnchanged, fmt.Errorf("option %s not found", optionID)
}

func (r *memStockRepo) AllStockProducts(ctx context.Context) ([]staging.StockProduct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]staging.StockProduct, len(r.products))
	for i, p := range r.products {
		out[i] = *p
	}
	return out, nil
}

func (r *memStockRepo) StockVariantsByPrdID(ctx context.Context, prdID string) ([]staging.StockVariant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []staging.StockVariant
	for _, v := range r.variants {
		if v.PrdID == prdID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *memStockRepo) FindStockVariantByEAN(ctx context.Context, ean string) (*staging.StockVariant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.variants {
		if v.EAN == ean {
			found := *v
			return &found, nil
		}
	}
	return nil, staging.ErrStockVariantNotFound
}

func (r *memStockRepo) OptionsByPrdID(ctx context.Context, prdID string) ([]staging.ProductOption, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []staging.ProductOption
	for _, o := range r.options {
		if o.PrdID == prdID {
			out = append(out, *o)
		}
	}
	return out, nil
}

var _ staging.StockRepository = (*memStockRepo)(nil)

type memOrderRepo struct {
	mu         gosync.Mutex
	orders     []*staging.Order
	metafields []*staging.Metafield
	erpOrders  []*staging.ErpOrder
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{}
}

func (r *memOrderRepo) InsertOrderIfAbsent(ctx context.Context, order *staging.Order, fields []staging.Metafield) (staging.UpsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ShopifyID == order.ShopifyID {
			order.ID = o.ID
			return staging.UpsertUnchanged, nil
		}
	}
	order.ID = uuid.New()
	for i := range order.LineItems {
		order.LineItems[i].ID = uuid.New()
		order.LineItems[i].OrderID = order.ID
	}
	stored := *order
	r.orders = append(r.orders, &stored)
	for i := range fields {
		fields[i].ID = uuid.New()
		fields[i].OrderID = &order.ID
		storedField := fields[i]
		r.metafields = append(r.metafields, &storedField)
	}
	return staging.UpsertCreated, nil
}

func (r *memOrderRepo) InsertErpOrderIfAbsent(ctx context.Context, order *staging.ErpOrder) (staging.UpsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.erpOrders {
		if o.CdeID == order.CdeID {
			order.ID = o.ID
			return staging.UpsertUnchanged, nil
		}
	}
	order.ID = uuid.New()
	stored := *order
	r.erpOrders = append(r.erpOrders, &stored)
	return staging.UpsertCreated, nil
}

func (r *memOrderRepo) AllOrders(ctx context.Context) ([]staging.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]staging.Order, len(r.orders))
	for i, o := range r.orders {
		out[i] = *o
	}
	return out, nil
}

func (r *memOrderRepo) LineItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]staging.LineItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == orderID {
			return slices.Clone(o.LineItems), nil
		}
	}
	return nil, nil
}

func (r *memOrderRepo) FindErpOrderByInternalRef(ctx context.Context, ref string) (*staging.ErpOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.erpOrders {
		if o.InternalRef == ref {
			found := *o
			return &found, nil
		}
	}
	return nil, staging.ErrErpOrderNotFound
}

var _ staging.OrderRepository = (*memOrderRepo)(nil)

// noPause is a SleepFunc that returns immediately
func noPause(ctx context.Context, d time.Duration) error { return nil }
