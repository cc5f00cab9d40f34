package shopify

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopsync/backend/internal/domain/sync"
)

// ---------------------------------------------------------------------------
// Shared GraphQL shapes
// ---------------------------------------------------------------------------

// edge carries the per-item cursor used for pagination
type edge[T any] struct {
	Cursor string `json:"cursor"`
	Node   T      `json:"node"`
}

type connection[T any] struct {
	Edges    []edge[T] `json:"edges"`
	PageInfo pageInfo  `json:"pageInfo"`
}

type pageInfo struct {
	HasNextPage bool `json:"hasNextPage"`
}

type userErrorNode struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// userErrorsToDomain flattens GraphQL userErrors into domain soft failures
func userErrorsToDomain(nodes []userErrorNode) []sync.UserError {
	if len(nodes) == 0 {
		return nil
	}
	errs := make([]sync.UserError, len(nodes))
	for i, n := range nodes {
		errs[i] = sync.UserError{
			Field:   strings.Join(n.Field, "."),
			Message: n.Message,
		}
	}
	return errs
}

// parseDecimal parses an Admin API money string, empty meaning zero
func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseOptionalDecimal keeps absence distinct from zero
func parseOptionalDecimal(s *string) *decimal.Decimal {
	if s == nil || *s == "" {
		return nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil
	}
	return &d
}

// ---------------------------------------------------------------------------
// Product nodes
// ---------------------------------------------------------------------------

type metafieldNode struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	Type      string `json:"type"`
}

func (n *metafieldNode) toRecord() sync.StorefrontMetafield {
	return sync.StorefrontMetafield{
		Namespace: n.Namespace,
		Key:       n.Key,
		Value:     n.Value,
		Type:      n.Type,
	}
}

type inventoryItemNode struct {
	ID      string `json:"id"`
	Tracked bool   `json:"tracked"`
}

type variantNode struct {
	ID                  string            `json:"id"`
	Title               string            `json:"title"`
	Price               string            `json:"price"`
	SKU                 string            `json:"sku"`
	InventoryQuantity   int               `json:"inventoryQuantity"`
	InventoryManagement string            `json:"inventoryManagement"`
	RequiresShipping    bool              `json:"requiresShipping"`
	Weight              string            `json:"weight"`
	WeightUnit          string            `json:"weightUnit"`
	Taxable             bool              `json:"taxable"`
	CompareAtPrice      *string           `json:"compareAtPrice"`
	InventoryItem       inventoryItemNode `json:"inventoryItem"`
}

func (n *variantNode) toRecord() sync.StorefrontVariant {
	return sync.StorefrontVariant{
		ID:                  n.ID,
		Title:               n.Title,
		Price:               parseDecimal(n.Price),
		SKU:                 n.SKU,
		InventoryQuantity:   n.InventoryQuantity,
		InventoryManagement: n.InventoryManagement,
		RequiresShipping:    n.RequiresShipping,
		Weight:              parseDecimal(n.Weight),
		WeightUnit:          n.WeightUnit,
		Taxable:             n.Taxable,
		CompareAtPrice:      parseOptionalDecimal(n.CompareAtPrice),
		InventoryItemID:     n.InventoryItem.ID,
	}
}

type productNode struct {
	ID              string                    `json:"id"`
	Title           string                    `json:"title"`
	Handle          string                    `json:"handle"`
	Vendor          string                    `json:"vendor"`
	ProductType     string                    `json:"productType"`
	DescriptionHTML string                    `json:"descriptionHtml"`
	Tags            []string                  `json:"tags"`
	Variants        connection[variantNode]   `json:"variants"`
	Metafields      connection[metafieldNode] `json:"metafields"`
}

func (n *productNode) toRecord() sync.StorefrontProduct {
	product := sync.StorefrontProduct{
		ID:              n.ID,
		Title:           n.Title,
		Handle:          n.Handle,
		Vendor:          n.Vendor,
		ProductType:     n.ProductType,
		DescriptionHTML: n.DescriptionHTML,
		Tags:            n.Tags,
	}
	for _, e := range n.Variants.Edges {
		product.Variants = append(product.Variants, e.Node.toRecord())
	}
	for _, e := range n.Metafields.Edges {
		product.Metafields = append(product.Metafields, e.Node.toRecord())
	}
	return product
}

// ---------------------------------------------------------------------------
// Order nodes
// ---------------------------------------------------------------------------

type addressNode struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
}

func (n *addressNode) toRecord() sync.StorefrontAddress {
	return sync.StorefrontAddress{
		Address1: n.Address1,
		Address2: n.Address2,
		City:     n.City,
		Zip:      n.Zip,
		Country:  n.Country,
	}
}

type customerNode struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

type lineItemNode struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Quantity          int    `json:"quantity"`
	SKU               string `json:"sku"`
	OriginalUnitPrice string `json:"originalUnitPrice"`
}

func (n *lineItemNode) toRecord() sync.StorefrontLineItem {
	return sync.StorefrontLineItem{
		ID:        n.ID,
		Title:     n.Title,
		Quantity:  n.Quantity,
		UnitPrice: parseDecimal(n.OriginalUnitPrice),
		SKU:       n.SKU,
	}
}

type orderNode struct {
	ID                string                    `json:"id"`
	Name              string                    `json:"name"`
	Email             string                    `json:"email"`
	TotalPrice        string                    `json:"totalPrice"`
	CurrencyCode      string                    `json:"currencyCode"`
	FinancialStatus   string                    `json:"displayFinancialStatus"`
	FulfillmentStatus string                    `json:"displayFulfillmentStatus"`
	CreatedAt         string                    `json:"createdAt"`
	Customer          *customerNode             `json:"customer"`
	ShippingAddress   *addressNode              `json:"shippingAddress"`
	BillingAddress    *addressNode              `json:"billingAddress"`
	LineItems         connection[lineItemNode]  `json:"lineItems"`
	Metafields        connection[metafieldNode] `json:"metafields"`
}

func (n *orderNode) toRecord() sync.StorefrontOrder {
	order := sync.StorefrontOrder{
		ID:                n.ID,
		Name:              n.Name,
		Email:             n.Email,
		TotalPrice:        parseDecimal(n.TotalPrice),
		CurrencyCode:      n.CurrencyCode,
		FinancialStatus:   n.FinancialStatus,
		FulfillmentStatus: n.FulfillmentStatus,
	}
	if t, err := time.Parse(time.RFC3339, n.CreatedAt); err == nil {
		order.PlacedAt = t
	}
	if n.Customer != nil {
		order.CustomerFirstName = n.Customer.FirstName
		order.CustomerLastName = n.Customer.LastName
		order.CustomerPhone = n.Customer.Phone
	}
	if n.ShippingAddress != nil {
		order.ShippingAddress = n.ShippingAddress.toRecord()
	}
	if n.BillingAddress != nil {
		order.BillingAddress = n.BillingAddress.toRecord()
	}
	for _, e := range n.LineItems.Edges {
		order.LineItems = append(order.LineItems, e.Node.toRecord())
	}
	for _, e := range n.Metafields.Edges {
		order.Metafields = append(order.Metafields, e.Node.toRecord())
	}
	return order
}
