package shopify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shopsync/backend/internal/domain/sync"
)

// linkMetafieldNamespace/Key form the cross-system correlation metafield
const (
	linkMetafieldNamespace = "custom"
	linkMetafieldKey       = "prd_id"
	linkMetafieldType      = "single_line_text_field"
)

const productPageQuery = `
query productPage($first: Int!, $after: String) {
  products(first: $first, after: $after) {
    pageInfo { hasNextPage }
    edges {
      cursor
      node {
        id
        title
        handle
        vendor
        productType
        descriptionHtml
        tags
        variants(first: 100) {
          edges {
            node {
              id
              title
              price
              sku
              inventoryQuantity
              inventoryManagement
              requiresShipping
              weight
              weightUnit
              taxable
              compareAtPrice
              inventoryItem { id tracked }
            }
          }
        }
        metafields(namespace: "custom", first: 20) {
          edges {
            node { namespace key value type }
          }
        }
      }
    }
  }
}`

// FetchProductPage fetches one page of the product listing. The returned
// cursor is the cursor of the LAST edge on the page.
func (a *Adapter) FetchProductPage(ctx context.Context, cursor string) (sync.Page[sync.StorefrontProduct], error) {
	variables := map[string]any{"first": a.config.PageSize}
	if cursor != "" {
		variables["after"] = cursor
	}

	data, err := a.doRequest(ctx, productPageQuery, variables)
	if err != nil {
		return sync.Page[sync.StorefrontProduct]{}, err
	}

	var payload struct {
		Products connection[productNode] `json:"products"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return sync.Page[sync.StorefrontProduct]{}, fmt.Errorf("%w: %v", sync.ErrPlatformInvalidResponse, err)
	}

	page := sync.Page[sync.StorefrontProduct]{
		HasMore: payload.Products.PageInfo.HasNextPage,
	}
	for _, e := range payload.Products.Edges {
		page.Items = append(page.Items, e.Node.toRecord())
		page.Cursor = e.Cursor
	}
	return page, nil
}

const productCreateMutation = `
mutation productCreate($input: ProductInput!) {
  productCreate(input: $input) {
    product {
      id
      title
      variants(first: 100) {
        edges {
          node {
            id
            sku
            inventoryItem { id }
          }
        }
      }
    }
    userErrors { field message }
  }
}`

// CreateProduct creates a product with its variants, option axes and the
// cross-system link metafield in one mutation.
func (a *Adapter) CreateProduct(ctx context.Context, input sync.ProductCreateInput) (*sync.CreatedProduct, []sync.UserError, error) {
	variants := make([]map[string]any, len(input.Variants))
	for i, v := range input.Variants {
		variants[i] = map[string]any{
			"sku":     v.SKU,
			"price":   v.Price.StringFixed(2),
			"options": v.Options,
		}
	}

	productInput := map[string]any{
		"title":           input.Title,
		"descriptionHtml": input.DescriptionHTML,
		"variants":        variants,
		"metafields": []map[string]any{
			{
				"namespace": linkMetafieldNamespace,
				"key":       linkMetafieldKey,
				"type":      linkMetafieldType,
				"value":     input.PrdID,
			},
		},
	}
	if len(input.Options) > 0 {
		productInput["options"] = input.Options
	}

	data, err := a.doRequest(ctx, productCreateMutation, map[string]any{"input": productInput})
	if err != nil {
		return nil, nil, err
	}

	var payload struct {
		ProductCreate struct {
			Product *struct {
				ID       string `json:"id"`
				Title    string `json:"title"`
				Variants connection[struct {
					ID            string            `json:"id"`
					SKU           string            `json:"sku"`
					InventoryItem inventoryItemNode `json:"inventoryItem"`
				}] `json:"variants"`
			} `json:"product"`
			UserErrors []userErrorNode `json:"userErrors"`
		} `json:"productCreate"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", sync.ErrPlatformInvalidResponse, err)
	}

	userErrors := userErrorsToDomain(payload.ProductCreate.UserErrors)
	if payload.ProductCreate.Product == nil {
		return nil, userErrors, nil
	}

	created := &sync.CreatedProduct{
		ID:    payload.ProductCreate.Product.ID,
		Title: payload.ProductCreate.Product.Title,
	}
	for _, e := range payload.ProductCreate.Product.Variants.Edges {
		created.Variants = append(created.Variants, sync.CreatedVariant{
			ID:              e.Node.ID,
			SKU:             e.Node.SKU,
			InventoryItemID: e.Node.InventoryItem.ID,
		})
	}
	return created, userErrors, nil
}

const productUpdateMutation = `
mutation productUpdate($input: ProductInput!) {
  productUpdate(input: $input) {
    product { id }
    userErrors { field message }
  }
}`

// UpdateProduct pushes title and description changes to an existing product
func (a *Adapter) UpdateProduct(ctx context.Context, input sync.ProductUpdateInput) ([]sync.UserError, error) {
	variables := map[string]any{
		"input": map[string]any{
			"id":              input.ID,
			"title":           input.Title,
			"descriptionHtml": input.DescriptionHTML,
		},
	}
	return a.mutateForUserErrors(ctx, productUpdateMutation, "productUpdate", variables)
}

const variantUpdateMutation = `
mutation productVariantUpdate($input: ProductVariantInput!) {
  productVariantUpdate(input: $input) {
    productVariant { id }
    userErrors { field message }
  }
}`

// UpdateVariantPrice refreshes one variant's price
func (a *Adapter) UpdateVariantPrice(ctx context.Context, variantID string, price decimal.Decimal) ([]sync.UserError, error) {
	variables := map[string]any{
		"input": map[string]any{
			"id":    variantID,
			"price": price.StringFixed(2),
		},
	}
	return a.mutateForUserErrors(ctx, variantUpdateMutation, "productVariantUpdate", variables)
}

const variantCreateMutation = `
mutation productVariantCreate($input: ProductVariantInput!) {
  productVariantCreate(input: $input) {
    productVariant {
      id
      sku
      inventoryItem { id }
    }
    userErrors { field message }
  }
}`

// CreateVariant adds a variant to an existing product
func (a *Adapter) CreateVariant(ctx context.Context, input sync.VariantCreateInput) (*sync.CreatedVariant, []sync.UserError, error) {
	variantInput := map[string]any{
		"productId": input.ProductID,
		"sku":       input.SKU,
		"price":     input.Price.StringFixed(2),
	}
	if len(input.Options) > 0 {
		variantInput["options"] = input.Options
	}

	data, err := a.doRequest(ctx, variantCreateMutation, map[string]any{"input": variantInput})
	if err != nil {
		return nil, nil, err
	}

	var payload struct {
		ProductVariantCreate struct {
			ProductVariant *struct {
				ID            string            `json:"id"`
				SKU           string            `json:"sku"`
				InventoryItem inventoryItemNode `json:"inventoryItem"`
			} `json:"productVariant"`
			UserErrors []userErrorNode `json:"userErrors"`
		} `json:"productVariantCreate"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", sync.ErrPlatformInvalidResponse, err)
	}

	userErrors := userErrorsToDomain(payload.ProductVariantCreate.UserErrors)
	if payload.ProductVariantCreate.ProductVariant == nil {
		return nil, userErrors, nil
	}
	return &sync.CreatedVariant{
		ID:              payload.ProductVariantCreate.ProductVariant.ID,
		SKU:             payload.ProductVariantCreate.ProductVariant.SKU,
		InventoryItemID: payload.ProductVariantCreate.ProductVariant.InventoryItem.ID,
	}, userErrors, nil
}

const metafieldsSetMutation = `
mutation metafieldsSet($metafields: [MetafieldsSetInput!]!) {
  metafieldsSet(metafields: $metafields) {
    metafields { id }
    userErrors { field message }
  }
}`

// SetLinkMetafield writes the custom/prd_id metafield on a product
func (a *Adapter) SetLinkMetafield(ctx context.Context, productID, prdID string) ([]sync.UserError, error) {
	variables := map[string]any{
		"metafields": []map[string]any{
			{
				"ownerId":   productID,
				"namespace": linkMetafieldNamespace,
				"key":       linkMetafieldKey,
				"type":      linkMetafieldType,
				"value":     prdID,
			},
		},
	}
	return a.mutateForUserErrors(ctx, metafieldsSetMutation, "metafieldsSet", variables)
}

// mutateForUserErrors runs a mutation whose only interesting output is its
// userErrors list
func (a *Adapter) mutateForUserErrors(ctx context.Context, mutation, field string, variables map[string]any) ([]sync.UserError, error) {
	data, err := a.doRequest(ctx, mutation, variables)
	if err != nil {
		return nil, err
	}

	var payload map[string]struct {
		UserErrors []userErrorNode `json:"userErrors"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", sync.ErrPlatformInvalidResponse, err)
	}
	return userErrorsToDomain(payload[field].UserErrors), nil
}
