package shopify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopsync/backend/internal/domain/sync"
)

const orderPageQuery = `
query orderPage($first: Int!, $after: String) {
  orders(first: $first, after: $after) {
    pageInfo { hasNextPage }
    edges {
      cursor
      node {
        id
        name
        email
        totalPrice
        currencyCode
        displayFinancialStatus
        displayFulfillmentStatus
        createdAt
        customer { firstName lastName phone }
        shippingAddress { address1 address2 city zip country }
        billingAddress { address1 address2 city zip country }
        lineItems(first: 100) {
          edges {
            node { id title quantity sku originalUnitPrice }
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

// FetchOrderPage fetches one page of the order listing. The returned cursor
// is the cursor of the LAST edge on the page.
func (a *Adapter) FetchOrderPage(ctx context.Context, cursor string) (sync.Page[sync.StorefrontOrder], error) {
	variables := map[string]any{"first": a.config.PageSize}
	if cursor != "" {
		variables["after"] = cursor
	}

	data, err := a.doRequest(ctx, orderPageQuery, variables)
	if err != nil {
		return sync.Page[sync.StorefrontOrder]{}, err
	}

	var payload struct {
		Orders connection[orderNode] `json:"orders"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return sync.Page[sync.StorefrontOrder]{}, fmt.Errorf("%w: %v", sync.ErrPlatformInvalidResponse, err)
	}

	page := sync.Page[sync.StorefrontOrder]{
		HasMore: payload.Orders.PageInfo.HasNextPage,
	}
	for _, e := range payload.Orders.Edges {
		page.Items = append(page.Items, e.Node.toRecord())
		page.Cursor = e.Cursor
	}
	return page, nil
}
