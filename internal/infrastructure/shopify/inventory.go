package shopify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopsync/backend/internal/domain/sync"
)

const primaryLocationQuery = `
query primaryLocation {
  locations(first: 1) {
    edges {
      node { id }
    }
  }
}`

// PrimaryLocationID resolves the single fulfillment location used for all
// inventory writes
func (a *Adapter) PrimaryLocationID(ctx context.Context) (string, error) {
	data, err := a.doRequest(ctx, primaryLocationQuery, nil)
	if err != nil {
		return "", err
	}

	var payload struct {
		Locations connection[struct {
			ID string `json:"id"`
		}] `json:"locations"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("%w: %v", sync.ErrPlatformInvalidResponse, err)
	}

	if len(payload.Locations.Edges) == 0 {
		return "", sync.ErrNoLocation
	}
	return payload.Locations.Edges[0].Node.ID, nil
}

const setOnHandMutation = `
mutation inventorySetOnHandQuantities($input: InventorySetOnHandQuantitiesInput!) {
  inventorySetOnHandQuantities(input: $input) {
    userErrors { field message }
  }
}`

// SetOnHandQuantity sets an ABSOLUTE opening quantity. Only used for
// variants the platform has never tracked before.
func (a *Adapter) SetOnHandQuantity(ctx context.Context, inventoryItemID, locationID string, quantity int) ([]sync.UserError, error) {
	variables := map[string]any{
		"input": map[string]any{
			"reason": "correction",
			"setQuantities": []map[string]any{
				{
					"inventoryItemId": inventoryItemID,
					"locationId":      locationID,
					"quantity":        quantity,
				},
			},
		},
	}
	return a.mutateForUserErrors(ctx, setOnHandMutation, "inventorySetOnHandQuantities", variables)
}

const adjustQuantitiesMutation = `
mutation inventoryAdjustQuantities($input: InventoryAdjustQuantitiesInput!) {
  inventoryAdjustQuantities(input: $input) {
    userErrors { field message }
  }
}`

// AdjustAvailableQuantity submits a RELATIVE delta against the available
// quantity, never an absolute set, so concurrent storefront-side changes are
// not clobbered.
func (a *Adapter) AdjustAvailableQuantity(ctx context.Context, inventoryItemID, locationID string, delta int) ([]sync.UserError, error) {
	variables := map[string]any{
		"input": map[string]any{
			"reason": "correction",
			"name":   "available",
			"changes": []map[string]any{
				{
					"inventoryItemId": inventoryItemID,
					"locationId":      locationID,
					"delta":           delta,
				},
			},
		},
	}
	return a.mutateForUserErrors(ctx, adjustQuantitiesMutation, "inventoryAdjustQuantities", variables)
}

const inventoryActivateMutation = `
mutation inventoryActivate($inventoryItemId: ID!, $locationId: ID!) {
  inventoryActivate(inventoryItemId: $inventoryItemId, locationId: $locationId) {
    userErrors { field message }
  }
}`

// EnablePlatformTracking switches a variant to platform-managed inventory
// and activates its inventory item at the location. Safe to repeat.
func (a *Adapter) EnablePlatformTracking(ctx context.Context, variantID, inventoryItemID, locationID string) ([]sync.UserError, error) {
	trackErrs, err := a.mutateForUserErrors(ctx, variantUpdateMutation, "productVariantUpdate", map[string]any{
		"input": map[string]any{
			"id":                  variantID,
			"inventoryManagement": "SHOPIFY",
		},
	})
	if err != nil {
		return nil, err
	}

	activateErrs, err := a.mutateForUserErrors(ctx, inventoryActivateMutation, "inventoryActivate", map[string]any{
		"inventoryItemId": inventoryItemID,
		"locationId":      locationID,
	})
	if err != nil {
		return trackErrs, err
	}
	return append(trackErrs, activateErrs...), nil
}
