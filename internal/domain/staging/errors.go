package staging

import "errors"

var (
	// ErrProductNotFound indicates no staged storefront product matches the key
	ErrProductNotFound = errors.New("staging: product not found")
	// ErrVariantNotFound indicates no staged storefront variant matches the key
	ErrVariantNotFound = errors.New("staging: variant not found")
	// ErrStockProductNotFound indicates no staged ERP product matches the key
	ErrStockProductNotFound = errors.New("staging: stock product not found")
	// ErrStockVariantNotFound indicates no staged ERP stock variant matches the key
	ErrStockVariantNotFound = errors.New("staging: stock variant not found")
	// ErrOrderNotFound indicates no staged order matches the key
	ErrOrderNotFound = errors.New("staging: order not found")
	// ErrErpOrderNotFound indicates no staged ERP order matches the key
	ErrErpOrderNotFound = errors.New("staging: erp order not found")

	// ErrMissingNaturalKey indicates an entity is missing its remote identifier
	ErrMissingNaturalKey = errors.New("staging: missing natural key")
)
