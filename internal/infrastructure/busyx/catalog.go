package busyx

import (
	"context"
	"fmt"

	"github.com/shopsync/backend/internal/domain/sync"
)

// FetchAllProductStock lists every active stock record (GetAllProductStock)
func (a *Adapter) FetchAllProductStock(ctx context.Context) ([]sync.StockRecord, error) {
	data, err := a.doCall(ctx, "GetAllProductStock", "<actif>1</actif>")
	if err != nil {
		return nil, err
	}

	items, err := collectItems[stockItem](data)
	if err != nil {
		return nil, err
	}

	records := make([]sync.StockRecord, len(items))
	for i := range items {
		records[i] = items[i].toRecord()
	}
	return records, nil
}

// FetchProductInfo fetches the catalog payload for one ERP product
// (GetProductInfo). ErrProductInfoMissing means the ERP knows no such
// product; callers continue with the stock data alone.
func (a *Adapter) FetchProductInfo(ctx context.Context, prdID string) (*sync.ProductInfoRecord, error) {
	inner := "<product_id>" + xmlEscape(prdID) + "</product_id>"
	data, err := a.doCall(ctx, "GetProductInfo", inner)
	if err != nil {
		return nil, err
	}

	items, err := collectItems[productInfoItem](data)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrProductInfoMissing, prdID)
	}
	return items[0].toRecord(prdID), nil
}
