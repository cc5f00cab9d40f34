package busyx

import (
	"context"

	"github.com/shopsync/backend/internal/domain/sync"
)

// FetchOrders lists ERP-side orders (GetTbCommandes)
func (a *Adapter) FetchOrders(ctx context.Context) ([]sync.ErpOrderRecord, error) {
	inner := "<params><id_client>" + xmlEscape(a.config.APILog) + "</id_client></params>"
	data, err := a.doCall(ctx, "GetTbCommandes", inner)
	if err != nil {
		return nil, err
	}

	items, err := collectItems[commandItem](data)
	if err != nil {
		return nil, err
	}

	records := make([]sync.ErpOrderRecord, len(items))
	for i := range items {
		records[i] = items[i].toRecord()
	}
	return records, nil
}
