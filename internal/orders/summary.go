package orders

import (
	"context"

	apperrors "foodorder/internal/errors"
)

// NotAvailable is shown when a restaurant has no resolvable popular item.
const NotAvailable = "N/A"

// Namer resolves an item id to its display name. *catalog.Catalog implements it.
type Namer interface {
	ItemName(ctx context.Context, restaurant, id string) (string, error)
}

// Summary is one row of the restaurant statistics page, formatted for display.
type Summary struct {
	Restaurant   string `json:"restaurant"`
	OrderCount   int    `json:"numberOfOrders"`
	AverageOrder string `json:"averageOrder"`
	PopularItem  string `json:"popularItem"`
	TotalPrice   string `json:"totalPrice"`
}

// Summaries formats the current snapshot for display. Money is rounded to two
// decimals and popular item ids are replaced by their menu names. An id the
// catalog no longer knows shows as NotAvailable; any other lookup failure
// aborts with the error.
func (a *Aggregator) Summaries(ctx context.Context, namer Namer) ([]Summary, error) {
	snapshot := a.Snapshot()
	out := make([]Summary, 0, len(snapshot))

	for _, s := range snapshot {
		popular, err := displayName(ctx, namer, s.Restaurant, s.PopularItem)
		if err != nil {
			return nil, err
		}
		out = append(out, Summary{
			Restaurant:   s.Restaurant,
			OrderCount:   s.OrderCount,
			AverageOrder: s.AverageOrder.StringFixed(2),
			PopularItem:  popular,
			TotalPrice:   s.TotalPrice.StringFixed(2),
		})
	}
	return out, nil
}

func displayName(ctx context.Context, namer Namer, restaurant, id string) (string, error) {
	if id == "" {
		return NotAvailable, nil
	}
	if namer == nil {
		return id, nil
	}

	name, err := namer.ItemName(ctx, restaurant, id)
	switch apperrors.CodeOf(err) {
	case apperrors.RestaurantNotFound, apperrors.ItemNotFound:
		return NotAvailable, nil
	}
	if err != nil {
		return "", err
	}
	return name, nil
}
