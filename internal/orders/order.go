// Package orders keeps running per-restaurant statistics over submitted orders.
// Everything lives in memory and is lost when the process exits.
package orders

import (
	"encoding/json"
	"io"

	"github.com/shopspring/decimal"

	apperrors "foodorder/internal/errors"
)

// Order is the payload the order form posts to /server.js/orderplaced:
//
//	{"name": "Aragorn's Orc BBQ", "orders": {"0": 2, "6": 1}, "totalPrice": 23.95}
//
// Items maps menu item ids to quantities.
type Order struct {
	Restaurant string          `json:"name"`
	Items      map[string]int  `json:"orders"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// Quantity returns the total number of units across all items.
func (o Order) Quantity() int {
	n := 0
	for _, q := range o.Items {
		n += q
	}
	return n
}

// Bounds on the decimal form of totalPrice. Sums and averages rescale to the
// smallest exponent seen, so an unbounded exponent makes every later order for
// the restaurant arbitrarily expensive.
const (
	minPriceExponent = -20
	maxPriceExponent = 16
	maxPriceDigits   = 32
)

// Decode reads one JSON order. Unknown fields are ignored; anything that is
// not a JSON object of the right shape is an InvalidOrder error. Shape also
// covers negative quantities and totals outside the price bounds.
func Decode(r io.Reader) (Order, error) {
	var o Order
	dec := json.NewDecoder(r)
	if err := dec.Decode(&o); err != nil {
		return Order{}, apperrors.New(apperrors.InvalidOrder, "malformed order", err)
	}
	if dec.More() {
		return Order{}, apperrors.Newf(apperrors.InvalidOrder, "malformed order: trailing data after JSON object")
	}
	if err := o.checkShape(); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (o Order) checkShape() error {
	for id, q := range o.Items {
		if q < 0 {
			return apperrors.Newf(apperrors.InvalidOrder, "malformed order: negative quantity %d for item %s", q, id).
				WithDetails(map[string]string{"id": id})
		}
	}
	exp := o.TotalPrice.Exponent()
	if exp < minPriceExponent || exp > maxPriceExponent || o.TotalPrice.NumDigits() > maxPriceDigits {
		return apperrors.Newf(apperrors.InvalidOrder, "malformed order: totalPrice out of range")
	}
	return nil
}
