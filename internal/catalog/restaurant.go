// Package catalog reads restaurant menus from a directory of restaurant
// documents (JSON, YAML or TOML) and answers name and item lookups against them.
//
// The catalog never caches: every call re-reads the directory, so edits to the
// files on disk are visible on the next request.
package catalog

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Restaurant is one restaurant document.
type Restaurant struct {
	ID          int
	Name        string
	MinOrder    decimal.Decimal
	DeliveryFee decimal.Decimal
	Menu        Menu

	// Source is the file the restaurant was read from.
	Source string
}

// Menu is the ordered list of categories of a restaurant.
type Menu []Category

// Category groups menu items under a heading such as "Appetizers".
type Category struct {
	Name  string
	Items []MenuItem
}

// MenuItem is a single orderable dish. ID is the key the item is stored under
// in its category and the key clients use when submitting orders.
type MenuItem struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
}

// Item returns the first item whose id matches, scanning categories in order.
func (r *Restaurant) Item(id string) (MenuItem, bool) {
	for _, category := range r.Menu {
		for _, item := range category.Items {
			if SameItemID(item.ID, id) {
				return item, true
			}
		}
	}
	return MenuItem{}, false
}

// ItemCount returns the number of items across all categories.
func (r *Restaurant) ItemCount() int {
	n := 0
	for _, category := range r.Menu {
		n += len(category.Items)
	}
	return n
}

// SameItemID compares item ids numerically when both are integers, so "07"
// and "7" name the same item, and falls back to exact comparison otherwise.
// Whitespace is significant on both paths.
func SameItemID(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai == bi
	}
	return a == b
}
