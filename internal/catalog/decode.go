package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// decoders maps a lower-case file extension to its parser. Files with other
// extensions in the restaurants directory are ignored.
var decoders = map[string]func([]byte) (*Restaurant, error){
	".json": decodeJSON,
	".yaml": decodeYAML,
	".yml":  decodeYAML,
	".toml": decodeTOML,
}

// Supported reports whether the catalog reads files with this name.
func Supported(name string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(name))]
	return ok
}

// ParseFile reads a single restaurant document.
func ParseFile(path string) (*Restaurant, error) {
	decode, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("unsupported restaurant file %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	r, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	r.Source = path
	return r, nil
}

type restaurantJSON struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	MinOrder    decimal.Decimal `json:"min_order"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Menu        Menu            `json:"menu"`
}

type restaurantJSONOut struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	MinOrder    json.Number `json:"min_order"`
	DeliveryFee json.Number `json:"delivery_fee"`
	Menu        Menu        `json:"menu"`
}

func decodeJSON(data []byte) (*Restaurant, error) {
	var doc restaurantJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &Restaurant{
		ID:          doc.ID,
		Name:        doc.Name,
		MinOrder:    doc.MinOrder,
		DeliveryFee: doc.DeliveryFee,
		Menu:        doc.Menu,
	}, nil
}

// MarshalJSON writes the restaurant in the same shape the JSON files use, so
// clients receive exactly what they would have read from disk.
func (r Restaurant) MarshalJSON() ([]byte, error) {
	return json.Marshal(restaurantJSONOut{
		ID:          r.ID,
		Name:        r.Name,
		MinOrder:    json.Number(r.MinOrder.String()),
		DeliveryFee: json.Number(r.DeliveryFee.String()),
		Menu:        r.Menu,
	})
}

type restaurantYAML struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	MinOrder    string `yaml:"min_order"`
	DeliveryFee string `yaml:"delivery_fee"`
	Menu        Menu   `yaml:"menu"`
}

func decodeYAML(data []byte) (*Restaurant, error) {
	var doc restaurantYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	minOrder, err := parseDecimal(doc.MinOrder)
	if err != nil {
		return nil, fmt.Errorf("min_order: %w", err)
	}
	deliveryFee, err := parseDecimal(doc.DeliveryFee)
	if err != nil {
		return nil, fmt.Errorf("delivery_fee: %w", err)
	}
	return &Restaurant{
		ID:          doc.ID,
		Name:        doc.Name,
		MinOrder:    minOrder,
		DeliveryFee: deliveryFee,
		Menu:        doc.Menu,
	}, nil
}

// TOML tables are unordered, so TOML restaurant files list categories and
// items as arrays of tables:
//
//	[[category]]
//	name = "Appetizers"
//
//	  [[category.item]]
//	  id = "0"
//	  name = "Orc feet"
//	  price = 5.5
type restaurantTOML struct {
	ID          int            `toml:"id"`
	Name        string         `toml:"name"`
	MinOrder    float64        `toml:"min_order"`
	DeliveryFee float64        `toml:"delivery_fee"`
	Categories  []categoryTOML `toml:"category"`
}

type categoryTOML struct {
	Name  string     `toml:"name"`
	Items []itemTOML `toml:"item"`
}

type itemTOML struct {
	ID          string  `toml:"id"`
	Name        string  `toml:"name"`
	Description string  `toml:"description"`
	Price       float64 `toml:"price"`
}

func decodeTOML(data []byte) (*Restaurant, error) {
	var doc restaurantTOML
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	r := &Restaurant{
		ID:          doc.ID,
		Name:        doc.Name,
		MinOrder:    decimal.NewFromFloat(doc.MinOrder),
		DeliveryFee: decimal.NewFromFloat(doc.DeliveryFee),
	}
	for _, c := range doc.Categories {
		category := Category{Name: c.Name}
		for _, it := range c.Items {
			category.Items = append(category.Items, MenuItem{
				ID:          it.ID,
				Name:        it.Name,
				Description: it.Description,
				Price:       decimal.NewFromFloat(it.Price),
			})
		}
		r.Menu = append(r.Menu, category)
	}
	return r, nil
}

func (r *Restaurant) toTOML() restaurantTOML {
	doc := restaurantTOML{
		ID:          r.ID,
		Name:        r.Name,
		MinOrder:    r.MinOrder.InexactFloat64(),
		DeliveryFee: r.DeliveryFee.InexactFloat64(),
	}
	for _, c := range r.Menu {
		category := categoryTOML{Name: c.Name}
		for _, it := range c.Items {
			category.Items = append(category.Items, itemTOML{
				ID:          it.ID,
				Name:        it.Name,
				Description: it.Description,
				Price:       it.Price.InexactFloat64(),
			})
		}
		doc.Categories = append(doc.Categories, category)
	}
	return doc
}
