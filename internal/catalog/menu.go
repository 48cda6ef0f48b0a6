package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// JSON and YAML documents store the menu as nested objects:
//
//	{"Appetizers": {"0": {"name": ..., "description": ..., "price": 5.5}}}
//
// Go maps lose key order, so Menu walks the token stream (or YAML node tree)
// by hand and keeps categories and items in document order.

type itemFields struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

type itemFieldsOut struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Menu) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var menu Menu
	err := walkObject(dec, func(categoryName string) error {
		category := Category{Name: categoryName}
		err := walkObject(dec, func(id string) error {
			var fields itemFields
			if err := dec.Decode(&fields); err != nil {
				return fmt.Errorf("item %q: %w", id, err)
			}
			category.Items = append(category.Items, MenuItem{
				ID:          id,
				Name:        fields.Name,
				Description: fields.Description,
				Price:       fields.Price,
			})
			return nil
		})
		if err != nil {
			return fmt.Errorf("category %q: %w", categoryName, err)
		}
		menu = append(menu, category)
		return nil
	})
	if err != nil {
		return err
	}

	*m = menu
	return nil
}

// walkObject consumes one JSON object from dec, calling fn for every key with
// the decoder positioned at the key's value. fn must consume the value.
// A JSON null is treated as an empty object.
func walkObject(dec *json.Decoder, fn func(key string) error) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		if err := fn(key); err != nil {
			return err
		}
	}

	_, err = dec.Token()
	return err
}

// MarshalJSON implements json.Marshaler, writing categories and items in order.
func (m Menu) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for ci, category := range m {
		if ci > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, category.Name); err != nil {
			return nil, err
		}
		buf.WriteByte('{')
		for ii, item := range category.Items {
			if ii > 0 {
				buf.WriteByte(',')
			}
			if err := writeKey(&buf, item.ID); err != nil {
				return nil, err
			}
			data, err := json.Marshal(itemFieldsOut{
				Name:        item.Name,
				Description: item.Description,
				Price:       json.Number(item.Price.String()),
			})
			if err != nil {
				return nil, err
			}
			buf.Write(data)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	data, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(data)
	buf.WriteByte(':')
	return nil
}

type itemFieldsYAML struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
}

// UnmarshalYAML implements yaml.Unmarshaler, keeping mapping order.
func (m *Menu) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		*m = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: menu must be a mapping", node.Line)
	}

	var menu Menu
	for i := 0; i+1 < len(node.Content); i += 2 {
		categoryName := node.Content[i].Value
		items := node.Content[i+1]
		if items.Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: category %q must be a mapping", items.Line, categoryName)
		}

		category := Category{Name: categoryName}
		for j := 0; j+1 < len(items.Content); j += 2 {
			id := items.Content[j].Value
			var fields itemFieldsYAML
			if err := items.Content[j+1].Decode(&fields); err != nil {
				return fmt.Errorf("category %q item %q: %w", categoryName, id, err)
			}
			price, err := parseDecimal(fields.Price)
			if err != nil {
				return fmt.Errorf("category %q item %q: price: %w", categoryName, id, err)
			}
			category.Items = append(category.Items, MenuItem{
				ID:          id,
				Name:        fields.Name,
				Description: fields.Description,
				Price:       price,
			})
		}
		menu = append(menu, category)
	}

	*m = menu
	return nil
}

// yamlNode builds the ordered mapping node written by `restaurants show --format yaml`.
func (m Menu) yamlNode() *yaml.Node {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, category := range m {
		items := &yaml.Node{Kind: yaml.MappingNode}
		for _, item := range category.Items {
			items.Content = append(items.Content,
				stringNode(item.ID),
				mappingNode(
					stringNode("name"), stringNode(item.Name),
					stringNode("description"), stringNode(item.Description),
					stringNode("price"), numberNode(item.Price.String()),
				),
			)
		}
		root.Content = append(root.Content, stringNode(category.Name), items)
	}
	return root
}

func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func numberNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: s}
}

func mappingNode(content ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Content: content}
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
