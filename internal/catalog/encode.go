package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a restaurant document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Encode writes r to w in the given format. The output of each format can be
// read back by ParseFile with the matching extension.
func Encode(w io.Writer, r *Restaurant, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r.yamlNode()); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		return enc.Encode(r.toTOML())
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func (r *Restaurant) yamlNode() *yaml.Node {
	return mappingNode(
		stringNode("id"), numberNode(strconv.Itoa(r.ID)),
		stringNode("name"), stringNode(r.Name),
		stringNode("min_order"), numberNode(r.MinOrder.String()),
		stringNode("delivery_fee"), numberNode(r.DeliveryFee.String()),
		stringNode("menu"), r.Menu.yamlNode(),
	)
}
