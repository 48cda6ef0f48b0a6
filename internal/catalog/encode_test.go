package catalog

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestMarshalJSON_KeepsDocumentShape(t *testing.T) {
	r, err := ParseFile(filepath.Join("testdata", "restaurants", "aragorn.json"))
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	out := string(data)
	appetizers := strings.Index(out, `"Appetizers"`)
	combos := strings.Index(out, `"Combos"`)
	desserts := strings.Index(out, `"Desserts"`)
	if appetizers < 0 || !(appetizers < combos && combos < desserts) {
		t.Errorf("categories out of document order: %s", out)
	}
	if !strings.Contains(out, `"min_order":20`) || !strings.Contains(out, `"price":16.99`) {
		t.Errorf("numbers should be written unquoted: %s", out)
	}

	var generic map[string]interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	menu := generic["menu"].(map[string]interface{})
	orcFeet := menu["Appetizers"].(map[string]interface{})["0"].(map[string]interface{})
	if orcFeet["name"] != "Orc feet" {
		t.Errorf("menu.Appetizers.0.name = %v", orcFeet["name"])
	}
}

func TestMenuUnmarshalJSON_Null(t *testing.T) {
	var doc restaurantJSON
	if err := json.Unmarshal([]byte(`{"name": "Empty", "menu": null}`), &doc); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(doc.Menu) != 0 {
		t.Errorf("Menu = %v, want empty", doc.Menu)
	}
}

func TestMenuUnmarshalJSON_RejectsArrays(t *testing.T) {
	var m Menu
	if err := json.Unmarshal([]byte(`[1, 2]`), &m); err == nil {
		t.Error("expected error for array menu")
	}
}

// Every format must read back to the same restaurant.
func TestEncodeRoundTrip(t *testing.T) {
	src, err := ParseFile(filepath.Join("testdata", "restaurants", "aragorn.json"))
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}

	for _, format := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, src, format); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			path := filepath.Join(t.TempDir(), "aragorn."+string(format))
			if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
				t.Fatal(err)
			}
			got, err := ParseFile(path)
			if err != nil {
				t.Fatalf("ParseFile(%s) failed: %v\n%s", format, err, buf.String())
			}

			if got.Name != src.Name || got.ID != src.ID {
				t.Errorf("header mismatch: got %q/%d", got.Name, got.ID)
			}
			if !got.MinOrder.Equal(src.MinOrder) || !got.DeliveryFee.Equal(src.DeliveryFee) {
				t.Errorf("fees mismatch: got %s/%s", got.MinOrder, got.DeliveryFee)
			}
			if !reflect.DeepEqual(categoryNames(got.Menu), categoryNames(src.Menu)) {
				t.Errorf("categories = %v, want %v", categoryNames(got.Menu), categoryNames(src.Menu))
			}
			for _, c := range src.Menu {
				for _, item := range c.Items {
					back, ok := got.Item(item.ID)
					if !ok {
						t.Errorf("item %s lost", item.ID)
						continue
					}
					if back.Name != item.Name || !back.Price.Equal(item.Price) {
						t.Errorf("item %s = %+v, want %+v", item.ID, back, item)
					}
				}
			}
		})
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	if err := Encode(&bytes.Buffer{}, &Restaurant{}, Format("xml")); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestParseFile_Unsupported(t *testing.T) {
	if _, err := ParseFile(filepath.Join("testdata", "restaurants", "README.txt")); err == nil {
		t.Error("expected error for .txt file")
	}
}

func categoryNames(m Menu) []string {
	names := make([]string, len(m))
	for i, c := range m {
		names[i] = c.Name
	}
	return names
}
