package catalog

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	apperrors "foodorder/internal/errors"
)

// Catalog is a directory of restaurant documents.
type Catalog struct {
	dir    string
	logger *slog.Logger
}

// New returns a catalog rooted at dir. A nil logger uses slog.Default.
func New(dir string, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{dir: dir, logger: logger}
}

// Dir returns the directory the catalog reads from.
func (c *Catalog) Dir() string {
	return c.dir
}

// Load reads every supported file in the directory, ordered by file name.
// One unreadable or malformed file fails the whole load.
func (c *Catalog) Load(ctx context.Context) ([]Restaurant, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, apperrors.New(apperrors.CatalogUnavailable, "read restaurants directory", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	restaurants := make([]Restaurant, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := ParseFile(filepath.Join(c.dir, name))
		if err != nil {
			return nil, apperrors.New(apperrors.CatalogUnavailable, "load restaurant "+name, err)
		}
		restaurants = append(restaurants, *r)
	}

	c.logger.Debug("Loaded restaurant catalog", "dir", c.dir, "restaurants", len(restaurants))
	return restaurants, nil
}

// Names returns the restaurant names in load order.
func (c *Catalog) Names(ctx context.Context) ([]string, error) {
	restaurants, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(restaurants))
	for i, r := range restaurants {
		names[i] = r.Name
	}
	return names, nil
}

// Find returns the first restaurant with exactly this name.
func (c *Catalog) Find(ctx context.Context, name string) (*Restaurant, error) {
	restaurants, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range restaurants {
		if restaurants[i].Name == name {
			return &restaurants[i], nil
		}
	}
	return nil, apperrors.Newf(apperrors.RestaurantNotFound, "restaurant %q not found", name)
}

// ItemName resolves an item id to its display name on the given restaurant's
// menu, e.g. ("Aragorn's Orc BBQ", "0") -> "Orc feet".
func (c *Catalog) ItemName(ctx context.Context, restaurant, id string) (string, error) {
	r, err := c.Find(ctx, restaurant)
	if err != nil {
		return "", err
	}
	item, ok := r.Item(id)
	if !ok {
		return "", apperrors.Newf(apperrors.ItemNotFound, "item %s not on the menu of %q", id, restaurant).
			WithDetails(map[string]string{"restaurant": restaurant, "id": id})
	}
	return item.Name, nil
}
