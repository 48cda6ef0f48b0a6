package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"foodorder/internal/catalog"
	"foodorder/internal/slogutil"
)

var (
	restaurantsFormat string
	showFormat        string
)

var restaurantsCmd = &cobra.Command{
	Use:   "restaurants",
	Short: "Inspect the restaurant catalog",
	Long:  "Read restaurant menus from the catalog directory exactly as the server would.",
}

var restaurantsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List restaurants in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseOutputFormat(restaurantsFormat)
		if err != nil {
			return err
		}
		cat, err := cliCatalog()
		if err != nil {
			return err
		}
		return listRestaurants(cmd.Context(), cmd.OutOrStdout(), cat, format)
	},
}

var restaurantsShowCmd = &cobra.Command{
	Use:   "show <restaurant>",
	Short: "Print one restaurant's menu",
	Long: `Print one restaurant document. --format json reproduces the catalog's JSON
shape; yaml and toml print the same restaurant in those catalog formats, which
is handy for converting menu files.

Examples:
  foodorder restaurants show "Aragorn's Orc BBQ"
  foodorder restaurants show "Lembas by Legolas" --format toml > legolas.toml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := cliCatalog()
		if err != nil {
			return err
		}
		return showRestaurant(cmd.Context(), cmd.OutOrStdout(), cat, args[0], catalog.Format(showFormat))
	},
}

var restaurantsItemCmd = &cobra.Command{
	Use:   "item <restaurant> <id>",
	Short: "Resolve a menu item id to its name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := cliCatalog()
		if err != nil {
			return err
		}
		name, err := cat.ItemName(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), name)
		return nil
	},
}

func init() {
	restaurantsListCmd.Flags().StringVar(&restaurantsFormat, "format", "human", "Output format (json, human)")
	restaurantsShowCmd.Flags().StringVar(&showFormat, "format", "json", "Output format (json, yaml, toml)")

	restaurantsCmd.AddCommand(restaurantsListCmd)
	restaurantsCmd.AddCommand(restaurantsShowCmd)
	restaurantsCmd.AddCommand(restaurantsItemCmd)
	rootCmd.AddCommand(restaurantsCmd)
}

// cliCatalog opens the configured catalog with a quiet logger.
func cliCatalog() (*catalog.Catalog, error) {
	root, err := projectRoot()
	if err != nil {
		return nil, err
	}
	result, err := loadConfig(root)
	if err != nil {
		return nil, err
	}
	return newCatalog(root, result.Config, slogutil.NewDiscardLogger()), nil
}

// RestaurantSummary is one row of `restaurants list`.
type RestaurantSummary struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Categories  int    `json:"categories"`
	Items       int    `json:"items"`
	MinOrder    string `json:"minOrder"`
	DeliveryFee string `json:"deliveryFee"`
	Source      string `json:"source"`
}

func listRestaurants(ctx context.Context, w io.Writer, cat *catalog.Catalog, format OutputFormat) error {
	restaurants, err := cat.Load(ctx)
	if err != nil {
		return err
	}

	rows := make([]RestaurantSummary, 0, len(restaurants))
	for _, r := range restaurants {
		rows = append(rows, RestaurantSummary{
			ID:          r.ID,
			Name:        r.Name,
			Categories:  len(r.Menu),
			Items:       r.ItemCount(),
			MinOrder:    r.MinOrder.StringFixed(2),
			DeliveryFee: r.DeliveryFee.StringFixed(2),
			Source:      r.Source,
		})
	}

	if format == FormatJSON {
		return writeJSON(w, rows)
	}

	if len(rows) == 0 {
		fmt.Fprintf(w, "No restaurants found in %s\n", cat.Dir())
		return nil
	}
	fmt.Fprintf(w, "Restaurants in %s\n", cat.Dir())
	fmt.Fprintln(w, strings.Repeat("=", 60))
	for _, r := range rows {
		fmt.Fprintf(w, "%d. %s\n", r.ID, r.Name)
		fmt.Fprintf(w, "   %d items in %d categories, minimum order $%s, delivery $%s\n",
			r.Items, r.Categories, r.MinOrder, r.DeliveryFee)
	}
	return nil
}

func showRestaurant(ctx context.Context, w io.Writer, cat *catalog.Catalog, name string, format catalog.Format) error {
	r, err := cat.Find(ctx, name)
	if err != nil {
		return err
	}
	return catalog.Encode(w, r, format)
}
