package main

import (
	"errors"

	"marketplace-client/models"
	"marketplace-client/view"

	"github.com/spf13/cobra"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Create and search products",
}

var (
	newProduct     models.ProductInput
	searchQuery    string
	searchLocation string
	searchPick     bool
)

var createProductCmd = &cobra.Command{
	Use:   "create",
	Short: "List a product for sale",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), "products create", app.handlers.Catalog.CreateProduct(cmd.Context(), app.sess, newProduct))
	},
}

var searchProductsCmd = &cobra.Command{
	Use:   "search",
	Short: "Search products by name and location",
	Long: `Search products whose name contains --q, optionally in one --location.
With --pick, choose an entry afterwards to add it to the cart.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := app.handlers.Catalog.SearchProducts(ctx, app.sess, searchQuery, searchLocation); err != nil {
			return run(ctx, "products search", err)
		}
		if !searchPick {
			return nil
		}
		err := app.term.Pick(ctx, view.ProductList, app.in)
		if errors.Is(err, view.ErrNothingToPick) {
			return nil
		}
		return run(ctx, "products search", err)
	},
}

func init() {
	f := createProductCmd.Flags()
	f.StringVar(&newProduct.Name, "name", "", "product name")
	f.StringVar(&newProduct.Description, "description", "", "product description")
	f.Float64Var(&newProduct.Price, "price", 0, "price")
	f.StringVar(&newProduct.Location, "location", "", "where the product is sold")
	_ = createProductCmd.MarkFlagRequired("name")

	searchProductsCmd.Flags().StringVarP(&searchQuery, "q", "q", "", "text the product name contains")
	searchProductsCmd.Flags().StringVarP(&searchLocation, "location", "l", "", "only products sold here")
	searchProductsCmd.Flags().BoolVar(&searchPick, "pick", false, "pick a result to add to the cart")

	productsCmd.AddCommand(createProductCmd, searchProductsCmd)
}
