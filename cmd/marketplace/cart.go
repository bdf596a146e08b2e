package main

import (
	"github.com/spf13/cobra"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the cart",
}

var addToCartCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), "cart add", app.handlers.Cart.AddToCart(cmd.Context(), app.sess, args[0]))
	},
}

var viewCartCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), "cart view", app.handlers.Cart.ViewCart(cmd.Context(), app.sess))
	},
}

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Check out the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), "cart checkout", app.handlers.Cart.Checkout(cmd.Context(), app.sess))
	},
}

func init() {
	cartCmd.AddCommand(addToCartCmd, viewCartCmd, checkoutCmd)
}
