package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/octocat-supply/storefront/internal/cart"
)

// NewListCommand creates the list command.
func NewListCommand(opts *RootOptions, deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the cart with its totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := deps.OpenCart(cmd.Context())
			if err != nil {
				return err
			}
			return writeCart(cmd.OutOrStdout(), opts.Format, cart.NewView(c))
		},
	}
}

// NewAddCommand creates the add command. Quantity defaults to one.
func NewAddCommand(opts *RootOptions, deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "add <productId> [quantity]",
		Short: "Add a catalog product to the cart",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			quantity := 1
			if len(args) == 2 {
				if quantity, err = parseQuantity(args[1]); err != nil {
					return err
				}
			}

			product, err := deps.Catalog.Get(cmd.Context(), productID)
			if err != nil {
				return err
			}
			c, err := deps.OpenCart(cmd.Context())
			if err != nil {
				return err
			}
			c.AddToCart(cmd.Context(), product, quantity)
			return writeCart(cmd.OutOrStdout(), opts.Format, cart.NewView(c))
		},
	}
}

// NewUpdateCommand creates the update command. A quantity of zero or less
// removes the line.
func NewUpdateCommand(opts *RootOptions, deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "update <productId> <quantity>",
		Short: "Set the quantity of a cart line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			quantity, err := parseQuantity(args[1])
			if err != nil {
				return err
			}
			c, err := deps.OpenCart(cmd.Context())
			if err != nil {
				return err
			}
			c.UpdateQuantity(cmd.Context(), productID, quantity)
			return writeCart(cmd.OutOrStdout(), opts.Format, cart.NewView(c))
		},
	}
}

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(opts *RootOptions, deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <productId>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			c, err := deps.OpenCart(cmd.Context())
			if err != nil {
				return err
			}
			c.RemoveFromCart(cmd.Context(), productID)
			return writeCart(cmd.OutOrStdout(), opts.Format, cart.NewView(c))
		},
	}
}

// NewClearCommand creates the clear command.
func NewClearCommand(opts *RootOptions, deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := deps.OpenCart(cmd.Context())
			if err != nil {
				return err
			}
			c.ClearCart(cmd.Context())
			return writeCart(cmd.OutOrStdout(), opts.Format, cart.NewView(c))
		},
	}
}

// NewProductsCommand creates the products command.
func NewProductsCommand(opts *RootOptions, deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the products that can be added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeProducts(cmd.OutOrStdout(), opts.Format, deps.Catalog.List(cmd.Context()))
		},
	}
}

func parseProductID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q: must be a positive integer", raw)
	}
	return id, nil
}

func parseQuantity(raw string) (int, error) {
	quantity, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q: must be an integer", raw)
	}
	return quantity, nil
}
