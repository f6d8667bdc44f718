package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/octocat-supply/storefront/internal/cart"
	"github.com/octocat-supply/storefront/internal/catalog"
)

// ValidFormats lists the accepted values for --format.
var ValidFormats = []string{"text", "json"}

// RootOptions holds the persistent flags shared by every subcommand.
type RootOptions struct {
	Format string
}

// OpenCartFunc opens the cart the CLI operates on. It is called at most once
// per command invocation and only by commands that touch the cart.
type OpenCartFunc func(ctx context.Context) (*cart.Cart, error)

// Deps are the collaborators the commands run against.
type Deps struct {
	Catalog  *catalog.Catalog
	OpenCart OpenCartFunc
}

// NewRootCommand creates the cart command tree.
func NewRootCommand(deps Deps) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and edit the storefront cart",
		Long: `Inspect and edit the storefront cart kept under the configured storage key.

Every change is written back to storage immediately, so a later run sees
the same cart.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")

	cmd.AddCommand(NewListCommand(opts, deps))
	cmd.AddCommand(NewAddCommand(opts, deps))
	cmd.AddCommand(NewUpdateCommand(opts, deps))
	cmd.AddCommand(NewRemoveCommand(opts, deps))
	cmd.AddCommand(NewClearCommand(opts, deps))
	cmd.AddCommand(NewProductsCommand(opts, deps))

	return cmd
}
