package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/octocat-supply/storefront/internal/cart"
	"github.com/octocat-supply/storefront/internal/catalog"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCart(w io.Writer, format string, view cart.View) error {
	if format == "json" {
		return writeJSON(w, view)
	}

	if len(view.CartItems) == 0 {
		fmt.Fprintln(w, "Cart is empty.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tQTY\tPRICE\tLINE TOTAL")
		for _, line := range view.CartItems {
			price := line.EffectivePrice
			if line.DiscountPercent > 0 {
				price = fmt.Sprintf("%s (-%d%%)", price, line.DiscountPercent)
			}
			fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", line.ProductID, line.Name, line.Quantity, price, line.LineTotal)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	shipping := view.ShippingCost
	if shipping == "0.00" {
		shipping = "FREE"
	}
	_, err := fmt.Fprintf(w, "\nItems:    %d\nSubtotal: %s\nShipping: %s\nTotal:    %s\n",
		view.CartItemCount, view.CartTotal, shipping, view.FinalTotal)
	return err
}

func writeProducts(w io.Writer, format string, products []catalog.Product) error {
	if format == "json" {
		return writeJSON(w, products)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tDISCOUNT")
	for _, p := range products {
		off := "-"
		if p.Discount != nil {
			off = fmt.Sprintf("%.0f%%", *p.Discount*100)
		}
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%s\n", p.ProductID, p.Name, p.Price, off)
	}
	return tw.Flush()
}
