package cart

import (
	"context"
	"net/http"

	"github.com/octocat-supply/storefront/api/responses"
	"github.com/octocat-supply/storefront/api/validators"
	cartsvc "github.com/octocat-supply/storefront/internal/cart"
	"github.com/octocat-supply/storefront/internal/catalog"
	"github.com/octocat-supply/storefront/pkg/logger"
)

// ProductLookup resolves the product a line item is snapshotted from.
type ProductLookup interface {
	Get(ctx context.Context, productID int) (catalog.Product, error)
}

// The handlers below run inside the CartSession middleware and take the
// cart from the request scope.

// CartFetch returns the session's cart.
func CartFetch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, cartsvc.NewView(cartsvc.FromContext(r.Context())))
	}
}

// CartAddItem adds a catalog product to the cart.
func CartAddItem(products ProductLookup, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := cartsvc.FromContext(r.Context())

		var payload AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := products.Get(r.Context(), payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c.AddToCart(r.Context(), product, *payload.Quantity)
		responses.WriteSuccess(w, cartsvc.NewView(c))
	}
}

// CartUpdateItem sets the quantity of a line already in the cart.
func CartUpdateItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := cartsvc.FromContext(r.Context())

		productID, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload UpdateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c.UpdateQuantity(r.Context(), productID, *payload.Quantity)
		responses.WriteSuccess(w, cartsvc.NewView(c))
	}
}

func CartRemoveItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := cartsvc.FromContext(r.Context())

		productID, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c.RemoveFromCart(r.Context(), productID)
		responses.WriteSuccess(w, cartsvc.NewView(c))
	}
}

func CartClear() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := cartsvc.FromContext(r.Context())
		c.ClearCart(r.Context())
		responses.WriteSuccess(w, cartsvc.NewView(c))
	}
}
