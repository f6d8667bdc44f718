package controllers

import (
	"context"
	"net/http"

	"github.com/octocat-supply/storefront/api/responses"
	"github.com/octocat-supply/storefront/api/validators"
	"github.com/octocat-supply/storefront/internal/catalog"
	"github.com/octocat-supply/storefront/pkg/logger"
	"github.com/octocat-supply/storefront/pkg/pagination"
)

// Catalog is the read-only product source the storefront serves.
type Catalog interface {
	Page(ctx context.Context, params pagination.Params) (catalog.ProductPage, error)
	Get(ctx context.Context, productID int) (catalog.Product, error)
}

// ProductsList pages through the catalog with ?limit= and ?cursor=.
func ProductsList(products Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := products.Page(r.Context(), pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func ProductGet(products Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := products.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
