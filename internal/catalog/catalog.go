// Package catalog serves the read-only product records the cart consumes.
package catalog

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/octocat-supply/storefront/pkg/errors"
	"github.com/octocat-supply/storefront/pkg/pagination"
)

// Catalog is an immutable, ordered product list.
type Catalog struct {
	products []Product
	byID     map[int]int
}

// New validates the products and indexes them by productId.
func New(products []Product) (*Catalog, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	for i, p := range products {
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("catalog: product %d (index %d): %w", p.ProductID, i, err)
		}
		if _, dup := c.byID[p.ProductID]; dup {
			return nil, fmt.Errorf("catalog: duplicate productId %d", p.ProductID)
		}
		c.byID[p.ProductID] = len(c.products)
		c.products = append(c.products, p.clone())
	}
	return c, nil
}

// Default returns the catalog built from the bundled seed data.
func Default() *Catalog {
	c, err := New(seedProducts())
	if err != nil {
		panic(err)
	}
	return c
}

// List returns every product in seed order.
func (c *Catalog) List(_ context.Context) []Product {
	out := make([]Product, len(c.products))
	for i, p := range c.products {
		out[i] = p.clone()
	}
	return out
}

// Get looks a product up by id.
func (c *Catalog) Get(_ context.Context, productID int) (Product, error) {
	idx, ok := c.byID[productID]
	if !ok {
		return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
			WithDetails(map[string]any{"productId": productID})
	}
	return c.products[idx].clone(), nil
}

// ProductPage is one page of the catalog in seed order.
type ProductPage struct {
	Products   []Product `json:"products"`
	NextCursor string    `json:"nextCursor,omitempty"`
}

// Page returns up to params.Limit products following the cursor.
func (c *Catalog) Page(_ context.Context, params pagination.Params) (ProductPage, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return ProductPage{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	start := 0
	if cursor != nil {
		idx, ok := c.byID[cursor.AfterID]
		if !ok {
			return ProductPage{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
		}
		start = idx + 1
	}

	limit := pagination.NormalizeLimit(params.Limit)
	end := min(start+limit, len(c.products))

	page := ProductPage{Products: make([]Product, 0, end-start)}
	for _, p := range c.products[start:end] {
		page.Products = append(page.Products, p.clone())
	}
	if end < len(c.products) && len(page.Products) > 0 {
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{AfterID: page.Products[len(page.Products)-1].ProductID})
	}
	return page, nil
}
