package catalog

import (
	"context"
	"testing"

	pkgerrors "github.com/octocat-supply/storefront/pkg/errors"
	"github.com/octocat-supply/storefront/pkg/pagination"
)

func TestDefaultCatalogListsSeedInOrder(t *testing.T) {
	c := Default()
	products := c.List(context.Background())
	if len(products) != len(seedProducts()) {
		t.Fatalf("expected %d products, got %d", len(seedProducts()), len(products))
	}
	for i, p := range products {
		if p.ProductID != i+1 {
			t.Fatalf("expected productId %d at index %d, got %d", i+1, i, p.ProductID)
		}
	}
}

func TestGetReturnsCopies(t *testing.T) {
	c := Default()
	ctx := context.Background()

	p, err := c.Get(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Discount == nil || *p.Discount != 0.25 {
		t.Fatalf("expected seeded discount, got %v", p.Discount)
	}
	*p.Discount = 0.9
	p.Price = 1

	again, _ := c.Get(ctx, 1)
	if *again.Discount != 0.25 || again.Price != 129.99 {
		t.Fatalf("catalog was mutated through a returned product: %+v", again)
	}

	list := c.List(ctx)
	list[0].Name = "changed"
	if c.List(ctx)[0].Name == "changed" {
		t.Fatal("catalog was mutated through List")
	}
}

func TestGetMissingProduct(t *testing.T) {
	_, err := Default().Get(context.Background(), 999)
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestNewRejectsInvalidProducts(t *testing.T) {
	valid := Product{ProductID: 1, Name: "Toy", Price: 1, SKU: "T-1", Unit: "piece"}

	cases := map[string][]Product{
		"duplicate id":     {valid, valid},
		"missing id":       {{Name: "Toy", SKU: "T", Unit: "piece"}},
		"negative price":   {{ProductID: 2, Name: "Toy", Price: -1, SKU: "T", Unit: "piece"}},
		"discount too big": {{ProductID: 3, Name: "Toy", Price: 1, SKU: "T", Unit: "piece", Discount: discount(1)}},
		"missing sku":      {{ProductID: 4, Name: "Toy", Price: 1, Unit: "piece"}},
	}
	for name, products := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := New(products); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	if _, err := New([]Product{valid}); err != nil {
		t.Fatalf("valid product rejected: %v", err)
	}
}

func TestPageWalksCatalog(t *testing.T) {
	c := Default()
	ctx := context.Background()

	var ids []int
	params := pagination.Params{Limit: 4}
	for {
		page, err := c.Page(ctx, params)
		if err != nil {
			t.Fatalf("page: %v", err)
		}
		for _, p := range page.Products {
			ids = append(ids, p.ProductID)
		}
		if page.NextCursor == "" {
			break
		}
		params.Cursor = page.NextCursor
	}
	if len(ids) != 6 || ids[0] != 1 || ids[5] != 6 {
		t.Fatalf("unexpected walk %v", ids)
	}
}

func TestPageRejectsUnknownCursor(t *testing.T) {
	cursor := pagination.EncodeCursor(pagination.Cursor{AfterID: 999})
	if _, err := Default().Page(context.Background(), pagination.Params{Cursor: cursor}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
