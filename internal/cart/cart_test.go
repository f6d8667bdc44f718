package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/octocat-supply/storefront/pkg/kv"
	"github.com/octocat-supply/storefront/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartSumsQuantities(t *testing.T) {
	ctx := context.Background()
	p := &recordingPersister{}
	c := New(ctx, p)

	feeder := product(1, 129.99, fraction(0.25))
	for _, qty := range []int{3, 1, 4} {
		c.AddToCart(ctx, feeder, qty)
	}

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 8, items[0].Quantity)
	assert.Equal(t, 3, p.saveCount())
}

func TestAddToCartKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, &recordingPersister{})

	c.AddToCart(ctx, product(1, 50, nil), 1)
	repriced := product(1, 75, fraction(0.5))
	repriced.Name = "Renamed"
	c.AddToCart(ctx, repriced, 1)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 50.0, items[0].Price)
	assert.Equal(t, "Product", items[0].Name)
	assert.Nil(t, items[0].Discount)
}

func TestAddToCartAppendsInOrder(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, &recordingPersister{})

	c.AddToCart(ctx, product(3, 10, nil), 1)
	c.AddToCart(ctx, product(1, 10, nil), 1)
	c.AddToCart(ctx, product(2, 10, nil), 1)
	c.AddToCart(ctx, product(1, 10, nil), 1)

	var ids []int
	for _, item := range c.Items() {
		ids = append(ids, item.ProductID)
	}
	assert.Equal(t, []int{3, 1, 2}, ids)
}

func TestAddToCartNonPositiveQuantityIsNoop(t *testing.T) {
	ctx := context.Background()
	p := &recordingPersister{}
	c := New(ctx, p)
	c.AddToCart(ctx, product(1, 10, nil), 2)

	c.AddToCart(ctx, product(1, 10, nil), 0)
	c.AddToCart(ctx, product(1, 10, nil), -3)
	c.AddToCart(ctx, product(2, 10, nil), 0)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 1, p.saveCount(), "no-ops must not persist")
}

func TestUpdateQuantityIsAbsolute(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, &recordingPersister{})

	c.AddToCart(ctx, product(1, 10, nil), 2)
	c.UpdateQuantity(ctx, 1, 5)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestUpdateQuantityNonPositiveRemoves(t *testing.T) {
	ctx := context.Background()
	viaUpdate := New(ctx, &recordingPersister{})
	viaRemove := New(ctx, &recordingPersister{})
	for _, c := range []*Cart{viaUpdate, viaRemove} {
		c.AddToCart(ctx, product(1, 10, nil), 2)
		c.AddToCart(ctx, product(2, 20, nil), 1)
	}

	viaUpdate.UpdateQuantity(ctx, 1, 0)
	viaRemove.RemoveFromCart(ctx, 1)

	assert.Equal(t, viaRemove.Items(), viaUpdate.Items())
	require.Len(t, viaUpdate.Items(), 1)
	assert.Equal(t, 2, viaUpdate.Items()[0].ProductID)

	viaUpdate.UpdateQuantity(ctx, 2, -1)
	assert.Empty(t, viaUpdate.Items())
}

func TestUpdateQuantityUnknownProductIsNoop(t *testing.T) {
	ctx := context.Background()
	p := &recordingPersister{}
	c := New(ctx, p)

	c.UpdateQuantity(ctx, 42, 3)

	assert.Empty(t, c.Items())
	assert.Zero(t, p.saveCount())
}

func TestRemoveFromCartIsIdempotent(t *testing.T) {
	ctx := context.Background()
	p := &recordingPersister{}
	c := New(ctx, p)
	c.AddToCart(ctx, product(1, 10, nil), 1)

	c.RemoveFromCart(ctx, 99)
	once := c.Items()
	c.RemoveFromCart(ctx, 99)

	assert.Equal(t, once, c.Items())
	assert.Equal(t, 1, p.saveCount())
}

func TestClearCartResetsTotalsAndPersists(t *testing.T) {
	ctx := context.Background()
	p := &recordingPersister{}
	c := New(ctx, p)
	c.AddToCart(ctx, product(1, 150, nil), 2)

	c.ClearCart(ctx)

	totals := c.Totals()
	assert.Equal(t, 0, totals.ItemCount)
	assert.True(t, totals.Subtotal.IsZero())
	assert.Equal(t, "25.00", FormatAmount(totals.ShippingCost))
	assert.Equal(t, "25.00", FormatAmount(totals.FinalTotal))

	require.Equal(t, 2, p.saveCount())
	assert.NotNil(t, p.lastSave())
	assert.Empty(t, p.lastSave())

	c.ClearCart(ctx)
	assert.Equal(t, 3, p.saveCount(), "clearing an empty cart still persists")
}

func TestTotalsScenarios(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name     string
		price    float64
		discount *float64
		qty      int
		subtotal string
		shipping string
		final    string
	}{
		{name: "reaches free shipping", price: 50.00, discount: fraction(0), qty: 2, subtotal: "100.00", shipping: "0.00", final: "100.00"},
		{name: "discounted below threshold", price: 40.00, discount: fraction(0.25), qty: 1, subtotal: "30.00", shipping: "25.00", final: "55.00"},
		{name: "just below threshold", price: 99.99, qty: 1, subtotal: "99.99", shipping: "25.00", final: "124.99"},
	}

	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := New(ctx, &recordingPersister{})
			c.AddToCart(ctx, product(i+1, tc.price, tc.discount), tc.qty)

			totals := c.Totals()
			assert.Equal(t, tc.qty, totals.ItemCount)
			assert.Equal(t, tc.subtotal, FormatAmount(totals.Subtotal))
			assert.Equal(t, tc.shipping, FormatAmount(totals.ShippingCost))
			assert.Equal(t, tc.final, FormatAmount(totals.FinalTotal))
		})
	}
}

func TestSavesFollowCallOrder(t *testing.T) {
	ctx := context.Background()
	p := &recordingPersister{}
	c := New(ctx, p)

	c.AddToCart(ctx, product(1, 10, nil), 1)
	c.AddToCart(ctx, product(2, 10, nil), 1)
	c.UpdateQuantity(ctx, 1, 4)
	c.RemoveFromCart(ctx, 2)
	c.ClearCart(ctx)

	require.Equal(t, 5, p.saveCount())
	assert.Len(t, p.saves[0], 1)
	assert.Len(t, p.saves[1], 2)
	assert.Equal(t, 4, p.saves[2][0].Quantity)
	assert.Len(t, p.saves[3], 1)
	assert.Empty(t, p.saves[4])
}

func TestConcurrentAddsAreSerialised(t *testing.T) {
	ctx := context.Background()
	p := &recordingPersister{}
	c := New(ctx, p)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.AddToCart(ctx, product(1, 1, nil), 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, c.ItemCount())
	assert.Equal(t, 50, p.saveCount())
	assert.Equal(t, 50, p.lastSave()[0].Quantity)
}

func TestItemsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, &recordingPersister{})
	c.AddToCart(ctx, product(1, 10, fraction(0.1)), 1)

	items := c.Items()
	items[0].Quantity = 99
	*items[0].Discount = 0.9

	fresh := c.Items()
	assert.Equal(t, 1, fresh[0].Quantity)
	assert.Equal(t, 0.1, *fresh[0].Discount)
}

func TestNewLoadsPersistedItems(t *testing.T) {
	ctx := context.Background()
	p := &recordingPersister{initial: []LineItem{{ProductID: 7, Name: "Bed", Price: 89, Quantity: 2}}}
	c := New(ctx, p)

	assert.Equal(t, 2, c.ItemCount())
	assert.Equal(t, "178.00", FormatAmount(c.Subtotal()))
	assert.Equal(t, "0.00", FormatAmount(c.ShippingCost()))
	assert.Equal(t, "178.00", FormatAmount(c.FinalTotal()))
	assert.Zero(t, p.saveCount(), "loading must not write back")
}

func TestCartWithCustomPricing(t *testing.T) {
	ctx := context.Background()
	pricing := Pricing{
		FreeShippingThreshold: decimal.RequireFromString("50"),
		ShippingFee:           decimal.RequireFromString("4.99"),
	}
	c := New(ctx, &recordingPersister{}, WithPricing(pricing))

	c.AddToCart(ctx, product(1, 20, nil), 1)
	assert.Equal(t, "4.99", FormatAmount(c.ShippingCost()))

	c.UpdateQuantity(ctx, 1, 3)
	assert.True(t, c.ShippingCost().IsZero())
}

func TestMutationMetrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	c := New(ctx, NewStorage(kv.NewMemory(), ""), WithMetrics(metrics.NewCartMetrics(reg)))

	c.AddToCart(ctx, product(1, 10, nil), 1)
	c.AddToCart(ctx, product(1, 10, nil), 0)
	c.UpdateQuantity(ctx, 1, 2)
	c.RemoveFromCart(ctx, 1)
	c.RemoveFromCart(ctx, 1)
	c.ClearCart(ctx)

	assert.Equal(t, 1.0, counterValue(t, reg, "cart_mutations_total", "add"))
	assert.Equal(t, 1.0, counterValue(t, reg, "cart_mutations_total", "update"))
	assert.Equal(t, 1.0, counterValue(t, reg, "cart_mutations_total", "remove"))
	assert.Equal(t, 1.0, counterValue(t, reg, "cart_mutations_total", "clear"))
}
