// Package cart holds a shopper's cart: the line items, the rules that
// mutate them, the totals derived from them and their persistence.
package cart

import (
	"context"
	"sync"

	"github.com/octocat-supply/storefront/internal/catalog"
	"github.com/octocat-supply/storefront/pkg/metrics"
	"github.com/shopspring/decimal"
)

const (
	opAdd    = "add"
	opRemove = "remove"
	opUpdate = "update"
	opClear  = "clear"
)

// Cart is the single source of truth for one session's line items. Every
// change is saved through the Persister before the mutating call returns.
// A Cart is safe for concurrent use; mutations and their saves are
// applied in call order.
type Cart struct {
	mu        sync.Mutex
	items     []LineItem
	persister Persister
	pricing   Pricing
	metrics   *metrics.CartMetrics
}

type Option func(*Cart)

func WithPricing(p Pricing) Option {
	return func(c *Cart) { c.pricing = p }
}

func WithMetrics(m *metrics.CartMetrics) Option {
	return func(c *Cart) { c.metrics = m }
}

// New builds a cart seeded from p.Load.
func New(ctx context.Context, p Persister, opts ...Option) *Cart {
	return newWithItems(p, p.Load(ctx), opts...)
}

func newWithItems(p Persister, items []LineItem, opts ...Option) *Cart {
	c := &Cart{
		persister: p,
		pricing:   DefaultPricing(),
		items:     items,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.items == nil {
		c.items = []LineItem{}
	}
	return c
}

// AddToCart adds quantity units of product. An existing line keeps its
// snapshot and only grows; otherwise a new line is appended. Quantities
// <= 0 are ignored.
func (c *Cart) AddToCart(ctx context.Context, product catalog.Product, quantity int) {
	if quantity <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if idx := c.indexOf(product.ProductID); idx >= 0 {
		c.items[idx].Quantity += quantity
	} else {
		c.items = append(c.items, newLineItem(product, quantity))
	}
	c.commit(ctx, opAdd)
}

// RemoveFromCart drops the line for productID if there is one.
func (c *Cart) RemoveFromCart(ctx context.Context, productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(ctx, productID)
}

// UpdateQuantity sets the quantity of an existing line. A quantity <= 0
// removes the line; unknown products are ignored.
func (c *Cart) UpdateQuantity(ctx context.Context, productID int, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.remove(ctx, productID)
		return
	}
	idx := c.indexOf(productID)
	if idx < 0 {
		return
	}
	c.items[idx].Quantity = quantity
	c.commit(ctx, opUpdate)
}

// ClearCart empties the cart. The empty cart is always saved.
func (c *Cart) ClearCart(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = []LineItem{}
	c.commit(ctx, opClear)
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneItems(c.items)
}

func (c *Cart) ItemCount() int {
	return c.Totals().ItemCount
}

func (c *Cart) Subtotal() decimal.Decimal {
	return c.Totals().Subtotal
}

func (c *Cart) ShippingCost() decimal.Decimal {
	return c.Totals().ShippingCost
}

func (c *Cart) FinalTotal() decimal.Decimal {
	return c.Totals().FinalTotal
}

// Totals computes every derived value from the same item set.
func (c *Cart) Totals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ComputeTotals(c.items, c.pricing)
}

// Snapshot returns the items together with the totals computed from them.
func (c *Cart) Snapshot() ([]LineItem, Totals) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneItems(c.items), ComputeTotals(c.items, c.pricing)
}

func (c *Cart) remove(ctx context.Context, productID int) {
	idx := c.indexOf(productID)
	if idx < 0 {
		return
	}
	next := make([]LineItem, 0, len(c.items)-1)
	next = append(next, c.items[:idx]...)
	c.items = append(next, c.items[idx+1:]...)
	c.commit(ctx, opRemove)
}

func (c *Cart) indexOf(productID int) int {
	for i, item := range c.items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// commit must be called with mu held.
func (c *Cart) commit(ctx context.Context, op string) {
	c.metrics.IncMutation(op)
	c.persister.Save(ctx, cloneItems(c.items))
}
