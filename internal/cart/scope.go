package cart

import "context"

type scopeKey struct{}

// WithCart opens a cart scope: handlers running under ctx reach the cart
// through FromContext.
func WithCart(ctx context.Context, c *Cart) context.Context {
	return context.WithValue(ctx, scopeKey{}, c)
}

// FromContext returns the cart of the enclosing scope. Calling it outside
// a scope is a wiring bug and panics.
func FromContext(ctx context.Context) *Cart {
	c, ok := Lookup(ctx)
	if !ok {
		panic("cart: FromContext called outside a cart scope; wrap the handler with WithCart")
	}
	return c
}

// Lookup is the non-panicking form of FromContext.
func Lookup(ctx context.Context) (*Cart, bool) {
	if ctx == nil {
		return nil, false
	}
	c, ok := ctx.Value(scopeKey{}).(*Cart)
	return c, ok && c != nil
}
