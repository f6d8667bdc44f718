package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	cartsvc "github.com/octocat-supply/storefront/internal/cart"
	"github.com/octocat-supply/storefront/internal/catalog"
	pkgerrors "github.com/octocat-supply/storefront/pkg/errors"
	"github.com/octocat-supply/storefront/pkg/kv"
)

func newScopedRequest(t *testing.T, c *cartsvc.Cart, method, target, body string, params map[string]string) *http.Request {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := cartsvc.WithCart(req.Context(), c)
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func newTestCart() (*cartsvc.Cart, kv.Store) {
	store := kv.NewMemory()
	return cartsvc.New(context.Background(), cartsvc.NewStorage(store, cartsvc.DefaultStorageKey)), store
}

func decodeView(t *testing.T, resp *httptest.ResponseRecorder) cartsvc.View {
	t.Helper()
	var envelope struct {
		Data cartsvc.View `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func TestCartFetchEmpty(t *testing.T) {
	c, _ := newTestCart()
	resp := httptest.NewRecorder()
	CartFetch().ServeHTTP(resp, newScopedRequest(t, c, http.MethodGet, "/api/v1/cart", "", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	view := decodeView(t, resp)
	if view.CartItems == nil || len(view.CartItems) != 0 {
		t.Fatalf("expected empty item list, got %#v", view.CartItems)
	}
	if view.CartItemCount != 0 || view.CartTotal != "0.00" || view.ShippingCost != "25.00" || view.FinalTotal != "25.00" {
		t.Fatalf("unexpected totals %+v", view)
	}
}

func TestCartAddItemSnapshotsProduct(t *testing.T) {
	c, store := newTestCart()
	handler := CartAddItem(catalog.Default(), nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, newScopedRequest(t, c, http.MethodPost, "/api/v1/cart/items", `{"productId":1,"quantity":2}`, nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	view := decodeView(t, resp)
	if len(view.CartItems) != 1 {
		t.Fatalf("expected one line, got %d", len(view.CartItems))
	}
	line := view.CartItems[0]
	if line.Name != "SmartFeeder One" || line.Quantity != 2 || line.DiscountPercent != 25 {
		t.Fatalf("unexpected line %+v", line)
	}
	if line.EffectivePrice != "97.49" || line.LineTotal != "194.99" {
		t.Fatalf("unexpected line amounts %+v", line)
	}
	if view.CartTotal != "194.99" || view.ShippingCost != "0.00" || view.FinalTotal != "194.99" {
		t.Fatalf("unexpected totals %+v", view)
	}

	raw, err := store.Get(context.Background(), cartsvc.DefaultStorageKey)
	if err != nil || !strings.Contains(string(raw), `"quantity":2`) {
		t.Fatalf("expected persisted cart, got %s (%v)", raw, err)
	}
}

func TestCartAddItemNonPositiveQuantityIsNoop(t *testing.T) {
	c, _ := newTestCart()
	resp := httptest.NewRecorder()
	CartAddItem(catalog.Default(), nil).ServeHTTP(resp,
		newScopedRequest(t, c, http.MethodPost, "/api/v1/cart/items", `{"productId":1,"quantity":0}`, nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if view := decodeView(t, resp); len(view.CartItems) != 0 {
		t.Fatalf("expected unchanged cart, got %+v", view.CartItems)
	}
}

func TestCartAddItemUnknownProduct(t *testing.T) {
	c, _ := newTestCart()
	resp := httptest.NewRecorder()
	CartAddItem(catalog.Default(), nil).ServeHTTP(resp,
		newScopedRequest(t, c, http.MethodPost, "/api/v1/cart/items", `{"productId":999,"quantity":1}`, nil))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	if len(c.Items()) != 0 {
		t.Fatal("cart must stay empty")
	}
}

func TestCartAddItemRejectsBadPayload(t *testing.T) {
	for _, body := range []string{`{"productId":1}`, `{"productId":1,"quantity":1.5}`, `{"productId":-1,"quantity":1}`} {
		c, _ := newTestCart()
		resp := httptest.NewRecorder()
		CartAddItem(catalog.Default(), nil).ServeHTTP(resp,
			newScopedRequest(t, c, http.MethodPost, "/api/v1/cart/items", body, nil))

		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", body, resp.Code)
		}
	}
}

func TestCartUpdateItem(t *testing.T) {
	c, _ := newTestCart()
	product, _ := catalog.Default().Get(context.Background(), 4)
	c.AddToCart(context.Background(), product, 2)

	resp := httptest.NewRecorder()
	CartUpdateItem(nil).ServeHTTP(resp, newScopedRequest(t, c, http.MethodPut, "/api/v1/cart/items/4",
		`{"quantity":5}`, map[string]string{"productId": "4"}))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	view := decodeView(t, resp)
	if len(view.CartItems) != 1 || view.CartItems[0].Quantity != 5 {
		t.Fatalf("expected absolute quantity 5, got %+v", view.CartItems)
	}

	resp = httptest.NewRecorder()
	CartUpdateItem(nil).ServeHTTP(resp, newScopedRequest(t, c, http.MethodPut, "/api/v1/cart/items/4",
		`{"quantity":0}`, map[string]string{"productId": "4"}))
	if view := decodeView(t, resp); len(view.CartItems) != 0 {
		t.Fatalf("expected line removed, got %+v", view.CartItems)
	}
}

func TestCartUpdateItemBadPath(t *testing.T) {
	c, _ := newTestCart()
	resp := httptest.NewRecorder()
	CartUpdateItem(nil).ServeHTTP(resp, newScopedRequest(t, c, http.MethodPut, "/api/v1/cart/items/abc",
		`{"quantity":1}`, map[string]string{"productId": "abc"}))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected code %s", envelope.Error.Code)
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	c, _ := newTestCart()
	shop := catalog.Default()
	for _, id := range []int{1, 3} {
		p, _ := shop.Get(context.Background(), id)
		c.AddToCart(context.Background(), p, 1)
	}

	resp := httptest.NewRecorder()
	CartRemoveItem(nil).ServeHTTP(resp, newScopedRequest(t, c, http.MethodDelete, "/api/v1/cart/items/1", "",
		map[string]string{"productId": "1"}))
	view := decodeView(t, resp)
	if len(view.CartItems) != 1 || view.CartItems[0].ProductID != 3 {
		t.Fatalf("unexpected items after remove %+v", view.CartItems)
	}

	resp = httptest.NewRecorder()
	CartRemoveItem(nil).ServeHTTP(resp, newScopedRequest(t, c, http.MethodDelete, "/api/v1/cart/items/1", "",
		map[string]string{"productId": "1"}))
	if resp.Code != http.StatusOK {
		t.Fatalf("removing an absent line must succeed, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	CartClear().ServeHTTP(resp, newScopedRequest(t, c, http.MethodDelete, "/api/v1/cart", "", nil))
	view = decodeView(t, resp)
	if len(view.CartItems) != 0 || view.FinalTotal != "25.00" {
		t.Fatalf("unexpected cart after clear %+v", view)
	}
}

func TestCartHandlersPanicOutsideScope(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic without a cart scope")
		}
	}()
	CartFetch().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
}
