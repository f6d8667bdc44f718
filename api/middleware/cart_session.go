package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/octocat-supply/storefront/api/responses"
	"github.com/octocat-supply/storefront/api/validators"
	"github.com/octocat-supply/storefront/internal/cart"
	pkgerrors "github.com/octocat-supply/storefront/pkg/errors"
	"github.com/octocat-supply/storefront/pkg/logger"
)

const (
	CartSessionHeader = "X-Cart-Session"
	CartSessionCookie = "cart_session"

	cartSessionMaxAge = 30 * 24 * time.Hour
)

// CartSession resolves the caller's cart session, opens its cart and runs
// the rest of the chain inside that cart's scope. Unknown or malformed
// session ids are replaced by a fresh one, which is returned in both the
// header and the cookie.
func CartSession(carts *cart.Registry, logg *logger.Logger, secureCookie bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, ok := sessionFromRequest(r)
			if !ok {
				sessionID = uuid.NewString()
			}

			w.Header().Set(CartSessionHeader, sessionID)
			http.SetCookie(w, &http.Cookie{
				Name:     CartSessionCookie,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int(cartSessionMaxAge.Seconds()),
				HttpOnly: true,
				Secure:   secureCookie,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := WithCartSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			c, err := carts.Open(ctx, sessionID)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart storage unavailable"))
				return
			}
			ctx = cart.WithCart(ctx, c)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionFromRequest(r *http.Request) (string, bool) {
	raw := validators.SanitizeString(r.Header.Get(CartSessionHeader), 64)
	if raw == "" {
		if c, err := r.Cookie(CartSessionCookie); err == nil {
			raw = validators.SanitizeString(c.Value, 64)
		}
	}
	if raw == "" {
		return "", false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
