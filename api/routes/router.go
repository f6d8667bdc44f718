package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/octocat-supply/storefront/api/controllers"
	cartcontrollers "github.com/octocat-supply/storefront/api/controllers/cart"
	"github.com/octocat-supply/storefront/api/middleware"
	"github.com/octocat-supply/storefront/internal/cart"
	"github.com/octocat-supply/storefront/pkg/config"
	"github.com/octocat-supply/storefront/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	products controllers.Catalog,
	carts *cart.Registry,
	gatherer prometheus.Gatherer,
	readiness map[string]controllers.Pinger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.HTTP.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(products, logg))
			r.Get("/{productId}", controllers.ProductGet(products, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.CartSession(carts, logg, cfg.App.IsProd()))
			r.Get("/", cartcontrollers.CartFetch())
			r.Delete("/", cartcontrollers.CartClear())
			r.Post("/items", cartcontrollers.CartAddItem(products, logg))
			r.Put("/items/{productId}", cartcontrollers.CartUpdateItem(logg))
			r.Delete("/items/{productId}", cartcontrollers.CartRemoveItem(logg))
		})
	})

	return r
}
