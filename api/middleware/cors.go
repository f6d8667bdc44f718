package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS lets the browser storefront call the API from the configured origins.
func CORS(origins []string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", CartSessionHeader, RequestIDHeader, "X-Requested-With"},
		ExposedHeaders:   []string{CartSessionHeader, RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
