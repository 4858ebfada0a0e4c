package middlewares

import (
	"net/http"

	"github.com/go-chi/cors"
)

// Cors restricts browser access to the single paired front-end origin.
// An allow-list of one, never a wildcard.
func Cors(origin string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{origin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})
}
