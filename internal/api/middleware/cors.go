package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS lets any browser origin call the API with credentials. The origin is
// echoed back rather than answered with "*", which browsers reject for
// credentialed requests.
func CORS() func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, _ string) bool { return true },
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodOptions, http.MethodHead,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           600,
	})
}
