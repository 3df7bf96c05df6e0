package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000", // local dev
	"http://localhost:8080",
	"https://udacimarket.herokuapp.com", // hosted frontend
}

// CORS returns middleware that applies the API's allowed origin policy.
// An empty origins slice falls back to the built-in list.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = defaultCORSOrigins
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Test-Permission", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
