package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
)

// CORS allows a single browser origin. An empty origin turns it off.
func CORS(origin string) gin.HandlerFunc {
	if origin == "" {
		return func(c *gin.Context) { c.Next() }
	}
	handler := cors.Handler(cors.Options{
		AllowedOrigins:       []string{origin},
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:       []string{"Authorization", "Content-Type", apiKeyHeader, RequestIdHeader},
		ExposedHeaders:       []string{RequestIdHeader},
		MaxAge:               300,
		OptionsSuccessStatus: http.StatusNoContent,
	})

	return func(c *gin.Context) {
		passed := false
		handler(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)
		// preflight requests are answered by cors itself
		if !passed {
			c.Abort()
		}
	}
}
