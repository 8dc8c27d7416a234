// Package middleware holds the gin middleware of the booking API.
package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/ReshmithaBathala/bookingbackend/web/service"

	"github.com/gin-gonic/gin"
)

const (
	ClaimsKey = "claims"
	UserIdKey = "user_id"
	RoleKey   = "role"

	apiKeyHeader = "api-key"
)

// SessionAuth admits requests carrying a valid "Authorization: Bearer" token.
// No token answers 401; a bad or expired one answers 403.
func SessionAuth(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			reason := "invalid_token"
			if errors.Is(err, service.ErrTokenExpired) {
				reason = "token_expired"
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": reason})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserIdKey, claims.Id)
		c.Set(RoleKey, string(claims.Role))
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// AdminKey compares the api-key header against the provisioned admin key.
// Missing and wrong keys both answer 403.
func AdminKey(key string) gin.HandlerFunc {
	expected := []byte(key)
	return func(c *gin.Context) {
		provided := c.GetHeader(apiKeyHeader)
		if provided == "" || len(expected) == 0 ||
			subtle.ConstantTimeCompare([]byte(provided), expected) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// GetClaims returns the claims SessionAuth attached, or nil.
func GetClaims(c *gin.Context) *service.Claims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*service.Claims)
	return claims
}
