package middleware // middleware contains reusable HTTP middleware functions

import (
	"errors"
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

var errSigningMethod = errors.New("unexpected signing method")

// JWTAuth returns an Echo middleware that accepts only session tokens
// signed with secret and issued for store, the name of the open store.
// The token's role claim is placed in the request context as "role" and
// its subject as "store".
func JWTAuth(secret, store string) echo.MiddlewareFunc {
	keyFunc := func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errSigningMethod
		}
		return []byte(secret), nil
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, found := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			if !found || raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}

			claims := jwt.MapClaims{}
			if _, err := jwt.ParseWithClaims(raw, claims, keyFunc, jwt.WithExpirationRequired()); err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			// A token stays valid across restarts but not across stores.
			sub, _ := claims.GetSubject()
			if sub != store {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token was issued for another store"})
			}
			role, _ := claims["role"].(string)

			c.Set("store", sub)
			c.Set("role", role)
			return next(c)
		}
	}
}
