package middleware

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"
)

// RequireRole lets a request through only when the session role placed in
// the context by JWTAuth is one of roles.  It must run after JWTAuth.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if role == "" || !slices.Contains(roles, role) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "this session may not " + describe(c)})
			}
			return next(c)
		}
	}
}

// describe names the refused request for the error message.
func describe(c echo.Context) string {
	return c.Request().Method + " " + c.Path()
}
