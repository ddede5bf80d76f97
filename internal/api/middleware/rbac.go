package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC restricts a route to the listed roles. It must run behind Auth, which
// is what puts the verified role into the context. The error flows through
// the central handler so the response envelope matches every other API error.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
