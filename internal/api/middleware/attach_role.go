package middleware

import "github.com/labstack/echo/v4"

// authRoleKey carries the role a fixed login route authenticates against.
const authRoleKey = "auth_role"

// AttachRole pins the authentication role for a route. Login handlers read
// the role from here rather than from the request body, so a caller can never
// select admin by payload alone.
func AttachRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(authRoleKey, role)
			return next(c)
		}
	}
}

// AttachedRole returns the role pinned by AttachRole, or "" when the route
// has none.
func AttachedRole(c echo.Context) string {
	role, _ := c.Get(authRoleKey).(string)
	return role
}
