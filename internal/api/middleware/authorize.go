package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/burgerqueen/pos-api/internal/core/policy"
)

// Authorize gates a route on a claims-only policy rule. It must run after Auth.
// Denials are returned as errors so the HTTP error handler renders them.
func Authorize(rule policy.Rule) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if err := rule(claims); err != nil {
				return err
			}
			return next(c)
		}
	}
}
