package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/burgerqueen/pos-api/internal/api/middleware"
	"github.com/burgerqueen/pos-api/internal/core/domain"
)

// ctxClaims extracts the claims injected by the Auth middleware and fails
// fast on a token that names nobody: it verified, but no policy decision can
// ever match it.
func ctxClaims(c echo.Context) (domain.Claims, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return domain.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if claims.UserID == "" && claims.Email == "" && claims.ThisEmail == "" {
		return domain.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
	}
	return claims, nil
}

// bindAndValidate decodes the request body into req and runs the registered
// validator, reporting either failure as 400.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
