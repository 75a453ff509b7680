package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minauth/auth-api/internal/core/domain"
)

// accountContextKey is where the Auth middleware stores the resolved account.
const accountContextKey = "account"

// SetCurrentAccount injects the authenticated account into the request
// context. Called by the Auth middleware only.
func SetCurrentAccount(c echo.Context, account *domain.Account) {
	c.Set(accountContextKey, account)
}

// CurrentAccount extracts the account injected by the Auth middleware.
// Its presence proves the middleware ran; a protected handler reached
// without it is a wiring bug, rejected with 401 rather than 500.
func CurrentAccount(c echo.Context) (*domain.Account, error) {
	account, _ := c.Get(accountContextKey).(*domain.Account)
	if account == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return account, nil
}
