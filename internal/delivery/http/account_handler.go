package http

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"stocksim/internal/domain"
	"stocksim/internal/middleware"
)

// AccountHandler handles virtual account requests
type AccountHandler struct {
	accountRepo domain.AccountRepository
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountRepo domain.AccountRepository) *AccountHandler {
	return &AccountHandler{accountRepo: accountRepo}
}

// Get returns the authenticated user's virtual account
// GET /api/account
func (h *AccountHandler) Get(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	account, err := h.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, account)
}
