package http

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"stocksim/internal/domain"
	"stocksim/internal/middleware"
)

const defaultTransactionLimit = 50

// TransactionHandler handles ledger history requests
type TransactionHandler struct {
	transactionRepo domain.TransactionRepository
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionRepo domain.TransactionRepository) *TransactionHandler {
	return &TransactionHandler{transactionRepo: transactionRepo}
}

// List returns the user's recent transactions, newest first
// GET /api/transactions?limit=
func (h *TransactionHandler) List(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = defaultTransactionLimit
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	transactions, err := h.transactionRepo.GetByUserID(ctx, userID, limit)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, transactions)
}
