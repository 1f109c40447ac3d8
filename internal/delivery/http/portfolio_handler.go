package http

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"stocksim/internal/middleware"
	"stocksim/internal/service"
)

// PortfolioHandler handles portfolio valuation requests
type PortfolioHandler struct {
	portfolio *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolio *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio}
}

// Holdings returns the user's positions marked against current quotes
// GET /api/portfolio
func (h *PortfolioHandler) Holdings(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	holdings, err := h.portfolio.Holdings(ctx, userID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, holdings)
}

// Summary returns the aggregated portfolio overview including cash
// GET /api/portfolio/summary
func (h *PortfolioHandler) Summary(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	summary, err := h.portfolio.Summary(ctx, userID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, summary)
}
