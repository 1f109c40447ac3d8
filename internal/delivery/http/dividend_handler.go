package http

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"stocksim/internal/middleware"
	"stocksim/internal/service"
)

// DividendHandler handles dividend calendar and payout requests
type DividendHandler struct {
	dividends *service.DividendService
}

// NewDividendHandler creates a new DividendHandler
func NewDividendHandler(dividends *service.DividendService) *DividendHandler {
	return &DividendHandler{dividends: dividends}
}

// Upcoming returns the announced dividend calendar
// GET /api/dividends
func (h *DividendHandler) Upcoming(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	dividends, err := h.dividends.Upcoming(ctx)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, dividends)
}

// History returns the user's recorded payouts
// GET /api/dividends/history
func (h *DividendHandler) History(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	history, err := h.dividends.History(ctx, userID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, history)
}

// Simulate credits every qualifying dividend into the user's account
// POST /api/dividends/simulate
func (h *DividendHandler) Simulate(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	payouts, err := h.dividends.SimulatePayouts(ctx, userID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	message := fmt.Sprintf("Credited %d dividend payout(s)", len(payouts))
	if len(payouts) == 0 {
		message = "No qualifying dividends"
	}

	return SuccessMessageResponse(c, message, payouts)
}
