package http

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"stocksim/internal/middleware"
	"stocksim/internal/service"
)

// WatchlistHandler handles watchlist requests
type WatchlistHandler struct {
	watchlist *service.WatchlistService
}

// NewWatchlistHandler creates a new WatchlistHandler
func NewWatchlistHandler(watchlist *service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{watchlist: watchlist}
}

// List returns the user's watchlist with current quotes
// GET /api/watchlist
func (h *WatchlistHandler) List(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.watchlist.List(ctx, userID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, items)
}

// Add pins a stock to the watchlist
// POST /api/watchlist/:stockId
func (h *WatchlistHandler) Add(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	stockID, err := uuid.Parse(c.Param("stockId"))
	if err != nil {
		return BadRequestResponse(c, "Invalid stock id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	item, err := h.watchlist.Add(ctx, userID, stockID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return CreatedResponse(c, item)
}

// Remove unpins a stock from the watchlist
// DELETE /api/watchlist/:stockId
func (h *WatchlistHandler) Remove(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	stockID, err := uuid.Parse(c.Param("stockId"))
	if err != nil {
		return BadRequestResponse(c, "Invalid stock id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.watchlist.Remove(ctx, userID, stockID); err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessMessageResponse(c, "Removed from watchlist", nil)
}
