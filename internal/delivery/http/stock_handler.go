package http

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"stocksim/internal/domain"
	"stocksim/internal/service"
)

// StockHandler handles market data requests
type StockHandler struct {
	stockRepo domain.StockRepository
	quotes    *service.QuoteEngine
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockRepo domain.StockRepository, quotes *service.QuoteEngine) *StockHandler {
	return &StockHandler{
		stockRepo: stockRepo,
		quotes:    quotes,
	}
}

// List returns all stocks with their latest quotes
// GET /api/stocks
func (h *StockHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stocks, err := h.stockRepo.GetAll(ctx)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, stocks)
}

// Get returns one stock by id
// GET /api/stocks/:id
func (h *StockHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid stock id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stock, err := h.stockRepo.GetByID(ctx, id)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, stock)
}

// Search returns stocks matching the q parameter by symbol or name
// GET /api/stocks/search?q=
func (h *StockHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if query == "" {
		stocks, err := h.stockRepo.GetAll(ctx)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponse(c, stocks)
	}

	stocks, err := h.stockRepo.Search(ctx, query)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, stocks)
}

// Refresh triggers a manual quote refresh outside the 60s schedule
// POST /api/stocks/refresh
func (h *StockHandler) Refresh(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	stocks, err := h.quotes.RefreshAll(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Quote refresh failed", err)
	}

	return SuccessMessageResponse(c, "Quotes refreshed", stocks)
}
