package http

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"stocksim/internal/delivery/http/dto"
	"stocksim/internal/middleware"
	"stocksim/internal/usecase"
)

// OrderHandler handles order placement and history
type OrderHandler struct {
	orders *usecase.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *usecase.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Place settles a buy/sell order at the current quote
// POST /api/orders
func (h *OrderHandler) Place(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	stockID, err := uuid.Parse(req.StockID)
	if err != nil {
		return BadRequestResponse(c, "Invalid stock id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	result, err := h.orders.PlaceOrder(ctx, userID, stockID, req.Side, req.Quantity)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	resp := dto.PlaceOrderResponse{
		OrderID:    result.Order.ID.String(),
		Side:       result.Order.Side,
		Quantity:   result.Order.Quantity,
		Price:      result.Order.Price,
		TotalValue: result.Order.TotalValue,
		Status:     result.Order.Status,
		Balance:    result.Account.Balance,
	}
	if result.Holding != nil {
		resp.Holding = &dto.HoldingOutput{
			StockID:       result.Holding.StockID.String(),
			Quantity:      result.Holding.Quantity,
			AveragePrice:  result.Holding.AveragePrice,
			TotalInvested: result.Holding.TotalInvested,
		}
	}

	return CreatedResponse(c, resp)
}

// List returns the user's recent orders
// GET /api/orders?limit=
func (h *OrderHandler) List(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	orders, err := h.orders.History(ctx, userID, limit)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, orders)
}
