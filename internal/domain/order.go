package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderSide constants
const (
	OrderSideBuy  = "BUY"
	OrderSideSell = "SELL"
)

// OrderStatus constants. Orders settle instantly against the current
// quote, so a persisted order is always COMPLETED; validation failures
// abort before any row is written.
const (
	OrderStatusCompleted = "COMPLETED"
)

// Order is a settled buy/sell order.
type Order struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	StockID    uuid.UUID `json:"stock_id"`
	Side       string    `json:"order_type"`
	Quantity   int64     `json:"quantity"`
	Price      float64   `json:"price"`
	TotalValue float64   `json:"total_value"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// Transaction is the immutable history record appended by settlement.
// Sign convention: BUY decreases cash, SELL increases cash.
type Transaction struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	OrderID    uuid.UUID `json:"order_id"`
	StockID    uuid.UUID `json:"stock_id"`
	Type       string    `json:"transaction_type"`
	Quantity   int64     `json:"quantity"`
	Price      float64   `json:"price"`
	TotalValue float64   `json:"total_value"`
	CreatedAt  time.Time `json:"created_at"`
}
