package domain

import (
	"time"

	"github.com/google/uuid"
)

// Holding is a user's open position in one stock. One row per
// (user, stock) pair; a holding with quantity 0 is never persisted.
type Holding struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	StockID       uuid.UUID `json:"stock_id"`
	Quantity      int64     `json:"quantity"`
	AveragePrice  float64   `json:"average_price"`
	TotalInvested float64   `json:"total_invested"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
