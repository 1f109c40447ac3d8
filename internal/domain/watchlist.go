package domain

import (
	"time"

	"github.com/google/uuid"
)

// WatchlistItem pins one stock to a user's watchlist.
// The (user_id, stock_id) pair is unique.
type WatchlistItem struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	StockID   uuid.UUID `json:"stock_id"`
	CreatedAt time.Time `json:"created_at"`
	Stock     *Stock    `json:"stock,omitempty"`
}
