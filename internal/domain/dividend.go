package domain

import (
	"time"

	"github.com/google/uuid"
)

// Dividend is an upcoming dividend announcement for a stock.
type Dividend struct {
	ID               uuid.UUID `json:"id"`
	StockSymbol      string    `json:"stock_symbol"`
	ExDate           time.Time `json:"ex_date"`
	PayDate          time.Time `json:"pay_date"`
	DividendPerShare float64   `json:"dividend_per_share"`
}

// DividendTransaction records a dividend payout credited to a user's
// virtual account. Append-only.
type DividendTransaction struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	StockSymbol      string    `json:"stock_symbol"`
	Shares           int64     `json:"shares"`
	DividendPerShare float64   `json:"dividend_per_share"`
	TotalAmount      float64   `json:"total_amount"`
	PaidOn           time.Time `json:"paid_on"`
}
