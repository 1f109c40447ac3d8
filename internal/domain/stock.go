package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stock is a tradable instrument plus its latest simulated quote.
// Quote fields are written by the quote engine, never by settlement.
type Stock struct {
	ID            uuid.UUID `json:"id"`
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Exchange      string    `json:"exchange"`
	Sector        string    `json:"sector,omitempty"`
	Description   string    `json:"description,omitempty"`
	CurrentPrice  float64   `json:"current_price"`
	PreviousClose float64   `json:"previous_close"`
	DayOpen       float64   `json:"day_open"`
	DayHigh       float64   `json:"day_high"`
	DayLow        float64   `json:"day_low"`
	Volume        int64     `json:"volume"`
	LastUpdated   time.Time `json:"last_updated"`
	CreatedAt     time.Time `json:"created_at"`
}

// Exchange constants
const (
	ExchangeNSE = "NSE"
	ExchangeMCX = "MCX"
)
