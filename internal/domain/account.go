package domain

import (
	"time"

	"github.com/google/uuid"
)

// VirtualAccount holds a user's simulated cash. Balance is mutated only
// by order settlement and dividend payouts; InitialBalance stays fixed
// as the reference point for lifetime P&L.
type VirtualAccount struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	Balance        float64   `json:"balance"`
	InitialBalance float64   `json:"initial_balance"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
