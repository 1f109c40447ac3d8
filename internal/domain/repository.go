package domain

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// AccountRepository defines the interface for virtual account operations
type AccountRepository interface {
	// Create creates a new virtual account
	Create(ctx context.Context, account *VirtualAccount) error

	// GetByUserID retrieves the account owned by a user
	GetByUserID(ctx context.Context, userID uuid.UUID) (*VirtualAccount, error)
}

// StockRepository defines the interface for stock/quote operations
type StockRepository interface {
	// GetAll retrieves all stocks ordered by symbol
	GetAll(ctx context.Context) ([]*Stock, error)

	// GetByID retrieves a stock by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Stock, error)

	// GetBySymbol retrieves a stock by its ticker symbol
	GetBySymbol(ctx context.Context, symbol string) (*Stock, error)

	// Search retrieves stocks whose symbol or name matches the query
	Search(ctx context.Context, query string) ([]*Stock, error)

	// UpdateQuote persists the quote fields written by the quote engine
	UpdateQuote(ctx context.Context, stock *Stock) error
}

// HoldingRepository defines the interface for portfolio holdings
type HoldingRepository interface {
	// GetByUserID retrieves all holdings for a user
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*Holding, error)

	// GetByUserAndStock retrieves the holding for a (user, stock) pair.
	// Returns (nil, nil) when the user has no position in the stock.
	GetByUserAndStock(ctx context.Context, userID, stockID uuid.UUID) (*Holding, error)
}

// OrderRepository defines the interface for order history reads
type OrderRepository interface {
	// GetByUserID retrieves the most recent orders for a user
	GetByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*Order, error)
}

// TransactionRepository defines the interface for transaction history reads
type TransactionRepository interface {
	// GetByUserID retrieves the most recent transactions for a user
	GetByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*Transaction, error)
}

// SettlementRepository applies a settlement result atomically: order
// insert, transaction insert, holding upsert/delete and balance update
// either all commit or all roll back.
type SettlementRepository interface {
	Apply(ctx context.Context, result *SettlementResult) error
}

// WatchlistRepository defines the interface for watchlist operations
type WatchlistRepository interface {
	// GetByUserID retrieves all watchlist items for a user
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*WatchlistItem, error)

	// Add pins a stock; returns ErrAlreadyWatched on the unique pair
	Add(ctx context.Context, item *WatchlistItem) error

	// Remove unpins a stock by (user, stock) pair
	Remove(ctx context.Context, userID, stockID uuid.UUID) error
}

// DividendRepository defines the interface for dividend data
type DividendRepository interface {
	// GetUpcoming retrieves announced dividends ordered by ex-date
	GetUpcoming(ctx context.Context) ([]*Dividend, error)

	// GetHistory retrieves a user's past payouts, newest first
	GetHistory(ctx context.Context, userID uuid.UUID) ([]*DividendTransaction, error)

	// RecordPayout inserts the payout and credits the account balance
	// in a single transaction
	RecordPayout(ctx context.Context, payout *DividendTransaction, accountID uuid.UUID, newBalance float64) error
}
