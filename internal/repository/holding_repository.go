package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stocksim/internal/domain"
)

// HoldingRepositoryImpl implements the HoldingRepository interface
type HoldingRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewHoldingRepository creates a new HoldingRepository
func NewHoldingRepository(db *pgxpool.Pool) domain.HoldingRepository {
	return &HoldingRepositoryImpl{db: db}
}

// GetByUserID retrieves all holdings for a user
func (r *HoldingRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Holding, error) {
	query := `
		SELECT id, user_id, stock_id, quantity, average_price, total_invested,
		       created_at, updated_at
		FROM portfolio_holdings
		WHERE user_id = $1 AND quantity > 0
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings by user ID: %w", err)
	}
	defer rows.Close()

	var holdings []*domain.Holding
	for rows.Next() {
		holding := &domain.Holding{}
		err := rows.Scan(
			&holding.ID,
			&holding.UserID,
			&holding.StockID,
			&holding.Quantity,
			&holding.AveragePrice,
			&holding.TotalInvested,
			&holding.CreatedAt,
			&holding.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, holding)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings: %w", err)
	}

	return holdings, nil
}

// GetByUserAndStock retrieves the holding for a (user, stock) pair.
// Returns (nil, nil) when the user holds no position in the stock.
func (r *HoldingRepositoryImpl) GetByUserAndStock(ctx context.Context, userID, stockID uuid.UUID) (*domain.Holding, error) {
	query := `
		SELECT id, user_id, stock_id, quantity, average_price, total_invested,
		       created_at, updated_at
		FROM portfolio_holdings
		WHERE user_id = $1 AND stock_id = $2
	`

	holding := &domain.Holding{}
	err := r.db.QueryRow(ctx, query, userID, stockID).Scan(
		&holding.ID,
		&holding.UserID,
		&holding.StockID,
		&holding.Quantity,
		&holding.AveragePrice,
		&holding.TotalInvested,
		&holding.CreatedAt,
		&holding.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get holding: %w", err)
	}

	return holding, nil
}
