package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"stocksim/internal/domain"
)

// WatchlistRepositoryImpl implements the WatchlistRepository interface
type WatchlistRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewWatchlistRepository creates a new WatchlistRepository
func NewWatchlistRepository(db *pgxpool.Pool) domain.WatchlistRepository {
	return &WatchlistRepositoryImpl{db: db}
}

// GetByUserID retrieves all watchlist items for a user
func (r *WatchlistRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.WatchlistItem, error) {
	query := `
		SELECT id, user_id, stock_id, created_at
		FROM watchlists
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist: %w", err)
	}
	defer rows.Close()

	var items []*domain.WatchlistItem
	for rows.Next() {
		item := &domain.WatchlistItem{}
		err := rows.Scan(&item.ID, &item.UserID, &item.StockID, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watchlist item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating watchlist: %w", err)
	}

	return items, nil
}

// Add pins a stock; returns ErrAlreadyWatched on the unique pair
func (r *WatchlistRepositoryImpl) Add(ctx context.Context, item *domain.WatchlistItem) error {
	query := `
		INSERT INTO watchlists (id, user_id, stock_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query, item.ID, item.UserID, item.StockID, item.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyWatched
		}
		return fmt.Errorf("failed to add watchlist item: %w", err)
	}

	return nil
}

// Remove unpins a stock by (user, stock) pair
func (r *WatchlistRepositoryImpl) Remove(ctx context.Context, userID, stockID uuid.UUID) error {
	query := `DELETE FROM watchlists WHERE user_id = $1 AND stock_id = $2`

	_, err := r.db.Exec(ctx, query, userID, stockID)
	if err != nil {
		return fmt.Errorf("failed to remove watchlist item: %w", err)
	}

	return nil
}
