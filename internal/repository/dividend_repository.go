package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"stocksim/internal/domain"
)

// DividendRepositoryImpl implements the DividendRepository interface
type DividendRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewDividendRepository creates a new DividendRepository
func NewDividendRepository(db *pgxpool.Pool) domain.DividendRepository {
	return &DividendRepositoryImpl{db: db}
}

// GetUpcoming retrieves announced dividends ordered by ex-date
func (r *DividendRepositoryImpl) GetUpcoming(ctx context.Context) ([]*domain.Dividend, error) {
	query := `
		SELECT id, stock_symbol, ex_date, pay_date, dividend_per_share
		FROM dividends
		ORDER BY ex_date ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query dividends: %w", err)
	}
	defer rows.Close()

	var dividends []*domain.Dividend
	for rows.Next() {
		dividend := &domain.Dividend{}
		err := rows.Scan(
			&dividend.ID,
			&dividend.StockSymbol,
			&dividend.ExDate,
			&dividend.PayDate,
			&dividend.DividendPerShare,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dividend: %w", err)
		}
		dividends = append(dividends, dividend)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dividends: %w", err)
	}

	return dividends, nil
}

// GetHistory retrieves a user's past payouts, newest first
func (r *DividendRepositoryImpl) GetHistory(ctx context.Context, userID uuid.UUID) ([]*domain.DividendTransaction, error) {
	query := `
		SELECT id, user_id, stock_symbol, shares, dividend_per_share,
		       total_amount, paid_on
		FROM dividend_transactions
		WHERE user_id = $1
		ORDER BY paid_on DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query dividend history: %w", err)
	}
	defer rows.Close()

	var history []*domain.DividendTransaction
	for rows.Next() {
		payout := &domain.DividendTransaction{}
		err := rows.Scan(
			&payout.ID,
			&payout.UserID,
			&payout.StockSymbol,
			&payout.Shares,
			&payout.DividendPerShare,
			&payout.TotalAmount,
			&payout.PaidOn,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dividend payout: %w", err)
		}
		history = append(history, payout)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dividend history: %w", err)
	}

	return history, nil
}

// RecordPayout inserts the payout and credits the account balance in a
// single transaction
func (r *DividendRepositoryImpl) RecordPayout(ctx context.Context, payout *domain.DividendTransaction, accountID uuid.UUID, newBalance float64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin payout transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO dividend_transactions (
			id, user_id, stock_symbol, shares, dividend_per_share,
			total_amount, paid_on
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		payout.ID, payout.UserID, payout.StockSymbol, payout.Shares,
		payout.DividendPerShare, payout.TotalAmount, payout.PaidOn,
	)
	if err != nil {
		return fmt.Errorf("failed to insert dividend payout: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE virtual_accounts
		SET balance = $1, updated_at = $2
		WHERE id = $3
	`, newBalance, payout.PaidOn, accountID)
	if err != nil {
		return fmt.Errorf("failed to credit dividend payout: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit dividend payout: %w", err)
	}

	return nil
}
