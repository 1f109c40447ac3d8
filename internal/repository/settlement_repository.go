package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"stocksim/internal/domain"
)

// SettlementRepositoryImpl implements the SettlementRepository
// interface. The four settlement writes run in one database
// transaction so a failure partway through never leaves the account,
// holding and history rows inconsistent with each other.
type SettlementRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewSettlementRepository creates a new SettlementRepository
func NewSettlementRepository(db *pgxpool.Pool) domain.SettlementRepository {
	return &SettlementRepositoryImpl{db: db}
}

// Apply persists a settlement result atomically
func (r *SettlementRepositoryImpl) Apply(ctx context.Context, result *domain.SettlementResult) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin settlement transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	order := result.Order
	_, err = tx.Exec(ctx, `
		INSERT INTO orders (
			id, user_id, stock_id, order_type, quantity, price, total_value,
			status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		order.ID, order.UserID, order.StockID, order.Side, order.Quantity,
		order.Price, order.TotalValue, order.Status, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	txn := result.Transaction
	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (
			id, user_id, order_id, stock_id, transaction_type, quantity,
			price, total_value, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		txn.ID, txn.UserID, txn.OrderID, txn.StockID, txn.Type, txn.Quantity,
		txn.Price, txn.TotalValue, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	if result.Holding != nil {
		h := result.Holding
		_, err = tx.Exec(ctx, `
			INSERT INTO portfolio_holdings (
				id, user_id, stock_id, quantity, average_price, total_invested,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (user_id, stock_id) DO UPDATE
			SET quantity = EXCLUDED.quantity,
			    average_price = EXCLUDED.average_price,
			    total_invested = EXCLUDED.total_invested,
			    updated_at = EXCLUDED.updated_at
		`,
			h.ID, h.UserID, h.StockID, h.Quantity, h.AveragePrice,
			h.TotalInvested, h.CreatedAt, h.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert holding: %w", err)
		}
	} else {
		// Position fully closed; a zero-quantity holding is never kept.
		_, err = tx.Exec(ctx,
			`DELETE FROM portfolio_holdings WHERE id = $1`,
			result.RemovedHoldingID,
		)
		if err != nil {
			return fmt.Errorf("failed to delete closed holding: %w", err)
		}
	}

	account := result.Account
	_, err = tx.Exec(ctx, `
		UPDATE virtual_accounts
		SET balance = $1, updated_at = $2
		WHERE id = $3
	`, account.Balance, account.UpdatedAt, account.ID)
	if err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit settlement: %w", err)
	}

	return nil
}
