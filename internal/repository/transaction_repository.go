package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"stocksim/internal/domain"
)

// TransactionRepositoryImpl implements the TransactionRepository interface
type TransactionRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *pgxpool.Pool) domain.TransactionRepository {
	return &TransactionRepositoryImpl{db: db}
}

// GetByUserID retrieves the most recent transactions for a user
func (r *TransactionRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Transaction, error) {
	query := `
		SELECT id, user_id, order_id, stock_id, transaction_type, quantity,
		       price, total_value, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by user ID: %w", err)
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		transaction := &domain.Transaction{}
		err := rows.Scan(
			&transaction.ID,
			&transaction.UserID,
			&transaction.OrderID,
			&transaction.StockID,
			&transaction.Type,
			&transaction.Quantity,
			&transaction.Price,
			&transaction.TotalValue,
			&transaction.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, transaction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}
