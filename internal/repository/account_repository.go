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

// AccountRepositoryImpl implements the AccountRepository interface
type AccountRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) domain.AccountRepository {
	return &AccountRepositoryImpl{db: db}
}

// Create creates a new virtual account
func (r *AccountRepositoryImpl) Create(ctx context.Context, account *domain.VirtualAccount) error {
	query := `
		INSERT INTO virtual_accounts (
			id, user_id, balance, initial_balance, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	_, err := r.db.Exec(ctx, query,
		account.ID,
		account.UserID,
		account.Balance,
		account.InitialBalance,
		account.CreatedAt,
		account.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create virtual account: %w", err)
	}

	return nil
}

// GetByUserID retrieves the account owned by a user
func (r *AccountRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.VirtualAccount, error) {
	query := `
		SELECT id, user_id, balance, initial_balance, created_at, updated_at
		FROM virtual_accounts
		WHERE user_id = $1
	`

	account := &domain.VirtualAccount{}
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&account.ID,
		&account.UserID,
		&account.Balance,
		&account.InitialBalance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get virtual account: %w", err)
	}

	return account, nil
}
