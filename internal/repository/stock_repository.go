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

const stockColumns = `
	id, symbol, name, exchange, COALESCE(sector, ''), COALESCE(description, ''),
	current_price, previous_close, day_open, day_high, day_low, volume,
	last_updated, created_at
`

// StockRepositoryImpl implements the StockRepository interface
type StockRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewStockRepository creates a new StockRepository
func NewStockRepository(db *pgxpool.Pool) domain.StockRepository {
	return &StockRepositoryImpl{db: db}
}

func scanStock(row pgx.Row) (*domain.Stock, error) {
	stock := &domain.Stock{}
	err := row.Scan(
		&stock.ID,
		&stock.Symbol,
		&stock.Name,
		&stock.Exchange,
		&stock.Sector,
		&stock.Description,
		&stock.CurrentPrice,
		&stock.PreviousClose,
		&stock.DayOpen,
		&stock.DayHigh,
		&stock.DayLow,
		&stock.Volume,
		&stock.LastUpdated,
		&stock.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return stock, nil
}

func (r *StockRepositoryImpl) queryStocks(ctx context.Context, query string, args ...any) ([]*domain.Stock, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stocks: %w", err)
	}
	defer rows.Close()

	var stocks []*domain.Stock
	for rows.Next() {
		stock, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock: %w", err)
		}
		stocks = append(stocks, stock)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stocks: %w", err)
	}

	return stocks, nil
}

// GetAll retrieves all stocks ordered by symbol
func (r *StockRepositoryImpl) GetAll(ctx context.Context) ([]*domain.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks ORDER BY symbol`
	return r.queryStocks(ctx, query)
}

// GetByID retrieves a stock by ID
func (r *StockRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE id = $1`

	stock, err := scanStock(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStockNotFound
		}
		return nil, fmt.Errorf("failed to get stock by ID: %w", err)
	}

	return stock, nil
}

// GetBySymbol retrieves a stock by its ticker symbol
func (r *StockRepositoryImpl) GetBySymbol(ctx context.Context, symbol string) (*domain.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE symbol = $1`

	stock, err := scanStock(r.db.QueryRow(ctx, query, symbol))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStockNotFound
		}
		return nil, fmt.Errorf("failed to get stock by symbol: %w", err)
	}

	return stock, nil
}

// Search retrieves stocks whose symbol or name matches the query
func (r *StockRepositoryImpl) Search(ctx context.Context, search string) ([]*domain.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stocks
		WHERE symbol ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%'
		ORDER BY symbol
	`
	return r.queryStocks(ctx, query, search)
}

// UpdateQuote persists the quote fields written by the quote engine
func (r *StockRepositoryImpl) UpdateQuote(ctx context.Context, stock *domain.Stock) error {
	query := `
		UPDATE stocks
		SET current_price = $1,
		    previous_close = $2,
		    day_open = $3,
		    day_high = $4,
		    day_low = $5,
		    volume = $6,
		    last_updated = $7
		WHERE id = $8
	`

	_, err := r.db.Exec(ctx, query,
		stock.CurrentPrice,
		stock.PreviousClose,
		stock.DayOpen,
		stock.DayHigh,
		stock.DayLow,
		stock.Volume,
		stock.LastUpdated,
		stock.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update quote for %s: %w", stock.Symbol, err)
	}

	return nil
}
