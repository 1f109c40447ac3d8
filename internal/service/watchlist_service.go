package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stocksim/internal/domain"
)

// seedWatchlistSymbols is the starter list shown to users who have not
// pinned anything yet (Seeded data source only).
var seedWatchlistSymbols = []string{"RELIANCE", "TCS", "HDFCBANK", "TITAN", "GOLD", "CRUDEOIL"}

// WatchlistService manages per-user stock watchlists.
type WatchlistService struct {
	source        DataSource
	watchlistRepo domain.WatchlistRepository
	stockRepo     domain.StockRepository
}

// NewWatchlistService creates a new WatchlistService
func NewWatchlistService(
	source DataSource,
	watchlistRepo domain.WatchlistRepository,
	stockRepo domain.StockRepository,
) *WatchlistService {
	return &WatchlistService{
		source:        source,
		watchlistRepo: watchlistRepo,
		stockRepo:     stockRepo,
	}
}

// List returns the user's watchlist enriched with stock quotes. Under
// the Seeded source an empty watchlist is presented from the starter
// symbols; those entries are display-only and never persisted.
func (s *WatchlistService) List(ctx context.Context, userID uuid.UUID) ([]*domain.WatchlistItem, error) {
	items, err := s.watchlistRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	stocks, err := s.stockRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stocks: %w", err)
	}
	byID := make(map[uuid.UUID]*domain.Stock, len(stocks))
	bySymbol := make(map[string]*domain.Stock, len(stocks))
	for _, stock := range stocks {
		byID[stock.ID] = stock
		bySymbol[stock.Symbol] = stock
	}

	if len(items) == 0 && s.source == DataSourceSeeded {
		now := time.Now()
		for _, symbol := range seedWatchlistSymbols {
			stock, ok := bySymbol[symbol]
			if !ok {
				continue
			}
			items = append(items, &domain.WatchlistItem{
				ID:        uuid.New(),
				UserID:    userID,
				StockID:   stock.ID,
				CreatedAt: now,
			})
		}
	}

	// Drop entries whose stock no longer exists.
	enriched := items[:0]
	for _, item := range items {
		if stock, ok := byID[item.StockID]; ok {
			item.Stock = stock
			enriched = append(enriched, item)
		}
	}

	return enriched, nil
}

// Add pins a stock to the user's watchlist.
func (s *WatchlistService) Add(ctx context.Context, userID, stockID uuid.UUID) (*domain.WatchlistItem, error) {
	if _, err := s.stockRepo.GetByID(ctx, stockID); err != nil {
		return nil, err
	}

	item := &domain.WatchlistItem{
		ID:        uuid.New(),
		UserID:    userID,
		StockID:   stockID,
		CreatedAt: time.Now(),
	}
	if err := s.watchlistRepo.Add(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Remove unpins a stock from the user's watchlist.
func (s *WatchlistService) Remove(ctx context.Context, userID, stockID uuid.UUID) error {
	return s.watchlistRepo.Remove(ctx, userID, stockID)
}
