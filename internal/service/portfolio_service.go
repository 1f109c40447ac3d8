package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"stocksim/internal/domain"
)

// PortfolioOverview is the portfolio summary extended with the cash
// side of the account.
type PortfolioOverview struct {
	domain.PortfolioSummary
	CashBalance         float64 `json:"cash_balance"`
	InitialBalance      float64 `json:"initial_balance"`
	TotalPortfolioValue float64 `json:"total_portfolio_value"`
	OverallPnL          float64 `json:"overall_pnl"`
	OverallPnLPercent   float64 `json:"overall_pnl_percent"`
}

// PortfolioService aggregates holdings against current quotes.
// Read-only: it never mutates account or holding state.
type PortfolioService struct {
	holdingRepo domain.HoldingRepository
	stockRepo   domain.StockRepository
	accountRepo domain.AccountRepository
}

// NewPortfolioService creates a new PortfolioService
func NewPortfolioService(
	holdingRepo domain.HoldingRepository,
	stockRepo domain.StockRepository,
	accountRepo domain.AccountRepository,
) *PortfolioService {
	return &PortfolioService{
		holdingRepo: holdingRepo,
		stockRepo:   stockRepo,
		accountRepo: accountRepo,
	}
}

// Holdings returns the user's positions marked against current quotes.
func (s *PortfolioService) Holdings(ctx context.Context, userID uuid.UUID) ([]domain.ValuedHolding, error) {
	summary, err := s.valuation(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summary.Holdings, nil
}

// Summary returns the full portfolio overview including cash and
// lifetime P&L against the initial balance.
func (s *PortfolioService) Summary(ctx context.Context, userID uuid.UUID) (*PortfolioOverview, error) {
	summary, err := s.valuation(ctx, userID)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	overallPnL, overallPct := domain.OverallPnL(summary, account)
	return &PortfolioOverview{
		PortfolioSummary:    summary,
		CashBalance:         account.Balance,
		InitialBalance:      account.InitialBalance,
		TotalPortfolioValue: summary.TotalValue + account.Balance,
		OverallPnL:          overallPnL,
		OverallPnLPercent:   overallPct,
	}, nil
}

func (s *PortfolioService) valuation(ctx context.Context, userID uuid.UUID) (domain.PortfolioSummary, error) {
	holdings, err := s.holdingRepo.GetByUserID(ctx, userID)
	if err != nil {
		return domain.PortfolioSummary{}, fmt.Errorf("failed to load holdings: %w", err)
	}

	stocks, err := s.stockRepo.GetAll(ctx)
	if err != nil {
		return domain.PortfolioSummary{}, fmt.Errorf("failed to load stocks: %w", err)
	}

	stockMap := make(map[uuid.UUID]*domain.Stock, len(stocks))
	for _, stock := range stocks {
		stockMap[stock.ID] = stock
	}

	return domain.ValueHoldings(holdings, stockMap), nil
}
