package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"stocksim/internal/domain"
	"stocksim/internal/utils"
)

// DividendService lists dividend announcements and simulates payouts
// into the virtual account. The dividend calendar comes from the
// configured DataSource: Live reads the dividends table, Seeded serves
// the built-in fixtures. Payouts are always persisted regardless of
// the calendar source.
type DividendService struct {
	source       DataSource
	dividendRepo domain.DividendRepository
	holdingRepo  domain.HoldingRepository
	accountRepo  domain.AccountRepository
	stockRepo    domain.StockRepository
}

// NewDividendService creates a new DividendService
func NewDividendService(
	source DataSource,
	dividendRepo domain.DividendRepository,
	holdingRepo domain.HoldingRepository,
	accountRepo domain.AccountRepository,
	stockRepo domain.StockRepository,
) *DividendService {
	return &DividendService{
		source:       source,
		dividendRepo: dividendRepo,
		holdingRepo:  holdingRepo,
		accountRepo:  accountRepo,
		stockRepo:    stockRepo,
	}
}

// Upcoming returns the dividend calendar from the configured source.
func (s *DividendService) Upcoming(ctx context.Context) ([]*domain.Dividend, error) {
	if s.source == DataSourceSeeded {
		return seededDividends(utils.MarketTime()), nil
	}
	return s.dividendRepo.GetUpcoming(ctx)
}

// History returns the user's recorded payouts. Payouts are real rows
// under either source, so history always reads the store.
func (s *DividendService) History(ctx context.Context, userID uuid.UUID) ([]*domain.DividendTransaction, error) {
	return s.dividendRepo.GetHistory(ctx, userID)
}

// SimulatePayouts credits every announced dividend the user qualifies
// for (holds shares, not paid before) and returns the new payouts.
// Each payout is atomic: the history insert and the balance credit
// commit together.
func (s *DividendService) SimulatePayouts(ctx context.Context, userID uuid.UUID) ([]*domain.DividendTransaction, error) {
	dividends, err := s.Upcoming(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dividend calendar: %w", err)
	}

	account, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	holdings, err := s.holdingRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings: %w", err)
	}

	stocks, err := s.stockRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stocks: %w", err)
	}
	symbolByStockID := make(map[uuid.UUID]string, len(stocks))
	for _, stock := range stocks {
		symbolByStockID[stock.ID] = stock.Symbol
	}

	sharesBySymbol := make(map[string]int64, len(holdings))
	for _, holding := range holdings {
		if symbol, ok := symbolByStockID[holding.StockID]; ok {
			sharesBySymbol[symbol] = holding.Quantity
		}
	}

	history, err := s.dividendRepo.GetHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load dividend history: %w", err)
	}
	paid := make(map[string]bool, len(history))
	for _, past := range history {
		paid[past.StockSymbol] = true
	}

	balance := account.Balance
	var payouts []*domain.DividendTransaction
	now := utils.MarketTime()

	for _, dividend := range dividends {
		shares := sharesBySymbol[dividend.StockSymbol]
		if shares <= 0 || paid[dividend.StockSymbol] {
			continue
		}

		amount := float64(shares) * dividend.DividendPerShare
		payout := &domain.DividendTransaction{
			ID:               uuid.New(),
			UserID:           userID,
			StockSymbol:      dividend.StockSymbol,
			Shares:           shares,
			DividendPerShare: dividend.DividendPerShare,
			TotalAmount:      amount,
			PaidOn:           now,
		}

		balance += amount
		if err := s.dividendRepo.RecordPayout(ctx, payout, account.ID, balance); err != nil {
			// The failed payout never committed, so the running balance
			// must not include it either.
			balance -= amount
			log.Printf("ERROR: Failed to record dividend payout for %s: %v", dividend.StockSymbol, err)
			continue
		}

		paid[dividend.StockSymbol] = true
		payouts = append(payouts, payout)
	}

	return payouts, nil
}

// seededDividends mirrors the demo calendar: ex/pay dates are offsets
// from today so the list always looks current.
func seededDividends(now time.Time) []*domain.Dividend {
	day := 24 * time.Hour
	entry := func(id int, symbol string, exDays, payDays int, perShare float64) *domain.Dividend {
		return &domain.Dividend{
			ID:               uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("dividend-%d", id))),
			StockSymbol:      symbol,
			ExDate:           now.Add(time.Duration(exDays) * day),
			PayDate:          now.Add(time.Duration(payDays) * day),
			DividendPerShare: perShare,
		}
	}

	return []*domain.Dividend{
		entry(1, "RELIANCE", 2, 5, 10),
		entry(2, "TCS", 5, 12, 25),
		entry(3, "INFY", 10, 20, 18.5),
		entry(4, "ITC", 15, 25, 12),
		entry(5, "HDFCBANK", 20, 30, 15.5),
	}
}
