package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"stocksim/internal/domain"
)

type fakeAccountRepo struct {
	account *domain.VirtualAccount
}

func (r *fakeAccountRepo) Create(ctx context.Context, account *domain.VirtualAccount) error {
	r.account = account
	return nil
}

func (r *fakeAccountRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.VirtualAccount, error) {
	if r.account == nil || r.account.UserID != userID {
		return nil, domain.ErrAccountNotFound
	}
	return r.account, nil
}

type fakeHoldingRepo struct {
	holdings []*domain.Holding
}

func (r *fakeHoldingRepo) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Holding, error) {
	var out []*domain.Holding
	for _, h := range r.holdings {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *fakeHoldingRepo) GetByUserAndStock(ctx context.Context, userID, stockID uuid.UUID) (*domain.Holding, error) {
	for _, h := range r.holdings {
		if h.UserID == userID && h.StockID == stockID {
			return h, nil
		}
	}
	return nil, nil
}

type fakeDividendRepo struct {
	upcoming []*domain.Dividend
	history  []*domain.DividendTransaction
	balances []float64
}

func (r *fakeDividendRepo) GetUpcoming(ctx context.Context) ([]*domain.Dividend, error) {
	return r.upcoming, nil
}

func (r *fakeDividendRepo) GetHistory(ctx context.Context, userID uuid.UUID) ([]*domain.DividendTransaction, error) {
	var out []*domain.DividendTransaction
	for _, tx := range r.history {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *fakeDividendRepo) RecordPayout(ctx context.Context, payout *domain.DividendTransaction, accountID uuid.UUID, newBalance float64) error {
	r.history = append(r.history, payout)
	r.balances = append(r.balances, newBalance)
	return nil
}

func dividendFixture(t *testing.T) (*DividendService, *fakeDividendRepo, uuid.UUID) {
	t.Helper()

	userID := uuid.New()
	reliance := &domain.Stock{ID: uuid.New(), Symbol: "RELIANCE"}
	tcs := &domain.Stock{ID: uuid.New(), Symbol: "TCS"}

	stockRepo := &fakeStockRepo{stocks: []*domain.Stock{reliance, tcs}}
	holdingRepo := &fakeHoldingRepo{holdings: []*domain.Holding{
		{ID: uuid.New(), UserID: userID, StockID: reliance.ID, Quantity: 10},
		{ID: uuid.New(), UserID: userID, StockID: tcs.ID, Quantity: 4},
	}}
	accountRepo := &fakeAccountRepo{account: &domain.VirtualAccount{
		ID:      uuid.New(),
		UserID:  userID,
		Balance: 50000,
	}}
	dividendRepo := &fakeDividendRepo{}

	svc := NewDividendService(DataSourceSeeded, dividendRepo, holdingRepo, accountRepo, stockRepo)
	return svc, dividendRepo, userID
}

func TestUpcomingSeededCalendar(t *testing.T) {
	svc, _, _ := dividendFixture(t)

	dividends, err := svc.Upcoming(context.Background())
	if err != nil {
		t.Fatalf("Upcoming: %v", err)
	}
	if len(dividends) != 5 {
		t.Fatalf("got %d dividends, want 5", len(dividends))
	}
	if dividends[0].StockSymbol != "RELIANCE" || dividends[0].DividendPerShare != 10 {
		t.Errorf("first entry = %+v", dividends[0])
	}
	for _, d := range dividends {
		if !d.PayDate.After(d.ExDate) {
			t.Errorf("%s: pay date %v not after ex date %v", d.StockSymbol, d.PayDate, d.ExDate)
		}
	}
}

func TestUpcomingLiveReadsStore(t *testing.T) {
	dividendRepo := &fakeDividendRepo{upcoming: []*domain.Dividend{
		{ID: uuid.New(), StockSymbol: "ITC", DividendPerShare: 12, ExDate: time.Now(), PayDate: time.Now().Add(24 * time.Hour)},
	}}
	svc := NewDividendService(DataSourceLive, dividendRepo, &fakeHoldingRepo{}, &fakeAccountRepo{}, &fakeStockRepo{})

	dividends, err := svc.Upcoming(context.Background())
	if err != nil {
		t.Fatalf("Upcoming: %v", err)
	}
	if len(dividends) != 1 || dividends[0].StockSymbol != "ITC" {
		t.Fatalf("got %v, want the stored ITC row", dividends)
	}
}

func TestSimulatePayoutsCreditsHeldSymbols(t *testing.T) {
	svc, dividendRepo, userID := dividendFixture(t)

	payouts, err := svc.SimulatePayouts(context.Background(), userID)
	if err != nil {
		t.Fatalf("SimulatePayouts: %v", err)
	}

	// Holds RELIANCE (10 × 10.0) and TCS (4 × 25.0); no INFY/ITC/HDFCBANK.
	if len(payouts) != 2 {
		t.Fatalf("got %d payouts, want 2", len(payouts))
	}
	if payouts[0].StockSymbol != "RELIANCE" || payouts[0].TotalAmount != 100 {
		t.Errorf("first payout = %+v", payouts[0])
	}
	if payouts[1].StockSymbol != "TCS" || payouts[1].TotalAmount != 100 {
		t.Errorf("second payout = %+v", payouts[1])
	}

	// Running balance must accumulate across payouts in one pass.
	want := []float64{50100, 50200}
	if len(dividendRepo.balances) != len(want) {
		t.Fatalf("recorded balances = %v, want %v", dividendRepo.balances, want)
	}
	for i := range want {
		if math.Abs(dividendRepo.balances[i]-want[i]) > 1e-9 {
			t.Errorf("balance[%d] = %.2f, want %.2f", i, dividendRepo.balances[i], want[i])
		}
	}
}

func TestSimulatePayoutsSkipsAlreadyPaid(t *testing.T) {
	svc, dividendRepo, userID := dividendFixture(t)

	dividendRepo.history = append(dividendRepo.history, &domain.DividendTransaction{
		ID:          uuid.New(),
		UserID:      userID,
		StockSymbol: "RELIANCE",
		TotalAmount: 100,
		PaidOn:      time.Now().Add(-48 * time.Hour),
	})

	payouts, err := svc.SimulatePayouts(context.Background(), userID)
	if err != nil {
		t.Fatalf("SimulatePayouts: %v", err)
	}
	if len(payouts) != 1 || payouts[0].StockSymbol != "TCS" {
		t.Fatalf("payouts = %v, want only TCS", payouts)
	}

	// Second run pays nothing at all.
	again, err := svc.SimulatePayouts(context.Background(), userID)
	if err != nil {
		t.Fatalf("SimulatePayouts (second run): %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("second run produced %d payouts, want 0", len(again))
	}
}
