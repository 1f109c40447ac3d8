package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
)

var testNow = time.Date(2026, 8, 14, 10, 30, 0, 0, time.UTC)

func testAccount(balance float64) *VirtualAccount {
	return &VirtualAccount{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		Balance:        balance,
		InitialBalance: 1000000,
	}
}

func testHolding(userID, stockID uuid.UUID, quantity int64, avgPrice float64) *Holding {
	return &Holding{
		ID:            uuid.New(),
		UserID:        userID,
		StockID:       stockID,
		Quantity:      quantity,
		AveragePrice:  avgPrice,
		TotalInvested: float64(quantity) * avgPrice,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSettle_BuyNewHolding(t *testing.T) {
	account := testAccount(100000)
	stockID := uuid.New()

	res, err := Settle(OrderIntent{
		UserID:    account.UserID,
		StockID:   stockID,
		Side:      OrderSideBuy,
		Quantity:  10,
		UnitPrice: 100,
	}, account, nil, testNow)
	if err != nil {
		t.Fatalf("Settle returned error: %v", err)
	}

	if !almostEqual(res.Account.Balance, 99000) {
		t.Errorf("balance = %v, want 99000", res.Account.Balance)
	}
	if res.Holding == nil {
		t.Fatal("expected a new holding")
	}
	if res.Holding.Quantity != 10 {
		t.Errorf("quantity = %d, want 10", res.Holding.Quantity)
	}
	if !almostEqual(res.Holding.AveragePrice, 100) {
		t.Errorf("average price = %v, want 100", res.Holding.AveragePrice)
	}
	if !almostEqual(res.Holding.TotalInvested, 1000) {
		t.Errorf("total invested = %v, want 1000", res.Holding.TotalInvested)
	}
	if res.Order.Status != OrderStatusCompleted {
		t.Errorf("order status = %s, want COMPLETED", res.Order.Status)
	}
	if res.Transaction.OrderID != res.Order.ID {
		t.Error("transaction not linked to order")
	}
	if !almostEqual(res.Transaction.TotalValue, 1000) {
		t.Errorf("transaction value = %v, want 1000", res.Transaction.TotalValue)
	}
}

func TestSettle_SellPartial(t *testing.T) {
	// Continues the buy above: sell 4 of 10 units at a higher price.
	account := testAccount(99000)
	stockID := uuid.New()
	holding := testHolding(account.UserID, stockID, 10, 100)

	res, err := Settle(OrderIntent{
		UserID:    account.UserID,
		StockID:   stockID,
		Side:      OrderSideSell,
		Quantity:  4,
		UnitPrice: 120,
	}, account, holding, testNow)
	if err != nil {
		t.Fatalf("Settle returned error: %v", err)
	}

	if !almostEqual(res.Account.Balance, 99480) {
		t.Errorf("balance = %v, want 99480", res.Account.Balance)
	}
	if res.Holding == nil {
		t.Fatal("expected remaining holding")
	}
	if res.Holding.Quantity != 6 {
		t.Errorf("quantity = %d, want 6", res.Holding.Quantity)
	}
	if !almostEqual(res.Holding.TotalInvested, 600) {
		t.Errorf("total invested = %v, want 600", res.Holding.TotalInvested)
	}
	// Average price of the remaining shares must not change on a sell.
	if !almostEqual(res.Holding.AveragePrice, 100) {
		t.Errorf("average price = %v, want 100", res.Holding.AveragePrice)
	}
}

func TestSettle_SellAllRemovesHolding(t *testing.T) {
	account := testAccount(0)
	stockID := uuid.New()
	holding := testHolding(account.UserID, stockID, 5, 200)

	res, err := Settle(OrderIntent{
		UserID:    account.UserID,
		StockID:   stockID,
		Side:      OrderSideSell,
		Quantity:  5,
		UnitPrice: 210,
	}, account, holding, testNow)
	if err != nil {
		t.Fatalf("Settle returned error: %v", err)
	}

	if res.Holding != nil {
		t.Errorf("holding should be removed, got quantity %d", res.Holding.Quantity)
	}
	if res.RemovedHoldingID != holding.ID {
		t.Error("RemovedHoldingID does not reference the closed holding")
	}
	if !almostEqual(res.Account.Balance, 1050) {
		t.Errorf("balance = %v, want 1050", res.Account.Balance)
	}
}

func TestSettle_BuyAveragesTwoLots(t *testing.T) {
	account := testAccount(1000000)
	stockID := uuid.New()

	first, err := Settle(OrderIntent{
		UserID: account.UserID, StockID: stockID,
		Side: OrderSideBuy, Quantity: 10, UnitPrice: 100,
	}, account, nil, testNow)
	if err != nil {
		t.Fatalf("first buy: %v", err)
	}

	second, err := Settle(OrderIntent{
		UserID: account.UserID, StockID: stockID,
		Side: OrderSideBuy, Quantity: 30, UnitPrice: 140,
	}, first.Account, first.Holding, testNow)
	if err != nil {
		t.Fatalf("second buy: %v", err)
	}

	// (10*100 + 30*140) / 40 = 130
	if !almostEqual(second.Holding.AveragePrice, 130) {
		t.Errorf("average price = %v, want 130", second.Holding.AveragePrice)
	}
	if second.Holding.Quantity != 40 {
		t.Errorf("quantity = %d, want 40", second.Holding.Quantity)
	}
	if !almostEqual(second.Holding.TotalInvested, 5200) {
		t.Errorf("total invested = %v, want 5200", second.Holding.TotalInvested)
	}
}

func TestSettle_ValidationFailures(t *testing.T) {
	userID := uuid.New()
	stockID := uuid.New()

	tests := []struct {
		name    string
		intent  OrderIntent
		balance float64
		holding *Holding
		wantErr error
	}{
		{
			name:    "buy exceeding balance",
			intent:  OrderIntent{UserID: userID, StockID: stockID, Side: OrderSideBuy, Quantity: 100, UnitPrice: 50},
			balance: 4999,
			wantErr: ErrInsufficientBalance,
		},
		{
			name:    "sell without holding",
			intent:  OrderIntent{UserID: userID, StockID: stockID, Side: OrderSideSell, Quantity: 1, UnitPrice: 50},
			balance: 1000,
			wantErr: ErrInsufficientShares,
		},
		{
			name:    "sell more than held",
			intent:  OrderIntent{UserID: userID, StockID: stockID, Side: OrderSideSell, Quantity: 11, UnitPrice: 50},
			balance: 1000,
			holding: testHolding(userID, stockID, 10, 50),
			wantErr: ErrInsufficientShares,
		},
		{
			name:    "zero quantity",
			intent:  OrderIntent{UserID: userID, StockID: stockID, Side: OrderSideBuy, Quantity: 0, UnitPrice: 50},
			balance: 1000,
			wantErr: ErrNonPositiveQuantity,
		},
		{
			name:    "negative quantity",
			intent:  OrderIntent{UserID: userID, StockID: stockID, Side: OrderSideSell, Quantity: -3, UnitPrice: 50},
			balance: 1000,
			wantErr: ErrNonPositiveQuantity,
		},
		{
			name:    "unknown side",
			intent:  OrderIntent{UserID: userID, StockID: stockID, Side: "HOLD", Quantity: 1, UnitPrice: 50},
			balance: 1000,
			wantErr: ErrInvalidOrderSide,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := testAccount(tt.balance)
			account.UserID = userID

			var before *Holding
			if tt.holding != nil {
				copied := *tt.holding
				before = &copied
			}

			res, err := Settle(tt.intent, account, tt.holding, testNow)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if res != nil {
				t.Error("result must be nil on validation failure")
			}
			// Inputs stay untouched: the caller persists nothing.
			if account.Balance != tt.balance {
				t.Errorf("account balance mutated: %v", account.Balance)
			}
			if before != nil && *tt.holding != *before {
				t.Error("holding mutated on validation failure")
			}
			if !IsValidationError(err) {
				t.Errorf("%v should classify as a validation error", err)
			}
		})
	}
}

func TestSettle_DoesNotMutateInputsOnSuccess(t *testing.T) {
	account := testAccount(10000)
	stockID := uuid.New()
	holding := testHolding(account.UserID, stockID, 8, 25)

	_, err := Settle(OrderIntent{
		UserID: account.UserID, StockID: stockID,
		Side: OrderSideBuy, Quantity: 2, UnitPrice: 30,
	}, account, holding, testNow)
	if err != nil {
		t.Fatalf("Settle returned error: %v", err)
	}

	if account.Balance != 10000 {
		t.Errorf("input account mutated: %v", account.Balance)
	}
	if holding.Quantity != 8 || holding.TotalInvested != 200 {
		t.Errorf("input holding mutated: %+v", holding)
	}
}
