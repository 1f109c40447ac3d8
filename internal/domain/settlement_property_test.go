package domain

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"pgregory.net/rapid"
)

// Property: a valid buy debits exactly quantity*unitPrice and the
// balance never goes negative.
func TestProperty_BuyDebitsExactValue(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		balance := rapid.Float64Range(0, 1e7).Draw(t, "balance")
		quantity := rapid.Int64Range(1, 10000).Draw(t, "quantity")
		price := rapid.Float64Range(0.01, 50000).Draw(t, "price")

		account := testAccount(balance)
		intent := OrderIntent{
			UserID: account.UserID, StockID: uuid.New(),
			Side: OrderSideBuy, Quantity: quantity, UnitPrice: price,
		}

		res, err := Settle(intent, account, nil, testNow)
		totalValue := float64(quantity) * price
		if totalValue > balance {
			if err != ErrInsufficientBalance {
				t.Fatalf("expected ErrInsufficientBalance, got %v", err)
			}
			return
		}
		if err != nil {
			t.Fatalf("Settle returned error: %v", err)
		}
		if res.Account.Balance < 0 {
			t.Fatalf("balance went negative: %v", res.Account.Balance)
		}
		if math.Abs((balance-res.Account.Balance)-totalValue) > 1e-6 {
			t.Fatalf("debit mismatch: balance %v -> %v, order value %v",
				balance, res.Account.Balance, totalValue)
		}
	})
}

// Property: buying q units then selling the same q units at the same
// price restores the balance and removes the holding.
func TestProperty_BuySellRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		balance := rapid.Float64Range(1000, 1e7).Draw(t, "balance")
		quantity := rapid.Int64Range(1, 1000).Draw(t, "quantity")
		// Quote prices carry two decimal places.
		price := float64(rapid.Int64Range(1, 100000).Draw(t, "priceCents")) / 100

		if float64(quantity)*price > balance {
			t.Skip("order larger than balance")
		}

		account := testAccount(balance)
		stockID := uuid.New()

		bought, err := Settle(OrderIntent{
			UserID: account.UserID, StockID: stockID,
			Side: OrderSideBuy, Quantity: quantity, UnitPrice: price,
		}, account, nil, testNow)
		if err != nil {
			t.Fatalf("buy failed: %v", err)
		}

		sold, err := Settle(OrderIntent{
			UserID: account.UserID, StockID: stockID,
			Side: OrderSideSell, Quantity: quantity, UnitPrice: price,
		}, bought.Account, bought.Holding, testNow)
		if err != nil {
			t.Fatalf("sell failed: %v", err)
		}

		if sold.Holding != nil {
			t.Fatalf("holding should be removed after full round trip")
		}
		if math.Abs(sold.Account.Balance-balance) > 1e-6 {
			t.Fatalf("balance not restored: start %v, end %v", balance, sold.Account.Balance)
		}
	})
}

// Property: selling a fraction of a holding scales total_invested by
// the surviving fraction and leaves the average price unchanged.
func TestProperty_SellScalesCostBasisProportionally(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		held := rapid.Int64Range(2, 10000).Draw(t, "held")
		sell := rapid.Int64Range(1, held-1).Draw(t, "sell")
		avgPrice := float64(rapid.Int64Range(1, 1000000).Draw(t, "avgCents")) / 100
		quote := float64(rapid.Int64Range(1, 1000000).Draw(t, "quoteCents")) / 100

		account := testAccount(0)
		stockID := uuid.New()
		holding := testHolding(account.UserID, stockID, held, avgPrice)

		res, err := Settle(OrderIntent{
			UserID: account.UserID, StockID: stockID,
			Side: OrderSideSell, Quantity: sell, UnitPrice: quote,
		}, account, holding, testNow)
		if err != nil {
			t.Fatalf("sell failed: %v", err)
		}

		remaining := held - sell
		wantInvested := holding.TotalInvested * float64(remaining) / float64(held)
		if math.Abs(res.Holding.TotalInvested-wantInvested) > 1e-6 {
			t.Fatalf("total invested = %v, want %v", res.Holding.TotalInvested, wantInvested)
		}
		if res.Holding.AveragePrice != holding.AveragePrice {
			t.Fatalf("average price changed on sell: %v -> %v",
				holding.AveragePrice, res.Holding.AveragePrice)
		}
		if res.Holding.Quantity != remaining {
			t.Fatalf("quantity = %d, want %d", res.Holding.Quantity, remaining)
		}
	})
}

// Property: every settlement emits exactly one transaction whose value
// and sign convention match the order.
func TestProperty_SettlementEmitsMatchingTransaction(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		quantity := rapid.Int64Range(1, 500).Draw(t, "quantity")
		price := float64(rapid.Int64Range(1, 500000).Draw(t, "priceCents")) / 100
		sideIsBuy := rapid.Bool().Draw(t, "buy")

		account := testAccount(1e9)
		stockID := uuid.New()

		var holding *Holding
		side := OrderSideBuy
		if !sideIsBuy {
			side = OrderSideSell
			holding = testHolding(account.UserID, stockID, quantity+1, price)
		}

		res, err := Settle(OrderIntent{
			UserID: account.UserID, StockID: stockID,
			Side: side, Quantity: quantity, UnitPrice: price,
		}, account, holding, testNow)
		if err != nil {
			t.Fatalf("settle failed: %v", err)
		}

		if res.Transaction.Type != side {
			t.Fatalf("transaction type = %s, want %s", res.Transaction.Type, side)
		}
		if math.Abs(res.Transaction.TotalValue-res.Order.TotalValue) > 1e-9 {
			t.Fatal("transaction value differs from order value")
		}

		delta := res.Account.Balance - account.Balance
		if side == OrderSideBuy && delta > 0 {
			t.Fatalf("buy must decrease cash, delta %v", delta)
		}
		if side == OrderSideSell && delta < 0 {
			t.Fatalf("sell must increase cash, delta %v", delta)
		}
	})
}
