package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderIntent is a buy/sell request priced at the current market quote
// at submission time.
type OrderIntent struct {
	UserID    uuid.UUID
	StockID   uuid.UUID
	Side      string
	Quantity  int64
	UnitPrice float64
}

// SettlementResult is the state transition produced by applying an
// order intent to the account and holding it touches. Holding is nil
// when a sell closed the position entirely; RemovedHoldingID then
// identifies the row to delete.
type SettlementResult struct {
	Account          *VirtualAccount
	Holding          *Holding
	RemovedHoldingID uuid.UUID
	Order            *Order
	Transaction      *Transaction
}

// Settle computes the next account and holding state for an order
// intent. It is a pure function: inputs are never mutated, no I/O
// happens here, and validation failures return before any state is
// produced. holding may be nil when the user has no position in the
// stock.
//
// Arithmetic runs on decimals so the average price is recomputed
// exactly from total_invested / quantity on every buy rather than
// drifting through float rounding.
func Settle(intent OrderIntent, account *VirtualAccount, holding *Holding, now time.Time) (*SettlementResult, error) {
	if intent.Quantity <= 0 {
		return nil, ErrNonPositiveQuantity
	}
	if intent.Side != OrderSideBuy && intent.Side != OrderSideSell {
		return nil, ErrInvalidOrderSide
	}

	price := decimal.NewFromFloat(intent.UnitPrice)
	quantity := decimal.NewFromInt(intent.Quantity)
	totalValue := price.Mul(quantity)
	balance := decimal.NewFromFloat(account.Balance)

	result := &SettlementResult{}

	switch intent.Side {
	case OrderSideBuy:
		if totalValue.GreaterThan(balance) {
			return nil, ErrInsufficientBalance
		}
		newBalance := balance.Sub(totalValue)

		if holding != nil {
			newQuantity := holding.Quantity + intent.Quantity
			newInvested := decimal.NewFromFloat(holding.TotalInvested).Add(totalValue)
			newAverage := newInvested.Div(decimal.NewFromInt(newQuantity))

			updated := *holding
			updated.Quantity = newQuantity
			updated.TotalInvested = newInvested.InexactFloat64()
			updated.AveragePrice = newAverage.InexactFloat64()
			updated.UpdatedAt = now
			result.Holding = &updated
		} else {
			result.Holding = &Holding{
				ID:            uuid.New(),
				UserID:        intent.UserID,
				StockID:       intent.StockID,
				Quantity:      intent.Quantity,
				AveragePrice:  intent.UnitPrice,
				TotalInvested: totalValue.InexactFloat64(),
				CreatedAt:     now,
				UpdatedAt:     now,
			}
		}
		result.Account = nextAccount(account, newBalance, now)

	case OrderSideSell:
		if holding == nil || holding.Quantity < intent.Quantity {
			return nil, ErrInsufficientShares
		}
		newBalance := balance.Add(totalValue)
		remaining := holding.Quantity - intent.Quantity

		if remaining == 0 {
			result.RemovedHoldingID = holding.ID
		} else {
			// Cost basis shrinks by the fraction of shares sold, which
			// leaves the average price of the remaining shares intact.
			invested := decimal.NewFromFloat(holding.TotalInvested)
			newInvested := invested.
				Mul(decimal.NewFromInt(remaining)).
				Div(decimal.NewFromInt(holding.Quantity))

			updated := *holding
			updated.Quantity = remaining
			updated.TotalInvested = newInvested.InexactFloat64()
			updated.UpdatedAt = now
			result.Holding = &updated
		}
		result.Account = nextAccount(account, newBalance, now)
	}

	orderID := uuid.New()
	result.Order = &Order{
		ID:         orderID,
		UserID:     intent.UserID,
		StockID:    intent.StockID,
		Side:       intent.Side,
		Quantity:   intent.Quantity,
		Price:      intent.UnitPrice,
		TotalValue: totalValue.InexactFloat64(),
		Status:     OrderStatusCompleted,
		CreatedAt:  now,
	}
	result.Transaction = &Transaction{
		ID:         uuid.New(),
		UserID:     intent.UserID,
		OrderID:    orderID,
		StockID:    intent.StockID,
		Type:       intent.Side,
		Quantity:   intent.Quantity,
		Price:      intent.UnitPrice,
		TotalValue: totalValue.InexactFloat64(),
		CreatedAt:  now,
	}

	return result, nil
}

func nextAccount(account *VirtualAccount, balance decimal.Decimal, now time.Time) *VirtualAccount {
	updated := *account
	updated.Balance = balance.InexactFloat64()
	updated.UpdatedAt = now
	return &updated
}
