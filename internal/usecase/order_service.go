package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"stocksim/internal/domain"
)

// OrderService orchestrates order placement: it validates the intent,
// prices it at the current quote, runs the pure settlement computation
// and applies the result atomically. Validation and auth failures
// abort before any write.
type OrderService struct {
	stockRepo      domain.StockRepository
	accountRepo    domain.AccountRepository
	holdingRepo    domain.HoldingRepository
	orderRepo      domain.OrderRepository
	settlementRepo domain.SettlementRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(
	stockRepo domain.StockRepository,
	accountRepo domain.AccountRepository,
	holdingRepo domain.HoldingRepository,
	orderRepo domain.OrderRepository,
	settlementRepo domain.SettlementRepository,
) *OrderService {
	return &OrderService{
		stockRepo:      stockRepo,
		accountRepo:    accountRepo,
		holdingRepo:    holdingRepo,
		orderRepo:      orderRepo,
		settlementRepo: settlementRepo,
	}
}

// PlaceOrder settles a buy/sell order for the user at the stock's
// current quote and returns the applied settlement.
func (s *OrderService) PlaceOrder(ctx context.Context, userID, stockID uuid.UUID, side string, quantity int64) (*domain.SettlementResult, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrNotAuthenticated
	}

	stock, err := s.stockRepo.GetByID(ctx, stockID)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	holding, err := s.holdingRepo.GetByUserAndStock(ctx, userID, stockID)
	if err != nil {
		return nil, err
	}

	intent := domain.OrderIntent{
		UserID:    userID,
		StockID:   stockID,
		Side:      side,
		Quantity:  quantity,
		UnitPrice: stock.CurrentPrice,
	}

	result, err := domain.Settle(intent, account, holding, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.settlementRepo.Apply(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to apply settlement: %w", err)
	}

	log.Printf("[OK] Order settled: %s %d x %s @ %.2f | balance %.2f -> %.2f",
		side, quantity, stock.Symbol, intent.UnitPrice,
		account.Balance, result.Account.Balance)

	return result, nil
}

// History returns the user's most recent orders.
func (s *OrderService) History(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Order, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrNotAuthenticated
	}
	if limit <= 0 {
		limit = 50
	}
	return s.orderRepo.GetByUserID(ctx, userID, limit)
}
