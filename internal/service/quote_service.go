package service

import (
	"context"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"stocksim/internal/domain"
	"stocksim/internal/utils"
)

// baseReferencePrices anchors the synthetic feed. Each refresh perturbs
// the anchor by a bounded percentage instead of random-walking the last
// tick, so simulated prices stay near realistic levels indefinitely.
var baseReferencePrices = map[string]float64{
	"RELIANCE":   2456.75,
	"TCS":        3892.50,
	"HDFCBANK":   1654.30,
	"INFY":       1523.45,
	"ICICIBANK":  1087.60,
	"HINDUNILVR": 2534.80,
	"SBIN":       628.45,
	"BHARTIARTL": 1456.90,
	"ITC":        445.25,
	"KOTAKBANK":  1823.40,
	"LT":         3567.80,
	"AXISBANK":   1134.55,
	"ASIANPAINT": 2876.30,
	"MARUTI":     11234.50,
	"SUNPHARMA":  1678.90,
	"TITAN":      3234.65,
	"BAJFINANCE": 6789.20,
	"WIPRO":      467.85,
	"HCLTECH":    1534.60,
	"TATAMOTORS": 845.30,
	// MCX commodities
	"GOLD":       62500.00,
	"SILVER":     74500.00,
	"CRUDEOIL":   6100.00,
	"NATURALGAS": 240.50,
	"COPPER":     720.00,
	"ZINC":       225.00,
	"ALUMINIUM":  205.00,
	"LEAD":       185.00,
	"NICKEL":     1450.00,
	"MENTHAOIL":  920.00,
	"COTTON":     56500.00,
	"RUBBER":     18000.00,
	"CPO":        850.00,
}

// TickPublisher receives each batch of refreshed quotes. The websocket
// hub implements it; a nil publisher disables streaming.
type TickPublisher interface {
	PublishTicks(stocks []*domain.Stock)
}

// QuoteEngine simulates a market-data feed. It is explicitly NOT a
// pricing engine: no order book, no liquidity model, just bounded
// random ticks around reference prices for display purposes.
type QuoteEngine struct {
	stockRepo domain.StockRepository
	publisher TickPublisher

	mu  sync.Mutex
	rng *rand.Rand
}

// NewQuoteEngine creates a new QuoteEngine
func NewQuoteEngine(stockRepo domain.StockRepository, publisher TickPublisher) *QuoteEngine {
	return &QuoteEngine{
		stockRepo: stockRepo,
		publisher: publisher,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// RefreshAll ticks every stock, persists the new quotes and publishes
// them to stream subscribers. Runs on the 60s scheduler and on manual
// refresh.
func (e *QuoteEngine) RefreshAll(ctx context.Context) ([]*domain.Stock, error) {
	stocks, err := e.stockRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	now := utils.MarketTime()
	updated := 0
	for _, stock := range stocks {
		e.Tick(stock, now)
		if err := e.stockRepo.UpdateQuote(ctx, stock); err != nil {
			log.Printf("WARNING: Failed to persist quote for %s: %v", stock.Symbol, err)
			continue
		}
		updated++
	}

	if e.publisher != nil {
		e.publisher.PublishTicks(stocks)
	}

	log.Printf("[OK] Refreshed quotes for %d/%d stocks", updated, len(stocks))
	return stocks, nil
}

// Tick perturbs a stock's quote in place: the reference base price
// moves by a bounded ±1% and the derived day fields are filled in when
// the row carries none.
func (e *QuoteEngine) Tick(stock *domain.Stock, now time.Time) {
	base := baseReferencePrices[stock.Symbol]
	if base == 0 {
		base = stock.CurrentPrice
	}
	if base == 0 {
		base = 1000
	}

	e.mu.Lock()
	variation := (e.rng.Float64() - 0.5) * 0.02
	volume := 1000000 + e.rng.Int63n(10000000)
	e.mu.Unlock()

	price := round2(base * (1 + variation))

	if stock.PreviousClose == 0 {
		stock.PreviousClose = round2(base * 0.995)
	}
	if stock.DayOpen == 0 {
		stock.DayOpen = base
	}
	if stock.DayHigh == 0 {
		stock.DayHigh = round2(price * 1.015)
	}
	if stock.DayLow == 0 {
		stock.DayLow = round2(price * 0.985)
	}
	if stock.Volume == 0 {
		stock.Volume = volume
	}

	stock.CurrentPrice = price
	stock.LastUpdated = now
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
