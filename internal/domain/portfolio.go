package domain

import "github.com/google/uuid"

// ValuedHolding is a holding enriched with its stock and marked against
// the current quote.
type ValuedHolding struct {
	Holding
	Stock        *Stock  `json:"stock,omitempty"`
	CurrentValue float64 `json:"current_value"`
	PnL          float64 `json:"pnl"`
	PnLPercent   float64 `json:"pnl_percent"`
	M2M          float64 `json:"m2m"`
}

// PortfolioSummary aggregates a user's open positions.
type PortfolioSummary struct {
	TotalValue      float64         `json:"total_value"`
	TotalInvested   float64         `json:"total_invested"`
	TotalPnL        float64         `json:"total_pnl"`
	TotalPnLPercent float64         `json:"total_pnl_percent"`
	TotalM2M        float64         `json:"total_m2m"`
	Holdings        []ValuedHolding `json:"holdings"`
}

// ValueHoldings marks each holding against the current quote and sums
// the portfolio. When a stock has no quote the holding is valued at its
// average price, which pins its unrealized P&L at zero-ish (the exact
// difference against total_invested).
func ValueHoldings(holdings []*Holding, stocks map[uuid.UUID]*Stock) PortfolioSummary {
	summary := PortfolioSummary{Holdings: make([]ValuedHolding, 0, len(holdings))}

	for _, h := range holdings {
		stock := stocks[h.StockID]

		currentPrice := h.AveragePrice
		m2m := 0.0
		if stock != nil && stock.CurrentPrice > 0 {
			currentPrice = stock.CurrentPrice
			// Mark-to-market: today's price move times quantity.
			m2m = (stock.CurrentPrice - stock.PreviousClose) * float64(h.Quantity)
		}

		currentValue := float64(h.Quantity) * currentPrice
		pnl := currentValue - h.TotalInvested
		pnlPercent := 0.0
		if h.TotalInvested > 0 {
			pnlPercent = pnl / h.TotalInvested * 100
		}

		summary.Holdings = append(summary.Holdings, ValuedHolding{
			Holding:      *h,
			Stock:        stock,
			CurrentValue: currentValue,
			PnL:          pnl,
			PnLPercent:   pnlPercent,
			M2M:          m2m,
		})

		summary.TotalValue += currentValue
		summary.TotalInvested += h.TotalInvested
		summary.TotalPnL += pnl
		summary.TotalM2M += m2m
	}

	if summary.TotalInvested > 0 {
		summary.TotalPnLPercent = summary.TotalPnL / summary.TotalInvested * 100
	}

	return summary
}

// OverallPnL returns the lifetime profit and loss of an account:
// (holdings value + cash) measured against the initial balance.
func OverallPnL(summary PortfolioSummary, account *VirtualAccount) (pnl, pnlPercent float64) {
	totalPortfolioValue := summary.TotalValue + account.Balance
	pnl = totalPortfolioValue - account.InitialBalance
	if account.InitialBalance > 0 {
		pnlPercent = pnl / account.InitialBalance * 100
	}
	return pnl, pnlPercent
}
