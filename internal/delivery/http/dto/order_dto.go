package dto

// PlaceOrderRequest represents the order placement payload. The unit
// price is taken server-side from the current quote, never from the
// client.
type PlaceOrderRequest struct {
	StockID  string `json:"stock_id"`
	Side     string `json:"order_type"`
	Quantity int64  `json:"quantity"`
}

// PlaceOrderResponse reports the applied settlement
type PlaceOrderResponse struct {
	OrderID    string         `json:"order_id"`
	Side       string         `json:"order_type"`
	Quantity   int64          `json:"quantity"`
	Price      float64        `json:"price"`
	TotalValue float64        `json:"total_value"`
	Status     string         `json:"status"`
	Balance    float64        `json:"balance"`
	Holding    *HoldingOutput `json:"holding,omitempty"`
}

// HoldingOutput represents a holding in API responses
type HoldingOutput struct {
	StockID       string  `json:"stock_id"`
	Quantity      int64   `json:"quantity"`
	AveragePrice  float64 `json:"average_price"`
	TotalInvested float64 `json:"total_invested"`
}
