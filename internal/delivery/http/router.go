package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"stocksim/internal/delivery/ws"
	custommiddleware "stocksim/internal/middleware"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	AuthHandler        *AuthHandler
	AccountHandler     *AccountHandler
	StockHandler       *StockHandler
	OrderHandler       *OrderHandler
	PortfolioHandler   *PortfolioHandler
	TransactionHandler *TransactionHandler
	WatchlistHandler   *WatchlistHandler
	DividendHandler    *DividendHandler
	QuoteHub           *ws.Hub
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	// Middleware
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Skip logging for high-frequency polling endpoints to reduce noise
			path := c.Request().URL.Path
			if path == "/health" || path == "/api/stocks" || path == "/ws/quotes" {
				return true
			}
			return false
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return SuccessResponse(c, map[string]interface{}{
			"status":  "healthy",
			"service": "stocksim-api",
		})
	})

	// Live quote stream
	e.GET("/ws/quotes", config.QuoteHub.Handle)

	// API group
	api := e.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/register", config.AuthHandler.Register)
		auth.POST("/login", config.AuthHandler.Login)
		auth.POST("/logout", config.AuthHandler.Logout)
	}

	// Market data routes (public reads)
	stocks := api.Group("/stocks")
	{
		stocks.GET("", config.StockHandler.List)
		stocks.GET("/search", config.StockHandler.Search)
		stocks.GET("/:id", config.StockHandler.Get)
	}

	// Protected routes
	protected := api.Group("", custommiddleware.AuthMiddleware)
	{
		protected.POST("/stocks/refresh", config.StockHandler.Refresh)

		protected.GET("/account", config.AccountHandler.Get)

		protected.POST("/orders", config.OrderHandler.Place)
		protected.GET("/orders", config.OrderHandler.List)

		protected.GET("/portfolio", config.PortfolioHandler.Holdings)
		protected.GET("/portfolio/summary", config.PortfolioHandler.Summary)

		protected.GET("/transactions", config.TransactionHandler.List)

		protected.GET("/watchlist", config.WatchlistHandler.List)
		protected.POST("/watchlist/:stockId", config.WatchlistHandler.Add)
		protected.DELETE("/watchlist/:stockId", config.WatchlistHandler.Remove)

		protected.GET("/dividends", config.DividendHandler.Upcoming)
		protected.GET("/dividends/history", config.DividendHandler.History)
		protected.POST("/dividends/simulate", config.DividendHandler.Simulate)
	}
}
