package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"stocksim/configs"
	"stocksim/internal/database"
	httpdelivery "stocksim/internal/delivery/http"
	"stocksim/internal/delivery/ws"
	"stocksim/internal/infra"
	"stocksim/internal/repository"
	"stocksim/internal/service"
	"stocksim/internal/usecase"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dataSource, err := service.ParseDataSource(cfg.Market.DataSource)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize context
	ctx := context.Background()

	// Initialize database
	db, err := infra.NewDatabase(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations (creates the schema and seeds the instrument list)
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	stockRepo := repository.NewStockRepository(db)
	holdingRepo := repository.NewHoldingRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	settlementRepo := repository.NewSettlementRepository(db)
	watchlistRepo := repository.NewWatchlistRepository(db)
	dividendRepo := repository.NewDividendRepository(db)

	// Initialize quote stream and engine
	quoteHub := ws.NewHub()
	quoteEngine := service.NewQuoteEngine(stockRepo, quoteHub)

	// Seed quotes at boot so the first page load has fresh prices
	{
		bootCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		if _, err := quoteEngine.RefreshAll(bootCtx); err != nil {
			log.Printf("WARNING: Initial quote refresh failed: %v", err)
		}
		cancel()
	}

	// Initialize services
	portfolioService := service.NewPortfolioService(holdingRepo, stockRepo, accountRepo)
	watchlistService := service.NewWatchlistService(dataSource, watchlistRepo, stockRepo)
	dividendService := service.NewDividendService(dataSource, dividendRepo, holdingRepo, accountRepo, stockRepo)
	orderService := usecase.NewOrderService(stockRepo, accountRepo, holdingRepo, orderRepo, settlementRepo)

	// Start the quote refresh scheduler
	scheduler := infra.NewScheduler(quoteEngine, cfg.Market.QuoteRefreshInterval)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start quote scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Initialize HTTP server
	e := echo.New()
	e.HideBanner = true

	httpdelivery.SetupRoutes(e, &httpdelivery.RouterConfig{
		AuthHandler:        httpdelivery.NewAuthHandler(userRepo, accountRepo, cfg.Market.InitialBalance),
		AccountHandler:     httpdelivery.NewAccountHandler(accountRepo),
		StockHandler:       httpdelivery.NewStockHandler(stockRepo, quoteEngine),
		OrderHandler:       httpdelivery.NewOrderHandler(orderService),
		PortfolioHandler:   httpdelivery.NewPortfolioHandler(portfolioService),
		TransactionHandler: httpdelivery.NewTransactionHandler(transactionRepo),
		WatchlistHandler:   httpdelivery.NewWatchlistHandler(watchlistService),
		DividendHandler:    httpdelivery.NewDividendHandler(dividendService),
		QuoteHub:           quoteHub,
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Stock simulator starting on %s", addr)
	log.Printf("Environment: %s", cfg.Server.Env)
	log.Printf("Data source: %s", dataSource)
	log.Printf("Initial balance: %.2f", cfg.Market.InitialBalance)

	// Run server in goroutine
	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("[OK] Server exited gracefully")
}
