package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"stock-dashboard/src/config"
	"stock-dashboard/src/coordinator"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
	"stock-dashboard/src/notifier"
	"stock-dashboard/src/server"
)

// -----------------------------------------------------------------------------

func main() {
	// 1. Parse command line flags
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	flag.Parse()

	// 2. Load config (YAML, then .env and the process environment)
	conf, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// 3. Setup Logger
	appLogger := logger.NewLogger(conf.MConfig, conf.Name)

	// 4. Setup Components
	store, err := setupStorage(conf.MConfig, appLogger)
	if err != nil {
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	networkManager := setupNetwork(conf.MConfig)
	dispatcher := notifier.NewTelegramDispatcher(conf.Telegram, networkManager, store, appLogger.Named("Telegram"))
	dispatcher.Start(ctx)

	cat, err := setupCatalog(conf.MConfig, appLogger)
	if err != nil {
		os.Exit(1)
	}
	engine, err := setupSearch(cat, appLogger)
	if err != nil {
		os.Exit(1)
	}
	market := setupMarket(conf.MConfig, cat.Codes(), appLogger)

	// 5. Coordinator seeded from config
	coord := coordinator.New(cat, dispatcher, coordinator.Options{
		Theme:       models.MTheme(conf.Theme),
		Credentials: conf.InitialCredentials(),
		MarketOpen:  market.AnyMarketOpen,
		Logger:      appLogger.Named("Coordinator"),
	})

	// 6. Server, fed by coordinator snapshots
	srv := server.NewDashboardServer(conf.MConfig, coord, engine, store, market, appLogger.Named("Server"))
	coord.Subscribe(srv.Broadcast)

	// 7. Start Servers and background jobs
	startServers(ctx, srv, store, appLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
	shutdown(srv, dispatcher, cancel, appLogger, engine, store)
}
