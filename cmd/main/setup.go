package main

import (
	"stock-dashboard/src/catalog"
	"stock-dashboard/src/helpers"
	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
	"stock-dashboard/src/network"
	"stock-dashboard/src/search"
	"stock-dashboard/src/storage"
	"stock-dashboard/src/utils"
)

// -----------------------------------------------------------------------------

// setupStorage opens the diagnostics store named in config, retrying transient
// connection failures.
func setupStorage(config *models.MConfig, appLogger *logger.Logger) (interfaces.IDiagnosticsStore, error) {
	storeLogger := appLogger.Named("Storage")
	errs := helpers.NewErrorHandler(storeLogger)

	var store interfaces.IDiagnosticsStore
	err := errs.ExecuteWithRetry("storage initialize", func() error {
		s, err := storage.NewDiagnosticsStore(config, storeLogger)
		if err != nil {
			return err
		}
		if err := s.Initialize(); err != nil {
			_ = s.Close()
			return err
		}
		store = s
		return nil
	}, 3)
	if err != nil {
		appLogger.Error("Failed to init storage: %v", err)
		return nil, err
	}

	appLogger.Info("Diagnostics storage ready (%s)", config.Storage.DBType)
	return store, nil
}

// -----------------------------------------------------------------------------

// setupNetwork initializes the network manager
func setupNetwork(config *models.MConfig) interfaces.INetworkManager {
	networkLogger := logger.NewLogger(config, "NetworkManager")
	return network.NewAsyncNetworkManager(config, networkLogger)
}

// -----------------------------------------------------------------------------

// setupCatalog loads the configured catalog file, or the built-in mock data.
func setupCatalog(config *models.MConfig, appLogger *logger.Logger) (*catalog.Catalog, error) {
	if config.Catalog.Path == "" {
		cat := catalog.Default()
		appLogger.Info("Using built-in catalog with %d stocks", cat.Len())
		return cat, nil
	}

	cat, err := catalog.LoadFile(config.Catalog.Path)
	if err != nil {
		appLogger.Error("Failed to load catalog: %v", err)
		return nil, err
	}
	appLogger.Info("Loaded %d stocks from %s", cat.Len(), config.Catalog.Path)
	return cat, nil
}

// -----------------------------------------------------------------------------

func setupSearch(cat *catalog.Catalog, appLogger *logger.Logger) (*search.BleveEngine, error) {
	engine, err := search.NewBleveEngine(cat, appLogger.Named("Search"))
	if err != nil {
		appLogger.Error("Failed to build search index: %v", err)
		return nil, err
	}
	return engine, nil
}

// -----------------------------------------------------------------------------

func setupMarket(config *models.MConfig, codes []string, appLogger *logger.Logger) *utils.MarketScheduler {
	market := utils.NewMarketScheduler(codes, appLogger.Named("MarketScheduler"))
	market.TrackMIC(config.Market.MIC)
	return market
}
