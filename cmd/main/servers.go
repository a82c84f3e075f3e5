package main

import (
	"context"
	"io"
	"time"

	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/notifier"
)

const cleanupInterval = time.Hour

// -----------------------------------------------------------------------------

// startServers launches the HTTP server and the diagnostics retention job.
func startServers(ctx context.Context, srv interfaces.IDataExchanger, store interfaces.IDiagnosticsStore, appLogger *logger.Logger) {
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Critical("Server failed: %v", err)
		}
	}()

	go runCleanup(ctx, store, appLogger)
}

// -----------------------------------------------------------------------------

func runCleanup(ctx context.Context, store interfaces.IDiagnosticsStore, appLogger *logger.Logger) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := store.CleanupOldData(); err != nil {
				appLogger.Warning("Diagnostics cleanup failed: %v", err)
			}
		}
	}
}

// -----------------------------------------------------------------------------

// shutdown stops intake first, then lets queued notifications finish before
// cancelling the root context and releasing resources.
func shutdown(srv interfaces.IDataExchanger, dispatcher *notifier.TelegramDispatcher, cancel context.CancelFunc, appLogger *logger.Logger, closers ...io.Closer) {
	if err := srv.Stop(); err != nil {
		appLogger.Warning("Server shutdown: %v", err)
	}
	dispatcher.Stop()
	cancel()

	for _, c := range closers {
		if err := c.Close(); err != nil {
			appLogger.Warning("Close failed: %v", err)
		}
	}
}
