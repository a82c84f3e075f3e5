package storage

import (
	"fmt"
	"strings"

	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
)

// NewDiagnosticsStore picks the backend named by storage.db_type.
func NewDiagnosticsStore(cfg *models.MConfig, log *logger.Logger) (interfaces.IDiagnosticsStore, error) {
	switch strings.ToLower(cfg.Storage.DBType) {
	case "postgres":
		return NewPostgresDB(cfg, log)
	case "sqlite":
		return NewAsyncSQLiteDB(cfg, log)
	case "memory", "":
		return NewMemoryStore(cfg, log), nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Storage.DBType)
	}
}
