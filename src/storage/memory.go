package storage

import (
	"time"

	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
	"stock-dashboard/src/utils"
)

// -----------------------------------------------------------------------------

// MemoryStore keeps diagnostics in a bounded ring buffer. Nothing survives a restart.
type MemoryStore struct {
	Config *models.MConfig
	Logger *logger.Logger
	buffer *utils.RingBuffer
	now    func() time.Time
}

// -----------------------------------------------------------------------------

func NewMemoryStore(cfg *models.MConfig, log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		Config: cfg,
		Logger: log,
		now:    time.Now,
	}
}

// -----------------------------------------------------------------------------

func (m *MemoryStore) Initialize() error {
	m.buffer = utils.NewRingBuffer(m.Config.Storage.MemoryCapacity)
	return nil
}

// -----------------------------------------------------------------------------

func (m *MemoryStore) SaveNotificationRecord(record models.MNotificationRecord) error {
	m.buffer.Append(record)
	return nil
}

// -----------------------------------------------------------------------------

func (m *MemoryStore) RecentNotificationRecords(limit int) ([]models.MNotificationRecord, error) {
	latest := m.buffer.GetLatest(limit)

	// Newest first
	for i, j := 0, len(latest)-1; i < j; i, j = i+1, j-1 {
		latest[i], latest[j] = latest[j], latest[i]
	}
	return latest, nil
}

// -----------------------------------------------------------------------------

func (m *MemoryStore) CleanupOldData() error {
	cutoff := m.now().UTC().AddDate(0, 0, -m.Config.Storage.RetentionDays)
	removed := m.buffer.Retain(func(r models.MNotificationRecord) bool {
		return !r.CreatedAt.Before(cutoff)
	})
	if removed > 0 {
		m.Logger.Info("Cleanup removed %d notification records", removed)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (m *MemoryStore) Close() error {
	if m.buffer != nil {
		m.buffer.Clear()
	}
	return nil
}
