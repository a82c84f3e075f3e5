package coordinator

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"stock-dashboard/src/catalog"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
	"stock-dashboard/src/notifier"
	"stock-dashboard/src/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// refusingNetwork fails every request at the transport level.
type refusingNetwork struct{}

func (refusingNetwork) PostJSON(ctx context.Context, url string, payload interface{}) ([]byte, int, error) {
	return nil, 0, errors.New("dial tcp: connection refused")
}

func TestTransportFailureLeavesStateUntouched(t *testing.T) {
	log := logger.NewLoggerWithWriter(nil, "Coordinator", io.Discard)
	cfg := &models.MConfig{Storage: models.MStorageConfig{MemoryCapacity: 10, RetentionDays: 7}}
	store := storage.NewMemoryStore(cfg, log)
	require.NoError(t, store.Initialize())

	dispatcher := notifier.NewTelegramDispatcher(
		models.MTelegramConfig{APIBaseURL: "http://unused", Workers: 1, QueueSize: 4},
		refusingNetwork{}, store, log,
	)
	dispatcher.Start(context.Background())
	t.Cleanup(dispatcher.Stop)

	fixed := time.Date(2026, 3, 2, 1, 0, 0, 0, time.UTC)
	c := New(catalog.Default(), dispatcher, Options{
		Credentials: models.MTelegramCredentials{BotToken: "123:abc", ChatID: "42"},
		Clock:       func() time.Time { return fixed },
		Logger:      log,
	})

	require.NotPanics(t, func() {
		c.CompleteSearch([]models.MSearchResult{
			{Code: "000660", Name: "SK하이닉스"},
			{Code: "999999", Name: "없는종목"},
		}, "반도체")
	})
	before := c.Snapshot()
	assert.Equal(t, "000660", before.SelectedStock.Code)

	require.Eventually(t, func() bool {
		recs, err := store.RecentNotificationRecords(1)
		return err == nil && len(recs) == 1 && recs[0].Status == models.NotificationFailed
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, before, c.Snapshot())
}
