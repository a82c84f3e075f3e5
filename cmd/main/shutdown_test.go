package main

import (
	"context"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
	"stock-dashboard/src/notifier"
	"stock-dashboard/src/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExchanger struct{ stopped bool }

func (s *stubExchanger) Broadcast(models.MDashboardState) {}
func (s *stubExchanger) Start() error                     { return nil }
func (s *stubExchanger) Stop() error                      { s.stopped = true; return nil }

// ctxNetwork is slow and remembers whether any request saw a dead context.
type ctxNetwork struct {
	mu       sync.Mutex
	calls    int
	canceled int
}

func (n *ctxNetwork) PostJSON(ctx context.Context, url string, payload interface{}) ([]byte, int, error) {
	time.Sleep(20 * time.Millisecond)
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	if ctx.Err() != nil {
		n.canceled++
		return nil, 0, ctx.Err()
	}
	return []byte(`{"ok":true}`), http.StatusOK, nil
}

func TestShutdownDrainsQueuedNotifications(t *testing.T) {
	log := logger.NewLoggerWithWriter(nil, "Main", io.Discard)
	cfg := &models.MConfig{Storage: models.MStorageConfig{MemoryCapacity: 20, RetentionDays: 7}}
	store := storage.NewMemoryStore(cfg, log)
	require.NoError(t, store.Initialize())

	netMgr := &ctxNetwork{}
	ctx, cancel := context.WithCancel(context.Background())
	dispatcher := notifier.NewTelegramDispatcher(
		models.MTelegramConfig{APIBaseURL: "http://unused", Workers: 1, QueueSize: 8},
		netMgr, store, log,
	)
	dispatcher.Start(ctx)

	creds := models.MTelegramCredentials{BotToken: "123:abc", ChatID: "42"}
	for i := 0; i < 5; i++ {
		dispatcher.Notify(creds, "queued", nil)
	}

	// Read the log before shutdown closes the store.
	var recs []models.MNotificationRecord
	reader := closerFunc(func() error {
		var err error
		recs, err = store.RecentNotificationRecords(10)
		return err
	})

	srv := &stubExchanger{}
	shutdown(srv, dispatcher, cancel, log, reader, store)

	assert.True(t, srv.stopped)
	assert.Error(t, ctx.Err())
	assert.Equal(t, 5, netMgr.calls)
	assert.Zero(t, netMgr.canceled)
	require.Len(t, recs, 5)
	for _, r := range recs {
		assert.Equal(t, models.NotificationSent, r.Status)
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
