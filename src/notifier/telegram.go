package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"stock-dashboard/src/helpers"
	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"

	"github.com/google/uuid"
)

const parseModeMarkdown = "Markdown"

// -----------------------------------------------------------------------------
// TelegramDispatcher
// -----------------------------------------------------------------------------

// TelegramDispatcher sends search summaries to the Telegram Bot API on a pool
// of workers. Notify only enqueues; every job gets exactly one HTTP attempt and
// its outcome is recorded locally.
type TelegramDispatcher struct {
	Config  models.MTelegramConfig
	Network interfaces.INetworkManager
	Store   interfaces.IDiagnosticsStore
	Logger  *logger.Logger
	Errors  *helpers.ErrorHandler

	jobs chan models.MNotificationJob
	wg   sync.WaitGroup

	mu      sync.RWMutex
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	stopped bool
}

// -----------------------------------------------------------------------------

func NewTelegramDispatcher(cfg models.MTelegramConfig, netMgr interfaces.INetworkManager, store interfaces.IDiagnosticsStore, log *logger.Logger) *TelegramDispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if log == nil {
		log = logger.NewLogger(nil, "Telegram")
	}

	return &TelegramDispatcher{
		Config:  cfg,
		Network: netMgr,
		Store:   store,
		Logger:  log,
		Errors:  helpers.NewErrorHandler(log),
		jobs:    make(chan models.MNotificationJob, cfg.QueueSize),
	}
}

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

// Start launches the workers. ctx bounds in-flight requests.
func (d *TelegramDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.stopped {
		return
	}
	d.started = true
	d.ctx, d.cancel = context.WithCancel(ctx)

	for i := 0; i < d.Config.Workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
	d.Logger.Info("Telegram dispatcher started with %d workers", d.Config.Workers)
}

// -----------------------------------------------------------------------------

// Stop closes the queue and waits for queued and overflow jobs to finish.
func (d *TelegramDispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
	if d.cancel != nil {
		d.cancel()
	}
	d.Logger.Info("Telegram dispatcher stopped")
}

// -----------------------------------------------------------------------------
// INotifier
// -----------------------------------------------------------------------------

// Notify queues a summary of stocks under title and returns without waiting.
// While the dispatcher runs no job is lost; failures stay local.
func (d *TelegramDispatcher) Notify(creds models.MTelegramCredentials, title string, stocks []models.MSearchResult) {
	job := models.MNotificationJob{
		ID:          uuid.NewString(),
		Title:       title,
		Stocks:      append([]models.MSearchResult(nil), stocks...),
		Credentials: creds,
		QueuedAt:    time.Now().UTC(),
	}

	if !creds.Complete() {
		d.Logger.Info("Telegram settings are not configured. Skipping notification.")
		d.record(job, models.NotificationSkipped, "credentials not configured")
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		d.record(job, models.NotificationDropped, "dispatcher stopped")
		return
	}

	select {
	case d.jobs <- job:
		d.Logger.Debug("Queued notification %s for %q", job.ID, title)
	default:
		// Overflow gets its own goroutine; Stop still waits for it.
		d.Logger.Debug("Notification queue full, sending %q out of band", title)
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.send(job)
		}()
	}
}

// -----------------------------------------------------------------------------
// Workers
// -----------------------------------------------------------------------------

func (d *TelegramDispatcher) worker(id int) {
	defer d.wg.Done()
	for job := range d.jobs {
		d.send(job)
	}
	d.Logger.Debug("Worker %d exiting", id)
}

// -----------------------------------------------------------------------------

func (d *TelegramDispatcher) send(job models.MNotificationJob) {
	d.mu.RLock()
	ctx := d.ctx
	d.mu.RUnlock()
	if ctx == nil {
		ctx = context.Background()
	}

	payload := models.MTelegramSendMessage{
		ChatID:    job.Credentials.ChatID,
		Text:      FormatSearchMessage(job.Title, job.Stocks),
		ParseMode: parseModeMarkdown,
	}

	body, _, err := d.Network.PostJSON(ctx, d.endpoint(job.Credentials.BotToken), payload)
	if err != nil {
		d.fail(job, helpers.NewNotificationError("Failed to send Telegram notification", err))
		return
	}

	var resp models.MTelegramResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		d.fail(job, helpers.NewNotificationError("Failed to send Telegram notification", fmt.Errorf("invalid response: %w", err)))
		return
	}
	if !resp.OK {
		d.fail(job, helpers.NewNotificationError("Telegram notification failed", errors.New(resp.Description)))
		return
	}

	d.Logger.Info("Telegram notification sent for %q (%d stocks)", job.Title, len(job.Stocks))
	d.record(job, models.NotificationSent, "")
}

// -----------------------------------------------------------------------------

func (d *TelegramDispatcher) fail(job models.MNotificationJob, err error) {
	d.Errors.Handle(err, "telegram notify")
	d.record(job, models.NotificationFailed, err.Error())
}

// -----------------------------------------------------------------------------

func (d *TelegramDispatcher) record(job models.MNotificationJob, status, reason string) {
	if d.Store == nil {
		return
	}
	rec := models.MNotificationRecord{
		ID:         job.ID,
		Title:      job.Title,
		StockCount: len(job.Stocks),
		Status:     status,
		Reason:     reason,
		CreatedAt:  time.Now().UTC(),
	}
	if err := d.Store.SaveNotificationRecord(rec); err != nil {
		d.Logger.Warning("Failed to record notification %s: %v", job.ID, err)
	}
}

// -----------------------------------------------------------------------------

func (d *TelegramDispatcher) endpoint(botToken string) string {
	return fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimRight(d.Config.APIBaseURL, "/"), botToken)
}
