package models

import "time"

// MTelegramCredentials holds the notification channel settings entered by the user.
type MTelegramCredentials struct {
	BotToken string `json:"bot_token"`
	ChatID   string `json:"chat_id"`
}

// Complete reports whether a notification may be attempted.
func (c MTelegramCredentials) Complete() bool {
	return c.BotToken != "" && c.ChatID != ""
}

// MNotificationJob is one queued outbound message.
type MNotificationJob struct {
	ID          string
	Title       string
	Stocks      []MSearchResult
	Credentials MTelegramCredentials
	QueuedAt    time.Time
}

// Notification outcomes recorded in the diagnostics log.
const (
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
	NotificationSkipped = "skipped"
	NotificationDropped = "dropped"
)

// MNotificationRecord is a local diagnostic entry for one notify call.
type MNotificationRecord struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	StockCount int       `json:"stock_count"`
	Status     string    `json:"status"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// -----------------------------------------------------------------------------
// Telegram Bot API wire types
// -----------------------------------------------------------------------------

type MTelegramSendMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type MTelegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}
