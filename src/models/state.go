package models

// -----------------------------------------------------------------------------
// Display mode
// -----------------------------------------------------------------------------

type MTheme string

const (
	ThemeLight MTheme = "light"
	ThemeDark  MTheme = "dark"
)

// MThemeClasses lists the style classes a client applies to the document
// root and body for a theme.
type MThemeClasses struct {
	RootAdd    []string `json:"root_add"`
	RootRemove []string `json:"root_remove"`
	BodyAdd    []string `json:"body_add"`
	BodyRemove []string `json:"body_remove"`
}

// -----------------------------------------------------------------------------
// Dashboard snapshot pushed to clients
// -----------------------------------------------------------------------------

type MDashboardState struct {
	Type              string        `json:"type"` // "INITIAL" or "UPDATE"
	SelectedStock     MStock        `json:"selected_stock"`
	Stocks            []MStock      `json:"stocks"`
	SearchSourceTitle *string       `json:"search_source_title"` // nil means full catalog
	Theme             MTheme        `json:"theme"`
	ThemeClasses      MThemeClasses `json:"theme_classes"`
	Telegram          MTelegramView `json:"telegram"`
	MarketOpen        bool          `json:"market_open"`
	Timestamp         int64         `json:"timestamp"`
}

// MTelegramView is the client-facing view of the credentials. The token is masked.
type MTelegramView struct {
	Configured bool   `json:"configured"`
	BotToken   string `json:"bot_token"`
	ChatID     string `json:"chat_id"`
}

// -----------------------------------------------------------------------------
// Client commands (websocket)
// -----------------------------------------------------------------------------

type MClientCommand struct {
	Command string `json:"command"` // "subscribe", "select", "show_all"
	Code    string `json:"code"`
}
