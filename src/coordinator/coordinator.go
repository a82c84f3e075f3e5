package coordinator

import (
	"sync"
	"time"

	"stock-dashboard/src/catalog"
	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// Coordinator
// -----------------------------------------------------------------------------

// Coordinator owns the dashboard's selection, result set, theme and
// notification credentials. Every write goes through one of its operations;
// each operation is applied atomically with respect to the others.
type Coordinator struct {
	catalog  *catalog.Catalog
	notifier interfaces.INotifier
	logger   *logger.Logger
	market   func(time.Time) bool
	now      func() time.Time

	mu                sync.RWMutex
	selectedStock     models.MStock
	rightPanelStocks  []models.MStock
	searchSourceTitle *string
	theme             models.MTheme
	credentials       models.MTelegramCredentials

	// publishMu orders mutations and the delivery of their snapshots.
	publishMu   sync.Mutex
	observersMu sync.RWMutex
	observers   []func(models.MDashboardState)
}

// Options seed the initial state and optional collaborators.
type Options struct {
	Theme       models.MTheme
	Credentials models.MTelegramCredentials
	// MarketOpen reports whether the exchange is trading at the given instant.
	MarketOpen func(time.Time) bool
	Clock      func() time.Time
	Logger     *logger.Logger
}

// -----------------------------------------------------------------------------

// New builds a coordinator from the catalog. The selection starts at the first
// catalog entry and the result set at the full catalog.
func New(cat *catalog.Catalog, notifier interfaces.INotifier, opts Options) *Coordinator {
	c := &Coordinator{
		catalog:          cat,
		notifier:         notifier,
		logger:           opts.Logger,
		market:           opts.MarketOpen,
		now:              opts.Clock,
		rightPanelStocks: cat.All(),
		theme:            opts.Theme,
		credentials:      opts.Credentials,
	}
	if c.logger == nil {
		c.logger = logger.NewLogger(nil, "Coordinator")
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.theme == "" {
		c.theme = models.ThemeLight
	}
	if first, ok := cat.First(); ok {
		c.selectedStock = first
	}
	return c
}

// -----------------------------------------------------------------------------
// Operations
// -----------------------------------------------------------------------------

// SelectStock replaces the selection with an already resolved stock.
func (c *Coordinator) SelectStock(stock models.MStock) {
	c.apply(func() {
		c.selectedStock = stock
	})
}

// -----------------------------------------------------------------------------

// SelectStockByCode selects the catalog entry with code. Unknown codes leave
// the state untouched and report false.
func (c *Coordinator) SelectStockByCode(code string) bool {
	stock, ok := c.catalog.Lookup(code)
	if !ok {
		return false
	}

	c.apply(func() {
		c.selectedStock = stock
	})
	return true
}

// -----------------------------------------------------------------------------

// CompleteSearch applies a search collaborator's results. Results whose code
// is not in the catalog are dropped from the list panel, but the notification
// describes the results exactly as the search reported them.
func (c *Coordinator) CompleteSearch(results []models.MSearchResult, title string) {
	original := make([]models.MSearchResult, len(results))
	copy(original, results)

	var creds models.MTelegramCredentials
	c.apply(func() {
		c.searchSourceTitle = &title
		if len(original) == 0 {
			c.rightPanelStocks = []models.MStock{}
			creds = c.credentials
			return
		}
		found := make([]models.MStock, 0, len(original))
		for _, r := range original {
			if stock, ok := c.catalog.Lookup(r.Code); ok {
				found = append(found, stock)
			}
		}
		c.rightPanelStocks = found
		if len(found) > 0 {
			c.selectedStock = found[0]
		}
		creds = c.credentials
	})

	c.logger.Debug("Search %q completed with %d results", title, len(original))

	if c.notifier != nil {
		c.notifier.Notify(creds, title, original)
	}
}

// -----------------------------------------------------------------------------

// ShowAllStocks resets the list panel to the full catalog and selects its first entry.
func (c *Coordinator) ShowAllStocks() {
	c.apply(func() {
		c.rightPanelStocks = c.catalog.All()
		c.searchSourceTitle = nil
		if first, ok := c.catalog.First(); ok {
			c.selectedStock = first
		}
	})
}

// -----------------------------------------------------------------------------

// SetCredentials stores the notification channel settings as entered.
func (c *Coordinator) SetCredentials(botToken, chatID string) {
	c.apply(func() {
		c.credentials = models.MTelegramCredentials{BotToken: botToken, ChatID: chatID}
	})
}

// -----------------------------------------------------------------------------

func (c *Coordinator) SetTheme(name string) error {
	theme, err := ParseTheme(name)
	if err != nil {
		return err
	}

	c.apply(func() {
		c.theme = theme
	})
	return nil
}

// -----------------------------------------------------------------------------

func (c *Coordinator) ToggleTheme() models.MTheme {
	var theme models.MTheme
	c.apply(func() {
		if c.theme == models.ThemeDark {
			c.theme = models.ThemeLight
		} else {
			c.theme = models.ThemeDark
		}
		theme = c.theme
	})
	return theme
}

// -----------------------------------------------------------------------------
// Accessors
// -----------------------------------------------------------------------------

func (c *Coordinator) Catalog() *catalog.Catalog {
	return c.catalog
}

func (c *Coordinator) SelectedStock() models.MStock {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selectedStock
}

func (c *Coordinator) RightPanelStocks() []models.MStock {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.MStock, len(c.rightPanelStocks))
	copy(out, c.rightPanelStocks)
	return out
}

// SearchSourceTitle returns the label of the current result set; false means
// the list shows the full catalog.
func (c *Coordinator) SearchSourceTitle() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.searchSourceTitle == nil {
		return "", false
	}
	return *c.searchSourceTitle, true
}

func (c *Coordinator) Theme() models.MTheme {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.theme
}

func (c *Coordinator) Credentials() models.MTelegramCredentials {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.credentials
}

// -----------------------------------------------------------------------------

// Snapshot returns a consistent copy of the whole state for clients.
func (c *Coordinator) Snapshot() models.MDashboardState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// snapshotLocked requires c.mu to be held.
func (c *Coordinator) snapshotLocked() models.MDashboardState {
	now := c.now()
	state := models.MDashboardState{
		Type:          "UPDATE",
		SelectedStock: c.selectedStock,
		Stocks:        make([]models.MStock, len(c.rightPanelStocks)),
		Theme:         c.theme,
		ThemeClasses:  ThemeClasses(c.theme),
		Telegram:      telegramView(c.credentials),
		Timestamp:     now.Unix(),
	}
	copy(state.Stocks, c.rightPanelStocks)
	if c.searchSourceTitle != nil {
		title := *c.searchSourceTitle
		state.SearchSourceTitle = &title
	}
	if c.market != nil {
		state.MarketOpen = c.market(now)
	}
	return state
}

// -----------------------------------------------------------------------------
// Observers
// -----------------------------------------------------------------------------

// Subscribe registers fn to receive a snapshot after every state change.
// Snapshots arrive in mutation order. fn runs on the mutating goroutine, must
// not block and must not call back into the coordinator's operations.
func (c *Coordinator) Subscribe(fn func(models.MDashboardState)) {
	c.observersMu.Lock()
	c.observers = append(c.observers, fn)
	c.observersMu.Unlock()
}

// apply runs mutate under the state lock and hands the resulting snapshot to
// observers before the next mutation can start.
func (c *Coordinator) apply(mutate func()) {
	c.publishMu.Lock()
	defer c.publishMu.Unlock()

	c.observersMu.RLock()
	observers := c.observers
	c.observersMu.RUnlock()

	c.mu.Lock()
	mutate()
	var state models.MDashboardState
	if len(observers) > 0 {
		state = c.snapshotLocked()
	}
	c.mu.Unlock()

	for _, fn := range observers {
		fn(state)
	}
}

// -----------------------------------------------------------------------------

func telegramView(creds models.MTelegramCredentials) models.MTelegramView {
	return models.MTelegramView{
		Configured: creds.Complete(),
		BotToken:   MaskToken(creds.BotToken),
		ChatID:     creds.ChatID,
	}
}

// MaskToken hides all but the last four characters of a bot token.
func MaskToken(token string) string {
	r := []rune(token)
	visible := 4
	if len(r) <= visible {
		visible = 0
	}
	masked := make([]rune, len(r))
	for i := range r {
		if i < len(r)-visible {
			masked[i] = '*'
		} else {
			masked[i] = r[i]
		}
	}
	return string(masked)
}
