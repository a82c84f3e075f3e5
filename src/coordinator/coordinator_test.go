package coordinator

import (
	"io"
	"sync"
	"testing"
	"time"

	"stock-dashboard/src/catalog"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notifyCall struct {
	creds  models.MTelegramCredentials
	title  string
	stocks []models.MSearchResult
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

func (r *recordingNotifier) Notify(creds models.MTelegramCredentials, title string, stocks []models.MSearchResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, notifyCall{creds: creds, title: title, stocks: stocks})
}

func (r *recordingNotifier) Calls() []notifyCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notifyCall(nil), r.calls...)
}

func newCoordinator(t *testing.T, opts Options) (*Coordinator, *recordingNotifier) {
	t.Helper()
	n := &recordingNotifier{}
	if opts.Logger == nil {
		opts.Logger = logger.NewLoggerWithWriter(nil, "Coordinator", io.Discard)
	}
	return New(catalog.Default(), n, opts), n
}

func TestInitialState(t *testing.T) {
	c, _ := newCoordinator(t, Options{})

	assert.Equal(t, "005930", c.SelectedStock().Code)
	assert.Equal(t, c.Catalog().All(), c.RightPanelStocks())
	_, ok := c.SearchSourceTitle()
	assert.False(t, ok)
	assert.Equal(t, models.ThemeLight, c.Theme())
	assert.False(t, c.Credentials().Complete())
}

func TestSelectStockLeavesListUntouched(t *testing.T) {
	c, n := newCoordinator(t, Options{})
	before := c.RightPanelStocks()

	hynix, _ := c.Catalog().Lookup("000660")
	c.SelectStock(hynix)

	assert.Equal(t, hynix, c.SelectedStock())
	assert.Equal(t, before, c.RightPanelStocks())
	assert.Empty(t, n.Calls())
}

func TestSelectStockByCodeEveryCatalogEntry(t *testing.T) {
	c, _ := newCoordinator(t, Options{})

	for _, stock := range c.Catalog().All() {
		require.True(t, c.SelectStockByCode(stock.Code), stock.Code)
		assert.Equal(t, stock, c.SelectedStock())
	}
}

func TestSelectStockByCode(t *testing.T) {
	c, _ := newCoordinator(t, Options{})

	assert.True(t, c.SelectStockByCode("035420"))
	assert.Equal(t, "NAVER", c.SelectedStock().Name)

	assert.False(t, c.SelectStockByCode("999999"))
	assert.Equal(t, "035420", c.SelectedStock().Code)
}

func TestCompleteSearchFiltersAndSelectsFirst(t *testing.T) {
	c, n := newCoordinator(t, Options{})
	results := []models.MSearchResult{
		{Code: "000660", Name: "SK하이닉스"},
		{Code: "999999", Name: "없는종목"},
		{Code: "006400", Name: "삼성SDI"},
	}

	c.CompleteSearch(results, "반도체")

	stocks := c.RightPanelStocks()
	require.Len(t, stocks, 2)
	assert.Equal(t, "000660", stocks[0].Code)
	assert.Equal(t, "006400", stocks[1].Code)
	assert.Equal(t, "000660", c.SelectedStock().Code)

	title, ok := c.SearchSourceTitle()
	assert.True(t, ok)
	assert.Equal(t, "반도체", title)

	calls := n.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "반도체", calls[0].title)
	assert.Equal(t, results, calls[0].stocks)
}

func TestCompleteSearchAllUnknownKeepsSelection(t *testing.T) {
	c, n := newCoordinator(t, Options{})
	c.SelectStockByCode("035720")

	c.CompleteSearch([]models.MSearchResult{{Code: "111111", Name: "A"}}, "없음")

	assert.Empty(t, c.RightPanelStocks())
	assert.Equal(t, "035720", c.SelectedStock().Code)
	require.Len(t, n.Calls(), 1)
	assert.Len(t, n.Calls()[0].stocks, 1)
}

func TestCompleteSearchEmptyResults(t *testing.T) {
	c, n := newCoordinator(t, Options{})
	c.SelectStockByCode("000270")

	c.CompleteSearch(nil, "빈검색")

	assert.Empty(t, c.RightPanelStocks())
	assert.Equal(t, "000270", c.SelectedStock().Code)
	title, ok := c.SearchSourceTitle()
	assert.True(t, ok)
	assert.Equal(t, "빈검색", title)
	require.Len(t, n.Calls(), 1)
	assert.Empty(t, n.Calls()[0].stocks)
}

func TestCompleteSearchSnapshotsCredentials(t *testing.T) {
	c, n := newCoordinator(t, Options{})
	c.SetCredentials("123:token", "42")

	c.CompleteSearch([]models.MSearchResult{{Code: "005930", Name: "삼성전자"}}, "삼성")
	c.SetCredentials("", "")

	calls := n.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, models.MTelegramCredentials{BotToken: "123:token", ChatID: "42"}, calls[0].creds)
}

func TestCompleteSearchCopiesResults(t *testing.T) {
	c, n := newCoordinator(t, Options{})
	results := []models.MSearchResult{{Code: "005930", Name: "삼성전자"}}

	c.CompleteSearch(results, "삼성")
	results[0].Code = "mutated"

	assert.Equal(t, "005930", n.Calls()[0].stocks[0].Code)
}

func TestShowAllStocksResets(t *testing.T) {
	c, _ := newCoordinator(t, Options{})
	c.CompleteSearch([]models.MSearchResult{{Code: "000660", Name: "SK하이닉스"}}, "하이닉스")

	c.ShowAllStocks()

	assert.Equal(t, c.Catalog().All(), c.RightPanelStocks())
	assert.Equal(t, "005930", c.SelectedStock().Code)
	_, ok := c.SearchSourceTitle()
	assert.False(t, ok)
}

func TestEmptyCatalog(t *testing.T) {
	cat, err := catalog.New(nil)
	require.NoError(t, err)
	n := &recordingNotifier{}
	c := New(cat, n, Options{Logger: logger.NewLoggerWithWriter(nil, "Coordinator", io.Discard)})

	assert.Equal(t, models.MStock{}, c.SelectedStock())
	assert.Empty(t, c.RightPanelStocks())

	c.ShowAllStocks()
	assert.Equal(t, models.MStock{}, c.SelectedStock())
}

func TestThemeOperations(t *testing.T) {
	c, _ := newCoordinator(t, Options{Theme: models.ThemeDark})
	assert.Equal(t, models.ThemeDark, c.Theme())

	assert.Equal(t, models.ThemeLight, c.ToggleTheme())
	assert.Equal(t, models.ThemeDark, c.ToggleTheme())

	require.NoError(t, c.SetTheme("light"))
	assert.Equal(t, models.ThemeLight, c.Theme())

	assert.Error(t, c.SetTheme("sepia"))
	assert.Equal(t, models.ThemeLight, c.Theme())
}

func TestSnapshot(t *testing.T) {
	fixed := time.Date(2026, 3, 2, 1, 0, 0, 0, time.UTC)
	c, _ := newCoordinator(t, Options{
		Credentials: models.MTelegramCredentials{BotToken: "123456:secret", ChatID: "42"},
		MarketOpen:  func(now time.Time) bool { return now.Equal(fixed) },
		Clock:       func() time.Time { return fixed },
	})
	c.CompleteSearch([]models.MSearchResult{{Code: "000660", Name: "SK하이닉스"}}, "검색")

	state := c.Snapshot()
	assert.Equal(t, "UPDATE", state.Type)
	assert.Equal(t, "000660", state.SelectedStock.Code)
	require.NotNil(t, state.SearchSourceTitle)
	assert.Equal(t, "검색", *state.SearchSourceTitle)
	assert.True(t, state.MarketOpen)
	assert.Equal(t, fixed.Unix(), state.Timestamp)
	assert.True(t, state.Telegram.Configured)
	assert.Equal(t, "*********cret", state.Telegram.BotToken)
	assert.Equal(t, ThemeClasses(models.ThemeLight), state.ThemeClasses)

	state.Stocks[0].Name = "mutated"
	*state.SearchSourceTitle = "mutated"
	assert.Equal(t, "SK하이닉스", c.RightPanelStocks()[0].Name)
	title, _ := c.SearchSourceTitle()
	assert.Equal(t, "검색", title)
}

func TestObserversReceiveEveryChange(t *testing.T) {
	c, _ := newCoordinator(t, Options{})
	var got []models.MDashboardState
	c.Subscribe(func(s models.MDashboardState) { got = append(got, s) })

	c.SelectStockByCode("000660")
	c.SelectStockByCode("nope")
	c.ToggleTheme()
	c.CompleteSearch([]models.MSearchResult{{Code: "035720", Name: "카카오"}}, "카카오")
	c.ShowAllStocks()
	c.SetCredentials("t", "c")

	require.Len(t, got, 5)
	assert.Equal(t, "000660", got[0].SelectedStock.Code)
	assert.Equal(t, models.ThemeDark, got[1].Theme)
	assert.Equal(t, "035720", got[2].SelectedStock.Code)
	assert.Nil(t, got[3].SearchSourceTitle)
	assert.True(t, got[4].Telegram.Configured)
}

func TestConcurrentOperationsKeepStateConsistent(t *testing.T) {
	c, n := newCoordinator(t, Options{})
	codes := c.Catalog().Codes()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			code := codes[i%len(codes)]
			switch i % 3 {
			case 0:
				c.SelectStockByCode(code)
			case 1:
				stock, _ := c.Catalog().Lookup(code)
				c.CompleteSearch([]models.MSearchResult{stock.ToSearchResult()}, code)
			default:
				c.ShowAllStocks()
			}
			_ = c.Snapshot()
		}(i)
	}
	wg.Wait()

	_, ok := c.Catalog().Lookup(c.SelectedStock().Code)
	assert.True(t, ok)
	assert.Len(t, n.Calls(), 17)
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "", MaskToken(""))
	assert.Equal(t, "****", MaskToken("abcd"))
	assert.Equal(t, "**cdef", MaskToken("abcdef"))
}

func TestObserversSeeMutationsInOrder(t *testing.T) {
	fixed := time.Date(2026, 3, 2, 1, 0, 0, 0, time.UTC)
	c, _ := newCoordinator(t, Options{Clock: func() time.Time { return fixed }})
	codes := c.Catalog().Codes()

	var (
		mu   sync.Mutex
		last models.MDashboardState
		seen int
	)
	c.Subscribe(func(s models.MDashboardState) {
		mu.Lock()
		last = s
		seen++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if j%2 == 0 {
					c.SelectStockByCode(codes[(i+j)%len(codes)])
				} else {
					c.ToggleTheme()
				}
			}
		}(i)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 400, seen)
	assert.Equal(t, c.Snapshot(), last)
}
