package server

import (
	"net/http"
	"time"

	"stock-dashboard/src/coordinator"
	"stock-dashboard/src/helpers"
	"stock-dashboard/src/models"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// Read-only handlers
// -----------------------------------------------------------------------------

func (s *DashboardServer) getHealth(c *gin.Context) {
	s.stateMutex.RLock()
	connections := s.connections
	lastUpdate := s.lastUpdate
	s.stateMutex.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"connections":   connections,
		"latest_update": lastUpdate,
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getState(c *gin.Context) {
	c.JSON(http.StatusOK, s.Coordinator.Snapshot())
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getStocks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stocks": s.Coordinator.Catalog().All()})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) lookupStocks(c *gin.Context) {
	limit, err := parseLimit(c, "limit", 20)
	if err != nil {
		s.respondError(c, err)
		return
	}
	results := s.Searcher.Search(c.Query("q"), limit)
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getNotifications(c *gin.Context) {
	limit, err := parseLimit(c, "limit", defaultListLimit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if s.Store == nil {
		c.JSON(http.StatusOK, gin.H{"records": []models.MNotificationRecord{}})
		return
	}
	records, err := s.Store.RecentNotificationRecords(limit)
	if err != nil {
		s.respondError(c, helpers.NewDatabaseError("failed to read notification log", err))
		return
	}
	if records == nil {
		records = []models.MNotificationRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getMarket(c *gin.Context) {
	now := time.Now()
	status := models.MMarketStatus{MICs: []string{}, Timestamp: now.Unix()}
	if s.Market != nil {
		status.MICs = s.Market.MICs()
		status.Open = s.Market.AnyMarketOpen(now)
		status.TradingDay = s.Market.AnyTradingDay(now)
	}
	c.JSON(http.StatusOK, status)
}

// -----------------------------------------------------------------------------
// State-changing handlers
// -----------------------------------------------------------------------------

func (s *DashboardServer) selectStock(c *gin.Context) {
	var stock models.MStock
	if err := bindJSON(c, &stock); err != nil {
		s.respondError(c, err)
		return
	}
	s.Coordinator.SelectStock(stock)
	c.JSON(http.StatusOK, s.Coordinator.Snapshot())
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) selectStockByCode(c *gin.Context) {
	var req models.MSelectCodeRequest
	if err := bindJSON(c, &req); err != nil {
		s.respondError(c, err)
		return
	}
	selected := s.Coordinator.SelectStockByCode(req.Code)
	c.JSON(http.StatusOK, gin.H{
		"selected": selected,
		"state":    s.Coordinator.Snapshot(),
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) completeSearch(c *gin.Context) {
	var req models.MSearchCompleteRequest
	if err := bindJSON(c, &req); err != nil {
		s.respondError(c, err)
		return
	}
	s.Coordinator.CompleteSearch(req.Results, req.Title)
	c.JSON(http.StatusOK, s.Coordinator.Snapshot())
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) querySearch(c *gin.Context) {
	var req models.MSearchQueryRequest
	if err := bindJSON(c, &req); err != nil {
		s.respondError(c, err)
		return
	}
	title := req.Title
	if title == "" {
		title = req.Query
	}
	results := s.Searcher.Search(req.Query, req.Limit)
	s.Coordinator.CompleteSearch(results, title)
	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"state":   s.Coordinator.Snapshot(),
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) showAllStocks(c *gin.Context) {
	s.Coordinator.ShowAllStocks()
	c.JSON(http.StatusOK, s.Coordinator.Snapshot())
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) setTelegram(c *gin.Context) {
	var creds models.MTelegramCredentials
	if err := bindJSON(c, &creds); err != nil {
		s.respondError(c, err)
		return
	}
	s.Coordinator.SetCredentials(creds.BotToken, creds.ChatID)
	c.JSON(http.StatusOK, s.Coordinator.Snapshot().Telegram)
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) setTheme(c *gin.Context) {
	var req models.MThemeRequest
	if err := bindJSON(c, &req); err != nil {
		s.respondError(c, err)
		return
	}
	if err := s.Coordinator.SetTheme(req.Theme); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, themeResponse(s.Coordinator.Theme()))
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) toggleTheme(c *gin.Context) {
	c.JSON(http.StatusOK, themeResponse(s.Coordinator.ToggleTheme()))
}

func themeResponse(theme models.MTheme) gin.H {
	return gin.H{"theme": theme, "classes": coordinator.ThemeClasses(theme)}
}
