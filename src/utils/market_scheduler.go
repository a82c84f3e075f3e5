package utils

import (
	"strings"
	"sync"
	"time"

	"stock-dashboard/src/logger"
)

// MarketScheduler answers market-hours questions for the catalog's symbols.
type MarketScheduler struct {
	Calendars map[string]*TradingCalendar
	Logger    *logger.Logger
	mu        sync.RWMutex
}

// -----------------------------------------------------------------------------

func NewMarketScheduler(symbols []string, l *logger.Logger) *MarketScheduler {
	ms := &MarketScheduler{
		Calendars: make(map[string]*TradingCalendar),
		Logger:    l,
	}
	ms.MapSymbolsToCalendars(symbols)
	return ms
}

// -----------------------------------------------------------------------------

// MapSymbolsToCalendars replaces the symbol mapping. Symbols on the same
// market share one calendar.
func (ms *MarketScheduler) MapSymbolsToCalendars(symbols []string) {
	byMIC := make(map[string]*TradingCalendar)
	calendars := make(map[string]*TradingCalendar, len(symbols))

	for _, symbol := range symbols {
		mic := MICForSymbol(symbol)
		cal, ok := byMIC[mic]
		if !ok {
			cal = GetCalendarForMIC(mic)
			byMIC[mic] = cal
		}
		calendars[symbol] = cal
	}

	ms.mu.Lock()
	ms.Calendars = calendars
	ms.mu.Unlock()

	if ms.Logger != nil {
		ms.Logger.Info("MarketScheduler: Mapped %d symbols to %d unique calendars.", len(symbols), len(byMIC))
	}
}

// -----------------------------------------------------------------------------

func (ms *MarketScheduler) uniqueCalendars() []*TradingCalendar {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	seen := make(map[*TradingCalendar]bool)
	var out []*TradingCalendar
	for _, cal := range ms.Calendars {
		if !seen[cal] {
			seen[cal] = true
			out = append(out, cal)
		}
	}
	return out
}

// -----------------------------------------------------------------------------

// AnyMarketOpen checks if ANY tracked market is open at now
func (ms *MarketScheduler) AnyMarketOpen(now time.Time) bool {
	for _, cal := range ms.uniqueCalendars() {
		if cal.IsOpenOnMinute(now) {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------

// AnyTradingDay checks if ANY tracked market trades on now's date
func (ms *MarketScheduler) AnyTradingDay(now time.Time) bool {
	for _, cal := range ms.uniqueCalendars() {
		if cal.IsTradingDay(now) {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------

// MICs lists the markets currently tracked.
func (ms *MarketScheduler) MICs() []string {
	out := []string{}
	for _, cal := range ms.uniqueCalendars() {
		out = append(out, cal.MIC)
	}
	return out
}

// -----------------------------------------------------------------------------

// TrackMIC makes sure mic is watched even when no symbol maps to it.
func (ms *MarketScheduler) TrackMIC(mic string) {
	mic = strings.ToLower(strings.TrimSpace(mic))
	if mic == "" {
		return
	}
	for _, cal := range ms.uniqueCalendars() {
		if cal.MIC == mic {
			return
		}
	}

	ms.mu.Lock()
	ms.Calendars["@"+mic] = GetCalendarForMIC(mic)
	ms.mu.Unlock()
}
