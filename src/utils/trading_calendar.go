package utils

import (
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/scmhub/calendar"
)

var krxCode = regexp.MustCompile(`^\d{6}$`)

// suffixMIC maps ticker suffixes to ISO 10383 MIC codes known to scmhub/calendar.
var suffixMIC = map[string]string{
	".KS": "xkrx",
	".KQ": "xkrx",
	".L":  "xlon",
	".PA": "xpar",
	".DE": "xfra",
	".T":  "xtks",
	".HK": "xhkg",
	".SS": "xshg",
	".SZ": "xshe",
	".TW": "xtai",
}

// fallbackSession describes local trading hours used when no calendar loads.
type fallbackSession struct {
	zone                 string
	openHour, openMinute int
	closeHour, closeMin  int
}

var fallbackSessions = map[string]fallbackSession{
	"xkrx": {zone: "Asia/Seoul", openHour: 9, openMinute: 0, closeHour: 15, closeMin: 30},
	"xnys": {zone: "America/New_York", openHour: 9, openMinute: 30, closeHour: 16, closeMin: 0},
}

// TradingCalendar calculates trading days using scmhub/calendar.
type TradingCalendar struct {
	MIC      string
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location
	session  fallbackSession
}

// -----------------------------------------------------------------------------

// MICForSymbol returns the market identifier a symbol trades on. Six-digit
// numeric codes are KRX listings.
func MICForSymbol(symbol string) string {
	if krxCode.MatchString(symbol) {
		return "xkrx"
	}
	for suffix, mic := range suffixMIC {
		if strings.HasSuffix(symbol, suffix) {
			return mic
		}
	}
	return "xnys"
}

// -----------------------------------------------------------------------------

func GetCalendar(symbol string) *TradingCalendar {
	return GetCalendarForMIC(MICForSymbol(symbol))
}

// -----------------------------------------------------------------------------

func GetCalendarForMIC(mic string) *TradingCalendar {
	mic = strings.ToLower(mic)

	if cal := calendar.GetCalendar(mic); cal != nil {
		return &TradingCalendar{MIC: mic, Calendar: cal, Timezone: cal.Loc}
	}

	session, ok := fallbackSessions[mic]
	if !ok {
		session = fallbackSessions["xnys"]
	}
	log.Printf("WARNING: Failed to load calendar for MIC '%s'. Using simple fallback (Mon-Fri %02d:%02d-%02d:%02d %s).",
		mic, session.openHour, session.openMinute, session.closeHour, session.closeMin, session.zone)

	loc, err := time.LoadLocation(session.zone)
	if err != nil {
		loc = time.UTC // Worst case
	}
	return &TradingCalendar{MIC: mic, Fallback: true, Timezone: loc, session: session}
}

// -----------------------------------------------------------------------------

func (tc *TradingCalendar) IsTradingDay(date time.Time) bool {
	if tc.Timezone != nil {
		date = date.In(tc.Timezone)
	}

	if tc.Fallback {
		weekday := date.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	return tc.Calendar.IsBusinessDay(date)
}

// -----------------------------------------------------------------------------

// IsOpenOnMinute checks if the market is open at a specific minute.
func (tc *TradingCalendar) IsOpenOnMinute(t time.Time) bool {
	if tc.Timezone != nil {
		t = t.In(tc.Timezone)
	}

	if tc.Fallback {
		if !tc.IsTradingDay(t) {
			return false
		}
		minutes := t.Hour()*60 + t.Minute()
		open := tc.session.openHour*60 + tc.session.openMinute
		closing := tc.session.closeHour*60 + tc.session.closeMin
		return minutes >= open && minutes < closing
	}

	return tc.Calendar.IsOpen(t)
}
