package models

// -----------------------------------------------------------------------------
// REST request bodies
// -----------------------------------------------------------------------------

type MSelectCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// MSearchCompleteRequest carries results produced by an external search.
type MSearchCompleteRequest struct {
	Results []MSearchResult `json:"results"`
	Title   string          `json:"title"`
}

// MSearchQueryRequest asks the server to search the catalog itself.
type MSearchQueryRequest struct {
	Query string `json:"query" binding:"required"`
	Title string `json:"title"`
	Limit int    `json:"limit"`
}

type MThemeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

// MMarketStatus is returned by the market endpoint.
type MMarketStatus struct {
	MICs       []string `json:"mics"`
	Open       bool     `json:"open"`
	TradingDay bool     `json:"trading_day"`
	Timestamp  int64    `json:"timestamp"`
}
