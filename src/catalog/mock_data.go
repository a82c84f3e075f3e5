package catalog

import "stock-dashboard/src/models"

// mockStocks seeds the dashboard when no catalog file is configured.
var mockStocks = []models.MStock{
	{Code: "005930", Name: "삼성전자", Price: 81200, Change: 1200, ChangePercent: 1.5, Volume: 15234567},
	{Code: "000660", Name: "SK하이닉스", Price: 178500, Change: -2500, ChangePercent: -1.38, Volume: 3456789},
	{Code: "373220", Name: "LG에너지솔루션", Price: 392000, Change: 5500, ChangePercent: 1.42, Volume: 254321},
	{Code: "207940", Name: "삼성바이오로직스", Price: 781000, Change: -9000, ChangePercent: -1.14, Volume: 65432},
	{Code: "005380", Name: "현대차", Price: 246500, Change: 3500, ChangePercent: 1.44, Volume: 876543},
	{Code: "000270", Name: "기아", Price: 118300, Change: 1100, ChangePercent: 0.94, Volume: 1234567},
	{Code: "068270", Name: "셀트리온", Price: 187600, Change: -1400, ChangePercent: -0.74, Volume: 765432},
	{Code: "035420", Name: "NAVER", Price: 167400, Change: 2100, ChangePercent: 1.27, Volume: 543210},
	{Code: "035720", Name: "카카오", Price: 42350, Change: -650, ChangePercent: -1.51, Volume: 2345678},
	{Code: "051910", Name: "LG화학", Price: 321500, Change: 4500, ChangePercent: 1.42, Volume: 198765},
	{Code: "006400", Name: "삼성SDI", Price: 298000, Change: -3000, ChangePercent: -1.0, Volume: 321098},
	{Code: "105560", Name: "KB금융", Price: 78900, Change: 900, ChangePercent: 1.15, Volume: 1098765},
}

// Default returns the built-in mock catalog.
func Default() *Catalog {
	c, err := New(mockStocks)
	if err != nil {
		panic(err)
	}
	return c
}
