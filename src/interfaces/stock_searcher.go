package interfaces

import "stock-dashboard/src/models"

// -----------------------------------------------------------------------------
// IStockSearcher finds catalog entries for a free-text query.
// -----------------------------------------------------------------------------

type IStockSearcher interface {
	Search(query string, limit int) []models.MSearchResult
}
