package interfaces

import "stock-dashboard/src/models"

// -----------------------------------------------------------------------------
// INotifier delivers search summaries to an external channel, best effort.
// Notify must not block on delivery and never reports failure to the caller.
// -----------------------------------------------------------------------------

type INotifier interface {
	Notify(creds models.MTelegramCredentials, title string, stocks []models.MSearchResult)
}
