package interfaces

import "stock-dashboard/src/models"

// -----------------------------------------------------------------------------
// IDiagnosticsStore keeps the local record of notification outcomes.
// -----------------------------------------------------------------------------

type IDiagnosticsStore interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the schema or buffers.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SaveNotificationRecord appends one diagnostic entry.
	SaveNotificationRecord(record models.MNotificationRecord) error

	// -----------------------------------------------------------------------------

	// RecentNotificationRecords returns up to limit entries, newest first.
	RecentNotificationRecords(limit int) ([]models.MNotificationRecord, error)

	// -----------------------------------------------------------------------------

	// CleanupOldData removes entries older than the retention policy.
	CleanupOldData() error

	// -----------------------------------------------------------------------------

	// Close releases the underlying resources.
	Close() error
}
