package interfaces

import "stock-dashboard/src/models"

// -----------------------------------------------------------------------------
// IDataExchanger pushes dashboard snapshots to connected UI clients.
// -----------------------------------------------------------------------------

type IDataExchanger interface {
	// -----------------------------------------------------------------------------
	// Broadcast queues a snapshot for every connected client.
	Broadcast(state models.MDashboardState)

	// -----------------------------------------------------------------------------
	// Start the server
	Start() error

	// -----------------------------------------------------------------------------
	// Stop the server gracefully
	Stop() error
}
