package interfaces

import "context"

// -----------------------------------------------------------------------------
// INetworkManager defines the contract for outbound HTTP calls.
// -----------------------------------------------------------------------------

type INetworkManager interface {

	// -----------------------------------------------------------------------------

	// PostJSON sends payload as a JSON body in a single attempt.
	// Returns the response body and status for any HTTP status, or a transport error.
	PostJSON(ctx context.Context, url string, payload interface{}) ([]byte, int, error)
}
