// Package source supplies item lists to pickers.
package source

import (
	"context"

	"github.com/runger/itempicker/internal/picker"
)

// Provider is the interface for data sources that supply items to a wheel.
// Implementations might read stdin, a file, a config list, or generate a
// numeric range.
type Provider interface {
	Fetch(ctx context.Context, req Request) (Response, error)
}

// Request describes a load. Every reload uses a new RequestID.
type Request struct {
	RequestID uint64 // Monotonically increasing, for stale response detection
}

// Response carries items back from a Provider.
type Response struct {
	RequestID uint64 // Must match Request.RequestID to be accepted
	Items     []picker.Item
}
