// Package delivery defines the contract every transport entrypoint
// implements.
package delivery

import "context"

// Delivery is a transport that serves the application until the context
// is cancelled or a fatal error occurs.
type Delivery interface {
	Serve(ctx context.Context) error
}
