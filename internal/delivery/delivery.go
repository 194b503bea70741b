// Package delivery defines the contract every transport server implements.
package delivery

import "context"

// Delivery is a transport surface that serves requests until stopped.
type Delivery interface {
	Serve(ctx context.Context) error
}
