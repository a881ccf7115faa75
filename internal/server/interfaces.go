package server

import (
	"context"
	"net"
)

// Server defines the lifecycle contract of the application server.
type Server interface {
	// Addr returns the address the listener is bound to.
	Addr() net.Addr

	// Run serves requests and runs the background workers. It blocks until
	// ctx is done, a termination signal arrives or a component fails, and
	// returns after a graceful shutdown.
	Run(ctx context.Context) error
}
