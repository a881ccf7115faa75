// Package server runs the HTTP listener of coserv together with its
// background workers.
//
// The listener is bound when the server is created, so bind failures are
// reported before anything runs. Run serves until its context is done or a
// termination signal arrives and then shuts everything down gracefully.
package server
