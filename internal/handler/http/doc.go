// Package http implements the HTTP side of coserv.
//
// [Assemble] turns the effective configuration into the ordered list of
// behaviors (request logging, request parsers, static serving, live reload,
// not-found) and [Handler.Init] mounts them on a chi router behind panic
// recovery and request tracing. Every request walks the behaviors in order
// until one of them answers; the last one always answers 404.
package http
