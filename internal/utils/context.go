// Package utils provides general-purpose helper utilities used by the HTTP
// layer: type-safe context keys for values produced by the request parsers
// and JSON response writing.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// CookiesCtxKey is the key under which the cookie parser stores the
	// request cookies as a map[string]string.
	CookiesCtxKey = contextKey("cookies")

	// BodyCtxKey is the key under which the JSON parser stores the decoded
	// request body.
	BodyCtxKey = contextKey("body")
)

// WithCookies returns a copy of ctx carrying cookies.
func WithCookies(ctx context.Context, cookies map[string]string) context.Context {
	return context.WithValue(ctx, CookiesCtxKey, cookies)
}

// GetCookiesFromContext retrieves the cookies stored by the cookie parser.
//
// Returns the cookies and an ok flag that is false when the parser did not
// run for the request.
func GetCookiesFromContext(ctx context.Context) (map[string]string, bool) {
	cookies, ok := ctx.Value(CookiesCtxKey).(map[string]string)
	return cookies, ok
}

// WithBody returns a copy of ctx carrying the decoded JSON body.
func WithBody(ctx context.Context, body any) context.Context {
	return context.WithValue(ctx, BodyCtxKey, body)
}

// GetBodyFromContext retrieves the JSON body decoded by the JSON parser.
// The ok flag is false when no JSON body was parsed.
func GetBodyFromContext(ctx context.Context) (any, bool) {
	body := ctx.Value(BodyCtxKey)
	return body, body != nil
}
