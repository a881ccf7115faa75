package models

// ErrorResponse is the body of an error answered to a client that accepts
// JSON.
type ErrorResponse struct {
	// Status is the HTTP status code of the response.
	Status int `json:"status"`

	// Error is the human-readable message, e.g. "Not Found - /missing".
	Error string `json:"error"`
}
