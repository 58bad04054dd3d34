package models

// HTTPResponse is the status and body of a completed HTTP exchange.
type HTTPResponse struct {
	StatusCode int
	Body       []byte
}
