package http

import "net/http"

// Doer executes a single HTTP request. *http.Client satisfies this; tests
// substitute a client with mocked transports.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}
