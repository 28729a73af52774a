package httpkit

import (
	"net/http"

	phttp "solna/internal/platform/net/http"
)

// Get registers a no-body handler and uses the envelope adapter
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	phttp.GetJSON(r, path, h)
}

// GetResponse registers a return-style handler for endpoints that pick their own status
func GetResponse(r Router, path string, h func(*http.Request) Response) {
	phttp.GetResponse(r, path, h)
}

// PostJSON mounts a pure JSON handler under POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error), opts ...JSONOptions) {
	phttp.PostJSON(r, path, h, opts...)
}
