package http

import (
	"net/http"

	perr "solna/internal/platform/errors"
	pnet "solna/internal/platform/net"
	"solna/internal/platform/net/http/bind"
)

// GetJSON mounts a pure JSON handler for GET
func GetJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, JSONHandlerNoBody(h))
}

// PostJSON mounts a pure JSON handler for POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error), opts ...bind.JSONOptions) {
	r.Post(path, JSONHandler(h, opts...))
}

// GetResponse mounts a return-style handler for GET
func GetResponse(r Router, path string, h func(*http.Request) Response) {
	r.Get(path, ResponseHandler(h))
}

// NotFoundJSON answers unknown routes with the error envelope
func NotFoundJSON(w http.ResponseWriter, r *http.Request) {
	RespondError(w, r, perr.NotFoundf("no route for %s %s", r.Method, r.URL.Path))
}

// MethodNotAllowedJSON answers known routes hit with the wrong method
func MethodNotAllowedJSON(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusMethodNotAllowed, Envelope{
		StatusCode: http.StatusMethodNotAllowed,
		Status:     http.StatusText(http.StatusMethodNotAllowed),
		Error:      r.Method + " not allowed on " + r.URL.Path,
		RequestID:  pnet.RequestID(r.Context()),
	})
}
