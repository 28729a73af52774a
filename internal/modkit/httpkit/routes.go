package httpkit

import (
	"net/http"

	phttp "solna/internal/platform/net/http"
)

// MountRoot applies the root middleware, installs the JSON fallbacks and hands r to mount
// middleware must be registered before any route on the chi mux
func MountRoot(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	if len(mw) > 0 {
		r.Use(mw...)
	}
	r.NotFound(phttp.NotFoundJSON)
	r.MethodNotAllowed(phttp.MethodNotAllowedJSON)
	mount(r)
}
