package middleware

import (
	stdhttp "net/http"
	"runtime/debug"
	"strings"

	perr "solna/internal/platform/errors"
	"solna/internal/platform/logger"
	phttp "solna/internal/platform/net/http"
)

// RecoverJSON converts panics into the JSON error envelope and logs the stack with request id
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			// keep net/http's own abort semantics
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}

			// format stack like chi recover
			stack := strings.Join(strings.Split(string(debug.Stack()), "\n"), "\n\t")
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Str("path", r.URL.Path).
				Msgf("panic recovered\n\t%s", stack)

			phttp.RespondError(w, r, perr.PanicErrf("panic recovered"))
		}()
		next.ServeHTTP(w, r)
	})
}
