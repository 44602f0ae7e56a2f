package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	perr "dashkit/internal/platform/errors"
	"dashkit/internal/platform/logger"
	phttp "dashkit/internal/platform/net/http"
)

// Recover turns a handler panic into a 500 envelope and logs the stack with the request id.
// http.ErrAbortHandler is re-raised so the server can drop the connection
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}
				logger.C(r.Context()).Error().
					Interface("panic", v).
					Bytes("stack", debug.Stack()).
					Str("path", r.URL.Path).
					Msg("panic recovered")
				phttp.RespondError(w, r, perr.PanicErrf("internal server error"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
