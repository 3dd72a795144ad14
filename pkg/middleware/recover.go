package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/muthuvel/santhai/pkg/logger"
	"github.com/muthuvel/santhai/pkg/response"
)

// Recovery turns a handler panic into a logged stack trace and a 500.
// Register it after the outer middleware so it wraps every handler:
//
//	r.Use(metrics.Middleware())
//	r.Use(reqid.Middleware())
//	r.Use(middleware.Recovery)
//	r.Use(middleware.Logger)
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					"error", fmt.Sprintf("%v", err),
					"stack", string(debug.Stack()),
					"method", r.Method,
					"path", r.URL.Path,
				)
				response.Error(w, http.StatusInternalServerError, "Internal Server Error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
