package handler

import (
	"fmt"
	"grafik-auth-api/common"
	"grafik-auth-api/logger"
	"net/http"
)

// RecoverMiddleware is the outermost transport boundary: a panic that
// escapes a handler becomes an INTERNAL_SERVER_ERROR envelope instead of
// killing the connection.
func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Log.WithField("fault", fmt.Sprint(rec)).Error("Panic recovered in HTTP handler")
				common.WriteResponse(w, http.StatusInternalServerError,
					common.NewResponse(nil, fmt.Sprint(rec), common.CodeInternalServerError))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
