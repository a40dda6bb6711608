package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rajalakshmi-growphil/zoho-crm-integration/logger"
	"github.com/sirupsen/logrus"
)

// RequestIDMiddleware tags every request with an id for log correlation.
// An id supplied by the caller via X-Request-ID is kept as-is.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		logger.Log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
		}).Info("Request received")

		next.ServeHTTP(w, r)
	})
}
