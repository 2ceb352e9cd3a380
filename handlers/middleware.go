package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// RequestID tags every request with a generated ID, echoes it in the
// X-Request-ID response header, and logs the request once served.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r)

		log.WithFields(log.Fields{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
			"duration":   time.Since(start).String(),
		}).Debug("request served")
	})
}
