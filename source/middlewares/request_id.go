package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

const (
	REQUEST_ID_HEADER = "X-Request-Id"

	requestIDKey = contextKey("request_id")
)

// RequestID reuses an incoming X-Request-Id when it is short enough to trust,
// otherwise mints a new one. The id is echoed on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(REQUEST_ID_HEADER))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		w.Header().Set(REQUEST_ID_HEADER, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
