package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"hrmsconsole/internal/requestctx"
)

const maxRequestIDLength = 128

// RequestID keeps an inbound X-Request-ID or mints a uuid, and echoes it back.
// The same id is forwarded on every backend call made for the request.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := strings.TrimSpace(r.Header.Get(requestctx.Header))
		if reqID == "" || len(reqID) > maxRequestIDLength {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestctx.Header, reqID)
		ctx := requestctx.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestID(ctx context.Context) string {
	return requestctx.GetRequestID(ctx)
}
