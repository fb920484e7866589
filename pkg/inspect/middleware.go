package inspect

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// reqID tags each incoming request with a unique id under the "req_id"
// context key, which the logger's context handler picks up.
func reqID() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), "req_id", uuid.New().String())
			r = r.WithContext(ctx)

			next.ServeHTTP(w, r)
		})
	}
}
