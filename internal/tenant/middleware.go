package tenant

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vincula/internal/errors"
	"vincula/internal/httpjson"
)

type contextKey struct{}

var tenantIDKey contextKey

// NewContext returns ctx carrying the tenant id.
func NewContext(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, tenantIDKey, id)
}

// FromContext returns the tenant id placed by Middleware. ok is false on
// requests that never went through it.
func FromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(tenantIDKey).(uuid.UUID)
	return id, ok
}

// Middleware resolves the Authorization bearer token to a tenant id and
// stores it on the request context. Handlers read it with FromContext and
// pass it explicitly into the workflow; nothing downstream touches the
// session store.
func Middleware(resolver *Service, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				httpjson.WriteError(w, logger, errors.NewUnauthorizedError("missing bearer token"))
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			tenantID, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				httpjson.WriteError(w, logger, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), tenantID)))
		})
	}
}
