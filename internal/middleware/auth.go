package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/anadolusms/smspanel/internal/models"
)

// APIKeyHeader carries the tenant's panel API key.
const APIKeyHeader = "X-API-Key"

const tenantContextKey contextKey = "tenant"

// TenantResolver looks up the tenant owning an API key.
type TenantResolver interface {
	GetByAPIKey(ctx context.Context, apiKey string) (*models.Tenant, error)
}

// Auth authenticates every request by its API key and stores the resolved
// tenant in the request context. Unknown keys get 401, tenants that are not
// active get 403.
func Auth(resolver TenantResolver, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get(APIKeyHeader)
			if apiKey == "" {
				writeAuthError(w, r, http.StatusUnauthorized, ErrorCodeUnauthorized, "API key is required")
				return
			}

			tenant, err := resolver.GetByAPIKey(r.Context(), apiKey)
			if err != nil {
				writeAuthError(w, r, http.StatusUnauthorized, ErrorCodeUnauthorized, "Invalid API key")
				return
			}

			if tenant.Status != models.TenantStatusActive {
				logger.Warn("Inactive tenant rejected",
					zap.Int64("tenantID", tenant.ID),
					zap.String("status", string(tenant.Status)))
				writeAuthError(w, r, http.StatusForbidden, ErrorCodeForbidden, "Account is not active")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), tenant)))
		})
	}
}

// RequireOperator gates operator-only routes. Must run after Auth.
func RequireOperator() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenant := GetTenant(r.Context())
			if tenant == nil || tenant.Role != models.TenantRoleOperator {
				writeAuthError(w, r, http.StatusForbidden, ErrorCodeForbidden, "Operator role required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WithTenant stores the authenticated tenant in the context.
func WithTenant(ctx context.Context, tenant *models.Tenant) context.Context {
	return context.WithValue(ctx, tenantContextKey, tenant)
}

// GetTenant returns the authenticated tenant, or nil outside an Auth chain.
func GetTenant(ctx context.Context) *models.Tenant {
	tenant, _ := ctx.Value(tenantContextKey).(*models.Tenant)
	return tenant
}

func writeAuthError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.WriteHeader(status)
	render.JSON(w, r, map[string]interface{}{
		"error":   code,
		"message": message,
	})
}
