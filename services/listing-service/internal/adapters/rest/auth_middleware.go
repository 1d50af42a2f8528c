package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/yuriynekrasov/hizzle/pkg/rest_common"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/core/domain"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/core/port"
)

type claimsKey struct{}

type AuthMiddleware struct {
	validator port.TokenValidatorPort
}

func NewAuthMiddleware(validator port.TokenValidatorPort) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// Authenticate проверяет Bearer-токен и кладет claims в контекст
func (am *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			rest_common.WriteJSONError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			rest_common.WriteJSONError(w, http.StatusUnauthorized, "Invalid token format")
			return
		}

		claims, err := am.validator.ValidateToken(r.Context(), tokenString)
		if err != nil {
			rest_common.WriteJSONError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole пропускает только запросы с нужной ролью; ставится после Authenticate
func (am *AuthMiddleware) RequireRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(claimsKey{}).(*domain.Claims)
			if !ok {
				rest_common.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if claims.Role != requiredRole {
				rest_common.WriteJSONError(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
