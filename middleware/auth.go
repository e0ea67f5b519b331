package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ligasport/torneos-api/services"
)

type contextKey string

const identityContextKey contextKey = "identity"

// Authenticate extracts and verifies the bearer token, storing the decoded
// identity in the request context for downstream handlers.
func Authenticate(auth services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "Token no proporcionado")
				return
			}

			identity, err := auth.VerifyToken(token)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "Token inválido o expirado")
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles gates a route group to the given role names. It must run
// after Authenticate.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "Token no proporcionado")
				return
			}

			for _, role := range roles {
				if identity.RolNombre == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeAuthError(w, http.StatusForbidden, "No tienes permisos para realizar esta operación")
		})
	}
}

// IdentityFromContext returns the authenticated caller placed there by
// Authenticate.
func IdentityFromContext(ctx context.Context) (services.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(services.Identity)
	return identity, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
