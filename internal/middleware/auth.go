package middleware

import (
	"net/http"
	"strings"

	"agrocampo-be/internal/user"
	"agrocampo-be/internal/utils"
)

// AuthMiddleware parses an optional Bearer token and injects the user's
// identity into the request context. Requests without a token pass through
// anonymously; requests with a bad token are rejected outright.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			utils.WriteJSONError(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Email, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects anonymous requests.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects requests whose authenticated role is not in the list.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
				utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
				return
			}

			role := utils.GetUserRoleFromContext(r.Context())
			for _, allowed := range roles {
				if role == string(allowed) {
					next.ServeHTTP(w, r)
					return
				}
			}

			utils.WriteJSONError(w, "insufficient permissions", http.StatusForbidden)
		})
	}
}
