package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/startline/internal/server/handlers"
)

// AuthMiddleware проверяет JWT станции старта.
// Защищает API стартов, реестр трекеров и чтение треков; webhook и health открыты.
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("Missing Authorization header", "path", r.URL.Path)
				writeError(w, "unauthorized: missing token", http.StatusUnauthorized)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			scheme, tokenString, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") {
				logger.Warn("Invalid Authorization header format", "path", r.URL.Path)
				writeError(w, "unauthorized: invalid token format", http.StatusUnauthorized)
				return
			}

			claims, err := handlers.ValidateAccessToken(jwtConfig, strings.TrimSpace(tokenString))
			if err != nil {
				logger.Warn("Invalid access token", "error", err)
				writeError(w, "unauthorized: invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), handlers.OrganizerIDKey, claims.OrganizerID)
			ctx = context.WithValue(ctx, handlers.OrganizerNameKey, claims.Name)

			logger.Debug("Organizer authenticated", "organizer_id", claims.OrganizerID, "name", claims.Name)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
