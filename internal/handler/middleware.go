package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey string

const businessIDKey contextKey = "businessID"

// JWTAuthMiddleware validates Bearer tokens (HS256) and injects the
// token subject into context as the caller's business ID. When the
// matched route carries a {businessId} parameter it must equal the
// subject; tokens cannot reach another tenant's data.
func JWTAuthMiddleware(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("auth: missing token",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeError(w, http.StatusUnauthorized, "missing authentication token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("auth: invalid token format",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeError(w, http.StatusUnauthorized, "invalid token format")
				return
			}

			token, err := jwt.Parse(parts[1], func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !token.Valid {
				logger.Warn("auth: invalid or expired token",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
					zap.Error(err),
				)
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				writeError(w, http.StatusUnauthorized, "token has no subject")
				return
			}

			if pathBusinessID := chi.URLParam(r, "businessId"); pathBusinessID != "" && pathBusinessID != subject {
				logger.Warn("auth: token subject does not match business",
					zap.String("path", r.URL.Path),
					zap.String("subject", subject),
				)
				writeError(w, http.StatusForbidden, "token not valid for this business")
				return
			}

			ctx := context.WithValue(r.Context(), businessIDKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BusinessIDFromContext extracts the authenticated business ID.
func BusinessIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(businessIDKey).(string)
	return v
}
