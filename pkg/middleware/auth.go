package middleware

import (
	"errors"
	"net/http"
	"strings"

	"cinema-catalog/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	APIKeyHeader = "X-API-Key"
	adminRole    = "admin"
)

// AdminAuth admits requests carrying either a bearer token issued by the
// identity provider with role=admin, or an API key matching the configured
// bcrypt hash. With auth disabled every request passes.
func AdminAuth(config utils.AuthConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	log := logger.With(zap.String("middleware", "admin_auth"))

	return func(next http.Handler) http.Handler {
		if config.Disabled {
			log.Warn("Admin authentication is disabled")
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key := r.Header.Get(APIKeyHeader); key != "" {
				if config.APIKeyHash == "" ||
					bcrypt.CompareHashAndPassword([]byte(config.APIKeyHash), []byte(key)) != nil {
					log.Warn("Rejected API key", zap.String("path", r.URL.Path))
					utils.ResponseUnauthorized(w, "Invalid API key")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := parseToken(parts[1], config.JWTSecret)
			if err != nil {
				log.Warn("Rejected bearer token", zap.Error(err), zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			if role, _ := claims["role"].(string); role != adminRole {
				sub, _ := claims.GetSubject()
				log.Warn("Non-admin access attempt",
					zap.String("subject", sub),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func parseToken(raw, secret string) (jwt.MapClaims, error) {
	if secret == "" {
		return nil, errors.New("no token secret configured")
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	return claims, nil
}
