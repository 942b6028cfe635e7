package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"spotfolio/internal/config"
	"spotfolio/internal/model"
	"spotfolio/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
)

// SessionAuthMiddleware verifies the provider-issued access token carried in
// the Authorization header. The provider signs its access tokens with HS256
// using the project JWT secret; the subject claim is the identity id. Token
// issuance and refresh stay the provider's business — we only verify.
func SessionAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("Session auth failed: Authorization header missing")
				appErr := model.NewAppError("UNAUTHORIZED", "Authentication is required.", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				logger.Warn("Session auth failed: invalid Authorization header format")
				appErr := model.NewAppError("UNAUTHORIZED", "Invalid Authorization header.", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}
			tokenString := headerParts[1]

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(cfg.Identity.JWTSecret), nil
			})
			if err != nil {
				logger.Warn("Session auth failed: invalid token", "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "The session token is invalid or expired.", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || !token.Valid {
				logger.Warn("Session auth failed: unexpected claims type")
				appErr := model.NewAppError("INVALID_TOKEN", "The session token is invalid.", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			subject, err := claims.GetSubject()
			if err != nil || subject == "" {
				logger.Warn("Session auth failed: subject claim missing", "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "The session token carries no identity.", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			ctx := context.WithValue(r.Context(), model.IdentityIDKey, subject)
			ctx = context.WithValue(ctx, model.AccessTokenKey, tokenString)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentityIDFromContext returns the authenticated identity id set by
// SessionAuthMiddleware.
func GetIdentityIDFromContext(ctx context.Context) (string, error) {
	value, ok := ctx.Value(model.IdentityIDKey).(string)
	if !ok || value == "" {
		return "", model.NewAppError("INTERNAL_SERVER_ERROR", "No identity in request context.", "", model.ErrInternalServer)
	}
	return value, nil
}

// GetAccessTokenFromContext returns the raw bearer token for passthrough
// calls to the identity provider.
func GetAccessTokenFromContext(ctx context.Context) (string, error) {
	value, ok := ctx.Value(model.AccessTokenKey).(string)
	if !ok || value == "" {
		return "", model.NewAppError("INTERNAL_SERVER_ERROR", "No access token in request context.", "", model.ErrInternalServer)
	}
	return value, nil
}
