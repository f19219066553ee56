package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lumishot/lumishot/internal/storage"
	"github.com/lumishot/lumishot/pkg/entitlement"
)

// AuthConfig verifies bearer tokens minted by the external identity provider.
type AuthConfig struct {
	JWTSecret string `env:"AUTH_JWT_SECRET,required"`
	Issuer    string `env:"AUTH_ISSUER"`
}

// authClaims is what the identity provider puts in its access tokens.
// Subject is the provider's stable user ID.
type authClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// UserEnsurer maps an identity provider subject onto a local user record.
// Implemented by storage.UserRepo.
type UserEnsurer interface {
	Ensure(ctx context.Context, authID, email string) (storage.User, error)
}

// authMiddleware verifies the bearer JWT, upserts the local user record and
// places the user plus their plan ID into the request context. The plan ID
// stored on the user record is authoritative; billing webhooks keep it
// current.
func authMiddleware(cfg AuthConfig, users UserEnsurer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				respondError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token", nil)
				return
			}

			claims, err := parseToken(cfg, token)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "unauthorized", "invalid token", nil)
				return
			}

			user, err := users.Ensure(r.Context(), claims.Subject, claims.Email)
			if err != nil {
				respondError(w, http.StatusServiceUnavailable, "service_unavailable", "please try again", nil)
				return
			}

			ctx := setUserToContext(r.Context(), user)
			ctx = entitlement.SetPlanIDToContext(ctx, user.PlanID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseToken(cfg AuthConfig, token string) (*authClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	claims := &authClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(cfg.JWTSecret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
