package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"orgauth/internal/auth"
	"orgauth/internal/response"
)

// ContextKey type for context keys
type ContextKey string

const IdentityContextKey ContextKey = "identity"

// Identity is the caller as asserted by a verified token. The user record is not re-read,
// so it may no longer exist.
type Identity struct {
	UserID    string
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// TokenVerifier decodes and validates bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Authenticator guards protected routes. revoker may be nil when no denylist is configured.
type Authenticator struct {
	tokens  TokenVerifier
	revoker auth.Revoker
	log     logrus.FieldLogger
}

func NewAuthenticator(tokens TokenVerifier, revoker auth.Revoker, log logrus.FieldLogger) *Authenticator {
	return &Authenticator{tokens: tokens, revoker: revoker, log: log}
}

// JWTMiddleware rejects requests without a bearer token (401) or with an unusable one (403)
// and stores the caller's Identity in the request context.
func (a *Authenticator) JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, present := bearerToken(r.Header.Get("Authorization"))
		if !present {
			response.SendError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if tokenString == "" {
			response.SendError(w, http.StatusForbidden, "Invalid token")
			return
		}

		claims, err := a.tokens.Verify(tokenString)
		if err != nil {
			a.log.WithError(err).WithField("path", r.URL.Path).Debug("token rejected")
			response.SendError(w, http.StatusForbidden, "Invalid token")
			return
		}

		if a.revoker != nil {
			revoked, err := a.revoker.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				a.log.WithError(err).Error("checking token denylist")
				response.SendError(w, http.StatusForbidden, "Invalid token")
				return
			}
			if revoked {
				response.SendError(w, http.StatusForbidden, "Invalid token")
				return
			}
		}

		identity := Identity{UserID: claims.UserID, Email: claims.Email, TokenID: claims.ID}
		if claims.ExpiresAt != nil {
			identity.ExpiresAt = claims.ExpiresAt.Time
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, IdentityContextKey, identity)
}

// GetIdentity returns the authenticated caller, or false outside JWTMiddleware.
func GetIdentity(r *http.Request) (Identity, bool) {
	identity, ok := r.Context().Value(IdentityContextKey).(Identity)
	return identity, ok
}

// bearerToken reports whether the header carries any credential and returns it
// when it is a well-formed bearer token.
func bearerToken(header string) (token string, present bool) {
	parts := strings.Fields(header)
	if len(parts) < 2 {
		return "", false
	}
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", true
	}
	return parts[1], true
}
