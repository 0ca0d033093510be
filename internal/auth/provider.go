package auth

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SessionCookieName is the cookie that carries the session token.
const SessionCookieName = "session_token"

// Provider resolves the current user of a request.
type Provider struct {
	issuer *Issuer
}

func NewProvider(issuer *Issuer) *Provider {
	return &Provider{issuer: issuer}
}

// UserID returns the authenticated user id, or false when the request has no
// valid session. A bearer token takes precedence over the cookie.
func (p *Provider) UserID(r *http.Request) (uint, bool) {
	token := bearerToken(r)
	if token == "" {
		if c, err := r.Cookie(SessionCookieName); err == nil {
			token = c.Value
		}
	}
	if token == "" {
		return 0, false
	}
	claims, err := p.issuer.Verify(token)
	if err != nil {
		return 0, false
	}
	return claims.UserID, true
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Identity is anything that can tell who made a request.
type Identity interface {
	UserID(r *http.Request) (uint, bool)
}

type contextKey struct{}

// WithUserID returns a copy of ctx carrying the user id.
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// UserIDFromContext returns the user id set by RequireUser.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(contextKey{}).(uint)
	return id, ok && id != 0
}

// RequireUser hands requests without a session to unauthorized and otherwise
// passes the user id down through the request context.
func RequireUser(identity Identity, unauthorized http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := identity.UserID(r)
			if !ok {
				unauthorized(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// SetSessionCookie stores the token in an HttpOnly cookie.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
