package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-0123456789"

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Hour)

	tok, err := issuer.Issue(42, "alice@example.com")
	require.NoError(t, err)

	claims, err := issuer.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
}

func TestVerify_Rejects(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Hour)
	valid, err := issuer.Issue(1, "a@example.com")
	require.NoError(t, err)

	expired, err := NewIssuer(testSecret, -time.Minute).Issue(1, "a@example.com")
	require.NoError(t, err)

	otherKey, err := NewIssuer("another-secret-987654321", time.Hour).Issue(1, "a@example.com")
	require.NoError(t, err)

	noUser, err := issuer.Issue(0, "a@example.com")
	require.NoError(t, err)

	tests := map[string]string{
		"expired":      expired,
		"wrong secret": otherKey,
		"malformed":    "not.a.jwt",
		"tampered":     valid + "x",
		"zero user id": noUser,
		"empty string": "",
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := issuer.Verify(tok)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestProvider_UserID(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Hour)
	provider := NewProvider(issuer)
	tok, err := issuer.Issue(7, "u@example.com")
	require.NoError(t, err)

	t.Run("bearer header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/todos", nil)
		r.Header.Set("Authorization", "Bearer "+tok)
		id, ok := provider.UserID(r)
		assert.True(t, ok)
		assert.Equal(t, uint(7), id)
	})

	t.Run("cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/todos", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tok})
		id, ok := provider.UserID(r)
		assert.True(t, ok)
		assert.Equal(t, uint(7), id)
	})

	t.Run("no session", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/todos", nil)
		_, ok := provider.UserID(r)
		assert.False(t, ok)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/todos", nil)
		r.Header.Set("Authorization", "Basic "+tok)
		_, ok := provider.UserID(r)
		assert.False(t, ok)
	})
}

type staticIdentity struct {
	id uint
	ok bool
}

func (s staticIdentity) UserID(*http.Request) (uint, bool) { return s.id, s.ok }

func TestRequireUser(t *testing.T) {
	var seen uint
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	deny := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
	}

	t.Run("unauthenticated", func(t *testing.T) {
		seen = 0
		rec := httptest.NewRecorder()
		RequireUser(staticIdentity{}, deny)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
		assert.Zero(t, seen)
	})

	t.Run("authenticated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireUser(staticIdentity{id: 9, ok: true}, deny)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, uint(9), seen)
	})
}

func TestSessionCookies(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "tok", time.Hour, true)
	c := rec.Result().Cookies()[0]
	assert.Equal(t, SessionCookieName, c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.Equal(t, 3600, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)

	rec = httptest.NewRecorder()
	ClearSessionCookie(rec, false)
	c = rec.Result().Cookies()[0]
	assert.Equal(t, "", c.Value)
	assert.True(t, c.MaxAge < 0)
}
