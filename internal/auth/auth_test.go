package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iurnickita/entitlementsupport/internal/auth/config"
)

const secret = "session-secret"

func serve(t *testing.T, a Auth, req *http.Request) (int, string) {
	t.Helper()
	var user string
	h := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user = SupportUser(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code, user
}

func TestMiddlewareDisabled(t *testing.T) {
	code, user := serve(t, NewAuth(config.Config{}), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, AnonymousUser, user)
}

func TestMiddleware(t *testing.T) {
	a := NewAuth(config.Config{SessionSecret: secret})

	valid, err := IssueToken(secret, "staff", time.Hour)
	require.NoError(t, err)
	expired, err := IssueToken(secret, "staff", -time.Hour)
	require.NoError(t, err)
	foreign, err := IssueToken("other-secret", "staff", time.Hour)
	require.NoError(t, err)
	anonymous, err := IssueToken(secret, "", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name     string
		prepare  func(r *http.Request)
		wantCode int
		wantUser string
	}{
		{
			name:     "cookie",
			prepare:  func(r *http.Request) { r.AddCookie(&http.Cookie{Name: cookieSupportToken, Value: valid}) },
			wantCode: http.StatusOK,
			wantUser: "staff",
		},
		{
			name:     "bearer header",
			prepare:  func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+valid) },
			wantCode: http.StatusOK,
			wantUser: "staff",
		},
		{name: "no token", prepare: func(*http.Request) {}, wantCode: http.StatusUnauthorized},
		{
			name:     "expired",
			prepare:  func(r *http.Request) { r.AddCookie(&http.Cookie{Name: cookieSupportToken, Value: expired}) },
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "wrong secret",
			prepare:  func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+foreign) },
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "no subject",
			prepare:  func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+anonymous) },
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.prepare(req)
			code, user := serve(t, a, req)
			require.Equal(t, tt.wantCode, code)
			require.Equal(t, tt.wantUser, user)
		})
	}
}
