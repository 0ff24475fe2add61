package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/iurnickita/entitlementsupport/internal/auth/config"
)

type Auth interface {
	Middleware(h http.Handler) http.Handler
}

const (
	AnonymousUser      = "anonymous"
	cookieSupportToken = "entitlementSupportToken"
)

var (
	ErrNoToken      = errors.New("no token")
	ErrInvalidToken = errors.New("invalid token")
)

type supportUserKey struct{}

type auth struct {
	secret []byte
}

// Without a session secret every request passes as the anonymous user.
func NewAuth(cfg config.Config) Auth {
	return &auth{secret: []byte(cfg.SessionSecret)}
}

func (a *auth) Middleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(a.secret) == 0 {
			h.ServeHTTP(w, r)
			return
		}

		// получение пользователя поддержки
		user, err := a.getSupportUser(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		// записываем и передаём управление хендлеру
		ctx := context.WithValue(r.Context(), supportUserKey{}, user)
		h.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *auth) getSupportUser(r *http.Request) (string, error) {
	// cookie хоста или заголовок Authorization
	var raw string
	if tokenCookie, err := r.Cookie(cookieSupportToken); err == nil {
		raw = tokenCookie.Value
	} else if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		raw = strings.TrimPrefix(header, "Bearer ")
	}
	if raw == "" {
		return "", ErrNoToken
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// SupportUser returns the authenticated staff username stored by Middleware.
func SupportUser(ctx context.Context) string {
	if user, ok := ctx.Value(supportUserKey{}).(string); ok && user != "" {
		return user
	}
	return AnonymousUser
}

// IssueToken signs a session token for username. The host platform normally
// does this; the panel only verifies.
func IssueToken(secret, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return token.SignedString([]byte(secret))
}
