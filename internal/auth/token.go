// Package auth issues and verifies the admin session token. There is a
// single shared admin password and a single role; the token only proves
// the password was presented recently.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrWrongPassword = errors.New("wrong admin password")
	ErrInvalidToken  = errors.New("invalid admin token")
)

// DefaultSessionTTL is how long an admin session stays valid.
const DefaultSessionTTL = 12 * time.Hour

type Admin struct {
	password []byte
	secret   []byte
	ttl      time.Duration
}

func NewAdmin(password, secret string) *Admin {
	return &Admin{
		password: []byte(password),
		secret:   []byte(secret),
		ttl:      DefaultSessionTTL,
	}
}

// Login checks the shared password and returns a signed session token.
func (a *Admin) Login(password string) (string, error) {
	if subtle.ConstantTimeCompare(a.password, []byte(password)) != 1 {
		return "", ErrWrongPassword
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("unable to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks a session token's signature and expiry.
func (a *Admin) Verify(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

// ExtractToken pulls the session token from the request, preferring the
// cookie and falling back to the Authorization header.
func ExtractToken(r *http.Request) string {
	if cookie, err := r.Cookie("admin_token"); err == nil {
		if cookie.Value != "" {
			return cookie.Value
		}
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}
