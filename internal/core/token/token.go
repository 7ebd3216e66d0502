// Package token owns the session token lifecycle: issue, parse, and the
// silent-renewal policy. Tokens are stateless HS256 JWTs carried in an
// HTTP-only cookie; there is no server-side revocation list.
package token

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie the token travels in.
const CookieName = "token"

const (
	// DefaultTTL is the lifetime of a freshly issued token.
	DefaultTTL = 7 * 24 * time.Hour
	// DefaultRenewWithin is the remaining-lifetime threshold below which the
	// edge gate mints a replacement token.
	DefaultRenewWithin = 2 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

// Claims are the identity claims embedded in a session token. For role=client
// principals ID is the Client (profile) id, not the login identity id.
type Claims struct {
	ID        string
	Email     string
	Name      string
	Role      string
	ExpiresAt time.Time
}

// Issuer signs and validates session tokens.
type Issuer struct {
	secret      []byte
	ttl         time.Duration
	renewWithin time.Duration
}

func NewIssuer(secret string, ttl, renewWithin time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if renewWithin <= 0 {
		renewWithin = DefaultRenewWithin
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, renewWithin: renewWithin}
}

// TTL returns the configured token lifetime.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue signs a token for the given claims with a fresh expiry.
func (i *Issuer) Issue(c Claims) (string, error) {
	claims := jwt.MapClaims{
		"id":    c.ID,
		"email": c.Email,
		"name":  c.Name,
		"role":  c.Role,
		"exp":   time.Now().Add(i.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Parse validates the signature and expiry and returns the embedded claims.
// An expired token fails exactly like a malformed one.
func (i *Issuer) Parse(raw string) (Claims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !tkn.Valid {
		return Claims{}, ErrInvalidToken
	}

	out := Claims{
		ID:    str(claims["id"]),
		Email: str(claims["email"]),
		Name:  str(claims["name"]),
		Role:  str(claims["role"]),
	}
	if exp, ok := claims["exp"].(float64); ok {
		out.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return out, nil
}

// ShouldRenew reports whether the token is inside its renewal window: still
// valid but with less than renewWithin of lifetime left.
func (i *Issuer) ShouldRenew(c Claims, now time.Time) bool {
	remaining := c.ExpiresAt.Sub(now)
	return remaining > 0 && remaining < i.renewWithin
}

// Cookie builds the session cookie carrying a signed token.
func Cookie(value string, maxAge time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredCookie builds a cookie that clears the session client-side. The
// signature itself stays valid until expiry (stateless signing).
func ExpiredCookie(secure bool) *http.Cookie {
	c := Cookie("", 0, secure)
	c.MaxAge = -1
	return c
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
