package token

import (
	"testing"
	"time"
)

func testIssuer(ttl, renewWithin time.Duration) *Issuer {
	return NewIssuer("test-secret", ttl, renewWithin)
}

func TestIssueAndParse(t *testing.T) {
	issuer := testIssuer(time.Hour, 0)

	signed, err := issuer.Issue(Claims{ID: "u1", Email: "a@b.c", Name: "Ana", Role: "admin"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := issuer.Parse(signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.ID != "u1" || claims.Email != "a@b.c" || claims.Name != "Ana" || claims.Role != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt.Before(time.Now()) {
		t.Fatalf("expiry in the past: %v", claims.ExpiresAt)
	}
}

func TestParse_ExpiredFailsLikeMalformed(t *testing.T) {
	expired := testIssuer(-time.Hour, 0)
	signed, err := expired.Issue(Claims{ID: "u1", Role: "admin"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	issuer := testIssuer(time.Hour, 0)
	if _, err := issuer.Parse(signed); err != ErrInvalidToken {
		t.Fatalf("expired token: got %v, want ErrInvalidToken", err)
	}
	if _, err := issuer.Parse("not-a-token"); err != ErrInvalidToken {
		t.Fatalf("malformed token: got %v, want ErrInvalidToken", err)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	signed, err := testIssuer(time.Hour, 0).Issue(Claims{ID: "u1", Role: "admin"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other := NewIssuer("other-secret", time.Hour, 0)
	if _, err := other.Parse(signed); err != ErrInvalidToken {
		t.Fatalf("foreign signature: got %v, want ErrInvalidToken", err)
	}
}

func TestShouldRenew(t *testing.T) {
	issuer := testIssuer(DefaultTTL, DefaultRenewWithin)
	now := time.Now()

	cases := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{"fresh token outside window", now.Add(6 * 24 * time.Hour), false},
		{"inside renewal window", now.Add(36 * time.Hour), true},
		{"just under the threshold", now.Add(DefaultRenewWithin - time.Minute), true},
		{"already expired", now.Add(-time.Minute), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := issuer.ShouldRenew(Claims{ExpiresAt: tc.expiresAt}, now)
			if got != tc.want {
				t.Fatalf("ShouldRenew=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestCookieAttributes(t *testing.T) {
	c := Cookie("value", DefaultTTL, true)
	if c.Name != CookieName {
		t.Fatalf("cookie name %q", c.Name)
	}
	if !c.HttpOnly || !c.Secure || c.Path != "/" {
		t.Fatalf("unexpected cookie attributes: %+v", c)
	}
	if c.MaxAge != int(DefaultTTL.Seconds()) {
		t.Fatalf("max age %d", c.MaxAge)
	}

	cleared := ExpiredCookie(false)
	if cleared.Value != "" || cleared.MaxAge != -1 {
		t.Fatalf("expired cookie should clear the session: %+v", cleared)
	}
}
