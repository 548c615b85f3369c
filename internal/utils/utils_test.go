package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("secret", 42, "ADMIN", 60)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if d := time.Until(tok.Exp); d < 59*time.Minute || d > 61*time.Minute {
		t.Fatalf("exp in %s, want ~60m", d)
	}
	c, err := ParseAccessToken("secret", tok.Token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if c.AdminID != 42 || c.Role != "ADMIN" {
		t.Fatalf("claims = %+v", c)
	}
}

func TestParseAccessTokenRejects(t *testing.T) {
	good, _ := NewAccessToken("secret", 1, "ADMIN", 5)
	expired, _ := NewAccessToken("secret", 1, "ADMIN", -5)
	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "1", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	noSub, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "ADMIN", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))

	cases := map[string]struct{ secret, raw string }{
		"wrong secret": {"other", good.Token},
		"expired":      {"secret", expired.Token},
		"alg none":     {"secret", none},
		"missing sub":  {"secret", noSub},
		"garbage":      {"secret", "not.a.jwt"},
	}
	for name, tc := range cases {
		if _, err := ParseAccessToken(tc.secret, tc.raw); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: err = %v, want ErrInvalidToken", name, err)
		}
	}
}

func TestRefreshTokenHashing(t *testing.T) {
	rt, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if len(rt.Raw) != 96 {
		t.Fatalf("raw length = %d, want 96", len(rt.Raw))
	}
	h := HashRefreshRaw(rt.Raw)
	if len(h) != 64 || h == rt.Raw || h != HashRefreshRaw(rt.Raw) {
		t.Fatalf("hash %q is not a stable sha256 hex digest", h)
	}
	other, _ := NewRefreshToken(7)
	if other.Raw == rt.Raw {
		t.Fatalf("two refresh tokens are identical")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Fatalf("unexpected hash format %q", hash)
	}
	if !VerifyPassword(hash, "hunter22") {
		t.Fatalf("correct password rejected")
	}
	if VerifyPassword(hash, "hunter23") {
		t.Fatalf("wrong password accepted")
	}
}
