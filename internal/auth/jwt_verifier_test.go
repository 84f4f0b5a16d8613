package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"promptkit/internal/domain"
	"promptkit/internal/domain/models"
)

func testVerifier(t *testing.T) (*SupabaseJWTVerifier, *ecdsa.PrivateKey) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	kf := func(*jwt.Token) (interface{}, error) { return &key.PublicKey, nil }
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewJWTVerifierWithKeyfunc(kf, logger), key
}

func sign(t *testing.T, key *ecdsa.PrivateKey, claims models.SupabaseClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func validClaims() models.SupabaseClaims {
	return models.SupabaseClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "8f14e45f-ceea-467f-a0e6-2b1a6f7c5c11",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email:        "ada@example.com",
		Role:         "authenticated",
		UserMetadata: map[string]interface{}{"username": "ada"},
	}
}

func TestVerifyToken(t *testing.T) {
	v, key := testVerifier(t)

	claims, err := v.VerifyToken(sign(t, key, validClaims()))
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.GetUserID() != "8f14e45f-ceea-467f-a0e6-2b1a6f7c5c11" {
		t.Errorf("user id = %q", claims.GetUserID())
	}
	if claims.Username() != "ada" {
		t.Errorf("username = %q", claims.Username())
	}
}

func TestVerifyToken_Rejects(t *testing.T) {
	v, key := testVerifier(t)

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	anon := validClaims()
	anon.Role = "anon"

	noSubject := validClaims()
	noSubject.Subject = ""

	noExpiry := validClaims()
	noExpiry.ExpiresAt = nil

	hmacToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims()).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign hmac: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-jwt"},
		{name: "expired", token: sign(t, key, expired)},
		{name: "anonymous role", token: sign(t, key, anon)},
		{name: "missing subject", token: sign(t, key, noSubject)},
		{name: "missing expiry", token: sign(t, key, noExpiry)},
		{name: "hmac algorithm", token: hmacToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.VerifyToken(tt.token)
			if !errors.Is(err, domain.ErrUnauthorized) {
				t.Errorf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestUsername_FallsBackToEmail(t *testing.T) {
	c := validClaims()
	c.UserMetadata = nil
	if got := c.Username(); got != "ada@example.com" {
		t.Errorf("Username() = %q", got)
	}
}
