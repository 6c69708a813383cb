package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestVerifier(t *testing.T) (*Verifier, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	v, err := NewVerifier(pemBytes)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	return v, key
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims TokenClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	s, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func accessClaims(subject string) TokenClaims {
	return TokenClaims{
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestValidateAccessToken(t *testing.T) {
	v, key := newTestVerifier(t)

	claims, err := v.ValidateAccessToken(signToken(t, key, accessClaims("auth0|abc")))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != "auth0|abc" {
		t.Fatalf("subject = %q", claims.Subject)
	}
}

func TestValidateAccessToken_RejectsRefreshToken(t *testing.T) {
	v, key := newTestVerifier(t)

	c := accessClaims("auth0|abc")
	c.TokenType = "refresh"
	if _, err := v.ValidateAccessToken(signToken(t, key, c)); err == nil {
		t.Fatal("refresh token accepted")
	}
}

func TestValidateAccessToken_RejectsMissingSubject(t *testing.T) {
	v, key := newTestVerifier(t)

	if _, err := v.ValidateAccessToken(signToken(t, key, accessClaims(""))); err == nil {
		t.Fatal("token without subject accepted")
	}
}

func TestValidateAccessToken_RejectsExpired(t *testing.T) {
	v, key := newTestVerifier(t)

	c := accessClaims("auth0|abc")
	c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	if _, err := v.ValidateAccessToken(signToken(t, key, c)); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestValidateAccessToken_RejectsWrongKey(t *testing.T) {
	v, _ := newTestVerifier(t)
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	if _, err := v.ValidateAccessToken(signToken(t, otherKey, accessClaims("auth0|abc"))); err == nil {
		t.Fatal("token signed by another key accepted")
	}
}

func TestValidateAccessToken_RejectsHMAC(t *testing.T) {
	v, _ := newTestVerifier(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims("auth0|abc"))
	s, err := token.SignedString([]byte("shared-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := v.ValidateAccessToken(s); err == nil {
		t.Fatal("hmac token accepted")
	}
}

func TestNewVerifier_RejectsBadPEM(t *testing.T) {
	if _, err := NewVerifier(nil); err == nil {
		t.Fatal("empty pem accepted")
	}
	if _, err := NewVerifier([]byte("not a pem")); err == nil {
		t.Fatal("garbage pem accepted")
	}
}
