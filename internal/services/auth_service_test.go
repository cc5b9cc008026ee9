package services

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

const testIssuer = "go-task-api-test"

var testSigningKey = []byte("test-signing-key")

func newTokenTestService(ttl time.Duration) *authServiceImpl {
	// The pool stays nil: only the token half of the service is
	// exercised here, the storage half is covered through handler stubs.
	return &authServiceImpl{
		logger:            zerolog.Nop(),
		jwtIssuer:         testIssuer,
		jwtSigningKey:     testSigningKey,
		jwtAccessTokenTTL: ttl,
	}
}

func TestIssueTokenRoundTrip(t *testing.T) {
	s := newTokenTestService(30 * time.Minute)

	token, expiresAt, err := s.IssueToken("user-1")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	remaining := time.Until(expiresAt)
	if remaining < 29*time.Minute || remaining > 30*time.Minute {
		t.Fatalf("expected expiry about 30 minutes out, got %v", remaining)
	}

	claims, err := s.parseToken(token)
	if err != nil {
		t.Fatalf("failed to parse issued token: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("expected subject user-1, got %q", claims.Subject)
	}
	if claims.Issuer != testIssuer {
		t.Fatalf("expected issuer %q, got %q", testIssuer, claims.Issuer)
	}
}

func TestParseTokenExpired(t *testing.T) {
	s := newTokenTestService(-time.Minute)

	token, _, err := s.IssueToken("user-1")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	_, err = s.parseToken(token)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected expired token error, got %v", err)
	}
}

func TestParseTokenMalformed(t *testing.T) {
	s := newTokenTestService(30 * time.Minute)

	_, err := s.parseToken("not-a-token")
	if err == nil {
		t.Fatal("expected error for garbage token")
	}
	if errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("garbage token must not report expiry, got %v", err)
	}
}

func TestParseTokenWrongKey(t *testing.T) {
	s := newTokenTestService(30 * time.Minute)

	other := newTokenTestService(30 * time.Minute)
	other.jwtSigningKey = []byte("another-key")

	token, _, err := other.IssueToken("user-1")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	_, err = s.parseToken(token)
	if err == nil {
		t.Fatal("expected signature verification failure")
	}
}

func TestParseTokenWrongIssuer(t *testing.T) {
	s := newTokenTestService(30 * time.Minute)

	other := newTokenTestService(30 * time.Minute)
	other.jwtIssuer = "someone-else"

	token, _, err := other.IssueToken("user-1")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	_, err = s.parseToken(token)
	if err == nil {
		t.Fatal("expected issuer mismatch failure")
	}
}

func TestParseTokenRejectsUnsignedToken(t *testing.T) {
	s := newTokenTestService(30 * time.Minute)

	now := time.Now()
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(now.Add(30 * time.Minute)),
		IssuedAt:  jwt.NewNumericDate(now),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	_, err = s.parseToken(token)
	if err == nil {
		t.Fatal("expected non-HMAC token to be rejected")
	}
}

func TestIssueTokenUniqueIDs(t *testing.T) {
	s := newTokenTestService(30 * time.Minute)

	first, _, err := s.IssueToken("user-1")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	second, _, err := s.IssueToken("user-1")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct tokens for repeated issuance")
	}
}
