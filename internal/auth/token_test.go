package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// 発行されたトークンが正しい鍵で検証でき、クレームを含むことを検証
func TestTokenIssuer_Issue(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	fixed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return fixed }

	signed, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if signed == "" {
		t.Fatal("expected non-empty token")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(func() time.Time { return fixed }))
	if err != nil {
		t.Fatalf("failed to parse issued token: %v", err)
	}
	if !parsed.Valid {
		t.Fatal("issued token is not valid")
	}

	if claims["id"] != "user-1" {
		t.Errorf("id claim = %v, want user-1", claims["id"])
	}
	exp, ok := claims["exp"].(float64)
	if !ok || int64(exp) != fixed.Add(time.Hour).Unix() {
		t.Errorf("exp claim = %v, want issue time + 1h", claims["exp"])
	}
}

// 別の鍵で署名されたトークンが検証に失敗することを検証
func TestTokenIssuer_WrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", time.Hour)

	signed, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		return []byte("secret-b"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err == nil {
		t.Fatal("token signed with a different secret must not verify")
	}
}
