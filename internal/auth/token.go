// Package auth はAPIトークンの発行を提供する。
// 登録・ログイン応答にHS256署名のJWTを含める。トークンは発行のみで、
// 後続リクエストでの検証は行わない（観測仕様として保持する挙動）。
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer はAPIトークンの発行器。
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer はTokenIssuerの新しいインスタンスを生成する。
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue はユーザーIDを主体とするJWTを発行する。
// クレームはユーザーID・発行時刻・有効期限のみ。
func (i *TokenIssuer) Issue(userID string) (string, error) {
	now := i.now()
	claims := jwt.MapClaims{
		"id":  userID,
		"iat": now.Unix(),
		"exp": now.Add(i.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("トークンの署名に失敗しました: %w", err)
	}
	return signed, nil
}
