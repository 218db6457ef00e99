// Package auth implements the token layer: issuing and validating signed
// session tokens, and the per-request gate that resolves a token to an
// identity.
package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/DmitryKarasov/FileService/internal/common"
)

const bearerPrefix = "Bearer "

// Claims is the token payload: the registered subject/iat/exp set plus a
// random per-issuance nonce so two tokens minted for the same subject in
// the same second are never byte-identical.
type Claims struct {
	jwt.RegisteredClaims
	Random string `json:"random"`
}

// JWTService issues and validates HMAC-signed session tokens. The signing
// secret and TTL are fixed at construction; the service holds no other
// state and is safe for concurrent use.
type JWTService struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTService(secret []byte, ttl time.Duration) *JWTService {
	return &JWTService{secret: secret, ttl: ttl}
}

// Issue mints a token for the given subject, valid for the configured TTL.
func (s *JWTService) Issue(subject string) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Random: uuid.NewString(),
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Validate checks the token's signature, structure and expiry and returns
// the embedded subject. An optional "Bearer " prefix is stripped first.
// Every failure mode collapses to common.ErrInvalidToken: the caller only
// needs to know the token does not grant access.
func (s *JWTService) Validate(tokenString string) (string, error) {
	tokenString = strings.TrimPrefix(tokenString, bearerPrefix)

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", common.ErrInvalidToken
	}
	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
