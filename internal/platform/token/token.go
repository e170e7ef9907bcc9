// Package token signs and verifies the stateless session token carrying the
// identity claims for one account.
package token

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mhodge11/chatty-backend/internal/apperror"
)

// Claims are the identity fields embedded in the session token. Everything
// needed to serve a request is reconstructible from these alone; nothing is
// stored server side.
type Claims struct {
	UserID      string `json:"userId"`
	AuthID      string `json:"authId"`
	UID         string `json:"uId"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	AvatarColor string `json:"avatarColor"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies session tokens with a server secret. Tokens carry
// no expiry; a session ends when the caller clears it.
type Issuer struct {
	secret []byte
}

// NewIssuer creates an Issuer signing with the provided secret.
func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret)}
}

// Sign produces an HS256-signed token over the claims.
func (i *Issuer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify decodes a token and returns its claims. Any malformed or tampered
// token yields an unauthorized error.
func (i *Issuer) Verify(tokenStr string) (Claims, error) {
	claims := Claims{}
	t, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is accepted; reject algorithm-substitution tokens.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !t.Valid {
		return Claims{}, apperror.NewUnauthorized("Token is not valid. Please login.")
	}
	return claims, nil
}
