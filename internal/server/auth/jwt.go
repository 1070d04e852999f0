// Package auth issues and verifies the bearer tokens that authenticate
// API requests. Tokens are self-contained: verification needs only the
// signing secret, never a store lookup.
package auth

import (
	"errors"
	"time"

	"github.com/commently/commently/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: the registered claims plus the user's email
// and record id. Nothing else is ever embedded, so the password hash cannot
// leak through a token by construction.
type Claims struct {
	jwt.RegisteredClaims
	Email  string `json:"email"`
	UserID string `json:"uid"`
}

// GenerateToken signs a HS256 token over {email, userID} that expires
// validityDuration from now.
func GenerateToken(email, userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Email:  email,
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and expiry of tokenString and returns
// its claims. Only HS256 is accepted; a token signed with any other method
// is rejected. Returns common.ErrTokenExpired for expired tokens and
// common.ErrInvalidToken for everything else that fails verification.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
