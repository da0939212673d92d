// Package auth issues and verifies the signed access tokens that prove an
// account identity on protected requests.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the registered claim set plus the account identity and email.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

func GenerateToken(userID, email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
		Email:  email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies signature, algorithm and expiry.
//
// It returns common.ErrNoTokenProvided for an empty string,
// common.ErrTokenExpired for a well-signed but stale token and
// common.ErrInvalidToken for everything else.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	if tokenString == "" {
		return nil, common.ErrNoTokenProvided
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// Tokens binds the process-wide secret and validity so callers do not carry
// them around. It is immutable after construction.
type Tokens struct {
	secret   []byte
	validity time.Duration
}

func NewTokens(secretKey string, validity time.Duration) *Tokens {
	return &Tokens{secret: []byte(secretKey), validity: validity}
}

func (t *Tokens) Issue(userID, email string) (string, error) {
	return GenerateToken(userID, email, t.secret, t.validity)
}

func (t *Tokens) Verify(token string) (*Claims, error) {
	return ParseToken(token, t.secret)
}
