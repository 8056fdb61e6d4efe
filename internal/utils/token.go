package utils

import (
	"errors" // Error values
	"time"   // Issued-at timestamp

	"github.com/golang-jwt/jwt/v5" // JWT library
	"github.com/google/uuid"       // Unique token ids
)

// ErrEmptySecret is returned when no signing secret is configured
var ErrEmptySecret = errors.New("token secret is empty")

// GenerateToken mints a new opaque session token. The token carries no user
// data; it only has to be unique and carry a valid signature. Whom it belongs
// to is decided by the store, and it has no expiry.
func GenerateToken(secret string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	claims := jwt.RegisteredClaims{
		ID:       uuid.NewString(),               // Unique token id
		IssuedAt: jwt.NewNumericDate(time.Now()), // Issued at current time
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// VerifyToken checks that a token was minted with secret
func VerifyToken(tokenStr, secret string) error {
	if secret == "" {
		return ErrEmptySecret
	}
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	// Check for parsing errors
	if err != nil {
		return err
	}
	if !token.Valid {
		return jwt.ErrSignatureInvalid
	}
	return nil
}
