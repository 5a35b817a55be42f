package fakeapi

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// signingKey signs every token the fake API issues.
var signingKey = []byte("storefront-fakeapi")

// IssueToken signs a token for userID that expires after ttl. A negative
// ttl yields an already expired token.
func (s *Server) IssueToken(userID, email string, ttl time.Duration) string {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iss":   "fakeapi",
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		panic(fmt.Sprintf("fakeapi: sign token: %v", err))
	}
	return signed
}

// verifyToken returns the subject of a valid token.
func verifyToken(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	return token.Claims.GetSubject()
}
