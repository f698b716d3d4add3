// pkg/auth/jwt.go
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

const tokenTTL = 24 * time.Hour

// Tokens issues and verifies the two token kinds used by the API.
// User tokens carry a subject (the user id) and nothing else; admin
// tokens carry only the concatenated shared-secret payload and no
// subject, so one kind can never pass the other gate.
type Tokens struct {
	secret []byte
}

func New(secret string) *Tokens {
	return &Tokens{secret: []byte(secret)}
}

type userClaims struct {
	jwt.RegisteredClaims
}

type adminClaims struct {
	Payload string `json:"payload"`
	jwt.RegisteredClaims
}

func (t *Tokens) IssueUser(userID string) (string, error) {
	claims := userClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// VerifyUser returns the user id the token was issued for.
func (t *Tokens) VerifyUser(tokenStr string) (string, error) {
	claims := &userClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, t.key,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (t *Tokens) IssueAdmin(payload string) (string, error) {
	claims := adminClaims{
		Payload: payload,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// VerifyAdmin returns the embedded payload for comparison against the
// configured admin secrets. Tokens with a subject are rejected so a user
// token can never be replayed through the admin gate.
func (t *Tokens) VerifyAdmin(tokenStr string) (string, error) {
	claims := &adminClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, t.key,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject != "" || claims.Payload == "" {
		return "", ErrInvalidToken
	}
	return claims.Payload, nil
}

func (t *Tokens) key(*jwt.Token) (interface{}, error) {
	return t.secret, nil
}
