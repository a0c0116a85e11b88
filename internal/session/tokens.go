package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "nutrilife-landing"

var ErrInvalidToken = errors.New("invalid session token")

// Tokens signs and verifies the session cookie. The cookie carries only the
// session id; state stays server side.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) (*Tokens, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func NewID() string {
	return uuid.NewString()
}

func (t *Tokens) Issue(id string) (string, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		ID:        id,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Parse verifies token and returns the session id it carries.
func (t *Tokens) Parse(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return "", ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.ID); err != nil {
		return "", fmt.Errorf("%w: malformed session id", ErrInvalidToken)
	}
	return claims.ID, nil
}

func (t *Tokens) TTL() time.Duration {
	return t.ttl
}
