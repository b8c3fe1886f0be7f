package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/burgerqueen/pos-api/internal/core/domain"
)

// ErrInvalidToken is returned by Verify for any token that fails to parse,
// carries a bad signature, or has expired.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the wire form of domain.Claims.
type Claims struct {
	UserID    string `json:"uid"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	ThisEmail string `json:"thisEmail,omitempty"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies HS256 access tokens.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService returns a JWTService. A non-positive ttl issues tokens without
// an expiry.
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	return &JWTService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *JWTService) Sign(c domain.Claims) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:    c.UserID,
		Email:     c.Email,
		Role:      string(c.Role),
		ThisEmail: c.ThisEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  c.UserID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *JWTService) Verify(raw string) (domain.Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !tkn.Valid {
		return domain.Claims{}, ErrInvalidToken
	}

	return domain.Claims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Role:      domain.Role(claims.Role),
		ThisEmail: claims.ThisEmail,
	}, nil
}
