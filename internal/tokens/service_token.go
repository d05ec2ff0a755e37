package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTTL = 2 * time.Minute

var ErrInvalidToken = errors.New("invalid service token")

type ServiceClaims struct {
	jwt.RegisteredClaims
}

// Signer mints short-lived HS256 tokens identifying the calling service.
type Signer struct {
	Secret  []byte
	Subject string
	TTL     time.Duration
	Now     func() time.Time
}

func (s *Signer) Sign() (string, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	issued := now()
	claims := ServiceClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.Subject,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

func ServiceClaimsFromToken(tokenStr string, secret []byte) (*ServiceClaims, error) {
	var claims ServiceClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
