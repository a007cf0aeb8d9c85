package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultIssuer = "conjugation"

// Issuer signs HS256 tokens accepted by the admin routes.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

type IssuerConfig struct {
	Secret []byte
	Issuer string
	// TTL of zero issues tokens that never expire.
	TTL time.Duration
}

func NewIssuer(cfg IssuerConfig) *Issuer {
	iss := cfg.Issuer
	if iss == "" {
		iss = defaultIssuer
	}
	return &Issuer{
		secret: cfg.Secret,
		issuer: iss,
		ttl:    cfg.TTL,
		now:    time.Now,
	}
}

func (i *Issuer) Issue(subject string) (string, error) {
	if subject == "" {
		return "", errors.New("empty subject")
	}

	now := i.now()
	claims := jwt.RegisteredClaims{
		ID:       uuid.NewString(),
		Subject:  subject,
		Issuer:   i.issuer,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if i.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(i.ttl))
	}

	tk, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tk, nil
}
