// Package identity issues the anonymous credentials used at signup. An
// anonymous identity is a provider-assigned id with a bearer token not
// tied to a password or verified contact method.
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/norbulab/sikkim-trails-services/api/internal/public/application"
)

// AnonymousProvider mints anonymous identities as HS256 JWTs so the same
// auth middleware that guards authenticated routes can verify them.
type AnonymousProvider struct {
	issuer   string
	audience string
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// Config holds the token parameters for the provider.
type Config struct {
	Issuer   string
	Audience string
	Secret   []byte
	TTL      time.Duration
}

// NewAnonymousProvider creates the provider. The secret must be set; a
// zero TTL defaults to 30 days.
func NewAnonymousProvider(cfg Config) (*AnonymousProvider, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("identity: signing secret is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * 24 * time.Hour
	}
	return &AnonymousProvider{
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		secret:   cfg.Secret,
		ttl:      cfg.TTL,
		now:      time.Now,
	}, nil
}

type anonymousClaims struct {
	jwt.RegisteredClaims
	Anonymous bool `json:"anonymous"`
}

// SignInAnonymously issues a fresh identity: a random subject and a
// signed token carrying it.
func (p *AnonymousProvider) SignInAnonymously(ctx context.Context) (application.Identity, error) {
	if err := ctx.Err(); err != nil {
		return application.Identity{}, err
	}

	subject := uuid.NewString()
	now := p.now()
	claims := anonymousClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{p.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
		Anonymous: true,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return application.Identity{}, err
	}
	return application.Identity{ID: subject, Token: token}, nil
}
