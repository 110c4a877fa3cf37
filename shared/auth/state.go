package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrStateProviderMismatch = errors.New("state token was issued for a different provider")

// StateClaims are the claims carried by a signed OAuth state parameter.
type StateClaims struct {
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}

// StateSigner issues and validates the signed state parameter protecting the
// OAuth callback against forgery. Tokens are HS256 signed, carry a random
// nonce and expire after the configured TTL, so no server-side state storage
// is needed.
type StateSigner struct {
	secret    string
	issuer    string
	expiresIn time.Duration
}

func NewStateSigner(secret, issuer string, expiresIn time.Duration) StateSigner {
	return StateSigner{
		secret:    secret,
		issuer:    issuer,
		expiresIn: expiresIn,
	}
}

// Sign returns a state token bound to the given provider.
func (s *StateSigner) Sign(provider string) (string, error) {
	now := time.Now()
	claims := StateClaims{
		Provider: provider,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiresIn)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.issuer},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// Verify parses a state token and returns its claims. The token must be
// valid, unexpired and bound to the given provider.
func (s *StateSigner) Verify(tokenStr, provider string) (*StateClaims, error) {
	claims := &StateClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return []byte(s.secret), nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithAudience(s.issuer),
		jwt.WithIssuer(s.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid state token")
	}

	if claims.Provider != provider {
		return nil, ErrStateProviderMismatch
	}

	return claims, nil
}
