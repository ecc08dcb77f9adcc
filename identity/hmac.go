package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avelkon/bucketgate"
)

type hmacClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// HMACVerifier validates HS256 tokens signed with a shared secret.
// Meant for development and test deployments where running an OIDC
// provider is overkill.
type HMACVerifier struct {
	secret []byte
}

// NewHMACVerifier creates a verifier for the given shared secret.
func NewHMACVerifier(secret []byte) (*HMACVerifier, error) {
	if len(secret) == 0 {
		return nil, errors.New("hmac verifier: secret is required")
	}
	return &HMACVerifier{secret: secret}, nil
}

// Verify parses and validates the token. Every failure collapses to
// bucketgate.ErrInvalidToken.
func (v *HMACVerifier) Verify(_ context.Context, token string) (bucketgate.Identity, error) {
	claims := &hmacClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return bucketgate.Identity{}, fmt.Errorf("%w: %v", bucketgate.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return bucketgate.Identity{}, bucketgate.ErrInvalidToken
	}

	return bucketgate.Identity{UID: claims.Subject, Email: claims.Email}, nil
}

// Issue signs a token for the given subject, valid for ttl. Used by the
// dev token command and by tests.
func (v *HMACVerifier) Issue(uid, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, hmacClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
	})

	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
