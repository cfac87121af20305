package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domain "github.com/aurainsight/aura-backend/internal/domain/auth"
)

// Claims carries the registered claims plus the user id and the anonymous
// marker set by the identity provider at sign-in.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"uid"`
	Anonymous bool   `json:"anonymous,omitempty"`
}

// Verifier validates HS256 bearer tokens signed with a shared secret.
// Verification is stateless; every request is checked independently.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret []byte) *Verifier {
	return &Verifier{secret: secret}
}

func (v *Verifier) Verify(ctx context.Context, token string) (domain.Principal, error) {
	if token == "" {
		return domain.Principal{}, domain.ErrMissingCredential
	}
	if len(v.secret) == 0 {
		return domain.Principal{}, fmt.Errorf("%w: no signing secret configured", domain.ErrVerifierUnavailable)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Principal{}, domain.ErrExpiredCredential
		}
		return domain.Principal{}, fmt.Errorf("%w: %v", domain.ErrInvalidCredential, err)
	}
	if !parsed.Valid || claims.UserID == "" {
		return domain.Principal{}, domain.ErrInvalidCredential
	}

	return domain.Principal{ID: claims.UserID, Anonymous: claims.Anonymous}, nil
}

// GenerateToken issues a signed token. The server itself never issues tokens
// in production; this mirrors the provider's format for tests and local use.
func GenerateToken(userID string, anonymous bool, secret []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		UserID:    userID,
		Anonymous: anonymous,
	})
	return token.SignedString(secret)
}
