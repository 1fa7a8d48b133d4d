// Package session validates the signed session tokens issued by the external
// identity provider. The service trusts the claim set completely; the only
// claim used for authorization decisions is the email, which is re-resolved
// to a canonical account server-side on every request.
package session

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpiredToken = errors.New("session token has expired")
)

// Identity is the authenticated caller as asserted by the identity provider.
type Identity struct {
	Email   string
	Name    string
	Picture string
}

// Claims is the claim set carried by a session token.
type Claims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// Identity converts the claims to an Identity value.
func (c *Claims) Identity() Identity {
	return Identity{Email: c.Email, Name: c.Name, Picture: c.Picture}
}

// Verifier validates session tokens against the shared signing secret.
type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier creates a token verifier. An empty secret falls back to the
// SESSION_SECRET environment variable.
func NewVerifier(secret, issuer string) *Verifier {
	if secret == "" {
		secret = os.Getenv("SESSION_SECRET")
	}
	if secret == "" {
		secret = "devSessionSecretDoNotUseInProduction"
	}
	return &Verifier{secret: []byte(secret), issuer: issuer}
}

// Verify parses and validates a session token and returns its claims.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return v.secret, nil
		},
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Email == "" {
		return nil, ErrInvalidToken
	}
	if v.issuer != "" && claims.Issuer != v.issuer {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Sign issues a session token for the given identity. Used by local
// development and tests; in production tokens come from the provider.
func (v *Verifier) Sign(identity Identity, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	now := time.Now()
	claims := &Claims{
		Email:   identity.Email,
		Name:    identity.Name,
		Picture: identity.Picture,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    v.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
