package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the validity window of an issued session token.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Claims is the signed payload carried by a session token. The user id
// travels in the registered Subject claim.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

// Codec issues and verifies signed session tokens. The secret is
// process-wide configuration loaded once at startup; Codec is safe for
// concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec constructs a Codec for the given shared secret. An empty
// secret is rejected so the caller can fail at startup rather than on
// the first request.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("session secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the configured token validity window.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token carrying the principal's identity, valid for the
// configured TTL from now.
func (c *Codec) Issue(p Principal) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Email: p.Email,
		Role:  string(p.Role),
		Name:  p.Name,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify checks the token's signature and expiry and maps its claims to
// a Principal. Every failure mode (bad signature, malformed structure,
// expiry, unknown role claim) collapses to a single false result so
// callers cannot distinguish why verification failed.
func (c *Codec) Verify(tokenString string) (Principal, bool) {
	claims := Claims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, false
	}

	role, ok := ParseRole(claims.Role)
	if !ok {
		return Principal{}, false
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return Principal{}, false
	}

	return Principal{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   role,
		Name:   claims.Name,
	}, true
}
