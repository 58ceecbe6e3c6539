package sessions

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-console-gateway/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// DefaultSessionTTL is how long a signed session stays valid.
const DefaultSessionTTL = 7 * 24 * time.Hour

// claims is the signed payload. Only the principal and the token pair are
// carried, plus the registered time claims.
type claims struct {
	User   Principal   `json:"user"`
	Tokens Credentials `json:"tokens"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with a symmetric HS256 key.
// It holds no mutable state and is safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
	parser *jwt.Parser
}

// NewCodec creates a codec for the given secret. A zero ttl means DefaultSessionTTL.
func NewCodec(secret []byte, ttl time.Duration) (*Codec, error) {
	if len(secret) == 0 {
		return nil, apperrors.ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	key := make([]byte, len(secret))
	copy(key, secret)

	return &Codec{
		secret: key,
		ttl:    ttl,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(func() time.Time { return NowTimeFunc() }),
		),
	}, nil
}

// TTL returns the validity period of issued tokens.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Encode signs a new session for the principal and credentials.
func (c *Codec) Encode(principal Principal, credentials Credentials) (string, error) {
	now := NowTimeFunc()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		User:   principal,
		Tokens: credentials,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("[Codec Encode] failed to sign session: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry of a token. Any failure returns
// nil, so callers treat "no session" and "invalid session" the same way.
func (c *Codec) Decode(signed string) *Session {
	session, err := c.Verify(signed)
	if err != nil {
		return nil
	}
	return session
}

// Verify is Decode with the reason for rejection.
func (c *Codec) Verify(signed string) (*Session, error) {
	if signed == "" {
		return nil, apperrors.ErrSessionNotFound
	}

	var cl claims
	token, err := c.parser.ParseWithClaims(signed, &cl, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	switch {
	case apperrors.Is(err, jwt.ErrTokenExpired):
		return nil, apperrors.Wrapf(apperrors.ErrTokenExpired, "[Codec Verify] %v", err)
	case err != nil:
		return nil, apperrors.Wrapf(apperrors.ErrInvalidToken, "[Codec Verify] %v", err)
	case !token.Valid, cl.IssuedAt == nil:
		return nil, apperrors.ErrInvalidToken
	}

	return &Session{
		ID:          cl.ID,
		Principal:   cl.User,
		Credentials: cl.Tokens,
		IssuedAt:    cl.IssuedAt.Time,
		ExpiresAt:   cl.ExpiresAt.Time,
	}, nil
}
