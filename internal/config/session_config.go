package config

import (
	"fmt"
	"time"

	apperrors "github.com/jrsteele09/go-console-gateway/internal/errors"
)

const (
	secretKeyEnvVar         = "SECRET_KEY"
	secretKeyRequiredEnvVar = "SECRET_KEY_REQUIRED"
	cookieSecureEnvVar      = "COOKIE_SECURE"

	// FallbackSecret is used when SECRET_KEY is unset and SECRET_KEY_REQUIRED is false.
	FallbackSecret = "secret"
)

type SessionConfig interface {
	GetSigningSecret() []byte
	IsFallbackSecret() bool
	GetSessionTTL() time.Duration
	GetCookieName() string
	GetCookieTTL() time.Duration
	GetCookieSecure() bool
}

type Session struct {
	secret       []byte
	fallback     bool
	cookieSecure bool
}

var _ SessionConfig = Session{}

func loadSession() (Session, error) {
	required, err := GetEnvBool(secretKeyRequiredEnvVar, false)
	if err != nil {
		return Session{}, fmt.Errorf("[Config Session] %w", err)
	}
	secure, err := GetEnvBool(cookieSecureEnvVar, false)
	if err != nil {
		return Session{}, fmt.Errorf("[Config Session] %w", err)
	}

	secret := GetEnv(secretKeyEnvVar, "")
	fallback := secret == ""
	if fallback {
		if required {
			return Session{}, fmt.Errorf("[Config Session] %s: %w", secretKeyEnvVar, apperrors.ErrMissingSecret)
		}
		secret = FallbackSecret
	}

	return Session{
		secret:       []byte(secret),
		fallback:     fallback,
		cookieSecure: secure,
	}, nil
}

func (s Session) GetSigningSecret() []byte {
	return s.secret
}

// IsFallbackSecret reports whether the built-in secret is in use.
func (s Session) IsFallbackSecret() bool {
	return s.fallback
}

func (Session) GetSessionTTL() time.Duration {
	return 7 * 24 * time.Hour // 7 days
}

func (Session) GetCookieName() string {
	return "session"
}

// GetCookieTTL is deliberately longer than the session TTL; an expired token
// in a live cookie is rejected by the codec.
func (Session) GetCookieTTL() time.Duration {
	return 365 * 24 * time.Hour
}

func (s Session) GetCookieSecure() bool {
	return s.cookieSecure
}
