package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/go-console-gateway/internal/errors"
)

const (
	backendURLEnvVar           = "SERVER_URL"
	requestTimeoutEnvVar       = "REQUEST_TIMEOUT_MS"
	logoutOnUnauthorizedEnvVar = "LOGOUT_ON_UNAUTHORIZED"

	DefaultRequestTimeout = 10 * time.Second
)

type Backend struct {
	baseURL              string
	requestTimeout       time.Duration
	logoutOnUnauthorized bool
}

var _ BackendConfig = Backend{}

func loadBackend() (Backend, error) {
	baseURL := strings.TrimRight(GetEnv(backendURLEnvVar, "http://localhost:8000"), "/")
	if u, err := url.Parse(baseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return Backend{}, fmt.Errorf("[Config Backend] %s is not an absolute URL: %q: %w", backendURLEnvVar, baseURL, apperrors.ErrInvalidConfig)
	}

	timeout, err := GetEnvMillis(requestTimeoutEnvVar, DefaultRequestTimeout)
	if err != nil {
		return Backend{}, fmt.Errorf("[Config Backend] %w", err)
	}

	logout, err := GetEnvBool(logoutOnUnauthorizedEnvVar, false)
	if err != nil {
		return Backend{}, fmt.Errorf("[Config Backend] %w", err)
	}

	return Backend{
		baseURL:              baseURL,
		requestTimeout:       timeout,
		logoutOnUnauthorized: logout,
	}, nil
}

// GetBackendURL returns the base URL of the backend API (e.g. "http://localhost:8000")
func (b Backend) GetBackendURL() string {
	return b.baseURL
}

func (b Backend) GetRequestTimeout() time.Duration {
	return b.requestTimeout
}

// GetLogoutOnUnauthorized reports whether a backend 401 clears the session cookie.
func (b Backend) GetLogoutOnUnauthorized() bool {
	return b.logoutOnUnauthorized
}
