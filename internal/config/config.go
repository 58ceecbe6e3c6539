package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
)

type Config interface {
	EnvConfig
	BackendConfig
	SessionConfig
	AccessConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type BackendConfig interface {
	GetBackendURL() string
	GetRequestTimeout() time.Duration
	GetLogoutOnUnauthorized() bool
}

// mainConfig is a snapshot of the environment taken once at start up.
type mainConfig struct {
	EnvVars
	Backend
	Session
	Access
}

// New loads an optional .env file and snapshots the configuration.
// Values are not re-read afterwards.
func New(envFiles ...string) (Config, error) {
	if err := loadDotEnv(envFiles...); err != nil {
		return nil, err
	}

	env := loadEnvVars()
	backend, err := loadBackend()
	if err != nil {
		return nil, err
	}
	session, err := loadSession()
	if err != nil {
		return nil, err
	}
	access, err := loadAccess()
	if err != nil {
		return nil, err
	}

	return mainConfig{
		EnvVars: env,
		Backend: backend,
		Session: session,
		Access:  access,
	}, nil
}

func loadDotEnv(files ...string) error {
	if len(files) == 0 {
		// A missing default .env is not an error.
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("[Config New] failed to load env files %v: %w", files, err)
	}
	return nil
}
