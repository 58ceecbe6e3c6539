package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/go-console-gateway/internal/errors"
)

const (
	portEnvVar     = "PORT"
	appNameVar     = "APP_NAME"
	envVar         = "ENV"
	logLevelEnvVar = "LOG_LEVEL"
)

type EnvVars struct {
	port     string
	appName  string
	env      string
	logLevel string
}

var _ EnvConfig = EnvVars{}

func loadEnvVars() EnvVars {
	port := GetEnv(portEnvVar, "8080")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return EnvVars{
		port:     port,
		appName:  GetEnv(appNameVar, "Console Gateway"),
		env:      GetEnv(envVar, "DEV"),
		logLevel: GetEnv(logLevelEnvVar, "info"),
	}
}

func (e EnvVars) GetPort() string {
	return e.port
}

func (e EnvVars) GetAppName() string {
	return e.appName
}

func (e EnvVars) GetEnv() string {
	return e.env
}

func (e EnvVars) GetLogLevel() string {
	return e.logLevel
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvBool(envVar string, defaultValue bool) (bool, error) {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q: %w", envVar, value, apperrors.ErrInvalidConfig)
	}
	return b, nil
}

// GetEnvMillis reads a duration expressed in milliseconds.
func GetEnvMillis(envVar string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue, nil
	}
	ms, err := strconv.Atoi(value)
	if err != nil || ms <= 0 {
		return 0, fmt.Errorf("%s: expected a positive number of milliseconds, got %q: %w", envVar, value, apperrors.ErrInvalidConfig)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
