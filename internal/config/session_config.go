package config

import "time"

type SessionConfig interface {
	GetSessionSecret() string
	GetSessionLifetime() time.Duration
}

type Session struct{}

var _ SessionConfig = Session{}

// GetSessionSecret returns the HMAC key for session signing. The default is
// only acceptable for local development.
func (Session) GetSessionSecret() string {
	return GetEnv("SESSION_SECRET", "dev-insecure-session-secret")
}

func (Session) GetSessionLifetime() time.Duration {
	return getDurationEnv("SESSION_LIFETIME", 1*time.Hour)
}
