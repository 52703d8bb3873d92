package config

import (
	"strings"
	"time"

	"github.com/nikthechampiongr/SS14.Admin/accounts"
)

// AuthConfig describes the trust relationship with the identity provider.
type AuthConfig interface {
	GetAuthority() string
	GetClientID() string
	GetClientSecret() string
	GetAudience() string
	GetRedirectURL() string
	GetAutoProvision() bool
	GetAutoProvisionRole() accounts.RoleType
	GetProviderTimeout() time.Duration
}

type Auth struct{}

var _ AuthConfig = Auth{}

// GetAuthority returns the identity provider's issuer URL.
func (Auth) GetAuthority() string {
	return GetEnv("AUTH_AUTHORITY", "")
}

func (Auth) GetClientID() string {
	return GetEnv("AUTH_CLIENT_ID", "")
}

func (Auth) GetClientSecret() string {
	return GetEnv("AUTH_CLIENT_SECRET", "")
}

// GetAudience returns the expected audience of incoming identity tokens. OIDC
// ID tokens carry the client ID as audience, so that is the default.
func (a Auth) GetAudience() string {
	return GetEnv("AUTH_AUDIENCE", a.GetClientID())
}

func (Auth) GetRedirectURL() string {
	return GetEnv("AUTH_REDIRECT_URL", EnvVars{}.GetBaseURL()+"/signin-oidc")
}

// GetAutoProvision reports whether unknown subjects get an account on first
// sign-in. Off by default: explicit operator provisioning is the safer choice.
func (Auth) GetAutoProvision() bool {
	return strings.EqualFold(GetEnv("AUTH_AUTO_PROVISION", "false"), "true")
}

// GetAutoProvisionRole returns the role given to auto-provisioned accounts.
// Falls back to the lowest privilege level on an unknown value.
func (Auth) GetAutoProvisionRole() accounts.RoleType {
	role, err := accounts.ParseRole(GetEnv("AUTH_AUTO_PROVISION_ROLE", string(accounts.RoleModerator)))
	if err != nil {
		return accounts.RoleModerator
	}
	return role
}

// GetProviderTimeout bounds each network round trip to the identity provider.
func (Auth) GetProviderTimeout() time.Duration {
	return getDurationEnv("AUTH_PROVIDER_TIMEOUT", 10*time.Second)
}

func getDurationEnv(envVar string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(GetEnv(envVar, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
