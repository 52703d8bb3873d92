package accounts

import (
	"fmt"
	"time"
)

// RoleType represents an administrator privilege level
type RoleType string

const (
	RoleModerator  RoleType = "moderator"   // Can view player activity
	RoleGameAdmin  RoleType = "game_admin"  // Can view connection logs and manage rounds
	RoleBanAdmin   RoleType = "ban_admin"   // Can issue and lift bans
	RoleSuperAdmin RoleType = "super_admin" // Can change server configuration
)

// roleLevels orders roles from least to most privileged. A role satisfies a
// requirement when its level is greater than or equal to the required level.
var roleLevels = map[RoleType]int{
	RoleModerator:  1,
	RoleGameAdmin:  2,
	RoleBanAdmin:   3,
	RoleSuperAdmin: 4,
}

// Account is a local administrator record, keyed by the stable subject
// identifier asserted by the identity provider. The Role held here is the only
// authoritative source of privilege - provider claims never grant roles.
type Account struct {
	Subject     string    `json:"subject"`                // External identity subject
	DisplayName string    `json:"display_name,omitempty"` // Name shown in the admin UI
	Role        RoleType  `json:"role"`                   // Locally assigned privilege level
	Disabled    bool      `json:"disabled,omitempty"`     // Disabled accounts can never sign in
	LastSeen    time.Time `json:"last_seen,omitempty"`    // Updated on each successful sign-in
	CreatedAt   time.Time `json:"created_at,omitempty"`   // When the account was provisioned
}

// Meets reports whether the role satisfies the given minimum role.
func (r RoleType) Meets(minimum RoleType) bool {
	level, ok := roleLevels[r]
	if !ok {
		return false
	}
	required, ok := roleLevels[minimum]
	if !ok {
		return false
	}
	return level >= required
}

// Valid reports whether the role is one of the known privilege levels.
func (r RoleType) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

// ParseRole converts a configuration string into a RoleType.
func ParseRole(s string) (RoleType, error) {
	role := RoleType(s)
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return role, nil
}
