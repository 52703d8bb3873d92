package authz_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nikthechampiongr/SS14.Admin/accounts"
	"github.com/nikthechampiongr/SS14.Admin/authz"
	"github.com/nikthechampiongr/SS14.Admin/sessions"
)

func sessionWithRole(role accounts.RoleType) *sessions.Session {
	now := time.Now()
	return &sessions.Session{
		ID:        "test-session",
		Subject:   "admin-42",
		Role:      role,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func defaultGate(t *testing.T) *authz.Gate {
	t.Helper()
	policy, err := authz.NewPolicy(authz.DefaultPolicyTable())
	require.NoError(t, err)
	return authz.NewGate(policy)
}

// TestGate_ExhaustivePolicySweep checks every section/role pair of the
// configured policy table against the role ladder.
func TestGate_ExhaustivePolicySweep(t *testing.T) {
	gate := defaultGate(t)
	policy, err := authz.NewPolicy(authz.DefaultPolicyTable())
	require.NoError(t, err)

	roles := []accounts.RoleType{
		accounts.RoleModerator,
		accounts.RoleGameAdmin,
		accounts.RoleBanAdmin,
		accounts.RoleSuperAdmin,
	}

	for _, section := range policy.Sections() {
		minimum, ok := policy.MinimumRole(section)
		require.True(t, ok)

		for _, role := range roles {
			decision := gate.Authorize(sessionWithRole(role), section)

			if role.Meets(minimum) {
				require.Equal(t, authz.OutcomeAllow, decision.Outcome,
					"role %s must access section %s", role, section)
			} else {
				require.Equal(t, authz.OutcomeDeny, decision.Outcome,
					"role %s must be denied section %s", role, section)
				require.Equal(t, authz.DenyInsufficientRole, decision.Reason)
			}
		}
	}
}

func TestGate_UnauthenticatedProtectedSectionRequiresChallenge(t *testing.T) {
	gate := defaultGate(t)

	for _, section := range []string{authz.SectionPlayers, authz.SectionBans, authz.SectionServerConfig} {
		decision := gate.Authorize(nil, section)
		require.Equal(t, authz.OutcomeChallengeRequired, decision.Outcome, "section %s", section)
	}
}

func TestGate_UnprotectedSectionAllowsRegardlessOfSession(t *testing.T) {
	gate := defaultGate(t)

	require.Equal(t, authz.OutcomeAllow, gate.Authorize(nil, "Home").Outcome)
	require.Equal(t, authz.OutcomeAllow, gate.Authorize(sessionWithRole(accounts.RoleModerator), "Home").Outcome)
}

func TestGate_SpecScenario(t *testing.T) {
	gate := defaultGate(t)
	banAdmin := sessionWithRole(accounts.RoleBanAdmin)

	require.Equal(t, authz.OutcomeAllow, gate.Authorize(banAdmin, authz.SectionBans).Outcome)

	decision := gate.Authorize(banAdmin, authz.SectionServerConfig)
	require.Equal(t, authz.OutcomeDeny, decision.Outcome)
	require.Equal(t, authz.DenyInsufficientRole, decision.Reason)
}

func TestNewPolicy_RejectsUnknownRole(t *testing.T) {
	_, err := authz.NewPolicy(map[string]accounts.RoleType{
		"Bans": accounts.RoleType("emperor"),
	})
	require.Error(t, err)
}
