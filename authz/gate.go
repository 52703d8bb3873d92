package authz

import (
	"github.com/nikthechampiongr/SS14.Admin/sessions"
)

// Outcome is the kind of authorization decision.
type Outcome int

const (
	// OutcomeAllow lets the request through.
	OutcomeAllow Outcome = iota
	// OutcomeDeny rejects an authenticated request; not a re-challenge.
	OutcomeDeny
	// OutcomeChallengeRequired means no valid session exists for a protected
	// section, so the identity-provider handshake must be triggered.
	OutcomeChallengeRequired
)

// DenyReason explains an OutcomeDeny decision.
type DenyReason string

// DenyInsufficientRole means the session's role does not meet the section's
// configured minimum.
const DenyInsufficientRole DenyReason = "insufficient_role"

// Decision is the result of an authorization check.
type Decision struct {
	Outcome Outcome
	Reason  DenyReason
}

// Gate evaluates sessions against the access policy.
type Gate struct {
	policy *Policy
}

// NewGate creates a Gate over the given policy.
func NewGate(policy *Policy) *Gate {
	return &Gate{policy: policy}
}

// Authorize evaluates whether the session (nil when unauthenticated) may
// access the requested section:
//   - unprotected section: Allow regardless of session state
//   - no valid session on a protected section: ChallengeRequired
//   - session role below the section minimum: Deny(insufficient role)
//   - otherwise: Allow
func (g *Gate) Authorize(session *sessions.Session, section string) Decision {
	minimum, protected := g.policy.MinimumRole(section)
	if !protected {
		return Decision{Outcome: OutcomeAllow}
	}

	if session == nil {
		return Decision{Outcome: OutcomeChallengeRequired}
	}

	if !session.Role.Meets(minimum) {
		return Decision{Outcome: OutcomeDeny, Reason: DenyInsufficientRole}
	}

	return Decision{Outcome: OutcomeAllow}
}
