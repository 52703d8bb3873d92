// Package sessions issues and validates the local session credential held by
// the browser after a successful sign-in. Sessions are self-contained signed
// tokens; there is no server-side session table. The claims are a snapshot
// taken at sign-in and may go stale relative to the account store until the
// session expires.
package sessions

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/nikthechampiongr/SS14.Admin/accounts"
)

const sessionIssuer = "ss14-admin"

// Session is the decoded, verified form of a session credential.
type Session struct {
	ID        string            // Unique credential ID
	Subject   string            // External identity subject
	Name      string            // Display name snapshot
	Role      accounts.RoleType // Role snapshot taken at sign-in
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// sessionClaims is the wire form of a session credential.
type sessionClaims struct {
	Role string `json:"role"`
	Name string `json:"name,omitempty"`
	jwtlib.RegisteredClaims
}
