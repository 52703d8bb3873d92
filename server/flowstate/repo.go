// Package flowstate tracks in-flight identity-provider handshakes, keyed by
// the OAuth2 state parameter. Entries live only until the callback consumes
// them or their TTL passes; an abandoned handshake leaves no session behind.
package flowstate

import "time"

type LoginState struct {
	Nonce     string
	ReturnURL string
	CreatedAt time.Time
}

type Repo interface {
	Upsert(state string, loginState *LoginState) error
	Get(state string) (*LoginState, error)
	Delete(state string) error
}
