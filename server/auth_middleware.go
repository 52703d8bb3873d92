package server

import (
	"context"
	"net/http"
	"net/url"

	"github.com/nikthechampiongr/SS14.Admin/authz"
	"github.com/nikthechampiongr/SS14.Admin/sessions"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeySession stores the validated session for downstream handlers
const ContextKeySession ContextKey = "session"

// RequireSection is middleware that gates a route behind the access policy for
// the given section. Unauthenticated requests are challenged via the identity
// provider; authenticated requests with an insufficient role get a forbidden
// page, not a re-challenge.
func (s *Server) RequireSection(section string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			session := s.sessionFromRequest(r)

			decision := s.gate.Authorize(session, section)
			switch decision.Outcome {
			case authz.OutcomeChallengeRequired:
				challengeURL := RouteChallenge + "?return=" + url.QueryEscape(r.URL.RequestURI())
				http.Redirect(w, r, challengeURL, http.StatusSeeOther)
				return
			case authz.OutcomeDeny:
				forbiddenPage(w)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySession, session)
			next(w, r.WithContext(ctx))
		}
	}
}

// sessionFromRequest returns the validated session, or nil when the request
// carries no cookie or an expired/tampered one. Invalid credentials are simply
// treated as unauthenticated; the gate decides what happens next.
func (s *Server) sessionFromRequest(r *http.Request) *sessions.Session {
	rawSession, ok := sessions.FromRequest(r)
	if !ok {
		return nil
	}
	session, err := s.issuer.Validate(rawSession)
	if err != nil {
		return nil
	}
	return session
}

// SessionFromContext retrieves the session injected by RequireSection.
func SessionFromContext(ctx context.Context) *sessions.Session {
	session, _ := ctx.Value(ContextKeySession).(*sessions.Session)
	return session
}
