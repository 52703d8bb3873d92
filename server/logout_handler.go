package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/nikthechampiongr/SS14.Admin/sessions"
)

// LogoutHandler clears the session cookie. Sessions are stateless signed
// credentials, so removing the cookie is the whole sign-out.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session := s.sessionFromRequest(r); session != nil {
			log.Info().Str("subject", session.Subject).Msg("administrator signed out")
		}
		sessions.ClearCookie(w, r)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
