package server

import (
	"context"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nikthechampiongr/SS14.Admin/server/flowstate"
)

// ChallengeHandler starts the identity-provider handshake: it records fresh
// state and nonce for the in-flight attempt and redirects the browser to the
// provider's authorization endpoint.
func (s *Server) ChallengeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		correlationID := uuid.New().String()

		attempts := challengeAttempts(r)
		if attempts >= maxChallengeAttempts {
			log.Warn().Str("correlation_id", correlationID).Int("attempts", attempts).
				Msg("challenge loop bound reached")
			clearChallengeAttempts(w, r)
			authErrorPage(w, correlationID)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), s.config.GetProviderTimeout())
		defer cancel()

		oidcConfig, err := s.getOidcConfig(ctx)
		if err != nil {
			log.Err(err).Str("correlation_id", correlationID).Msg("provider unavailable during challenge")
			temporaryFailurePage(w, correlationID)
			return
		}

		state := generateRandomString(32)
		nonce := generateRandomString(32)

		if err := s.flow.Upsert(state, &flowstate.LoginState{
			Nonce:     nonce,
			ReturnURL: safeReturnURL(r.URL.Query().Get("return")),
			CreatedAt: time.Now(),
		}); err != nil {
			log.Err(err).Str("correlation_id", correlationID).Msg("failed to store login state")
			temporaryFailurePage(w, correlationID)
			return
		}

		setChallengeAttempts(w, r, attempts+1)
		http.Redirect(w, r, oidcConfig.OAuth2Config.AuthCodeURL(state, oidc.Nonce(nonce)), http.StatusSeeOther)
	}
}
