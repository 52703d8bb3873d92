package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/nikthechampiongr/SS14.Admin/sessions"
	"github.com/nikthechampiongr/SS14.Admin/signin"
)

// CallbackHandler completes the handshake: it exchanges the authorization code
// for tokens, validates the ID token, resolves the subject to a local account,
// and issues the session cookie. Every failure maps to one of a small set of
// user-visible outcomes; the detail goes to the log under a correlation id.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		correlationID := uuid.New().String()

		// r.FormValue supports both GET query params and the form_post
		// response mode.
		if errorParam := r.FormValue("error"); errorParam != "" {
			log.Warn().Str("correlation_id", correlationID).
				Str("provider_error", errorParam).
				Str("provider_error_description", r.FormValue("error_description")).
				Msg("provider returned an authorization error")
			recordSignIn("provider_error")
			authErrorPage(w, correlationID)
			return
		}

		state := r.FormValue("state")
		code := r.FormValue("code")
		if state == "" || code == "" {
			log.Warn().Str("correlation_id", correlationID).Msg("callback missing code or state")
			authErrorPage(w, correlationID)
			return
		}

		loginState, err := s.flow.Get(state)
		if err != nil {
			log.Warn().Str("correlation_id", correlationID).Err(err).Msg("unknown or expired login state")
			authErrorPage(w, correlationID)
			return
		}
		// State is single-use regardless of how the rest of the exchange goes.
		if err := s.flow.Delete(state); err != nil {
			log.Err(err).Str("correlation_id", correlationID).Msg("failed to delete login state")
		}

		providerCtx, cancel := context.WithTimeout(r.Context(), s.config.GetProviderTimeout())
		defer cancel()

		oidcConfig, err := s.getOidcConfig(providerCtx)
		if err != nil {
			log.Err(err).Str("correlation_id", correlationID).Msg("provider unavailable during callback")
			recordSignIn("provider_unavailable")
			temporaryFailurePage(w, correlationID)
			return
		}

		oauth2Token, err := oidcConfig.OAuth2Config.Exchange(providerCtx, code)
		if err != nil {
			log.Err(err).Str("correlation_id", correlationID).Msg("token exchange failed")
			recordSignIn("provider_unavailable")
			temporaryFailurePage(w, correlationID)
			return
		}

		rawIDToken, ok := oauth2Token.Extra("id_token").(string)
		if !ok {
			log.Warn().Str("correlation_id", correlationID).Msg("no ID token in provider response")
			recordSignIn("invalid_token")
			authErrorPage(w, correlationID)
			return
		}

		claims, err := oidcConfig.Validator.Validate(providerCtx, rawIDToken)
		if err != nil {
			log.Warn().Str("correlation_id", correlationID).Err(err).Msg("ID token validation failed")
			recordSignIn("invalid_token")
			authErrorPage(w, correlationID)
			return
		}

		// Validate nonce to prevent replay attacks
		if nonce, _ := claims.Raw["nonce"].(string); nonce != loginState.Nonce {
			log.Warn().Str("correlation_id", correlationID).Msg("nonce mismatch")
			recordSignIn("invalid_token")
			authErrorPage(w, correlationID)
			return
		}

		storeCtx, cancelStore := context.WithTimeout(r.Context(), s.config.GetStoreTimeout())
		defer cancelStore()

		account, err := s.resolver.Resolve(storeCtx, claims)
		if err != nil {
			s.handleResolveFailure(w, correlationID, claims.Subject, err)
			return
		}

		rawSession, _, err := s.issuer.Issue(account)
		if err != nil {
			log.Err(err).Str("correlation_id", correlationID).Msg("failed to issue session")
			recordSignIn("internal_error")
			temporaryFailurePage(w, correlationID)
			return
		}

		sessions.SetCookie(w, r, rawSession, s.issuer.Lifetime())
		clearChallengeAttempts(w, r)
		recordSignIn("success")
		log.Info().Str("subject", account.Subject).Str("role", string(account.Role)).Msg("administrator signed in")

		http.Redirect(w, r, safeReturnURL(loginState.ReturnURL), http.StatusSeeOther)
	}
}

func (s *Server) handleResolveFailure(w http.ResponseWriter, correlationID, subject string, err error) {
	switch {
	case errors.Is(err, signin.ErrUnknownSubject):
		log.Warn().Str("correlation_id", correlationID).Str("subject", subject).
			Msg("sign-in attempt by unknown subject")
		recordSignIn("unknown_subject")
		accessDeniedPage(w, correlationID)
	case errors.Is(err, signin.ErrAccountDisabled):
		log.Warn().Str("correlation_id", correlationID).Str("subject", subject).
			Msg("sign-in attempt by disabled account")
		recordSignIn("account_disabled")
		accessDeniedPage(w, correlationID)
	case errors.Is(err, signin.ErrStoreUnavailable):
		log.Err(err).Str("correlation_id", correlationID).Msg("account store unavailable")
		recordSignIn("store_unavailable")
		temporaryFailurePage(w, correlationID)
	default:
		log.Err(err).Str("correlation_id", correlationID).Msg("resolve failed")
		recordSignIn("internal_error")
		temporaryFailurePage(w, correlationID)
	}
}
