package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json; charset=utf-8"

// SectionHandler is a thin placeholder for an administrative section. Page
// rendering lives elsewhere; the bridge only proves who is asking and whether
// they may ask.
func (s *Server) SectionHandler(section string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := SessionFromContext(r.Context())

		payload := map[string]any{
			"section": section,
		}
		if session != nil {
			payload["admin"] = session.Name
			payload["subject"] = session.Subject
			payload["role"] = session.Role
		}

		w.Header().Set("Content-Type", contentTypeJSON)
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Err(err).Str("section", section).Msg("failed to encode section response")
		}
	}
}

// IndexHandler is the unauthenticated landing page.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		signedIn := s.sessionFromRequest(r) != nil

		w.Header().Set("Content-Type", contentTypeJSON)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"app":       s.config.GetAppName(),
			"signed_in": signedIn,
		})
	}
}

// HealthHandler reports process liveness.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeJSON)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
