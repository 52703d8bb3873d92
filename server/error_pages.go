package server

import (
	"fmt"
	"net/http"
)

// Error responses never leak internal detail to the browser; the correlation
// identifier ties the page to the log line carrying the real cause.

func authErrorPage(w http.ResponseWriter, correlationID string) {
	writeErrorPage(w, http.StatusUnauthorized, "Authentication failed",
		"Sign-in could not be completed. You can retry from the start.", correlationID)
}

func accessDeniedPage(w http.ResponseWriter, correlationID string) {
	writeErrorPage(w, http.StatusForbidden, "Access denied",
		"Your account is not permitted to sign in to this console.", correlationID)
}

func forbiddenPage(w http.ResponseWriter) {
	writeErrorPage(w, http.StatusForbidden, "Forbidden",
		"Your role does not grant access to this section.", "")
}

func temporaryFailurePage(w http.ResponseWriter, correlationID string) {
	writeErrorPage(w, http.StatusServiceUnavailable, "Temporarily unavailable",
		"Sign-in is temporarily unavailable. Please try again shortly.", correlationID)
}

func writeErrorPage(w http.ResponseWriter, status int, title, message, correlationID string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, "<!DOCTYPE html><html><head><title>%s</title></head><body><h1>%s</h1><p>%s</p>", title, title, message)
	if correlationID != "" {
		fmt.Fprintf(w, "<p><small>Reference: %s</small></p>", correlationID)
	}
	fmt.Fprint(w, "</body></html>")
}
