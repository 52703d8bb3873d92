package server

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	// attemptsCookieName counts challenge redirects so a broken handshake
	// cannot loop the browser forever.
	attemptsCookieName = "oidc_attempts"

	// maxChallengeAttempts is how many unresolved challenges are tolerated
	// before surfacing an authentication error instead of redirecting again.
	maxChallengeAttempts = 3
)

// generateRandomString creates a random base64url string
func generateRandomString(length int) string {
	b := make([]byte, length)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

func challengeAttempts(r *http.Request) int {
	cookie, err := r.Cookie(attemptsCookieName)
	if err != nil {
		return 0
	}
	attempts, err := strconv.Atoi(cookie.Value)
	if err != nil {
		return 0
	}
	return attempts
}

func setChallengeAttempts(w http.ResponseWriter, r *http.Request, attempts int) {
	http.SetCookie(w, &http.Cookie{
		Name:     attemptsCookieName,
		Value:    strconv.Itoa(attempts),
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(loginStateTTL.Seconds()),
	})
}

func clearChallengeAttempts(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     attemptsCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// safeReturnURL only accepts local absolute paths, so the handshake cannot be
// abused as an open redirect. Backslashes are rejected outright because some
// browsers normalize them to forward slashes before resolving.
func safeReturnURL(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") ||
		strings.HasPrefix(raw, "//") || strings.ContainsRune(raw, '\\') {
		return "/"
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return "/"
	}
	return raw
}
