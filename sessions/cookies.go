package sessions

import (
	"net/http"
	"time"
)

// CookieName is the name of the browser cookie carrying the session credential.
const CookieName = "ss14_admin_session"

// SetCookie writes the session credential to the browser. HttpOnly blocks
// script access; Secure is set whenever the request arrived over TLS or a
// TLS-terminating proxy.
func SetCookie(w http.ResponseWriter, r *http.Request, rawSession string, lifetime time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    rawSession,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(lifetime.Seconds()),
	})
}

// ClearCookie removes the session credential on sign-out. With stateless
// sessions this is the only revocation in the base design.
func ClearCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// FromRequest extracts the raw session credential from the request cookie.
func FromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func isSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return r.Header.Get("X-Forwarded-Proto") == "https"
}
