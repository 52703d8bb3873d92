package server_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nikthechampiongr/SS14.Admin/accounts"
	fakeaccountrepo "github.com/nikthechampiongr/SS14.Admin/accounts/repofake"
	"github.com/nikthechampiongr/SS14.Admin/internal/config"
	"github.com/nikthechampiongr/SS14.Admin/server"
	"github.com/nikthechampiongr/SS14.Admin/sessions"
)

const testSessionSecret = "test-session-secret"

func setupServer(t *testing.T) *server.Server {
	t.Helper()

	t.Setenv("SESSION_SECRET", testSessionSecret)
	t.Setenv("ENV", "TEST")

	srv, err := server.New(config.New(), fakeaccountrepo.NewFakeAccountRepo())
	require.NoError(t, err)
	return srv
}

func sessionCookie(t *testing.T, role accounts.RoleType, options ...sessions.IssuerOption) *http.Cookie {
	t.Helper()

	issuer, err := sessions.NewIssuer(testSessionSecret, options...)
	require.NoError(t, err)

	raw, _, err := issuer.Issue(&accounts.Account{
		Subject:     "admin-42",
		DisplayName: "Admin Forty-Two",
		Role:        role,
	})
	require.NoError(t, err)

	return &http.Cookie{Name: sessions.CookieName, Value: raw}
}

func TestRequireSection_NoSessionRedirectsToChallenge(t *testing.T) {
	srv := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, server.RouteBans, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	location := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, server.RouteChallenge), "got %q", location)
	require.Contains(t, location, "return=%2Fbans")
}

func TestRequireSection_SufficientRoleAllowed(t *testing.T) {
	srv := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, server.RouteBans, nil)
	req.AddCookie(sessionCookie(t, accounts.RoleBanAdmin))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "admin-42")
}

func TestRequireSection_InsufficientRoleForbidden(t *testing.T) {
	srv := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, server.RouteServerConfig, nil)
	req.AddCookie(sessionCookie(t, accounts.RoleBanAdmin))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	// An authenticated but under-privileged request gets a forbidden page,
	// never a re-challenge.
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.NotContains(t, rec.Header().Get("Location"), server.RouteChallenge)
}

func TestRequireSection_ExpiredSessionTreatedAsUnauthenticated(t *testing.T) {
	srv := setupServer(t)

	past := time.Now().Add(-2 * time.Hour)
	cookie := sessionCookie(t, accounts.RoleSuperAdmin,
		sessions.WithNowTime(func() time.Time { return past }))

	req := httptest.NewRequest(http.MethodGet, server.RoutePlayers, nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.True(t, strings.HasPrefix(rec.Header().Get("Location"), server.RouteChallenge))
}

func TestRequireSection_TamperedSessionTreatedAsUnauthenticated(t *testing.T) {
	srv := setupServer(t)

	cookie := sessionCookie(t, accounts.RoleSuperAdmin)
	cookie.Value = cookie.Value + "x"

	req := httptest.NewRequest(http.MethodGet, server.RouteBans, nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestLogoutClearsSessionCookie(t *testing.T) {
	srv := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, server.RouteLogout, nil)
	req.AddCookie(sessionCookie(t, accounts.RoleModerator))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessions.CookieName {
			cleared = c.Value == "" && c.MaxAge < 0
		}
	}
	require.True(t, cleared, "session cookie must be cleared on logout")
}

func TestHealthEndpointUnprotected(t *testing.T) {
	srv := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, server.RouteHealth, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
