package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/nikthechampiongr/SS14.Admin/accounts"
	"github.com/nikthechampiongr/SS14.Admin/authz"
	"github.com/nikthechampiongr/SS14.Admin/internal/config"
	"github.com/nikthechampiongr/SS14.Admin/server/flowstate"
	"github.com/nikthechampiongr/SS14.Admin/sessions"
	"github.com/nikthechampiongr/SS14.Admin/signin"
	"github.com/nikthechampiongr/SS14.Admin/token"
)

// loginStateTTL bounds how long a started handshake may wait for its callback.
const loginStateTTL = 15 * time.Minute

// OidcConfig bundles the discovered provider, the OAuth2 client configuration,
// and the token validator built from the provider's key set.
type OidcConfig struct {
	OidcProvider *oidc.Provider
	OAuth2Config *oauth2.Config
	Validator    *token.Validator
}

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	repo     accounts.Repo
	resolver *signin.Resolver
	issuer   *sessions.Issuer
	gate     *authz.Gate
	flow     flowstate.Repo
	limiter  *ipRateLimiter

	// Provider discovery needs a network round trip, so it happens lazily on
	// the first handshake and is cached for the process lifetime.
	oidcLock sync.Mutex
	oidc     *OidcConfig
}

func New(cfg config.Config, repo accounts.Repo) (*Server, error) {
	if repo == nil {
		return nil, errors.New("[Server New] account repo is required")
	}

	resolverOpts := []signin.ResolverOption{}
	if cfg.GetAutoProvision() {
		resolverOpts = append(resolverOpts, signin.WithAutoProvision(cfg.GetAutoProvisionRole()))
	}
	resolver, err := signin.NewResolver(repo, resolverOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "[Server New] failed to create resolver")
	}

	issuer, err := sessions.NewIssuer(cfg.GetSessionSecret(), sessions.WithLifetime(cfg.GetSessionLifetime()))
	if err != nil {
		return nil, errors.Wrap(err, "[Server New] failed to create session issuer")
	}

	policy, err := authz.NewPolicy(cfg.GetSectionPolicy())
	if err != nil {
		return nil, errors.Wrap(err, "[Server New] invalid section policy")
	}

	s := &Server{
		env:      cfg.GetEnv(),
		mux:      http.NewServeMux(),
		config:   cfg,
		repo:     repo,
		resolver: resolver,
		issuer:   issuer,
		gate:     authz.NewGate(policy),
		flow:     flowstate.NewInMemoryRepo(loginStateTTL),
		limiter:  newIPRateLimiter(1, 10),
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		log.Debug().Str("route", route).Msg("registered route")
	}
}

// getOidcConfig discovers the provider on first use and caches the result.
// Discovery failures are surfaced to the caller as temporary failures.
func (s *Server) getOidcConfig(ctx context.Context) (*OidcConfig, error) {
	s.oidcLock.Lock()
	defer s.oidcLock.Unlock()
	if s.oidc != nil {
		return s.oidc, nil
	}

	authority := s.config.GetAuthority()
	if authority == "" {
		return nil, errors.New("[Server getOidcConfig] AUTH_AUTHORITY is not configured")
	}

	provider, err := oidc.NewProvider(ctx, authority)
	if err != nil {
		return nil, errors.Wrap(err, "[Server getOidcConfig] provider discovery failed")
	}

	var discovery struct {
		JWKSURL string `json:"jwks_uri"`
	}
	if err := provider.Claims(&discovery); err != nil || discovery.JWKSURL == "" {
		return nil, errors.Wrap(err, "[Server getOidcConfig] provider metadata missing jwks_uri")
	}

	// The remote key set caches provider keys for the process lifetime.
	keySet := oidc.NewRemoteKeySet(context.Background(), discovery.JWKSURL)
	validator, err := token.NewValidator(authority, s.config.GetAudience(), keySet)
	if err != nil {
		return nil, errors.Wrap(err, "[Server getOidcConfig] failed to create token validator")
	}

	s.oidc = &OidcConfig{
		OidcProvider: provider,
		OAuth2Config: &oauth2.Config{
			ClientID:     s.config.GetClientID(),
			ClientSecret: s.config.GetClientSecret(),
			Endpoint:     provider.Endpoint(),
			RedirectURL:  s.config.GetRedirectURL(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		Validator: validator,
	}
	return s.oidc, nil
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
