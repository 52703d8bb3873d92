package server

import "github.com/nikthechampiongr/SS14.Admin/authz"

// sectionRoutes maps request paths to the section identifiers consulted in the
// access policy. Paths not listed here are unprotected by construction.
var sectionRoutes = map[string]string{
	RoutePlayers:      authz.SectionPlayers,
	RouteConnections:  authz.SectionConnections,
	RouteBans:         authz.SectionBans,
	RouteServerConfig: authz.SectionServerConfig,
}

func (s *Server) initRoutes() {
	s.initMetrics()

	s.RegisterRouteFunc("GET /{$}", s.IndexHandler())

	// Identity-provider handshake
	s.RegisterRouteHandler("GET "+RouteChallenge, ChainMiddleware(s.ChallengeHandler(), s.AuthMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteCallback, ChainMiddleware(s.CallbackHandler(), s.AuthMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteCallback, ChainMiddleware(s.CallbackHandler(), s.AuthMiddleware()...)) // form_post response mode
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleware()...))

	// Administrative sections, gated per the access policy
	for route, section := range sectionRoutes {
		s.RegisterRouteHandler("GET "+route,
			ChainMiddleware(s.SectionHandler(section), s.HTMLMiddleware(s.RequireSection(section))...))
	}

	// Operational endpoints
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	s.RegisterRouteHandler("GET "+RouteMetrics, metricsHandler())
}
