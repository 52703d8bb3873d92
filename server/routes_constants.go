package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteChallenge = "/login/challenge"
	RouteCallback  = "/signin-oidc"
	RouteLogout    = "/logout"

	// Administrative section routes
	RoutePlayers      = "/players"
	RouteConnections  = "/connections"
	RouteBans         = "/bans"
	RouteServerConfig = "/server-config"

	// Operational routes
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
)
