package api

import (
	"net/http"
)

// Route paths. Each is matched exactly.
const (
	PathHome           = "/"
	PathIndex          = "/index"
	PathOrderForm      = "/orderform"
	PathStatistics     = "/restaurantstatistics"
	PathClientJS       = "/client.js"
	PathAddImage       = "/add.jpg"
	PathRemoveImage    = "/remove.jpg"
	PathRestaurants    = "/server.js"
	PathAllRestaurants = "/server.js/allRestaurants"
	PathOrderPlaced    = "/server.js/orderplaced"
	PathStatsJSON      = "/server.js/statistics"
	PathHealth         = "/health"
	PathMetrics        = "/metrics"
)

// registerRoutes registers all routes
func (s *Server) registerRoutes() {
	// Pages
	s.handle(PathOrderForm, http.MethodGet, s.handleOrderForm)
	s.handle(PathStatistics, http.MethodGet, s.handleStatistics)

	// Client assets, read from the public directory on every request
	s.handle(PathClientJS, http.MethodGet, s.handleStatic("client.js", "application/javascript"))
	s.handle(PathAddImage, http.MethodGet, s.handleStatic("add.jpg", "image/jpeg"))
	s.handle(PathRemoveImage, http.MethodGet, s.handleStatic("remove.jpg", "image/jpeg"))

	// JSON API used by client.js
	s.handle(PathRestaurants, http.MethodGet, s.handleRestaurantNames)
	s.handle(PathAllRestaurants, http.MethodGet, s.handleAllRestaurants)
	s.handle(PathOrderPlaced, http.MethodPost, s.handleOrderPlaced)
	s.handle(PathStatsJSON, http.MethodGet, s.handleStatsJSON)

	// Operations
	s.handle(PathHealth, http.MethodGet, s.handleHealth)
	if s.metrics != nil {
		s.handle(PathMetrics, http.MethodGet, s.metrics.Handler().ServeHTTP)
	}

	// Root endpoint; also the fallback for every unmatched path
	s.routes[PathHome] = true
	s.routes[PathIndex] = true
	s.router.HandleFunc("/", s.handleRoot)
}

// handle registers an exact-path route that only answers one method.
// Anything else on that path is an unknown resource.
func (s *Server) handle(path, method string, h http.HandlerFunc) {
	s.routes[path] = true
	s.router.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path || r.Method != method {
			UnknownResource(w)
			return
		}
		h(w, r)
	})
}

// routeLabel maps a request path to a bounded metrics label.
func (s *Server) routeLabel(path string) string {
	if s.routes[path] {
		return path
	}
	return "other"
}

// handleRoot serves the home page on / and /index and rejects everything else.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != PathHome && r.URL.Path != PathIndex {
		UnknownResource(w)
		return
	}
	if r.Method != http.MethodGet {
		UnknownResource(w)
		return
	}
	s.renderPage(w, r, s.pages.Home)
}
