package api

import (
	"net/http"
	"time"

	"foodorder/internal/version"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Version     string    `json:"version"`
	Uptime      string    `json:"uptime"`
	Restaurants int       `json:"restaurantsWithOrders"`
	CatalogDir  string    `json:"catalogDir"`
}

// handleHealth responds to health check requests (simple liveness check)
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Version:     version.Version,
		Uptime:      time.Since(s.startedAt).Round(time.Second).String(),
		Restaurants: s.aggregator.Len(),
		CatalogDir:  s.catalog.Dir(),
	}

	WriteJSON(w, response, http.StatusOK)
}
