package api

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"foodorder/internal/errors"
	"foodorder/internal/orders"
)

// OrderResponse acknowledges an accepted order.
type OrderResponse struct {
	OrderID string `json:"orderId"`
}

func (s *Server) handleOrderForm(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, s.pages.OrderForm)
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	rows, err := s.aggregator.Summaries(r.Context(), s.catalog)
	if err != nil {
		s.logger.Error("Failed to summarize orders", "error", err, "requestID", GetRequestID(r.Context()))
		ServerError(w)
		return
	}
	s.renderPage(w, r, func(out io.Writer) error {
		return s.pages.Statistics(out, rows)
	})
}

// renderPage renders into a buffer first so a template failure can still
// produce a clean 500.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		s.logger.Error("Failed to render page", "path", r.URL.Path, "error", err, "requestID", GetRequestID(r.Context()))
		ServerError(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// handleStatic serves one file from the public directory. The file is read on
// every request so edits show up without a restart.
func (s *Server) handleStatic(name, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := os.ReadFile(filepath.Join(s.publicDir, name))
		if err != nil {
			s.logger.Error("Failed to read static file", "file", name, "error", err, "requestID", GetRequestID(r.Context()))
			ServerError(w)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

func (s *Server) handleRestaurantNames(w http.ResponseWriter, r *http.Request) {
	names, err := s.catalog.Names(r.Context())
	if err != nil {
		s.logger.Error("Failed to list restaurants", "error", err)
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, names, http.StatusOK)
}

func (s *Server) handleAllRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := s.catalog.Load(r.Context())
	if err != nil {
		s.logger.Error("Failed to load restaurants", "error", err)
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, restaurants, http.StatusOK)
}

// handleOrderPlaced accepts {name, orders, totalPrice}. Only the JSON shape
// is checked; unknown restaurants and item ids are aggregated as-is.
func (s *Server) handleOrderPlaced(w http.ResponseWriter, r *http.Request) {
	if s.limiter != nil && !s.limiter.Allow() {
		if s.metrics != nil {
			s.metrics.RecordRateLimited()
		}
		w.Header().Set("Retry-After", "1")
		WriteAppError(w, errors.New(errors.RateLimited, "too many orders, retry shortly", nil))
		return
	}

	body := http.MaxBytesReader(w, r.Body, s.config.MaxOrderBytes)
	order, err := orders.Decode(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, errors.Newf(errors.InvalidOrder, "order body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		s.logger.Warn("Rejected malformed order", "error", err, "requestID", GetRequestID(r.Context()))
		WriteAppError(w, err)
		return
	}

	stats := s.aggregator.AddOrder(order)
	if s.metrics != nil {
		s.metrics.RecordOrder(order.TotalPrice)
	}

	orderID := uuid.New().String()
	s.logger.Info("Order placed",
		"orderId", orderID,
		"restaurant", order.Restaurant,
		"items", order.Quantity(),
		"total", order.TotalPrice.String(),
		"orderCount", stats.OrderCount,
	)

	WriteJSON(w, OrderResponse{OrderID: orderID}, http.StatusOK)
}

// handleStatsJSON returns the raw aggregate for every restaurant.
func (s *Server) handleStatsJSON(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, s.aggregator.Snapshot(), http.StatusOK)
}
