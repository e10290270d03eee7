package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/storefront/storefront/internal/catalog"
	"github.com/storefront/storefront/internal/logger"
	"github.com/storefront/storefront/internal/middleware"
	"github.com/storefront/storefront/internal/order"
)

const maxBodyBytes = 1 << 20

// HealthChecker is a dependency that can report its own health
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Handler holds all HTTP handlers
type Handler struct {
	log        *logger.Logger
	catalogSvc *catalog.Service
	orderSvc   *order.Service
	checks     map[string]HealthChecker
}

// New creates a new Handler instance. checks maps a dependency name to its checker.
func New(log *logger.Logger, catalogSvc *catalog.Service, orderSvc *order.Service, checks map[string]HealthChecker) *Handler {
	return &Handler{
		log:        log.WithComponent("http"),
		catalogSvc: catalogSvc,
		orderSvc:   orderSvc,
		checks:     checks,
	}
}

func (h *Handler) requestLog(r *http.Request) *logger.Logger {
	return h.log.WithRequestID(middleware.GetRequestID(r.Context()))
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeMessage answers with {"message": ...}
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeError answers with {"error": ...}
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func readJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("request body is empty")
	}
	defer r.Body.Close()

	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}
