package requests

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/djobea/djobea-ai/pkg/logging"
)

// Handler exposes the request lifecycle over HTTP: the provider accept/decline
// webhook and the status lookup.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a request lifecycle handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger.Named("requests.handler")}
}

type providerResponsePayload struct {
	RequestID  string `json:"request_id"`
	ProviderID string `json:"provider_id"`
	Accepted   bool   `json:"accepted"`
	Reason     string `json:"reason,omitempty"`
}

// ProviderResponse handles POST /providers/response: a provider accepting or
// declining an offer. The atomic accept means concurrent acceptances resolve
// to exactly one winner.
func (h *Handler) ProviderResponse(w http.ResponseWriter, r *http.Request) {
	var payload providerResponsePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	requestID, err := uuid.Parse(payload.RequestID)
	if err != nil {
		http.Error(w, "Invalid request_id", http.StatusBadRequest)
		return
	}
	providerID, err := uuid.Parse(payload.ProviderID)
	if err != nil {
		http.Error(w, "Invalid provider_id", http.StatusBadRequest)
		return
	}

	message, err := h.service.HandleProviderResponse(r.Context(), requestID, providerID, payload.Accepted)
	switch {
	case errors.Is(err, ErrRequestNotFound):
		http.Error(w, "Request not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("provider response failed",
			"request_id", requestID, "provider_id", providerID, "error", err)
		http.Error(w, "Failed to process response", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

// Status handles GET /requests/{id}/status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid request id", http.StatusBadRequest)
		return
	}

	req, err := h.service.GetRequest(r.Context(), id)
	switch {
	case errors.Is(err, ErrRequestNotFound):
		http.Error(w, "Request not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("status lookup failed", "request_id", id, "error", err)
		http.Error(w, "Failed to load request", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"reference": req.Reference(),
		"status":    req.Status,
		"summary":   StatusSummary(req),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}
