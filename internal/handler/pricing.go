package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"lease-pricing-api/internal/model"
	"lease-pricing-api/internal/pricing"
	"lease-pricing-api/internal/repository"
	"lease-pricing-api/internal/service"
)

type PricingHandler struct {
	pricingSvc *service.PricingService
	similarSvc *service.SimilarService
}

func NewPricingHandler(pricingSvc *service.PricingService, similarSvc *service.SimilarService) *PricingHandler {
	return &PricingHandler{
		pricingSvc: pricingSvc,
		similarSvc: similarSvc,
	}
}

// GetPricing prices one listing under the query's lease configuration.
// Both the legacy (km/mdr/udb) and descriptive parameter names are read.
func (h *PricingHandler) GetPricing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	params := map[string]string{}
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	response, err := h.pricingSvc.GetListingPricing(ctx, id, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Listing not found")
			return
		}
		slog.Error("failed to price listing", "listing_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "database_error", "Failed to load listing pricing")
		return
	}

	writeJSON(w, response)
}

// GetSimilar returns comparable listings plus the tier that produced them.
func (h *PricingHandler) GetSimilar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	count := 6
	if raw := r.URL.Query().Get("count"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			count = v
		}
	}

	response, err := h.similarSvc.FindSimilar(ctx, id, count)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Listing not found")
			return
		}
		slog.Error("failed to find similar listings", "listing_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "database_error", "Failed to load similar listings")
		return
	}

	writeJSON(w, response)
}

// Score scores an arbitrary offer, for backoffice probes.
func (h *PricingHandler) Score(w http.ResponseWriter, r *http.Request) {
	var input pricing.ScoreInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
		return
	}

	writeJSON(w, h.pricingSvc.ScoreOffer(input))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{
		Error:   code,
		Message: message,
	})
}
