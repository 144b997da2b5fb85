// internal/api/handler/envelope.go
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"mybudget/internal/api/types"
	"mybudget/internal/service"
	"mybudget/internal/util"
)

// EnvelopeHandler handles HTTP requests for the envelope registry.
type EnvelopeHandler struct {
	service service.EnvelopeService
	logger  *slog.Logger
}

// NewEnvelopeHandler creates a new EnvelopeHandler.
func NewEnvelopeHandler(svc service.EnvelopeService, logger *slog.Logger) *EnvelopeHandler {
	return &EnvelopeHandler{
		service: svc,
		logger:  logger,
	}
}

// ListEnvelopes returns active envelopes, or all of them with ?all=1.
// GET /envelopes
func (h *EnvelopeHandler) ListEnvelopes(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("all") == "1"

	envelopes, err := h.service.ListEnvelopes(r.Context(), includeInactive)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, envelopes)
}

// GetEnvelope returns one envelope with its balance.
// GET /envelopes/{id}
func (h *EnvelopeHandler) GetEnvelope(w http.ResponseWriter, r *http.Request) {
	id, err := envelopeIDParam(r)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	envelope, err := h.service.GetEnvelope(r.Context(), id)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, envelope)
}

// CreateEnvelope handles POST /envelopes.
func (h *EnvelopeHandler) CreateEnvelope(w http.ResponseWriter, r *http.Request) {
	var req types.CreateEnvelopeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	initialAmount := decimal.Zero
	if req.InitialAmount != nil {
		initialAmount = *req.InitialAmount
	}

	envelope, err := h.service.CreateEnvelope(r.Context(), service.CreateEnvelopeInput{
		Name:          req.Name,
		InitialAmount: initialAmount,
		StartDate:     req.StartDate.Ptr(),
		EndDate:       req.EndDate.Ptr(),
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	h.logger.Info("Envelope created", "envelope_id", envelope.ID, "name", envelope.Name)
	respondWithJSON(w, h.logger, http.StatusCreated, envelope)
}

// DeleteEnvelope hides an envelope, or removes it with its history when ?hard=1.
// DELETE /envelopes/{id}
func (h *EnvelopeHandler) DeleteEnvelope(w http.ResponseWriter, r *http.Request) {
	id, err := envelopeIDParam(r)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	if r.URL.Query().Get("hard") == "1" {
		deleted, err := h.service.HardDeleteEnvelope(r.Context(), id)
		if err != nil {
			respondWithError(w, h.logger, err)
			return
		}
		h.logger.Info("Envelope hard deleted", "envelope_id", id, "deleted", deleted)
		respondWithJSON(w, h.logger, http.StatusOK, types.HardDeleteResponse{OK: true, Mode: "hard", Deleted: deleted})
		return
	}

	envelope, err := h.service.SoftDeleteEnvelope(r.Context(), id)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, types.SoftDeleteResponse{OK: true, Mode: "soft", Envelope: envelope})
}

// RestoreEnvelope handles PATCH /envelopes/{id}/restore.
func (h *EnvelopeHandler) RestoreEnvelope(w http.ResponseWriter, r *http.Request) {
	id, err := envelopeIDParam(r)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	envelope, err := h.service.RestoreEnvelope(r.Context(), id)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, types.RestoreResponse{OK: true, Envelope: envelope})
}

func envelopeIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, util.NewValidationError("id", "must be a positive integer")
	}
	return id, nil
}
