// internal/api/handler/transaction.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"mybudget/internal/api/types"
	"mybudget/internal/domain"
	"mybudget/internal/service"
	"mybudget/internal/util"
)

// TransactionHandler handles HTTP requests for the ledger.
type TransactionHandler struct {
	service service.LedgerService
	logger  *slog.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(svc service.LedgerService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		service: svc,
		logger:  logger,
	}
}

// PostTransaction handles POST /transactions.
func (h *TransactionHandler) PostTransaction(w http.ResponseWriter, r *http.Request) {
	var req types.PostTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	tx, newBalance, err := h.service.PostTransaction(r.Context(), service.PostTransactionInput{
		EnvelopeID:      int64(req.EnvelopeID),
		Direction:       domain.Direction(req.Direction),
		Amount:          req.Amount,
		Who:             req.Who,
		Note:            req.Note,
		OccurredAt:      req.OccurredAt.Ptr(),
		PreventNegative: req.ShouldPreventNegative(),
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	h.logger.Info("Transaction posted",
		"transaction_id", tx.ID,
		"envelope_id", tx.EnvelopeID,
		"direction", tx.Direction,
		"amount", tx.Amount.String(),
		"new_balance", newBalance.String())
	respondWithJSON(w, h.logger, http.StatusCreated, types.PostTransactionResponse{
		Tx:         tx,
		NewBalance: json.Number(newBalance.String()),
	})
}

// ListTransactions handles GET /transactions?envelopeId=&who=&from=&to=&limit=.
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTransactionFilter(r)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	transactions, err := h.service.ListTransactions(r.Context(), filter)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, transactions)
}

// parseTransactionFilter reads the listing query. Empty parameters do not filter.
func parseTransactionFilter(r *http.Request) (domain.TransactionFilter, error) {
	query := r.URL.Query()
	filter := domain.TransactionFilter{Limit: domain.DefaultTransactionLimit}

	if s := strings.TrimSpace(query.Get("envelopeId")); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return filter, util.NewValidationError("envelopeId", "must be an integer")
		}
		filter.EnvelopeID = &id
	}
	if who := query.Get("who"); who != "" {
		filter.Who = &who
	}
	if s := query.Get("from"); s != "" {
		from, err := types.ParseInstant(s)
		if err != nil {
			return filter, util.NewValidationError("from", err.Error())
		}
		filter.From = &from
	}
	if s := query.Get("to"); s != "" {
		to, err := types.ParseInstant(s)
		if err != nil {
			return filter, util.NewValidationError("to", err.Error())
		}
		filter.To = &to
	}
	if s := strings.TrimSpace(query.Get("limit")); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil {
			return filter, util.NewValidationError("limit", "must be an integer")
		}
		filter.Limit = limit
	}
	return filter, nil
}
