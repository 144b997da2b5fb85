// internal/api/types/response.go
package types

import (
	"encoding/json"

	"mybudget/internal/domain"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SoftDeleteResponse is returned by DELETE /envelopes/{id}.
type SoftDeleteResponse struct {
	OK       bool             `json:"ok"`
	Mode     string           `json:"mode"`
	Envelope *domain.Envelope `json:"envelope"`
}

// HardDeleteResponse is returned by DELETE /envelopes/{id}?hard=1. Deleted
// reports whether a row existed.
type HardDeleteResponse struct {
	OK      bool   `json:"ok"`
	Mode    string `json:"mode"`
	Deleted bool   `json:"deleted"`
}

// RestoreResponse is returned by PATCH /envelopes/{id}/restore.
type RestoreResponse struct {
	OK       bool             `json:"ok"`
	Envelope *domain.Envelope `json:"envelope"`
}

// PostTransactionResponse is returned by POST /transactions. NewBalance is
// written as a bare JSON number.
type PostTransactionResponse struct {
	Tx         *domain.Transaction `json:"tx"`
	NewBalance json.Number         `json:"newBalance"`
}
