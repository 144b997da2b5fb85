// internal/repository/envelope_repo.go
package repository

import (
	"context"

	"mybudget/internal/domain"

	"github.com/shopspring/decimal"
)

// EnvelopeRepository defines the interface for envelope data operations.
type EnvelopeRepository interface {
	// CreateEnvelope inserts the envelope and fills in its generated ID.
	CreateEnvelope(ctx context.Context, q DBExecutor, envelope *domain.Envelope) error
	// GetEnvelopeByID returns the envelope with its derived balance.
	GetEnvelopeByID(ctx context.Context, q DBExecutor, id int64) (*domain.Envelope, error)
	// ListEnvelopes returns envelopes newest first, optionally including inactive ones.
	ListEnvelopes(ctx context.Context, q DBExecutor, includeInactive bool) ([]domain.Envelope, error)
	// SetEnvelopeActive toggles the active flag and returns the updated envelope.
	SetEnvelopeActive(ctx context.Context, q DBExecutor, id int64, active bool) (*domain.Envelope, error)
	// DeleteEnvelope removes the envelope and, by cascade, its transactions.
	// It returns the number of envelope rows removed.
	DeleteEnvelope(ctx context.Context, q DBExecutor, id int64) (int64, error)
	// LockEnvelope takes an exclusive row lock held until q's transaction ends.
	LockEnvelope(ctx context.Context, q DBExecutor, id int64) error
	// GetEnvelopeBalance reads the derived balance as seen by q.
	GetEnvelopeBalance(ctx context.Context, q DBExecutor, id int64) (decimal.Decimal, error)
}
