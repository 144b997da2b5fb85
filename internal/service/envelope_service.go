// internal/service/envelope_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"mybudget/internal/domain"
	"mybudget/internal/repository"
	"mybudget/internal/util"
)

// EnvelopeService defines the envelope registry operations.
type EnvelopeService interface {
	ListEnvelopes(ctx context.Context, includeInactive bool) ([]domain.Envelope, error)
	GetEnvelope(ctx context.Context, id int64) (*domain.Envelope, error)
	CreateEnvelope(ctx context.Context, in CreateEnvelopeInput) (*domain.Envelope, error)
	SoftDeleteEnvelope(ctx context.Context, id int64) (*domain.Envelope, error)
	RestoreEnvelope(ctx context.Context, id int64) (*domain.Envelope, error)
	// HardDeleteEnvelope succeeds whether or not the envelope existed; the
	// boolean reports whether a row was removed.
	HardDeleteEnvelope(ctx context.Context, id int64) (bool, error)
}

// CreateEnvelopeInput carries the fields accepted when creating an envelope.
type CreateEnvelopeInput struct {
	Name          string
	InitialAmount decimal.Decimal
	StartDate     *time.Time
	EndDate       *time.Time
}

// envelopeService implements EnvelopeService. Every operation is a single
// statement, so it runs on the pool without an explicit unit of work.
type envelopeService struct {
	dbExecutor   repository.DBExecutor
	envelopeRepo repository.EnvelopeRepository
}

// NewEnvelopeService creates a new instance of EnvelopeService.
func NewEnvelopeService(dbExecutor repository.DBExecutor, envelopeRepo repository.EnvelopeRepository) EnvelopeService {
	return &envelopeService{
		dbExecutor:   dbExecutor,
		envelopeRepo: envelopeRepo,
	}
}

func (s *envelopeService) ListEnvelopes(ctx context.Context, includeInactive bool) ([]domain.Envelope, error) {
	envelopes, err := s.envelopeRepo.ListEnvelopes(ctx, s.dbExecutor, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("list envelopes: %w", err)
	}
	return envelopes, nil
}

func (s *envelopeService) GetEnvelope(ctx context.Context, id int64) (*domain.Envelope, error) {
	if id <= 0 {
		return nil, util.NewValidationError("id", "must be a positive integer")
	}
	envelope, err := s.envelopeRepo.GetEnvelopeByID(ctx, s.dbExecutor, id)
	if err != nil {
		return nil, fmt.Errorf("get envelope: %w", err)
	}
	return envelope, nil
}

func (s *envelopeService) CreateEnvelope(ctx context.Context, in CreateEnvelopeInput) (*domain.Envelope, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, util.NewValidationError("name", "is required")
	}
	if !domain.FitsAmountScale(in.InitialAmount) {
		return nil, util.NewValidationError("initialAmount", fmt.Sprintf("must have at most %d decimal places", domain.AmountScale))
	}

	envelope := domain.NewEnvelope(name, in.InitialAmount, in.StartDate, in.EndDate)
	if err := s.envelopeRepo.CreateEnvelope(ctx, s.dbExecutor, envelope); err != nil {
		return nil, fmt.Errorf("create envelope: %w", err)
	}
	return envelope, nil
}

func (s *envelopeService) SoftDeleteEnvelope(ctx context.Context, id int64) (*domain.Envelope, error) {
	return s.setActive(ctx, "soft delete envelope", id, false)
}

func (s *envelopeService) RestoreEnvelope(ctx context.Context, id int64) (*domain.Envelope, error) {
	return s.setActive(ctx, "restore envelope", id, true)
}

func (s *envelopeService) setActive(ctx context.Context, op string, id int64, active bool) (*domain.Envelope, error) {
	if id <= 0 {
		return nil, util.NewValidationError("id", "must be a positive integer")
	}
	envelope, err := s.envelopeRepo.SetEnvelopeActive(ctx, s.dbExecutor, id, active)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return envelope, nil
}

func (s *envelopeService) HardDeleteEnvelope(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, util.NewValidationError("id", "must be a positive integer")
	}
	removed, err := s.envelopeRepo.DeleteEnvelope(ctx, s.dbExecutor, id)
	if err != nil {
		return false, fmt.Errorf("hard delete envelope: %w", err)
	}
	return removed > 0, nil
}
