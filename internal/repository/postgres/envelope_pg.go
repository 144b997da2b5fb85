// internal/repository/postgres/envelope_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"mybudget/internal/domain"
	"mybudget/internal/repository"
	"mybudget/internal/util"
)

const envelopeColumns = `id, name, initial_amount, start_date, end_date, active, created_at, balance`

// EnvelopeRepository implements repository.EnvelopeRepository for PostgreSQL.
type EnvelopeRepository struct{}

// NewEnvelopeRepository creates a new EnvelopeRepository.
func NewEnvelopeRepository() repository.EnvelopeRepository {
	return &EnvelopeRepository{}
}

// CreateEnvelope inserts a new envelope and scans the stored row back into
// envelope. A new envelope has no transactions, so its balance is the stored
// initial amount.
func (r *EnvelopeRepository) CreateEnvelope(ctx context.Context, q repository.DBExecutor, envelope *domain.Envelope) error {
	query := `INSERT INTO envelopes (name, initial_amount, start_date, end_date, active, created_at)
              VALUES ($1, $2, $3, $4, $5, $6)
              RETURNING id, name, initial_amount, start_date, end_date, active, created_at, initial_amount AS balance`
	err := q.QueryRowxContext(ctx, query,
		envelope.Name,
		envelope.InitialAmount,
		envelope.StartDate,
		envelope.EndDate,
		envelope.Active,
		envelope.CreatedAt,
	).StructScan(envelope)
	if err != nil {
		return translateError("create envelope", err)
	}
	return nil
}

// GetEnvelopeByID retrieves an envelope and its balance from the envelope_balances view.
func (r *EnvelopeRepository) GetEnvelopeByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Envelope, error) {
	var envelope domain.Envelope
	query := `SELECT ` + envelopeColumns + ` FROM envelope_balances WHERE id = $1`
	if err := q.GetContext(ctx, &envelope, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &util.NotFoundError{Resource: "envelope", ID: id}
		}
		return nil, translateError(fmt.Sprintf("get envelope %d", id), err)
	}
	return &envelope, nil
}

// ListEnvelopes returns envelopes ordered by creation time, newest first.
func (r *EnvelopeRepository) ListEnvelopes(ctx context.Context, q repository.DBExecutor, includeInactive bool) ([]domain.Envelope, error) {
	envelopes := []domain.Envelope{}
	query := `SELECT ` + envelopeColumns + ` FROM envelope_balances`
	if !includeInactive {
		query += ` WHERE active = true`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	if err := q.SelectContext(ctx, &envelopes, query); err != nil {
		return nil, translateError("list envelopes", err)
	}
	return envelopes, nil
}

// SetEnvelopeActive updates the active flag in one statement. The balance is
// computed in RETURNING because a view read in the same statement would still
// see the pre-update row.
func (r *EnvelopeRepository) SetEnvelopeActive(ctx context.Context, q repository.DBExecutor, id int64, active bool) (*domain.Envelope, error) {
	var envelope domain.Envelope
	query := `
		UPDATE envelopes e SET active = $2
		WHERE e.id = $1
		RETURNING e.id, e.name, e.initial_amount, e.start_date, e.end_date, e.active, e.created_at,
			e.initial_amount + COALESCE((
				SELECT SUM(CASE WHEN t.direction = 'in' THEN t.amount ELSE -t.amount END)
				FROM transactions t
				WHERE t.envelope_id = e.id
			), 0) AS balance`
	if err := q.GetContext(ctx, &envelope, query, id, active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &util.NotFoundError{Resource: "envelope", ID: id}
		}
		return nil, translateError(fmt.Sprintf("set envelope %d active=%t", id, active), err)
	}
	return &envelope, nil
}

// DeleteEnvelope removes the envelope; ON DELETE CASCADE removes its transactions.
func (r *EnvelopeRepository) DeleteEnvelope(ctx context.Context, q repository.DBExecutor, id int64) (int64, error) {
	result, err := q.ExecContext(ctx, `DELETE FROM envelopes WHERE id = $1`, id)
	if err != nil {
		return 0, translateError(fmt.Sprintf("delete envelope %d", id), err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, translateError(fmt.Sprintf("delete envelope %d: rows affected", id), err)
	}
	return rowsAffected, nil
}

// LockEnvelope blocks until it holds the row lock on the envelope. It must be
// called inside a transaction; the lock is released on commit or rollback.
func (r *EnvelopeRepository) LockEnvelope(ctx context.Context, q repository.DBExecutor, id int64) error {
	var lockedID int64
	if err := q.GetContext(ctx, &lockedID, `SELECT id FROM envelopes WHERE id = $1 FOR UPDATE`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &util.NotFoundError{Resource: "envelope", ID: id}
		}
		return translateError(fmt.Sprintf("lock envelope %d", id), err)
	}
	return nil
}

// GetEnvelopeBalance reads the derived balance of one envelope.
func (r *EnvelopeRepository) GetEnvelopeBalance(ctx context.Context, q repository.DBExecutor, id int64) (decimal.Decimal, error) {
	var balance decimal.Decimal
	if err := q.GetContext(ctx, &balance, `SELECT balance FROM envelope_balances WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, &util.NotFoundError{Resource: "envelope", ID: id}
		}
		return decimal.Zero, translateError(fmt.Sprintf("get balance of envelope %d", id), err)
	}
	return balance, nil
}
