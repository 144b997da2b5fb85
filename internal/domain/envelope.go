// internal/domain/envelope.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Envelope is a named budget bucket. Balance is never stored; it is read from
// the envelope_balances view together with the row.
type Envelope struct {
	ID            int64           `db:"id" json:"id"`
	Name          string          `db:"name" json:"name"`
	InitialAmount decimal.Decimal `db:"initial_amount" json:"initial_amount"`
	StartDate     *time.Time      `db:"start_date" json:"start_date"`
	EndDate       *time.Time      `db:"end_date" json:"end_date"`
	Active        bool            `db:"active" json:"active"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	Balance       decimal.Decimal `db:"balance" json:"balance"`
}

// NewEnvelope creates an active envelope whose balance equals its initial amount.
func NewEnvelope(name string, initialAmount decimal.Decimal, startDate, endDate *time.Time) *Envelope {
	return &Envelope{
		Name:          name,
		InitialAmount: initialAmount,
		StartDate:     startDate,
		EndDate:       endDate,
		Active:        true,
		CreatedAt:     time.Now().UTC().Truncate(TimePrecision),
		Balance:       initialAmount,
	}
}
