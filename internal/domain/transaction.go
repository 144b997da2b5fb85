// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction tells whether a transaction moves money into or out of an envelope.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Valid reports whether d is one of the known directions.
func (d Direction) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

// Signed returns amount with the sign implied by d.
func (d Direction) Signed(amount decimal.Decimal) decimal.Decimal {
	if d == DirectionOut {
		return amount.Neg()
	}
	return amount
}

// AmountScale is the number of fractional digits the store keeps for money.
const AmountScale = 4

// TimePrecision is the resolution of stored timestamps.
const TimePrecision = time.Microsecond

// FitsAmountScale reports whether d can be stored without rounding.
func FitsAmountScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(AmountScale))
}

// Transaction is an immutable movement of money. Amount is always a positive
// magnitude; Direction carries the sign.
type Transaction struct {
	ID         int64           `db:"id" json:"id"`
	EnvelopeID int64           `db:"envelope_id" json:"envelope_id"`
	Direction  Direction       `db:"direction" json:"direction"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
	Who        string          `db:"who" json:"who"`
	Note       *string         `db:"note" json:"note"`
	OccurredAt time.Time       `db:"occurred_at" json:"occurred_at"`
}

// NewTransaction creates a new Transaction instance.
func NewTransaction(envelopeID int64, direction Direction, amount decimal.Decimal, who string, note *string, occurredAt time.Time) *Transaction {
	return &Transaction{
		EnvelopeID: envelopeID,
		Direction:  direction,
		Amount:     amount,
		Who:        who,
		Note:       note,
		OccurredAt: occurredAt.UTC().Truncate(TimePrecision),
	}
}

const (
	DefaultTransactionLimit = 200
	MaxTransactionLimit     = 1000
)

// TransactionFilter selects transactions for listing. Nil fields do not filter.
// From is inclusive and To is exclusive.
type TransactionFilter struct {
	EnvelopeID *int64
	Who        *string
	From       *time.Time
	To         *time.Time
	Limit      int
}

// ClampLimit bounds a requested page size to [0, MaxTransactionLimit].
func ClampLimit(limit int) int {
	if limit < 0 {
		return 0
	}
	if limit > MaxTransactionLimit {
		return MaxTransactionLimit
	}
	return limit
}

// Balance derives an envelope balance from its initial amount and history.
func Balance(initial decimal.Decimal, txs []Transaction) decimal.Decimal {
	balance := initial
	for _, tx := range txs {
		balance = balance.Add(tx.Direction.Signed(tx.Amount))
	}
	return balance
}
