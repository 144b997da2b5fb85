// internal/events/events.go
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"mybudget/internal/domain"
)

// TransactionPostedType is the event type and AMQP routing key for posted transactions.
const TransactionPostedType = "transaction.posted"

// Publisher delivers ledger events. Delivery is best-effort; callers must not
// treat a publish failure as a failure of the committed operation.
type Publisher interface {
	PublishTransactionPosted(ctx context.Context, event *TransactionPosted) error
	Close() error
}

// TransactionPosted describes a committed transaction and the balance after it.
type TransactionPosted struct {
	EventID       uuid.UUID        `json:"event_id"`
	Type          string           `json:"type"`
	TransactionID int64            `json:"transaction_id"`
	EnvelopeID    int64            `json:"envelope_id"`
	Direction     domain.Direction `json:"direction"`
	Amount        decimal.Decimal  `json:"amount"`
	Who           string           `json:"who"`
	Note          *string          `json:"note,omitempty"`
	OccurredAt    time.Time        `json:"occurred_at"`
	NewBalance    decimal.Decimal  `json:"new_balance"`
	PublishedAt   time.Time        `json:"published_at"`
}

// NewTransactionPosted builds the event for a committed transaction.
func NewTransactionPosted(tx *domain.Transaction, newBalance decimal.Decimal) *TransactionPosted {
	return &TransactionPosted{
		EventID:       uuid.New(),
		Type:          TransactionPostedType,
		TransactionID: tx.ID,
		EnvelopeID:    tx.EnvelopeID,
		Direction:     tx.Direction,
		Amount:        tx.Amount,
		Who:           tx.Who,
		Note:          tx.Note,
		OccurredAt:    tx.OccurredAt,
		NewBalance:    newBalance,
		PublishedAt:   time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e *TransactionPosted) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TransactionPostedFromJSON decodes an event produced by ToJSON.
func TransactionPostedFromJSON(data []byte) (*TransactionPosted, error) {
	var event TransactionPosted
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// NopPublisher discards every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishTransactionPosted(context.Context, *TransactionPosted) error { return nil }

func (NopPublisher) Close() error { return nil }
