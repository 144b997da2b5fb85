// internal/api/types/request.go
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CreateEnvelopeRequest is the body of POST /envelopes.
type CreateEnvelopeRequest struct {
	Name          string           `json:"name"`
	InitialAmount *decimal.Decimal `json:"initialAmount"`
	StartDate     *Instant         `json:"startDate"`
	EndDate       *Instant         `json:"endDate"`
}

// PostTransactionRequest is the body of POST /transactions.
// PreventNegative defaults to true when omitted.
type PostTransactionRequest struct {
	EnvelopeID      ID              `json:"envelopeId"`
	Direction       string          `json:"direction"`
	Amount          decimal.Decimal `json:"amount"`
	Who             string          `json:"who"`
	Note            *string         `json:"note"`
	OccurredAt      *Instant        `json:"occurredAt"`
	PreventNegative *bool           `json:"preventNegative"`
}

// ShouldPreventNegative resolves the overdraft flag.
func (r PostTransactionRequest) ShouldPreventNegative() bool {
	return r.PreventNegative == nil || *r.PreventNegative
}

// ID is an identifier that clients may send as a JSON number or string.
type ID int64

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		*id = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(strings.TrimSpace(s))
		if len(b) == 0 {
			*id = 0
			return nil
		}
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("%s is not an integer id", b)
	}
	*id = ID(n)
	return nil
}

// Instant is a point in time sent as RFC 3339 or as a YYYY-MM-DD date.
type Instant struct {
	time.Time
}

func (i *Instant) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("expected a date string, got %s", b)
	}
	t, err := ParseInstant(s)
	if err != nil {
		return err
	}
	i.Time = t
	return nil
}

// Ptr returns the instant as a *time.Time, nil for a nil receiver.
func (i *Instant) Ptr() *time.Time {
	if i == nil {
		return nil
	}
	t := i.Time
	return &t
}

// ParseInstant accepts an RFC 3339 timestamp or a calendar date, which is
// read as UTC midnight.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%q is not an RFC 3339 timestamp or YYYY-MM-DD date", s)
}
