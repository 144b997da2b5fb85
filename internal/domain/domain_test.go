// internal/domain/domain_test.go
package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDirection(t *testing.T) {
	assert.True(t, DirectionIn.Valid())
	assert.True(t, DirectionOut.Valid())
	assert.False(t, Direction("IN").Valid())
	assert.False(t, Direction("").Valid())

	amount := decimal.NewFromInt(25)
	assert.True(t, amount.Equal(DirectionIn.Signed(amount)))
	assert.True(t, amount.Neg().Equal(DirectionOut.Signed(amount)))
}

func TestBalance(t *testing.T) {
	txs := []Transaction{
		{Direction: DirectionIn, Amount: decimal.NewFromInt(50)},
		{Direction: DirectionOut, Amount: decimal.RequireFromString("20.25")},
		{Direction: DirectionOut, Amount: decimal.NewFromInt(100)},
	}

	assert.True(t, decimal.NewFromInt(100).Equal(Balance(decimal.NewFromInt(100), nil)))
	assert.True(t, decimal.RequireFromString("29.75").Equal(Balance(decimal.NewFromInt(100), txs)))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 0, ClampLimit(-5))
	assert.Equal(t, 0, ClampLimit(0))
	assert.Equal(t, 200, ClampLimit(200))
	assert.Equal(t, MaxTransactionLimit, ClampLimit(MaxTransactionLimit))
	assert.Equal(t, MaxTransactionLimit, ClampLimit(MaxTransactionLimit+1))
}

func TestNewEnvelope(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	e := NewEnvelope("Rent", decimal.NewFromInt(900), &start, nil)

	assert.Equal(t, "Rent", e.Name)
	assert.True(t, e.Active)
	assert.True(t, e.Balance.Equal(e.InitialAmount))
	assert.Equal(t, &start, e.StartDate)
	assert.Nil(t, e.EndDate)
	assert.Equal(t, time.UTC, e.CreatedAt.Location())
	assert.Zero(t, e.CreatedAt.Nanosecond()%int(TimePrecision))
}

func TestNewTransactionNormalizesToUTC(t *testing.T) {
	local := time.Date(2025, 1, 1, 8, 0, 0, 0, time.FixedZone("ICT", 7*3600))

	tx := NewTransaction(1, DirectionIn, decimal.NewFromInt(5), "bob", nil, local)

	assert.True(t, tx.OccurredAt.Equal(local))
	assert.Equal(t, time.UTC, tx.OccurredAt.Location())
}

func TestNewTransactionTruncatesToStoredPrecision(t *testing.T) {
	at := time.Date(2025, 1, 1, 8, 0, 0, 123456789, time.UTC)

	tx := NewTransaction(1, DirectionIn, decimal.NewFromInt(5), "bob", nil, at)

	assert.Equal(t, time.Date(2025, 1, 1, 8, 0, 0, 123456000, time.UTC), tx.OccurredAt)
}

func TestFitsAmountScale(t *testing.T) {
	tests := []struct {
		amount string
		fits   bool
	}{
		{"5", true},
		{"5.0001", true},
		{"5.00010", true},
		{"-12.3456", true},
		{"5.00005", false},
		{"0.00001", false},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.fits, FitsAmountScale(decimal.RequireFromString(tt.amount)))
		})
	}
}
