// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"strconv"
	"strings"

	"mybudget/internal/domain"
	"mybudget/internal/repository"
)

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository() repository.TransactionRepository {
	return &TransactionRepository{}
}

const transactionColumns = `id, envelope_id, direction, amount, who, note, occurred_at`

// CreateTransaction inserts a new transaction record using the provided DBExecutor.
// The stored row is scanned back into transaction, so rounding applied by the
// column types is visible to the caller.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (envelope_id, direction, amount, who, note, occurred_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING ` + transactionColumns

	err := q.QueryRowxContext(ctx, query,
		transaction.EnvelopeID,
		transaction.Direction,
		transaction.Amount,
		transaction.Who,
		transaction.Note,
		transaction.OccurredAt,
	).StructScan(transaction)
	if err != nil {
		return translateError("create transaction", err)
	}
	return nil
}

// ListTransactions retrieves transactions matching the filter, most recent first.
func (r *TransactionRepository) ListTransactions(ctx context.Context, q repository.DBExecutor, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	query, args := buildListTransactionsQuery(filter)
	if err := q.SelectContext(ctx, &transactions, query, args...); err != nil {
		return nil, translateError("list transactions", err)
	}
	return transactions, nil
}

// buildListTransactionsQuery renders the filter as a parameterized query.
func buildListTransactionsQuery(filter domain.TransactionFilter) (string, []interface{}) {
	var (
		conditions []string
		args       []interface{}
	)
	add := func(clause string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, clause+" $"+strconv.Itoa(len(args)))
	}

	if filter.EnvelopeID != nil {
		add("envelope_id =", *filter.EnvelopeID)
	}
	if filter.Who != nil {
		add("who =", *filter.Who)
	}
	if filter.From != nil {
		add("occurred_at >=", *filter.From)
	}
	if filter.To != nil {
		add("occurred_at <", *filter.To)
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + transactionColumns + ` FROM transactions`)
	if len(conditions) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conditions, " AND "))
	}
	args = append(args, domain.ClampLimit(filter.Limit))
	b.WriteString(" ORDER BY occurred_at DESC, id DESC LIMIT $" + strconv.Itoa(len(args)))

	return b.String(), args
}
