// internal/service/ledger_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"mybudget/internal/domain"
	"mybudget/internal/events"
	"mybudget/internal/repository"
	"mybudget/internal/util"
	"mybudget/pkg/db"
)

// LedgerService defines the transaction posting and listing operations.
type LedgerService interface {
	// PostTransaction appends a transaction under the envelope's row lock and
	// returns it together with the balance after the insert.
	PostTransaction(ctx context.Context, in PostTransactionInput) (*domain.Transaction, decimal.Decimal, error)
	// ListTransactions reads without locking; results are a point-in-time view.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)
}

// PostTransactionInput carries a posting request.
type PostTransactionInput struct {
	EnvelopeID      int64
	Direction       domain.Direction
	Amount          decimal.Decimal
	Who             string
	Note            *string
	OccurredAt      *time.Time
	PreventNegative bool
}

// Validate checks the request without touching the store.
func (in PostTransactionInput) Validate() error {
	if in.EnvelopeID <= 0 {
		return util.NewValidationError("envelopeId", "is required")
	}
	if !in.Direction.Valid() {
		return util.NewValidationError("direction", "must be 'in' or 'out'")
	}
	if !in.Amount.IsPositive() {
		return util.NewValidationError("amount", "must be greater than zero")
	}
	if !domain.FitsAmountScale(in.Amount) {
		return util.NewValidationError("amount", fmt.Sprintf("must have at most %d decimal places", domain.AmountScale))
	}
	if strings.TrimSpace(in.Who) == "" {
		return util.NewValidationError("who", "is required")
	}
	return nil
}

// LedgerOption customizes a ledger service.
type LedgerOption func(*ledgerService)

// WithLockTimeout bounds the wait for an envelope lock. Zero keeps the store default.
func WithLockTimeout(d time.Duration) LedgerOption {
	return func(s *ledgerService) { s.lockTimeout = d }
}

// WithPublisher sets the publisher notified after each committed posting.
func WithPublisher(p events.Publisher) LedgerOption {
	return func(s *ledgerService) { s.publisher = p }
}

// WithClock replaces the clock used for default occurred_at values.
func WithClock(now func() time.Time) LedgerOption {
	return func(s *ledgerService) { s.now = now }
}

// WithLogger sets the logger used by the service.
func WithLogger(logger *slog.Logger) LedgerOption {
	return func(s *ledgerService) { s.logger = logger }
}

// ledgerService implements the LedgerService interface.
type ledgerService struct {
	dbBeginner      db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor      repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	envelopeRepo    repository.EnvelopeRepository
	transactionRepo repository.TransactionRepository
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc

	lockTimeout time.Duration
	publisher   events.Publisher
	now         func() time.Time
	logger      *slog.Logger
}

// NewLedgerService creates a new instance of LedgerService.
func NewLedgerService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	envelopeRepo repository.EnvelopeRepository,
	transactionRepo repository.TransactionRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	opts ...LedgerOption,
) LedgerService {
	s := &ledgerService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		envelopeRepo:    envelopeRepo,
		transactionRepo: transactionRepo,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
		publisher:       events.NopPublisher{},
		now:             time.Now,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PostTransaction runs the posting protocol: lock the envelope row, read the
// balance, apply the overdraft policy, insert, re-read, commit. Any failure
// after BeginTx rolls the whole unit of work back.
func (s *ledgerService) PostTransaction(ctx context.Context, in PostTransactionInput) (*domain.Transaction, decimal.Decimal, error) {
	if err := in.Validate(); err != nil {
		return nil, decimal.Zero, err
	}
	who := strings.TrimSpace(in.Who)

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("post transaction: %w", &util.StoreError{Op: "begin transaction", Err: err})
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, decimal.Zero, fmt.Errorf("post transaction: transaction controller does not implement DBExecutor")
	}

	if err := db.SetLockTimeout(ctx, txExecutor, s.lockTimeout); err != nil {
		return nil, decimal.Zero, fmt.Errorf("post transaction: %w", &util.StoreError{Op: "set lock timeout", Err: err})
	}

	if err := s.envelopeRepo.LockEnvelope(ctx, txExecutor, in.EnvelopeID); err != nil {
		return nil, decimal.Zero, fmt.Errorf("post transaction: %w", err)
	}

	balance, err := s.envelopeRepo.GetEnvelopeBalance(ctx, txExecutor, in.EnvelopeID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("post transaction: failed to read balance: %w", err)
	}

	if in.PreventNegative && in.Direction == domain.DirectionOut && balance.LessThan(in.Amount) {
		s.logger.InfoContext(ctx, "Overdraft rejected",
			"envelope_id", in.EnvelopeID,
			"available", balance.String(),
			"requested", in.Amount.String())
		return nil, decimal.Zero, &util.InsufficientFundsError{Available: balance, Requested: in.Amount}
	}

	// The default timestamp is taken only once the lock is held, so timestamps
	// follow the order in which postings against one envelope commit.
	occurredAt := s.now()
	if in.OccurredAt != nil {
		occurredAt = *in.OccurredAt
	}

	transaction := domain.NewTransaction(in.EnvelopeID, in.Direction, in.Amount, who, in.Note, occurredAt)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, decimal.Zero, fmt.Errorf("post transaction: failed to create transaction: %w", err)
	}

	newBalance, err := s.envelopeRepo.GetEnvelopeBalance(ctx, txExecutor, in.EnvelopeID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("post transaction: failed to re-read balance: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, decimal.Zero, fmt.Errorf("post transaction: %w", &util.StoreError{Op: "commit", Err: err})
	}

	s.publish(ctx, transaction, newBalance)
	return transaction, newBalance, nil
}

// publish notifies the publisher of a committed posting. The result has
// already been committed, so failures are only logged.
func (s *ledgerService) publish(ctx context.Context, transaction *domain.Transaction, newBalance decimal.Decimal) {
	event := events.NewTransactionPosted(transaction, newBalance)
	if err := s.publisher.PublishTransactionPosted(context.WithoutCancel(ctx), event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish ledger event",
			"error", err,
			"event_id", event.EventID,
			"transaction_id", transaction.ID)
	}
}

// ListTransactions retrieves transactions matching filter, most recent first.
func (s *ledgerService) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return []domain.Transaction{}, nil
	}
	filter.Limit = domain.ClampLimit(filter.Limit)

	transactions, err := s.transactionRepo.ListTransactions(ctx, s.dbExecutor, filter)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}
