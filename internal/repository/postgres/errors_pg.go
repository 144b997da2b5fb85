// internal/repository/postgres/errors_pg.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"mybudget/internal/util"
)

// SQLSTATE codes the repositories classify.
const (
	codeLockNotAvailable     = "55P03"
	codeDeadlockDetected     = "40P01"
	codeSerializationFailure = "40001"
	codeQueryCanceled        = "57014"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeNotNullViolation     = "23502"
	codeInvalidTextRep       = "22P02"
	codeNumericOutOfRange    = "22003"
)

// translateError maps a driver error onto the util error categories.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %v", op, util.ErrConflictTimeout, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case codeLockNotAvailable, codeDeadlockDetected, codeSerializationFailure, codeQueryCanceled:
			return fmt.Errorf("%s: %w: %s", op, util.ErrConflictTimeout, pqErr.Message)
		case codeForeignKeyViolation:
			return fmt.Errorf("%s: %w: %s", op, util.ErrNotFound, pqErr.Message)
		case codeCheckViolation, codeNotNullViolation, codeInvalidTextRep, codeNumericOutOfRange:
			return fmt.Errorf("%s: %w: %s", op, util.ErrValidation, pqErr.Message)
		}
	}

	return &util.StoreError{Op: op, Err: err}
}
