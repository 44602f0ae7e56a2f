package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBErrorCode classifies a postgres or pgx transport error.
// ok is false when err carries nothing postgres specific
func DBErrorCode(err error) (code ErrorCode, ok bool) {
	var pgErr *pgconn.PgError
	if !stderrs.As(err, &pgErr) {
		if transient(err) {
			return ErrorCodeUnavailable, true
		}
		return ErrorCodeUnknown, false
	}

	c := pgErr.Code
	switch {
	case c == pgerrcode.UniqueViolation:
		return ErrorCodeDuplicateKey, true
	case c == pgerrcode.NotNullViolation, c == pgerrcode.CheckViolation:
		return ErrorCodeValidation, true
	case c == pgerrcode.ForeignKeyViolation,
		c == pgerrcode.StringDataRightTruncationDataException,
		c == pgerrcode.InvalidTextRepresentation:
		return ErrorCodeInvalidArgument, true
	case pgerrcode.IsConnectionException(c),
		pgerrcode.IsOperatorIntervention(c),
		c == pgerrcode.SerializationFailure,
		c == pgerrcode.DeadlockDetected,
		c == pgerrcode.LockNotAvailable,
		c == pgerrcode.ReadOnlySQLTransaction:
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// transient covers failures that never reached the server
func transient(err error) bool {
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return true
	}
	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}
	var ce *pgconn.ConnectError
	if stderrs.As(err, &ce) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "closed pool") || strings.Contains(s, "conn closed")
}

// FromPostgres wraps err with a classified code; nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	return Wrap(err, code, msg)
}

// FromPostgresf is FromPostgres with a formatted message
func FromPostgresf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	return FromPostgres(err, fmt.Sprintf(format, a...))
}

// AttachFieldFromPg sets the field from the PgError column or, failing that,
// from the constraint name: dummies_name_check -> name. Other errors pass through
func AttachFieldFromPg(err error) error {
	var pgErr *pgconn.PgError
	if !stderrs.As(Root(err), &pgErr) {
		return err
	}
	if col := strings.TrimSpace(pgErr.ColumnName); col != "" {
		return WithField(err, col)
	}
	if f := constraintField(pgErr.ConstraintName); f != "" {
		return WithField(err, f)
	}
	return err
}

// constraintField reads the column out of postgres default constraint names
func constraintField(name string) string {
	for _, suf := range []string{"_check", "_key", "_fkey"} {
		if base, ok := strings.CutSuffix(name, suf); ok {
			if i := strings.LastIndex(base, "_"); i >= 0 {
				return base[i+1:]
			}
			return ""
		}
	}
	return ""
}

// IsRetryable reports contention a caller may safely replay: serialization
// failures, deadlocks and lock timeouts. Local cancellation is never retryable
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	var pgErr *pgconn.PgError
	if stderrs.As(Root(err), &pgErr) {
		return pgErr.Code == pgerrcode.SerializationFailure ||
			pgErr.Code == pgerrcode.DeadlockDetected ||
			pgErr.Code == pgerrcode.LockNotAvailable
	}
	return strings.Contains(strings.ToLower(Root(err).Error()), "commit unexpectedly resulted in rollback")
}
