package errors

// Postgres-specific helpers for classifying report execution failures

import (
	"context"
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes a read-only reporting workload runs into
const (
	pgErrInvalidTextRepresentation = "22P02"
	pgErrInvalidParameterValue     = "22023"
	pgErrDivisionByZero            = "22012"
	pgErrUndefinedTable            = "42P01"
	pgErrUndefinedColumn           = "42703"
	pgErrUndefinedFunction         = "42883"
	pgErrSyntax                    = "42601"

	pgErrQueryCanceled      = "57014" // statement_timeout or cancel request
	pgErrAdminShutdown      = "57P01"
	pgErrCannotConnectNow   = "57P03"
	pgErrTooManyConnections = "53300"
)

// ExtractPgError returns (*pgconn.PgError, true) if the root cause is a PgError
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// SQLState returns the Postgres SQLSTATE carried by err, or ""
func SQLState(err error) string {
	if e, ok := As(err); ok && e.dbCode != "" {
		return e.dbCode
	}
	if pgErr, ok := ExtractPgError(err); ok {
		return pgErr.Code
	}
	return ""
}

// IsSQLState reports whether the error is a Postgres error with the given SQLSTATE code
func IsSQLState(err error, code string) bool { return SQLState(err) == code }

// IsTimeout reports whether err is a cancelled statement or an expired context
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.DeadlineExceeded) {
		return true
	}
	return IsSQLState(err, pgErrQueryCanceled)
}

// DBErrorCode maps a Postgres error to an ErrorCode with an ok flag
// !ok means err wasn't a PgError; caller may fall back to generic handling
func DBErrorCode(err error) (ErrorCode, bool) {
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}

	switch pgErr.Code {
	case pgErrQueryCanceled:
		return ErrorCodeTimeout, true

	case pgErrInvalidTextRepresentation, pgErrInvalidParameterValue:
		// a bound value the server could not coerce
		return ErrorCodeInvalidArgument, true

	case pgErrUndefinedTable, pgErrUndefinedColumn, pgErrUndefinedFunction, pgErrSyntax, pgErrDivisionByZero:
		return ErrorCodeDB, true

	case pgErrAdminShutdown, pgErrCannotConnectNow, pgErrTooManyConnections:
		return ErrorCodeUnavailable, true
	}

	return ErrorCodeDB, true
}

// FromPostgres wraps an execution error with a mapped ErrorCode and message.
// The SQLSTATE is preserved on the result. If err is nil, returns nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok && e.code != ErrorCodeUnknown {
		// already classified further down the stack
		return err
	}
	if stderrs.Is(err, context.DeadlineExceeded) {
		return Wrap(err, ErrorCodeTimeout, msg)
	}
	code, ok := DBErrorCode(err)
	if !ok {
		return Wrap(err, ErrorCodeDB, msg)
	}
	pgErr, _ := ExtractPgError(err)
	return &Error{code: code, msg: msg, orig: err, dbCode: pgErr.Code}
}
