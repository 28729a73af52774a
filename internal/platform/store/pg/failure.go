package pg

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"

	perr "solna/internal/platform/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/puddle/v2"
)

// SQLSTATE codes the failure normalizer recognises
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeQueryCanceled       = "57014"
	codeTooManyConnections  = "53300"
	codeAdminShutdown       = "57P01"
	codeCrashShutdown       = "57P02"
	codeCannotConnectNow    = "57P03"
	classConnection         = "08"
)

// Describe normalizes a pgx, pool or network error into a backend-neutral Failure
func Describe(err error) perr.Failure {
	if err == nil {
		return perr.Failure{}
	}
	msg := err.Error()

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return perr.Failure{Kind: kindForSQLState(pgErr.Code), Code: pgErr.Code, Message: pgErr.Message}
	}

	var acqErr *AcquireError
	var connErr *pgconn.ConnectError
	switch {
	case errors.As(err, &acqErr),
		errors.As(err, &connErr),
		errors.Is(err, puddle.ErrClosedPool),
		errors.Is(err, ErrPoolClosed),
		errors.Is(err, ErrNoPool):
		return perr.Failure{Kind: perr.FailureConnection, Message: msg}
	case pgconn.Timeout(err), errors.Is(err, context.DeadlineExceeded):
		return perr.Failure{Kind: perr.FailureStatementTimeout, Message: msg}
	case isNetFailure(err):
		return perr.Failure{Kind: perr.FailureConnection, Message: msg}
	}
	return perr.Failure{Kind: perr.FailureUnknown, Message: msg}
}

func kindForSQLState(code string) perr.FailureKind {
	switch code {
	case codeUniqueViolation:
		return perr.FailureUniqueViolation
	case codeForeignKeyViolation:
		return perr.FailureForeignKeyViolation
	case codeCheckViolation:
		return perr.FailureCheckViolation
	case codeQueryCanceled:
		return perr.FailureStatementTimeout
	case codeTooManyConnections, codeAdminShutdown, codeCrashShutdown, codeCannotConnectNow:
		return perr.FailureConnection
	}
	if strings.HasPrefix(code, classConnection) {
		return perr.FailureConnection
	}
	return perr.FailureUnknown
}

func isNetFailure(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}
