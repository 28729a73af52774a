package errors

import (
	"context"
	stderrs "errors"
	"strconv"
	"strings"
)

// Outcome is the closed set of results an ingestion attempt can fail with
type Outcome uint8

const (
	// OutcomeNone means no outcome was attached
	OutcomeNone Outcome = iota

	// OutcomeInvalidInput is a notification missing path or change type
	OutcomeInvalidInput

	// OutcomeDuplicateEntry is a uniqueness constraint violation
	OutcomeDuplicateEntry

	// OutcomeDanglingReference is a foreign key constraint violation
	OutcomeDanglingReference

	// OutcomeValidationFailed is a check constraint violation
	OutcomeValidationFailed

	// OutcomeStoreUnavailable is a missing, refused or exhausted connection
	OutcomeStoreUnavailable

	// OutcomeStoreTimeout is a statement that ran past its deadline
	OutcomeStoreTimeout

	// OutcomeStoreOperationFailed is any other storage failure
	OutcomeStoreOperationFailed
)

var outcomeNames = [...]string{
	OutcomeNone:                 "",
	OutcomeInvalidInput:         "InvalidInput",
	OutcomeDuplicateEntry:       "DuplicateEntry",
	OutcomeDanglingReference:    "DanglingReference",
	OutcomeValidationFailed:     "ValidationFailed",
	OutcomeStoreUnavailable:     "StoreUnavailable",
	OutcomeStoreTimeout:         "StoreTimeout",
	OutcomeStoreOperationFailed: "StoreOperationFailed",
}

// String returns the wire name of the outcome
func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "Outcome(" + strconv.Itoa(int(o)) + ")"
}

// ClientFault reports whether the caller must correct input instead of retrying
func (o Outcome) ClientFault() bool {
	switch o {
	case OutcomeInvalidInput, OutcomeDuplicateEntry, OutcomeDanglingReference, OutcomeValidationFailed:
		return true
	default:
		return false
	}
}

// Code maps the outcome onto the ErrorCode used for transport status
func (o Outcome) Code() ErrorCode {
	switch o {
	case OutcomeInvalidInput, OutcomeValidationFailed:
		return ErrorCodeValidation
	case OutcomeDuplicateEntry:
		return ErrorCodeDuplicateKey
	case OutcomeDanglingReference:
		return ErrorCodeReference
	case OutcomeStoreUnavailable:
		return ErrorCodeUnavailable
	case OutcomeStoreTimeout:
		return ErrorCodeTimeout
	case OutcomeStoreOperationFailed:
		return ErrorCodeDB
	default:
		return ErrorCodeUnknown
	}
}

// FailureKind is the storage signal a backend adapter recognised
type FailureKind uint8

const (
	// FailureUnknown is anything the adapter could not place
	FailureUnknown FailureKind = iota
	// FailureUniqueViolation is a uniqueness constraint violation
	FailureUniqueViolation
	// FailureForeignKeyViolation is a foreign key constraint violation
	FailureForeignKeyViolation
	// FailureCheckViolation is a check constraint violation
	FailureCheckViolation
	// FailureConnection is a connection that is absent, refused, failed or unobtainable
	FailureConnection
	// FailureStatementTimeout is a statement canceled for exceeding its timeout
	FailureStatementTimeout
)

// Failure is the backend-neutral descriptor of a storage failure
// Code is the vendor code when one exists (i.e. a SQLSTATE)
type Failure struct {
	Kind    FailureKind
	Code    string
	Message string
}

// Describer normalizes a raw storage error into a Failure
type Describer interface {
	Describe(err error) Failure
}

// DescribeFunc adapts a function to Describer
type DescribeFunc func(error) Failure

// Describe calls f
func (f DescribeFunc) Describe(err error) Failure { return f(err) }

// DescribeGeneric handles failures no backend adapter is around for
// deadlines become statement timeouts; everything else keeps only its message
func DescribeGeneric(err error) Failure {
	if err == nil {
		return Failure{}
	}
	if stderrs.Is(err, context.DeadlineExceeded) {
		return Failure{Kind: FailureStatementTimeout, Message: err.Error()}
	}
	return Failure{Kind: FailureUnknown, Message: err.Error()}
}

// Classify maps a Failure to its Outcome and whether the caller is at fault
func Classify(f Failure) (Outcome, bool) {
	var o Outcome
	switch f.Kind {
	case FailureUniqueViolation:
		o = OutcomeDuplicateEntry
	case FailureForeignKeyViolation:
		o = OutcomeDanglingReference
	case FailureCheckViolation:
		o = OutcomeValidationFailed
	case FailureConnection:
		o = OutcomeStoreUnavailable
	case FailureStatementTimeout:
		o = OutcomeStoreTimeout
	default:
		if timeoutCode(f.Code) || mentionsTimeout(f.Message) {
			o = OutcomeStoreTimeout
		} else {
			o = OutcomeStoreOperationFailed
		}
	}
	return o, o.ClientFault()
}

// FromFailure wraps err with the outcome Classify picks for f
func FromFailure(err error, f Failure, msg string) error {
	if err == nil {
		return nil
	}
	o, _ := Classify(f)
	return WrapOutcome(err, o, msg)
}

// query_canceled and lock_not_available
func timeoutCode(code string) bool { return code == "57014" || code == "55P03" }

// timeoutPhrases are what postgres and the net stack say when a deadline fired
// identifiers that merely contain "timeout" must not match
var timeoutPhrases = []string{
	"canceling statement due to",
	"timed out",
	"timeout expired",
	"deadline exceeded",
}

func mentionsTimeout(msg string) bool {
	s := strings.ToLower(msg)
	for _, p := range timeoutPhrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
