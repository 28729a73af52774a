package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestClassify_Table(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		in          Failure
		want        Outcome
		clientFault bool
		status      int
	}{
		{"unique", Failure{Kind: FailureUniqueViolation, Code: "23505"}, OutcomeDuplicateEntry, true, http.StatusConflict},
		{"fk", Failure{Kind: FailureForeignKeyViolation, Code: "23503"}, OutcomeDanglingReference, true, http.StatusBadRequest},
		{"check", Failure{Kind: FailureCheckViolation, Code: "23514"}, OutcomeValidationFailed, true, http.StatusBadRequest},
		{"connection", Failure{Kind: FailureConnection, Message: "connection refused"}, OutcomeStoreUnavailable, false, http.StatusServiceUnavailable},
		{"statement timeout", Failure{Kind: FailureStatementTimeout, Code: "57014"}, OutcomeStoreTimeout, false, http.StatusGatewayTimeout},
		{"lock timeout", Failure{Message: "canceling statement due to lock timeout"}, OutcomeStoreTimeout, false, http.StatusGatewayTimeout},
		{"lock code", Failure{Code: "55P03", Message: "could not obtain lock on row"}, OutcomeStoreTimeout, false, http.StatusGatewayTimeout},
		{"cancel code", Failure{Code: "57014"}, OutcomeStoreTimeout, false, http.StatusGatewayTimeout},
		{"deadline text", Failure{Message: "list uploaded_files: context deadline exceeded"}, OutcomeStoreTimeout, false, http.StatusGatewayTimeout},
		{"timeout in identifier", Failure{Code: "42P01", Message: `relation "timeout_log" does not exist`}, OutcomeStoreOperationFailed, false, http.StatusInternalServerError},
		{"timeout in column", Failure{Message: `column "retry_timeout" is of type integer`}, OutcomeStoreOperationFailed, false, http.StatusInternalServerError},
		{"message timed out", Failure{Message: "read: i/o timed out"}, OutcomeStoreTimeout, false, http.StatusGatewayTimeout},
		{"other", Failure{Code: "42P01", Message: "relation does not exist"}, OutcomeStoreOperationFailed, false, http.StatusInternalServerError},
		{"zero", Failure{}, OutcomeStoreOperationFailed, false, http.StatusInternalServerError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, cf := Classify(c.in)
			if got != c.want || cf != c.clientFault {
				t.Fatalf("Classify(%+v) = (%v, %v), want (%v, %v)", c.in, got, cf, c.want, c.clientFault)
			}
			if st := HTTPStatusCode(got.Code()); st != c.status {
				t.Fatalf("status for %v = %d, want %d", got, st, c.status)
			}
		})
	}
}

func TestOutcome_StringAndClientFault(t *testing.T) {
	t.Parallel()

	client := []Outcome{OutcomeInvalidInput, OutcomeDuplicateEntry, OutcomeDanglingReference, OutcomeValidationFailed}
	server := []Outcome{OutcomeStoreUnavailable, OutcomeStoreTimeout, OutcomeStoreOperationFailed}
	for _, o := range client {
		if !o.ClientFault() {
			t.Fatalf("%v should be a client fault", o)
		}
	}
	for _, o := range server {
		if o.ClientFault() {
			t.Fatalf("%v should not be a client fault", o)
		}
	}
	if OutcomeStoreTimeout.String() != "StoreTimeout" {
		t.Fatalf("String() = %q", OutcomeStoreTimeout.String())
	}
	if s := Outcome(42).String(); s != "Outcome(42)" {
		t.Fatalf("out of range String() = %q", s)
	}
	if OutcomeNone.Code() != ErrorCodeUnknown {
		t.Fatalf("OutcomeNone code = %v", OutcomeNone.Code())
	}
}

func TestDescribeGeneric(t *testing.T) {
	t.Parallel()

	if f := DescribeGeneric(nil); f != (Failure{}) {
		t.Fatalf("nil should describe to zero, got %+v", f)
	}
	f := DescribeGeneric(fmt.Errorf("exec: %w", context.DeadlineExceeded))
	if f.Kind != FailureStatementTimeout {
		t.Fatalf("deadline kind = %v", f.Kind)
	}
	f = DescribeGeneric(stderrs.New("boom"))
	if f.Kind != FailureUnknown || f.Message != "boom" {
		t.Fatalf("generic = %+v", f)
	}

	var d Describer = DescribeFunc(DescribeGeneric)
	if d.Describe(context.DeadlineExceeded).Kind != FailureStatementTimeout {
		t.Fatalf("DescribeFunc did not delegate")
	}
}

func TestFromFailure(t *testing.T) {
	t.Parallel()

	if FromFailure(nil, Failure{Kind: FailureUniqueViolation}, "x") != nil {
		t.Fatalf("FromFailure(nil) should be nil")
	}
	raw := stderrs.New("duplicate key value violates unique constraint")
	err := FromFailure(raw, Failure{Kind: FailureUniqueViolation, Code: "23505"}, "insert file")
	o, cf, ok := OutcomeOf(err)
	if !ok || o != OutcomeDuplicateEntry || !cf {
		t.Fatalf("OutcomeOf = %v %v %v", o, cf, ok)
	}
	if !stderrs.Is(err, raw) {
		t.Fatalf("FromFailure must keep the raw cause")
	}
}
