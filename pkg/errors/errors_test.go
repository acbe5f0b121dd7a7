package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	. "minioj/pkg/errors"
)

func TestKindWireMapping(t *testing.T) {
	tests := []struct {
		kind       Kind
		code       int
		reason     string
		httpStatus int
	}{
		{InvalidArgument, 1, "ERR_INVALID_ARGUMENT", http.StatusBadRequest},
		{InvalidState, 2, "ERR_INVALID_STATE", http.StatusBadRequest},
		{NotFound, 3, "ERR_NOT_FOUND", http.StatusNotFound},
		{RateLimit, 4, "ERR_RATE_LIMIT", http.StatusBadRequest},
		{External, 5, "ERR_EXTERNAL", http.StatusInternalServerError},
		{Internal, 6, "ERR_INTERNAL", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			if got := tt.kind.Code(); got != tt.code {
				t.Errorf("Code() = %v, want %v", got, tt.code)
			}
			if got := tt.kind.Reason(); got != tt.reason {
				t.Errorf("Reason() = %v, want %v", got, tt.reason)
			}
			if got := tt.kind.HTTPStatus(); got != tt.httpStatus {
				t.Errorf("HTTPStatus() = %v, want %v", got, tt.httpStatus)
			}
		})
	}
}

func TestNewAndMessage(t *testing.T) {
	err := New(NotFound, "contest 7 not found")
	if err.Kind != NotFound {
		t.Errorf("Kind = %v, want NotFound", err.Kind)
	}
	if err.Error() != "contest 7 not found" {
		t.Errorf("Error() = %q", err.Error())
	}

	empty := New(RateLimit, "")
	if empty.Error() != "ERR_RATE_LIMIT" {
		t.Errorf("empty message Error() = %q", empty.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("open input: no such file")
	err := Wrap(cause, External)
	if err.Kind != External {
		t.Errorf("Kind = %v, want External", err.Kind)
	}
	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause lost")
	}

	if Wrap(nil, Internal) != nil {
		t.Error("Wrap(nil) should be nil")
	}
}

func TestFromNormalizesForeignErrors(t *testing.T) {
	plain := fmt.Errorf("boom")
	got := From(plain)
	if got.Kind != Internal {
		t.Errorf("Kind = %v, want Internal", got.Kind)
	}

	tagged := New(InvalidState, "job 3 not finished")
	if From(fmt.Errorf("rejudge: %w", tagged)).Kind != InvalidState {
		t.Error("From should unwrap to the tagged kind")
	}

	if From(nil) != nil {
		t.Error("From(nil) should be nil")
	}
}

func TestIs(t *testing.T) {
	err := Newf(RateLimit, "user %d over limit", 2)
	if !Is(err, RateLimit) {
		t.Error("Is should match the kind")
	}
	if Is(err, NotFound) {
		t.Error("Is matched the wrong kind")
	}
	if Is(fmt.Errorf("plain"), Internal) {
		t.Error("plain errors carry no kind")
	}
}
