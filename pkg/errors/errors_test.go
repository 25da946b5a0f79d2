package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew_FormatsMessage(t *testing.T) {
	err := New(ErrCodeInvalidSnapshot, "node %s missing id", "redis")

	want := "INVALID_SNAPSHOT: node redis missing id"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "fetch snapshot")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error lost its cause")
	}
	if got := err.Error(); got != "NETWORK_ERROR: fetch snapshot: connection refused" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIs_MatchesCodeThroughChain(t *testing.T) {
	inner := New(ErrCodeNodeNotFound, "node x")
	outer := fmt.Errorf("while rendering: %w", inner)

	if !Is(outer, ErrCodeNodeNotFound) {
		t.Error("Is() did not find the code through the chain")
	}
	if Is(outer, ErrCodeNetwork) {
		t.Error("Is() matched the wrong code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is() matched a plain error")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeTimeout, "slow")); got != ErrCodeTimeout {
		t.Errorf("GetCode = %q, want TIMEOUT", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}
