package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestMissingParameter(t *testing.T) {
	err := MissingParameter("batch name")

	if !errors.Is(err, ErrMissingParameter) {
		t.Error("MissingParameter must satisfy errors.Is(ErrMissingParameter)")
	}

	var pe *ParameterError
	if !errors.As(err, &pe) {
		t.Fatal("expected *ParameterError")
	}
	if pe.Field != "batch name" {
		t.Errorf("Field = %q, want %q", pe.Field, "batch name")
	}
}

func TestDataAccessError(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := NewDataAccessError("batch_timetable", cause)

	if !errors.Is(err, ErrDataAccess) {
		t.Error("DataAccessError must satisfy errors.Is(ErrDataAccess)")
	}

	var dae *DataAccessError
	if !errors.As(err, &dae) {
		t.Fatal("expected *DataAccessError")
	}
	if dae.Operation != "batch_timetable" {
		t.Errorf("Operation = %q, want batch_timetable", dae.Operation)
	}
}

func TestNewDataAccessErrorNilCause(t *testing.T) {
	if err := NewDataAccessError("anything", nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestWrappedError(t *testing.T) {
	base := errors.New("boom")
	err := NewWrapper("dispatch", "person_lookup").Wrap(base, "Sorry, something went wrong.")

	if !errors.Is(err, base) {
		t.Error("wrapped error must unwrap to cause")
	}
	if got := GetUserMessage(err); got != "Sorry, something went wrong." {
		t.Errorf("GetUserMessage = %q", got)
	}
	if GetUserMessage(nil) != "" {
		t.Error("GetUserMessage(nil) must be empty")
	}
}

func TestGetUserMessageDeepChain(t *testing.T) {
	inner := NewWrapper("dispatch", "free_rooms").Wrap(ErrDataAccess, "Please try again in a moment.")
	outer := fmt.Errorf("execute: %w", inner)

	if got := GetUserMessage(outer); got != "Please try again in a moment." {
		t.Errorf("GetUserMessage = %q, want the wrapped reply", got)
	}
	if !errors.Is(outer, ErrDataAccess) {
		t.Error("sentinel must survive the wrap")
	}
}

func TestGetUserMessageUnwrapped(t *testing.T) {
	if got := GetUserMessage(errors.New("raw")); got != "" {
		t.Errorf("GetUserMessage = %q, want empty for unwrapped errors", got)
	}
}

func TestWrapNil(t *testing.T) {
	if err := NewWrapper("m", "op").Wrap(nil, "msg"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
}
