// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package simpletable

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDescriptor is returned when a Descriptor's constraints contradict each other.
	ErrInvalidDescriptor = errors.New("invalid constraint descriptor")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrBelowMinimum      = errors.New("below minimum")
	ErrAboveMaximum      = errors.New("above maximum")
	ErrTooShort          = errors.New("too short")
	ErrTooLong           = errors.New("too long")

	ErrInvalidSchema    = errors.New("invalid schema")
	ErrOutOfRange       = errors.New("out of range")
	ErrUnsupportedValue = errors.New("unsupported value")
	ErrTooManyRows      = errors.New("too many rows")
)

// ValidationError describes why a value was rejected for a column.
type ValidationError struct {
	// Err is one of ErrTypeMismatch, ErrBelowMinimum, ErrAboveMaximum, ErrTooShort, ErrTooLong.
	Err    error
	Name   string
	Value  Value
	Bound  Value
	Column ColumnID
	// Expected is the kind the value should have had (ErrTypeMismatch only).
	Expected Kind
	// Length and Limit are set for ErrTooShort and ErrTooLong.
	Length, Limit int
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Error() string {
	col := e.Name
	if col == "" {
		col = e.Column.String()
	}
	switch e.Err {
	case ErrTypeMismatch:
		return fmt.Sprintf("column %q: %v: want %s, got %s (%q)", col, e.Err, e.Expected, e.Value.Kind(), e.Value.String())
	case ErrBelowMinimum:
		return fmt.Sprintf("column %q: %v: %s < %s", col, e.Err, e.Value.String(), e.Bound.String())
	case ErrAboveMaximum:
		return fmt.Sprintf("column %q: %v: %s > %s", col, e.Err, e.Value.String(), e.Bound.String())
	case ErrTooShort:
		return fmt.Sprintf("column %q: %v: length %d < %d (%q)", col, e.Err, e.Length, e.Limit, e.Value.String())
	case ErrTooLong:
		return fmt.Sprintf("column %q: %v: length %d > %d (%q)", col, e.Err, e.Length, e.Limit, e.Value.String())
	}
	return fmt.Sprintf("column %q: %v (%q)", col, e.Err, e.Value.String())
}

// Code is a short, stable identifier of the failure reason.
func (e *ValidationError) Code() string {
	switch e.Err {
	case ErrTypeMismatch:
		return "type_mismatch"
	case ErrBelowMinimum:
		return "below_minimum"
	case ErrAboveMaximum:
		return "above_maximum"
	case ErrTooShort:
		return "too_short"
	case ErrTooLong:
		return "too_long"
	}
	return "invalid"
}
