// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package simpletable

// DescriptorLookup returns the constraints registered for a column.
//
// *Schema implements it.
type DescriptorLookup interface {
	Descriptor(ColumnID) (*Descriptor, bool)
	ColumnName(ColumnID) string
}

// Validator checks values against the column descriptors of a DescriptorLookup.
//
// Validate does not modify the Validator, but SetDefaultMode does:
// synchronize externally if you change the default mode while
// other goroutines validate.
type Validator struct {
	lookup      DescriptorLookup
	defaultMode Mode
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithDefaultMode sets the mode used for ModeDefault requests.
func WithDefaultMode(m Mode) ValidatorOption {
	return func(v *Validator) { v.SetDefaultMode(m) }
}

// NewValidator returns a Validator over lookup, with DefaultMode as its default.
func NewValidator(lookup DescriptorLookup, opts ...ValidatorOption) *Validator {
	v := &Validator{lookup: lookup, defaultMode: DefaultMode}
	for _, o := range opts {
		o(v)
	}
	return v
}

// DefaultMode returns the mode ModeDefault resolves to.
func (v *Validator) DefaultMode() Mode { return v.defaultMode }

// SetDefaultMode sets the mode ModeDefault resolves to.
// Setting ModeDefault itself resets it to DefaultMode.
func (v *Validator) SetDefaultMode(m Mode) {
	if m == ModeDefault {
		m = DefaultMode
	}
	v.defaultMode = m
}

// Resolve returns the effective mode for the requested one.
func (v *Validator) Resolve(m Mode) Mode {
	if m == ModeDefault {
		return v.defaultMode
	}
	return m
}

// Validate reports whether value may be stored in column col under mode.
//
// The checks run in a fixed order (type, min, max, minLen, maxLen),
// and the first failure is returned as a *ValidationError.
func (v *Validator) Validate(col ColumnID, value Value, mode Mode) error {
	mode = v.Resolve(mode)
	if mode&ModeNone != 0 || mode&ModeAll == 0 || v.lookup == nil {
		return nil
	}
	d, ok := v.lookup.Descriptor(col)
	if !ok || d == nil {
		return nil
	}
	fail := func(err error) *ValidationError {
		return &ValidationError{Err: err, Column: col, Name: v.lookup.ColumnName(col), Value: value}
	}

	if mode.Has(ModeType) {
		if k, ok := d.Type(); ok && value.Kind() != k {
			e := fail(ErrTypeMismatch)
			e.Expected = k
			return e
		}
	}
	if !mode.Has(ModeInterval) {
		return nil
	}

	if m, ok := d.Min(); ok {
		if value.Kind() != m.Kind() {
			e := fail(ErrTypeMismatch)
			e.Expected, e.Bound = m.Kind(), m
			return e
		}
		if c, err := value.Compare(m); err != nil {
			return err
		} else if c < 0 {
			e := fail(ErrBelowMinimum)
			e.Bound = m
			return e
		}
	}
	if m, ok := d.Max(); ok {
		if value.Kind() != m.Kind() {
			e := fail(ErrTypeMismatch)
			e.Expected, e.Bound = m.Kind(), m
			return e
		}
		if c, err := value.Compare(m); err != nil {
			return err
		} else if c > 0 {
			e := fail(ErrAboveMaximum)
			e.Bound = m
			return e
		}
	}

	minLen, hasMin := d.MinLen()
	maxLen, hasMax := d.MaxLen()
	if !hasMin && !hasMax {
		return nil
	}
	n := value.Len()
	if hasMin && n < minLen {
		e := fail(ErrTooShort)
		e.Length, e.Limit = n, minLen
		return e
	}
	if hasMax && n > maxLen {
		e := fail(ErrTooLong)
		e.Length, e.Limit = n, maxLen
		return e
	}
	return nil
}
