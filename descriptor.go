// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package simpletable

import (
	"fmt"
	"strings"
)

// MaxTextLength is the maximum number of characters a cell can hold.
const MaxTextLength = 32767

// Descriptor is the immutable rule set of a column:
// expected kind, value bounds and text length bounds.
// Each part is optional.
type Descriptor struct {
	min, max       Value
	minLen, maxLen int
	kind           Kind
	hasKind        bool
	hasMin, hasMax bool
	hasMinLen      bool
	hasMaxLen      bool
}

// DescriptorOption sets one constraint of a Descriptor.
type DescriptorOption func(*Descriptor)

// WithType requires values to be exactly of kind k.
func WithType(k Kind) DescriptorOption {
	return func(d *Descriptor) { d.kind, d.hasKind = k, true }
}

// WithMin sets the inclusive lower bound.
func WithMin(v Value) DescriptorOption {
	return func(d *Descriptor) { d.min, d.hasMin = v, true }
}

// WithMax sets the inclusive upper bound.
func WithMax(v Value) DescriptorOption {
	return func(d *Descriptor) { d.max, d.hasMax = v, true }
}

// WithMinLen sets the minimal text length.
func WithMinLen(n int) DescriptorOption {
	return func(d *Descriptor) { d.minLen, d.hasMinLen = n, true }
}

// WithMaxLen sets the maximal text length.
func WithMaxLen(n int) DescriptorOption {
	return func(d *Descriptor) { d.maxLen, d.hasMaxLen = n, true }
}

// NewDescriptor builds a Descriptor, returning ErrInvalidDescriptor
// if the given constraints are inconsistent.
func NewDescriptor(opts ...DescriptorOption) (*Descriptor, error) {
	var d Descriptor
	for _, o := range opts {
		o(&d)
	}
	if err := d.check(); err != nil {
		return nil, err
	}
	return &d, nil
}

// MustDescriptor is like NewDescriptor but panics on error.
func MustDescriptor(opts ...DescriptorOption) *Descriptor {
	d, err := NewDescriptor(opts...)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Descriptor) check() error {
	if d.hasMin && d.hasMax && d.min.Kind() != d.max.Kind() {
		return fmt.Errorf("%w: min and max differ in type (%s vs. %s)",
			ErrInvalidDescriptor, d.min.Kind(), d.max.Kind())
	}
	for _, b := range []struct {
		v    Value
		name string
		has  bool
	}{{name: "min", v: d.min, has: d.hasMin}, {name: "max", v: d.max, has: d.hasMax}} {
		if !b.has {
			continue
		}
		if d.hasKind && b.v.Kind() != d.kind {
			return fmt.Errorf("%w: %s is %s, column is %s",
				ErrInvalidDescriptor, b.name, b.v.Kind(), d.kind)
		}
		if !b.v.Kind().Ordered() {
			return fmt.Errorf("%w: %s is of type %s, which is not comparable",
				ErrInvalidDescriptor, b.name, b.v.Kind())
		}
	}
	for _, b := range []struct {
		name string
		n    int
		has  bool
	}{{name: "minLen", n: d.minLen, has: d.hasMinLen}, {name: "maxLen", n: d.maxLen, has: d.hasMaxLen}} {
		if b.has && (b.n < 0 || b.n > MaxTextLength) {
			return fmt.Errorf("%w: %s=%d is not in [0, %d]",
				ErrInvalidDescriptor, b.name, b.n, MaxTextLength)
		}
	}
	if d.hasMinLen && d.hasMaxLen && d.minLen > d.maxLen {
		return fmt.Errorf("%w: minLen=%d > maxLen=%d",
			ErrInvalidDescriptor, d.minLen, d.maxLen)
	}
	return nil
}

func (d *Descriptor) Type() (Kind, bool) { return d.kind, d.hasKind }
func (d *Descriptor) Min() (Value, bool) { return d.min, d.hasMin }
func (d *Descriptor) Max() (Value, bool) { return d.max, d.hasMax }
func (d *Descriptor) MinLen() (int, bool) { return d.minLen, d.hasMinLen }
func (d *Descriptor) MaxLen() (int, bool) { return d.maxLen, d.hasMaxLen }

// ValueKind is the kind textual input should be parsed as:
// the declared type, else the kind of the bounds, else text.
func (d *Descriptor) ValueKind() Kind {
	switch {
	case d == nil:
		return KindText
	case d.hasKind:
		return d.kind
	case d.hasMin:
		return d.min.Kind()
	case d.hasMax:
		return d.max.Kind()
	}
	return KindText
}

func (d *Descriptor) String() string {
	if d == nil {
		return "{}"
	}
	var parts []string
	if d.hasKind {
		parts = append(parts, "type="+d.kind.String())
	}
	if d.hasMin {
		parts = append(parts, "min="+d.min.String())
	}
	if d.hasMax {
		parts = append(parts, "max="+d.max.String())
	}
	if d.hasMinLen {
		parts = append(parts, fmt.Sprintf("minLen=%d", d.minLen))
	}
	if d.hasMaxLen {
		parts = append(parts, fmt.Sprintf("maxLen=%d", d.maxLen))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
