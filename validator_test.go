// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package simpletable_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UNO-SOFT/simpletable"
)

const (
	colFirst simpletable.ColumnID = iota + 1
	colSecond
	colThird
	colFourth
	colCode
	colAmount
)

func testSchema(t *testing.T) *simpletable.Schema {
	t.Helper()
	sch, err := simpletable.NewSchema(
		simpletable.Column{ID: colFirst, Name: "FIRST",
			Constraint: simpletable.MustDescriptor(simpletable.WithType(simpletable.KindInt))},
		simpletable.Column{ID: colSecond, Name: "Second"},
		simpletable.Column{ID: colThird, Name: "THIRD", Display: "Third column",
			Constraint: simpletable.MustDescriptor(simpletable.WithType(simpletable.KindText))},
		simpletable.Column{ID: colFourth, Name: "fourth", Display: "Fourth column",
			Format: "#,##0.0000 thousand",
			Constraint: simpletable.MustDescriptor(
				simpletable.WithType(simpletable.KindFloat),
				simpletable.WithMin(simpletable.Float(1)),
				simpletable.WithMax(simpletable.Float(1000)),
			)},
		simpletable.Column{ID: colCode, Name: "code",
			Constraint: simpletable.MustDescriptor(simpletable.WithMinLen(3), simpletable.WithMaxLen(10))},
		simpletable.Column{ID: colAmount, Name: "amount",
			Constraint: simpletable.MustDescriptor(
				simpletable.WithMin(simpletable.Int(0)),
				simpletable.WithMax(simpletable.Int(100)),
			)},
	)
	require.NoError(t, err)
	return sch
}

func TestValidateType(t *testing.T) {
	v := simpletable.NewValidator(testSchema(t))
	for _, tc := range []struct {
		name  string
		value simpletable.Value
		mode  simpletable.Mode
		want  error
	}{
		{"int ok", simpletable.Int(10), simpletable.ModeType, nil},
		{"text for int", simpletable.Text("10"), simpletable.ModeType, simpletable.ErrTypeMismatch},
		{"float for int", simpletable.Float(10), simpletable.ModeAll, simpletable.ErrTypeMismatch},
		{"null for int", simpletable.Null(), simpletable.ModeType, simpletable.ErrTypeMismatch},
		{"type not checked", simpletable.Text("10"), simpletable.ModeInterval, nil},
		{"none", simpletable.Text("10"), simpletable.ModeNone, nil},
		{"none wins", simpletable.Text("10"), simpletable.ModeNone | simpletable.ModeType, nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(colFirst, tc.value, tc.mode)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidateIntegerIsNotDouble(t *testing.T) {
	v := simpletable.NewValidator(testSchema(t))
	err := v.Validate(colFourth, simpletable.Int(1000), simpletable.ModeAll)
	require.ErrorIs(t, err, simpletable.ErrTypeMismatch)
	var ve *simpletable.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, colFourth, ve.Column)
	assert.Equal(t, "fourth", ve.Name)
	assert.Equal(t, simpletable.KindFloat, ve.Expected)
	assert.Equal(t, "type_mismatch", ve.Code())
	assert.Contains(t, err.Error(), "fourth")

	assert.NoError(t, v.Validate(colFourth, simpletable.Float(1000), simpletable.ModeAll))
	// interval only: the int still differs from the float min
	assert.ErrorIs(t, v.Validate(colFourth, simpletable.Int(1000), simpletable.ModeInterval), simpletable.ErrTypeMismatch)
}

func TestValidateBounds(t *testing.T) {
	v := simpletable.NewValidator(testSchema(t))
	for _, tc := range []struct {
		value simpletable.Value
		want  error
	}{
		{simpletable.Float(0.5), simpletable.ErrBelowMinimum},
		{simpletable.Float(1), nil},
		{simpletable.Float(500), nil},
		{simpletable.Float(1000), nil},
		{simpletable.Float(1000.001), simpletable.ErrAboveMaximum},
	} {
		err := v.Validate(colFourth, tc.value, simpletable.ModeInterval)
		if tc.want == nil {
			assert.NoError(t, err, tc.value.String())
		} else {
			assert.ErrorIs(t, err, tc.want, tc.value.String())
		}
	}

	for i := int64(-3); i <= 103; i++ {
		err := v.Validate(colAmount, simpletable.Int(i), simpletable.ModeInterval)
		switch {
		case i < 0:
			assert.ErrorIs(t, err, simpletable.ErrBelowMinimum, "%d", i)
		case i > 100:
			assert.ErrorIs(t, err, simpletable.ErrAboveMaximum, "%d", i)
		default:
			assert.NoError(t, err, "%d", i)
		}
	}
	// bounds are not checked in type mode
	assert.NoError(t, v.Validate(colAmount, simpletable.Int(1000), simpletable.ModeType))
}

func TestValidateLength(t *testing.T) {
	v := simpletable.NewValidator(testSchema(t))
	err := v.Validate(colCode, simpletable.Text("ab"), simpletable.ModeAll)
	require.ErrorIs(t, err, simpletable.ErrTooShort)
	var ve *simpletable.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, 2, ve.Length)
	assert.Equal(t, 3, ve.Limit)

	assert.ErrorIs(t, v.Validate(colCode, simpletable.Text("abcdefghijk"), simpletable.ModeAll), simpletable.ErrTooLong)
	assert.NoError(t, v.Validate(colCode, simpletable.Text("abcd"), simpletable.ModeAll))
	assert.NoError(t, v.Validate(colCode, simpletable.Text("abcdefghij"), simpletable.ModeAll))
	// characters, not bytes
	assert.NoError(t, v.Validate(colCode, simpletable.Text("árvíztűrő"), simpletable.ModeAll))
	// the textual representation of non-text values counts
	assert.ErrorIs(t, v.Validate(colCode, simpletable.Int(12), simpletable.ModeAll), simpletable.ErrTooShort)
	assert.NoError(t, v.Validate(colCode, simpletable.Int(123), simpletable.ModeAll))
	assert.NoError(t, v.Validate(colCode, simpletable.Text("ab"), simpletable.ModeType))
}

func TestValidateOrder(t *testing.T) {
	sch := simpletable.MustSchema(simpletable.Column{Name: "x",
		Constraint: simpletable.MustDescriptor(
			simpletable.WithMin(simpletable.Text("b")),
			simpletable.WithMaxLen(1),
		)})
	v := simpletable.NewValidator(sch)
	// below minimum and too long: the bound is checked first
	assert.ErrorIs(t, v.Validate(1, simpletable.Text("aaa"), simpletable.ModeAll), simpletable.ErrBelowMinimum)
	assert.ErrorIs(t, v.Validate(1, simpletable.Text("ccc"), simpletable.ModeAll), simpletable.ErrTooLong)
}

func TestValidateMinMaxIndependent(t *testing.T) {
	sch := simpletable.MustSchema(simpletable.Column{Name: "x",
		Constraint: simpletable.MustDescriptor(simpletable.WithMax(simpletable.Int(5)))})
	v := simpletable.NewValidator(sch)
	assert.ErrorIs(t, v.Validate(1, simpletable.Float(1), simpletable.ModeInterval), simpletable.ErrTypeMismatch)
	assert.NoError(t, v.Validate(1, simpletable.Float(1), simpletable.ModeType))
}

func TestValidateNoDescriptor(t *testing.T) {
	v := simpletable.NewValidator(testSchema(t), simpletable.WithDefaultMode(simpletable.ModeAll))
	assert.NoError(t, v.Validate(colSecond, simpletable.Text(strings.Repeat("x", 40000)), simpletable.ModeAll))
	assert.NoError(t, v.Validate(99, simpletable.Bool(true), simpletable.ModeAll))
}

func TestDefaultMode(t *testing.T) {
	v := simpletable.NewValidator(testSchema(t))
	assert.Equal(t, simpletable.DefaultMode, v.DefaultMode())
	assert.Equal(t, simpletable.ModeNone, v.DefaultMode())

	value := simpletable.Text("not an int")
	assert.NoError(t, v.Validate(colFirst, value, simpletable.ModeDefault))
	v.SetDefaultMode(simpletable.ModeType)
	assert.ErrorIs(t, v.Validate(colFirst, value, simpletable.ModeDefault), simpletable.ErrTypeMismatch)
	// explicit modes ignore the default
	assert.NoError(t, v.Validate(colFirst, value, simpletable.ModeInterval))
	v.SetDefaultMode(simpletable.ModeDefault)
	assert.Equal(t, simpletable.DefaultMode, v.DefaultMode())

	// independent instances
	w := simpletable.NewValidator(testSchema(t), simpletable.WithDefaultMode(simpletable.ModeAll))
	assert.Error(t, w.Validate(colFirst, value, simpletable.ModeDefault))
	assert.NoError(t, v.Validate(colFirst, value, simpletable.ModeDefault))
}

func TestValidateTime(t *testing.T) {
	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	sch := simpletable.MustSchema(simpletable.Column{Name: "when",
		Constraint: simpletable.MustDescriptor(
			simpletable.WithType(simpletable.KindTime),
			simpletable.WithMin(simpletable.Time(from)),
		)})
	v := simpletable.NewValidator(sch)
	assert.NoError(t, v.Validate(1, simpletable.Time(from.AddDate(1, 0, 0)), simpletable.ModeAll))
	assert.ErrorIs(t, v.Validate(1, simpletable.Time(from.Add(-time.Second)), simpletable.ModeAll), simpletable.ErrBelowMinimum)
}
