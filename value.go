// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package simpletable

import (
	"cmp"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Kind is the runtime type tag of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindText
	KindTime
	KindBool
)

var kindNames = [...]string{
	KindNull:  "null",
	KindInt:   "int",
	KindFloat: "float",
	KindText:  "text",
	KindTime:  "time",
	KindBool:  "bool",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind is the inverse of Kind.String.
// It also accepts a few common aliases ("integer", "double", "string", "date", ...).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "null", "":
		return KindNull, nil
	case "int", "integer", "int64":
		return KindInt, nil
	case "float", "double", "float64", "number":
		return KindFloat, nil
	case "text", "string", "str":
		return KindText, nil
	case "time", "date", "datetime", "timestamp":
		return KindTime, nil
	case "bool", "boolean":
		return KindBool, nil
	}
	return KindNull, fmt.Errorf("unknown kind %q", s)
}

// Ordered reports whether values of this kind can be compared with < and >.
func (k Kind) Ordered() bool {
	switch k {
	case KindInt, KindFloat, KindText, KindTime:
		return true
	}
	return false
}

// Value is a cell value: one of integer, floating point, text, date-time or boolean.
// The zero Value is null.
type Value struct {
	t    time.Time
	s    string
	i    int64
	f    float64
	kind Kind
}

func Null() Value { return Value{} }
func Int(i int64) Value { return Value{kind: KindInt, i: i} }
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }
func Text(s string) Value { return Value{kind: KindText, s: s} }
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }
func Bool(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.i = 1
	}
	return v
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int returns the integer payload; it is meaningful only for KindInt.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload; it is meaningful only for KindFloat.
func (v Value) Float() float64 { return v.f }

// Text returns the text payload; it is meaningful only for KindText.
func (v Value) Text() string { return v.s }

// Time returns the time payload; it is meaningful only for KindTime.
func (v Value) Time() time.Time { return v.t }

// Bool returns the boolean payload; it is meaningful only for KindBool.
func (v Value) Bool() bool { return v.i != 0 }

// Any returns the payload as a plain Go value (nil for null).
func (v Value) Any() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindText:
		return v.s
	case KindTime:
		return v.t
	case KindBool:
		return v.i != 0
	}
	return nil
}

// String returns the canonical textual representation, used for length checks.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return v.s
	case KindTime:
		return v.t.Format(time.RFC3339)
	case KindBool:
		return strconv.FormatBool(v.i != 0)
	}
	return ""
}

// Len is the number of characters in the canonical representation.
func (v Value) Len() int { return utf8.RuneCountInString(v.String()) }

// Compare returns -1, 0 or +1 when v is less than, equal to or greater than w.
// The two values must be of the same, ordered kind.
func (v Value) Compare(w Value) (int, error) {
	if v.kind != w.kind {
		return 0, fmt.Errorf("compare %s with %s: %w", v.kind, w.kind, ErrTypeMismatch)
	}
	switch v.kind {
	case KindInt:
		return cmp.Compare(v.i, w.i), nil
	case KindFloat:
		return cmp.Compare(v.f, w.f), nil
	case KindText:
		return strings.Compare(v.s, w.s), nil
	case KindTime:
		return v.t.Compare(w.t), nil
	}
	return 0, fmt.Errorf("%s is not ordered", v.kind)
}

// Equal reports whether v and w have the same kind and payload.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	if v.kind == KindTime {
		return v.t.Equal(w.t)
	}
	return v.i == w.i && v.f == w.f && v.s == w.s
}

// FromAny converts a Go value into a Value.
//
// database/sql Null types, driver.Valuer and fmt.Stringer are unwrapped;
// an invalid Null is the null Value.
func FromAny(x any) (Value, error) {
	if x == nil {
		return Value{}, nil
	}
	switch x := x.(type) {
	case Value:
		return x, nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return fromUint(uint64(x))
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return fromUint(x)
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case string:
		return Text(x), nil
	case []byte:
		return Text(string(x)), nil
	case bool:
		return Bool(x), nil
	case time.Time:
		return Time(x), nil
	case *time.Time:
		if x == nil {
			return Value{}, nil
		}
		return Time(*x), nil
	case sql.NullTime:
		if !x.Valid {
			return Value{}, nil
		}
		return Time(x.Time), nil
	case sql.NullFloat64:
		if !x.Valid {
			return Value{}, nil
		}
		return Float(x.Float64), nil
	case sql.NullInt64:
		if !x.Valid {
			return Value{}, nil
		}
		return Int(x.Int64), nil
	case sql.NullInt32:
		if !x.Valid {
			return Value{}, nil
		}
		return Int(int64(x.Int32)), nil
	case sql.NullString:
		if !x.Valid {
			return Value{}, nil
		}
		return Text(x.String), nil
	case sql.NullBool:
		if !x.Valid {
			return Value{}, nil
		}
		return Bool(x.Bool), nil
	case driver.Valuer:
		vv, err := x.Value()
		if err != nil {
			return Value{}, err
		}
		if _, ok := vv.(driver.Valuer); ok {
			return Value{}, fmt.Errorf("%T: recursive driver.Valuer", x)
		}
		return FromAny(vv)
	case fmt.Stringer:
		return Text(x.String()), nil
	}
	return Value{}, fmt.Errorf("%T: %w", x, ErrUnsupportedValue)
}

func fromUint(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return Value{}, fmt.Errorf("%d overflows int64: %w", u, ErrUnsupportedValue)
	}
	return Int(int64(u)), nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
	"2006.01.02",
	"2006.01.02.",
	"20060102",
}

// ParseValue parses s as a value of the given kind.
// The empty string is the null Value for every kind but text.
func ParseValue(kind Kind, s string) (Value, error) {
	if kind == KindText {
		return Text(s), nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}, nil
	}
	switch kind {
	case KindNull:
		return Value{}, nil
	case KindInt:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Value{}, err
		}
		return Int(i), nil
	case KindFloat:
		f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
		if err != nil {
			return Value{}, err
		}
		return Float(f), nil
	case KindBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case KindTime:
		for _, layout := range timeLayouts {
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return Time(t), nil
			}
		}
		return Value{}, fmt.Errorf("%q: unknown time format", s)
	}
	return Value{}, fmt.Errorf("parse %q as %s: %w", s, kind, ErrUnsupportedValue)
}
