// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package simpletable

import (
	"fmt"
	"strings"
)

// Mode selects which categories of checks are performed.
//
// The zero value is ModeDefault: resolve to the validator's default mode.
type Mode uint8

const (
	ModeDefault Mode = 0
	// ModeType checks the declared type of the column.
	ModeType Mode = 1 << 0
	// ModeInterval checks min/max and length bounds.
	ModeInterval Mode = 1 << 1
	// ModeNone skips all checks.
	ModeNone Mode = 1 << 2

	ModeAll = ModeType | ModeInterval
)

// DefaultMode is the initial default mode of every Validator.
const DefaultMode = ModeNone

// Has reports whether every check of f is enabled in m.
// ModeNone disables everything.
func (m Mode) Has(f Mode) bool { return m&ModeNone == 0 && m&f == f && f != 0 }

func (m Mode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModeNone:
		return "none"
	case ModeAll:
		return "all"
	}
	if m&ModeNone != 0 {
		return "none"
	}
	var parts []string
	if m&ModeType != 0 {
		parts = append(parts, "type")
	}
	if m&ModeInterval != 0 {
		parts = append(parts, "interval")
	}
	if len(parts) == 0 {
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
	return strings.Join(parts, "|")
}

// ParseMode parses "default", "none", "all", "type", "interval",
// and combinations joined by '|', ',' or '+'.
func ParseMode(s string) (Mode, error) {
	var m Mode
	for _, part := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '|' || r == ',' || r == '+' || r == ' '
	}) {
		switch part {
		case "default":
		case "none":
			m |= ModeNone
		case "type":
			m |= ModeType
		case "interval", "range":
			m |= ModeInterval
		case "all", "typeandinterval":
			m |= ModeAll
		default:
			return ModeDefault, fmt.Errorf("unknown mode %q", part)
		}
	}
	if m&ModeNone != 0 {
		return ModeNone, nil
	}
	return m, nil
}

// Set implements flag.Value.
func (m *Mode) Set(s string) error {
	p, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = p
	return nil
}
