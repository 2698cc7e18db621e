// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package simpletable

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ColumnID identifies a column of a Schema. IDs start from 1
// and index the worksheet columns directly (1 is column "A").
type ColumnID int

func (c ColumnID) String() string { return "#" + strconv.Itoa(int(c)) }

// Column contains the Name of the column, its header title,
// number format, header's and column's style and its constraints.
type Column struct {
	// Constraint is optional.
	Constraint *Descriptor
	Name       string
	// Display is the header title; Name is used when empty.
	Display string
	// Format is the number format of the column's cells.
	Format        string
	Header, Style Style
	ID            ColumnID
}

// Title is the text written into the header row.
func (c Column) Title() string {
	if c.Display != "" {
		return c.Display
	}
	return c.Name
}

// Schema is the closed set of columns of a table.
type Schema struct {
	byName map[string]ColumnID
	cols   []Column
}

// NewSchema checks that column IDs start from one and increment by one,
// and that every column has a name.
//
// A zero ID is assigned the column's position (1-based).
func NewSchema(cols ...Column) (*Schema, error) {
	sch := Schema{cols: make([]Column, len(cols)), byName: make(map[string]ColumnID, 2*len(cols))}
	copy(sch.cols, cols)
	for i := range sch.cols {
		if sch.cols[i].ID == 0 {
			sch.cols[i].ID = ColumnID(i + 1)
		}
	}
	slices.SortStableFunc(sch.cols, func(a, b Column) int { return int(a.ID - b.ID) })
	for i, c := range sch.cols {
		if want := ColumnID(i + 1); c.ID != want {
			return nil, fmt.Errorf("%w: column %q has ID %d, wanted %d (IDs must start from 1 and increment by one)",
				ErrInvalidSchema, c.Name, c.ID, want)
		}
		if c.Name == "" {
			return nil, fmt.Errorf("%w: column %d has no name", ErrInvalidSchema, c.ID)
		}
		for _, k := range []string{strings.ToLower(c.Name), strings.ToLower(c.Title())} {
			if prev, ok := sch.byName[k]; ok && prev != c.ID {
				return nil, fmt.Errorf("%w: name %q is used by columns %d and %d",
					ErrInvalidSchema, k, prev, c.ID)
			}
			sch.byName[k] = c.ID
		}
	}
	return &sch, nil
}

// MustSchema is like NewSchema but panics on error.
func MustSchema(cols ...Column) *Schema {
	s, err := NewSchema(cols...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Len() int { return len(s.cols) }

// Columns returns the columns ordered by ID.
func (s *Schema) Columns() []Column { return slices.Clone(s.cols) }

func (s *Schema) Column(id ColumnID) (Column, bool) {
	if id < 1 || int(id) > len(s.cols) {
		return Column{}, false
	}
	return s.cols[id-1], true
}

// Lookup finds a column by its name or title, case insensitively.
func (s *Schema) Lookup(name string) (ColumnID, bool) {
	id, ok := s.byName[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// Descriptor implements DescriptorLookup.
func (s *Schema) Descriptor(id ColumnID) (*Descriptor, bool) {
	c, ok := s.Column(id)
	if !ok || c.Constraint == nil {
		return nil, false
	}
	return c.Constraint, true
}

// ColumnName implements DescriptorLookup.
func (s *Schema) ColumnName(id ColumnID) string {
	if c, ok := s.Column(id); ok {
		return c.Name
	}
	return id.String()
}
