// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package simpletable

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrTooManyErrors is returned by Import when ImportOptions.MaxErrors is reached.
var ErrTooManyErrors = errors.New("too many errors")

// ImportOptions configures Import.
type ImportOptions struct {
	// Mode is used for validating every cell.
	Mode Mode
	// MaxErrors stops the import after this many rejected cells (0: no limit).
	MaxErrors int
	// FirstRow is the sheet row of the first data record (0: after the last used row).
	FirstRow int
	// NoHeader means the records map to the columns by position,
	// instead of the first record naming the columns.
	NoHeader bool
	// Uniform applies the column (or kind) number format to every written cell.
	Uniform bool
}

// RowError is a rejected cell of an import.
type RowError struct {
	Err    error
	Name   string
	Raw    string
	Row    int
	Record int
	Column ColumnID
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d (record %d), column %q: %v", e.Row, e.Record, e.Name, e.Err)
}
func (e RowError) Unwrap() error { return e.Err }

// ImportResult summarizes an import.
type ImportResult struct {
	// Unknown lists the header fields without a matching column; they are skipped.
	Unknown []string
	Errors  []RowError
	Records int
	Rows    int
	Cells   int
}

// Import reads records from r and writes them into t, one row per record.
//
// Every field is parsed as its column's value kind, then validated and written.
// Rejected fields are collected in the result and left empty;
// the import goes on until r is exhausted, ctx is canceled or
// MaxErrors is reached.
func Import(ctx context.Context, t *Table, r RecordReader, opts ImportOptions) (ImportResult, error) {
	var res ImportResult
	mapping := make([]ColumnID, t.schema.Len())
	for i := range mapping {
		mapping[i] = ColumnID(i + 1)
	}
	record := 0
	if !opts.NoHeader {
		header, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return res, nil
			}
			return res, fmt.Errorf("read header: %w", err)
		}
		record++
		mapping = mapping[:0]
		for _, h := range header {
			id, ok := t.schema.Lookup(h)
			if !ok {
				res.Unknown = append(res.Unknown, h)
			}
			mapping = append(mapping, id)
		}
		if len(res.Unknown) != 0 {
			t.logger.Warn("unknown columns", "names", res.Unknown)
		}
	}

	row := opts.FirstRow
	if row <= 0 {
		t.mu.Lock()
		row = t.lastRow + 1
		t.mu.Unlock()
	}
	for ; ; row++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return res, fmt.Errorf("read record %d: %w", record+1, err)
		}
		record++
		res.Records++
		if row > MaxRowCount {
			return res, ErrTooManyRows
		}
		var written bool
		for i, raw := range rec {
			if i >= len(mapping) || mapping[i] == 0 {
				continue
			}
			col := mapping[i]
			c, _ := t.schema.Column(col)
			fail := func(err error) error {
				res.Errors = append(res.Errors, RowError{
					Row: row, Record: record, Column: col, Name: c.Name, Raw: raw, Err: err,
				})
				if opts.MaxErrors > 0 && len(res.Errors) >= opts.MaxErrors {
					return fmt.Errorf("%d: %w", len(res.Errors), ErrTooManyErrors)
				}
				return nil
			}
			kind := c.Constraint.ValueKind()
			v, err := ParseValue(kind, raw)
			if err != nil && !t.validator.Resolve(opts.Mode).Has(ModeType) {
				v, err = Text(raw), nil
			}
			if err != nil {
				if err = fail(fmt.Errorf("parse %q as %s: %w", raw, kind, errors.Join(ErrTypeMismatch, err))); err != nil {
					return res, err
				}
				continue
			}
			if v.IsNull() {
				continue
			}
			if err = t.SetUniform(row, col, v, opts.Uniform, opts.Mode); err != nil {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					return res, err
				}
				if err = fail(ve); err != nil {
					return res, err
				}
				continue
			}
			res.Cells++
			written = true
		}
		if written {
			res.Rows++
		}
	}
	t.logger.Debug("imported", "records", res.Records, "rows", res.Rows, "cells", res.Cells, "errors", len(res.Errors))
	return res, nil
}
