// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package simpletable

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync"
)

var _ = (Sheet)((*Table)(nil))

// MaxRowCount is the number of maximum rows.
const MaxRowCount = 1_048_576

// Table is a worksheet whose columns are given by a Schema.
//
// Every setter validates the value with the table's Validator before
// writing it; a rejected value is not written, and the validation
// error is returned as is.
type Table struct {
	store     Store
	schema    *Schema
	validator *Validator
	logger    *slog.Logger
	formats   map[Kind]string
	mu        sync.Mutex
	lastRow   int
	noHeader  bool
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithTableDefaultMode sets the default mode of the table's validator.
func WithTableDefaultMode(m Mode) TableOption {
	return func(t *Table) { t.validator.SetDefaultMode(m) }
}

// WithoutHeader skips writing the header row into an empty sheet.
func WithoutHeader() TableOption { return func(t *Table) { t.noHeader = true } }

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) TableOption {
	return func(t *Table) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithNumberFormats overrides the default number formats per kind.
func WithNumberFormats(formats map[Kind]string) TableOption {
	return func(t *Table) { maps.Copy(t.formats, formats) }
}

// NewTable returns a Table over store.
//
// If the sheet is empty, the header row is written
// (unless WithoutHeader is given).
func NewTable(store Store, schema *Schema, opts ...TableOption) (*Table, error) {
	if store == nil || schema == nil {
		return nil, fmt.Errorf("%w: nil store or schema", ErrInvalidSchema)
	}
	t := &Table{
		store:     store,
		schema:    schema,
		validator: NewValidator(schema),
		logger:    slog.New(slog.DiscardHandler),
		formats:   DefaultNumberFormats(),
	}
	for _, o := range opts {
		o(t)
	}
	rows, cols, err := store.Dimension()
	if err != nil {
		return nil, err
	}
	t.lastRow = rows
	if rows == 0 && cols == 0 && !t.noHeader {
		if err := t.WriteHeader(); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// WriteHeader writes the column titles into the first row,
// styles the header and applies each column's style.
func (t *Table) WriteHeader() error {
	if t.store == nil {
		return os.ErrClosed
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	cols := t.schema.cols
	if len(cols) == 0 {
		return nil
	}
	for _, c := range cols {
		if err := t.store.SetValue(1, int(c.ID), Text(c.Title())); err != nil {
			return fmt.Errorf("header %q: %w", c.Name, err)
		}
		if !c.Style.IsZero() {
			if err := t.store.SetColumnStyle(int(c.ID), c.Style); err != nil {
				return fmt.Errorf("column %q style: %w", c.Name, err)
			}
		}
	}
	if err := t.store.SetRangeStyle(1, 1, 1, len(cols), HeaderStyle); err != nil {
		return err
	}
	for _, c := range cols {
		if c.Header.IsZero() {
			continue
		}
		hs := c.Header
		if hs.Format == "" {
			hs.Format = HeaderStyle.Format
		}
		if err := t.store.SetRangeStyle(1, int(c.ID), 1, int(c.ID), hs); err != nil {
			return fmt.Errorf("header %q style: %w", c.Name, err)
		}
	}
	t.lastRow = max(t.lastRow, 1)
	t.logger.Debug("header written", "columns", len(cols))
	return nil
}

func (t *Table) Schema() *Schema { return t.schema }

func (t *Table) Validator() *Validator { return t.validator }

// DefaultMode returns the mode ModeDefault resolves to.
func (t *Table) DefaultMode() Mode { return t.validator.DefaultMode() }

// SetDefaultMode sets the mode ModeDefault resolves to.
func (t *Table) SetDefaultMode(m Mode) { t.validator.SetDefaultMode(m) }

// RowCount returns the number of used rows (including the header).
func (t *Table) RowCount() int {
	if t.store == nil {
		return 0
	}
	rows, _, err := t.store.Dimension()
	if err != nil {
		t.logger.Warn("dimension", "error", err)
	}
	return rows
}

// ColCount returns the number of used columns.
func (t *Table) ColCount() int {
	if t.store == nil {
		return 0
	}
	_, cols, err := t.store.Dimension()
	if err != nil {
		t.logger.Warn("dimension", "error", err)
	}
	return cols
}

func (t *Table) check(row int, col ColumnID) error {
	if t.store == nil {
		return os.ErrClosed
	}
	if row < 1 || row > MaxRowCount {
		return fmt.Errorf("row %d: %w", row, ErrOutOfRange)
	}
	if _, ok := t.schema.Column(col); !ok {
		return fmt.Errorf("column %d: %w", col, ErrOutOfRange)
	}
	return nil
}

// Get returns the value of the cell.
func (t *Table) Get(row int, col ColumnID) (Value, error) {
	if err := t.check(row, col); err != nil {
		return Value{}, err
	}
	return t.store.Value(row, int(col))
}

// Set validates v under mode, then writes it.
func (t *Table) Set(row int, col ColumnID, v Value, mode Mode) error {
	return t.set(row, col, v, mode, "")
}

// SetAny converts x with FromAny, then calls Set.
func (t *Table) SetAny(row int, col ColumnID, x any, mode Mode) error {
	v, err := FromAny(x)
	if err != nil {
		return err
	}
	return t.Set(row, col, v, mode)
}

// SetFormat is Set with an explicit number format for the cell.
func (t *Table) SetFormat(row int, col ColumnID, v Value, format string, mode Mode) error {
	if format == "" {
		format = GeneralFormat
	}
	return t.set(row, col, v, mode, format)
}

// SetFormatID is Set with the number format of the given catalog ID,
// "General" if the ID is unknown.
func (t *Table) SetFormatID(row int, col ColumnID, v Value, id int, mode Mode) error {
	format, ok := t.NumberFormat(id)
	if !ok {
		format = GeneralFormat
	}
	return t.set(row, col, v, mode, format)
}

// SetUniform is Set, and if uniform is true, the cell gets the column's
// format, or the default format of the value's kind, or "General".
func (t *Table) SetUniform(row int, col ColumnID, v Value, uniform bool, mode Mode) error {
	if !uniform {
		return t.Set(row, col, v, mode)
	}
	format := GeneralFormat
	if c, ok := t.schema.Column(col); ok && c.Format != "" {
		format = c.Format
	} else if f, ok := t.NumberFormatFor(v.Kind()); ok {
		format = f
	}
	return t.set(row, col, v, mode, format)
}

// SetKindFormat is Set with the format registered for kind, or "General".
func (t *Table) SetKindFormat(row int, col ColumnID, v Value, kind Kind, mode Mode) error {
	format, ok := t.NumberFormatFor(kind)
	if !ok {
		format = GeneralFormat
	}
	return t.set(row, col, v, mode, format)
}

func (t *Table) set(row int, col ColumnID, v Value, mode Mode, format string) error {
	if err := t.check(row, col); err != nil {
		return err
	}
	if err := t.validator.Validate(col, v, mode); err != nil {
		return err
	}
	if err := t.store.SetValue(row, int(col), v); err != nil {
		return err
	}
	if format != "" {
		if err := t.store.SetNumberFormat(row, int(col), format); err != nil {
			return err
		}
	}
	t.mu.Lock()
	t.lastRow = max(t.lastRow, row)
	t.mu.Unlock()
	return nil
}

// AppendRow writes values into the row after the last used one,
// validating each with ModeDefault. Nil values leave the cell empty.
//
// Nothing is written if any value is rejected.
func (t *Table) AppendRow(values ...any) error {
	if len(values) > t.schema.Len() {
		return fmt.Errorf("%d values for %d columns: %w", len(values), t.schema.Len(), ErrOutOfRange)
	}
	vv := make([]Value, len(values))
	for i, x := range values {
		v, err := FromAny(x)
		if err != nil {
			return fmt.Errorf("%s: %w", t.schema.ColumnName(ColumnID(i+1)), err)
		}
		if v.IsNull() {
			continue
		}
		if err = t.validator.Validate(ColumnID(i+1), v, ModeDefault); err != nil {
			return err
		}
		vv[i] = v
	}
	if t.store == nil {
		return os.ErrClosed
	}
	t.mu.Lock()
	if t.lastRow >= MaxRowCount {
		t.mu.Unlock()
		return ErrTooManyRows
	}
	t.lastRow++
	row := t.lastRow
	t.mu.Unlock()
	for i, v := range vv {
		if v.IsNull() {
			continue
		}
		if err := t.SetUniform(row, ColumnID(i+1), v, true, ModeNone); err != nil {
			return err
		}
	}
	return nil
}

// NumberFormat returns the format of the given catalog ID.
func (t *Table) NumberFormat(id int) (string, bool) {
	if t.store == nil {
		return "", false
	}
	for _, nf := range t.store.NumberFormats() {
		if nf.ID == id {
			return nf.Format, true
		}
	}
	return "", false
}

// NumberFormats returns the number format catalog of the store.
func (t *Table) NumberFormats() []NumberFormat {
	if t.store == nil {
		return nil
	}
	nfs := t.store.NumberFormats()
	slices.SortFunc(nfs, func(a, b NumberFormat) int { return a.ID - b.ID })
	return nfs
}

// NumberFormatFor returns the format used for values of kind k.
func (t *Table) NumberFormatFor(k Kind) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	f, ok := t.formats[k]
	return f, ok
}

// SetNumberFormatFor sets the format used for values of kind k.
// The empty format removes it.
func (t *Table) SetNumberFormatFor(k Kind, format string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if format == "" {
		delete(t.formats, k)
	} else {
		t.formats[k] = format
	}
}

// Close closes (and saves) the underlying store.
// Using the table after Close returns os.ErrClosed.
func (t *Table) Close() error {
	if t == nil || t.store == nil {
		return nil
	}
	err := t.store.Close()
	t.store = nil
	return err
}
