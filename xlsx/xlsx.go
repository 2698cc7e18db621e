// Copyright 2020, 2023, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package xlsx implements simpletable.Store with excelize.
package xlsx

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/UNO-SOFT/simpletable"
	"github.com/xuri/excelize/v2"
)

var _ = (simpletable.Store)((*Store)(nil))

const (
	ExtensionXLSX = ".xlsx"
	ExtensionXLS  = ".xls"

	// DefaultSheetName is the name of the sheet created when none is given.
	DefaultSheetName = "Default"

	// firstCustomNumFmtID is the first ID of the custom number formats.
	firstCustomNumFmtID = 164
)

// ErrUnsupportedFormat is returned for legacy .xls files.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Store is a worksheet of an excelize workbook.
//
// This store allows concurrent use; it collects everything in memory,
// so big sheets may impose problems.
type Store struct {
	w      io.Writer
	xl     *excelize.File
	styles map[styleKey]int
	path   string
	sheet  string
	mu     sync.Mutex
}

type styleKey struct {
	base  int
	style simpletable.Style
}

// Open opens the workbook at path, or creates (and saves) it if it does not exist,
// and selects the named sheet, creating it when missing.
//
// A path without extension gets ".xlsx"; ".xls" files are not supported.
//
// An empty sheet name selects the first sheet of an existing workbook,
// or DefaultSheetName for a new one.
func Open(path, sheet string) (*Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtensionXLSX:
	case ExtensionXLS:
		return nil, fmt.Errorf("%q: %w", path, ErrUnsupportedFormat)
	default:
		path += ExtensionXLSX
	}
	var xl *excelize.File
	_, err := os.Stat(path)
	create := errors.Is(err, os.ErrNotExist)
	if create {
		xl = excelize.NewFile()
	} else if err != nil {
		return nil, err
	} else if xl, err = excelize.OpenFile(path); err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	st := &Store{xl: xl, path: path}
	if err = st.selectSheet(sheet, create); err != nil {
		xl.Close()
		return nil, err
	}
	if create {
		if err = xl.SaveAs(path); err != nil {
			xl.Close()
			return nil, fmt.Errorf("create %q: %w", path, err)
		}
	}
	return st, nil
}

// New returns a Store over a new, in-memory workbook with the named sheet.
// The workbook is written to w on Close (if w is not nil).
func New(w io.Writer, sheet string) (*Store, error) {
	st := &Store{w: w, xl: excelize.NewFile()}
	if err := st.selectSheet(sheet, true); err != nil {
		st.xl.Close()
		return nil, err
	}
	return st, nil
}

func (st *Store) selectSheet(name string, fresh bool) error {
	sheets := st.xl.GetSheetList()
	name = strings.TrimSpace(name)
	if name == "" {
		if !fresh && len(sheets) != 0 {
			st.sheet = sheets[0]
			return nil
		}
		name = DefaultSheetName
	}
	for _, s := range sheets {
		if s == name {
			st.sheet = s
			return nil
		}
	}
	if fresh && len(sheets) == 1 {
		// the placeholder sheet of a new workbook
		if err := st.xl.SetSheetName(sheets[0], name); err != nil {
			return fmt.Errorf("rename %q to %q: %w", sheets[0], name, err)
		}
		st.sheet = name
		return nil
	}
	idx, err := st.xl.NewSheet(name)
	if err != nil {
		return fmt.Errorf("new sheet %q: %w", name, err)
	}
	st.xl.SetActiveSheet(idx)
	st.sheet = name
	return nil
}

// Sheet returns the name of the selected sheet.
func (st *Store) Sheet() string { return st.sheet }

// Path returns the file name of the workbook ("" for New).
func (st *Store) Path() string { return st.path }

// Sheets returns the names of all the sheets of the workbook.
func (st *Store) Sheets() []string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.xl.GetSheetList()
}

// File returns the underlying workbook.
func (st *Store) File() *excelize.File { return st.xl }

// Save writes the workbook to its file (or writer), without closing it.
func (st *Store) Save() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.save()
}

func (st *Store) save() error {
	if st.xl == nil {
		return nil
	}
	if st.path != "" {
		return st.xl.SaveAs(st.path)
	}
	if st.w != nil {
		_, err := st.xl.WriteTo(st.w)
		return err
	}
	return nil
}

// Close saves and closes the workbook.
func (st *Store) Close() error {
	if st == nil {
		return nil
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.xl == nil {
		return nil
	}
	err := st.save()
	if closeErr := st.xl.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	st.xl, st.w = nil, nil
	return err
}

func (st *Store) axis(row, col int) (string, error) {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", fmt.Errorf("%d/%d: %w", col, row, err)
	}
	return axis, nil
}

// Value returns the value of the cell.
func (st *Store) Value(row, col int) (simpletable.Value, error) {
	axis, err := st.axis(row, col)
	if err != nil {
		return simpletable.Value{}, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	typ, err := st.xl.GetCellType(st.sheet, axis)
	if err != nil {
		return simpletable.Value{}, fmt.Errorf("%s[%s]: %w", st.sheet, axis, err)
	}
	raw, err := st.xl.GetCellValue(st.sheet, axis, excelize.Options{RawCellValue: true})
	if err != nil {
		return simpletable.Value{}, fmt.Errorf("%s[%s]: %w", st.sheet, axis, err)
	}
	if raw == "" {
		return simpletable.Value{}, nil
	}
	switch typ {
	case excelize.CellTypeBool:
		return simpletable.Bool(raw == "1" || strings.EqualFold(raw, "true")), nil
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if typ == excelize.CellTypeUnset {
			if _, err := strconv.ParseFloat(raw, 64); err != nil {
				return simpletable.Text(raw), nil
			}
		}
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return simpletable.Int(i), nil
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return simpletable.Value{}, fmt.Errorf("%s[%s]: %q: %w", st.sheet, axis, raw, err)
		}
		return simpletable.Float(f), nil
	case excelize.CellTypeDate:
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return simpletable.Text(raw), nil
		}
		return simpletable.Time(t), nil
	}
	return simpletable.Text(raw), nil
}

// SetValue writes the value into the cell; the null value clears it.
func (st *Store) SetValue(row, col int, v simpletable.Value) error {
	axis, err := st.axis(row, col)
	if err != nil {
		return err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	switch v.Kind() {
	case simpletable.KindNull:
		err = st.xl.SetCellValue(st.sheet, axis, nil)
	case simpletable.KindInt:
		err = st.xl.SetCellValue(st.sheet, axis, v.Int())
	case simpletable.KindFloat:
		err = st.xl.SetCellFloat(st.sheet, axis, v.Float(), -1, 64)
	case simpletable.KindText:
		err = st.xl.SetCellStr(st.sheet, axis, v.Text())
	case simpletable.KindBool:
		err = st.xl.SetCellBool(st.sheet, axis, v.Bool())
	case simpletable.KindTime:
		if t := v.Time(); t.IsZero() {
			err = st.xl.SetCellValue(st.sheet, axis, nil)
		} else {
			err = st.xl.SetCellValue(st.sheet, axis, t)
		}
	default:
		err = fmt.Errorf("%s: %w", v.Kind(), simpletable.ErrUnsupportedValue)
	}
	if err != nil {
		return fmt.Errorf("%s[%s]: %w", st.sheet, axis, err)
	}
	return nil
}

// SetNumberFormat sets the number format of the cell,
// keeping the other attributes of its style.
func (st *Store) SetNumberFormat(row, col int, format string) error {
	axis, err := st.axis(row, col)
	if err != nil {
		return err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	base, err := st.xl.GetCellStyle(st.sheet, axis)
	if err != nil {
		return fmt.Errorf("%s[%s]: %w", st.sheet, axis, err)
	}
	s, err := st.getStyle(base, simpletable.Style{Format: format})
	if err != nil {
		return fmt.Errorf("%s[%s]: %w", st.sheet, axis, err)
	}
	if err = st.xl.SetCellStyle(st.sheet, axis, axis, s); err != nil {
		return fmt.Errorf("%s[%s]: %w", st.sheet, axis, err)
	}
	return nil
}

// SetRangeStyle applies style to the rectangle.
func (st *Store) SetRangeStyle(fromRow, fromCol, toRow, toCol int, style simpletable.Style) error {
	from, err := st.axis(fromRow, fromCol)
	if err != nil {
		return err
	}
	to, err := st.axis(toRow, toCol)
	if err != nil {
		return err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	s, err := st.getStyle(0, style)
	if err != nil {
		return err
	}
	if s == 0 {
		return nil
	}
	if err = st.xl.SetCellStyle(st.sheet, from, to, s); err != nil {
		return fmt.Errorf("%s[%s:%s]: %w", st.sheet, from, to, err)
	}
	return nil
}

// SetColumnStyle applies style to the whole column.
func (st *Store) SetColumnStyle(col int, style simpletable.Style) error {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	s, err := st.getStyle(0, style)
	if err != nil || s == 0 {
		return err
	}
	return st.xl.SetColStyle(st.sheet, name, s)
}

func (st *Store) getStyle(base int, style simpletable.Style) (int, error) {
	if style.IsZero() {
		return base, nil
	}
	k := styleKey{base: base, style: style}
	if s, ok := st.styles[k]; ok {
		return s, nil
	}
	var xs excelize.Style
	if base != 0 {
		bs, err := st.xl.GetStyle(base)
		if err != nil {
			return 0, err
		}
		xs = *bs
	}
	if style.FontBold || style.FontItalic || style.FontColor != "" {
		if xs.Font == nil {
			xs.Font = &excelize.Font{}
		}
		xs.Font.Bold = xs.Font.Bold || style.FontBold
		xs.Font.Italic = xs.Font.Italic || style.FontItalic
		if style.FontColor != "" {
			xs.Font.Color = style.FontColor
		}
	}
	if style.FillColor != "" {
		xs.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{style.FillColor}}
	}
	if style.BorderColor != "" {
		xs.Border = make([]excelize.Border, 0, 4)
		for _, side := range []string{"left", "top", "right", "bottom"} {
			xs.Border = append(xs.Border, excelize.Border{Type: side, Color: style.BorderColor, Style: 1})
		}
	}
	if style.Center {
		xs.Alignment = &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	}
	if style.Format != "" {
		if id, ok := simpletable.BuiltInNumberFormatID(style.Format); ok {
			xs.NumFmt, xs.CustomNumFmt = id, nil
		} else {
			format := style.Format
			xs.NumFmt, xs.CustomNumFmt = 0, &format
		}
	}
	s, err := st.xl.NewStyle(&xs)
	if err != nil {
		return 0, err
	}
	if st.styles == nil {
		st.styles = make(map[styleKey]int)
	}
	st.styles[k] = s
	return s, nil
}

// NumberFormats returns the number format catalog of the workbook:
// the built-in formats, overridden or extended by the ones
// stored in the workbook's style sheet, ordered by ID.
func (st *Store) NumberFormats() []simpletable.NumberFormat {
	st.mu.Lock()
	defer st.mu.Unlock()
	nfs := slices.Clone(simpletable.BuiltInNumberFormats)
	if st.xl == nil {
		return nfs
	}
	// loads the style sheet
	_, _ = st.xl.GetStyle(0)
	if ss := st.xl.Styles; ss != nil && ss.NumFmts != nil {
		for _, nf := range ss.NumFmts.NumFmt {
			if nf == nil || nf.FormatCode == "" {
				continue
			}
			if i := slices.IndexFunc(nfs, func(b simpletable.NumberFormat) bool { return b.ID == nf.NumFmtID }); i >= 0 {
				nfs[i].Format = nf.FormatCode
				continue
			}
			nfs = append(nfs, simpletable.NumberFormat{
				ID: nf.NumFmtID, Format: nf.FormatCode,
				BuiltIn: nf.NumFmtID < firstCustomNumFmtID,
			})
		}
	}
	slices.SortFunc(nfs, func(a, b simpletable.NumberFormat) int { return a.ID - b.ID })
	return nfs
}

// Dimension returns the number of used rows and columns.
func (st *Store) Dimension() (rows, cols int, err error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	all, err := st.xl.GetRows(st.sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", st.sheet, err)
	}
	for i, r := range all {
		if len(r) == 0 {
			continue
		}
		rows = i + 1
		cols = max(cols, len(r))
	}
	return rows, cols, nil
}
