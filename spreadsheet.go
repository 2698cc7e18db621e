// Copyright 2020, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package simpletable

import (
	"io"
)

// Store is the spreadsheet engine a Table reads and writes.
// Rows and columns are 1-based.
//
// Close persists the changes and releases the resources.
type Store interface {
	io.Closer
	Value(row, col int) (Value, error)
	SetValue(row, col int, v Value) error
	SetNumberFormat(row, col int, format string) error
	SetRangeStyle(fromRow, fromCol, toRow, toCol int, style Style) error
	SetColumnStyle(col int, style Style) error
	NumberFormats() []NumberFormat
	// Dimension returns the number of used rows and columns.
	Dimension() (rows, cols int, err error)
}

// Sheet should be Closed when finished.
type Sheet interface {
	io.Closer
	AppendRow(values ...any) error
}

// Style is a style for a column/row/cell.
type Style struct {
	// Format is the number format
	Format string
	// FontColor, FillColor and BorderColor are RGB hex colors, such as "00008B".
	FontColor, FillColor, BorderColor string
	// FontBold is true if the font is bold
	FontBold   bool
	FontItalic bool
	// Center aligns the content both horizontally and vertically.
	Center bool
}

// IsZero reports whether the style changes nothing.
func (s Style) IsZero() bool { return s == Style{} }

// HeaderStyle is applied to the header row.
var HeaderStyle = Style{
	Format:      "@",
	FontItalic:  true,
	FontColor:   "00008B",
	FillColor:   "D3D3D3",
	BorderColor: "0000FF",
	Center:      true,
}

// NumberFormat is an entry of a workbook's number format catalog.
type NumberFormat struct {
	Format  string
	ID      int
	BuiltIn bool
}

// GeneralFormat is the format used when no other applies.
const GeneralFormat = "General"

// BuiltInNumberFormats are the number formats every workbook knows.
var BuiltInNumberFormats = []NumberFormat{
	{ID: 0, Format: "General"},
	{ID: 1, Format: "0"},
	{ID: 2, Format: "0.00"},
	{ID: 3, Format: "#,##0"},
	{ID: 4, Format: "#,##0.00"},
	{ID: 9, Format: "0%"},
	{ID: 10, Format: "0.00%"},
	{ID: 11, Format: "0.00E+00"},
	{ID: 12, Format: "# ?/?"},
	{ID: 13, Format: "# ??/??"},
	{ID: 14, Format: "mm-dd-yy"},
	{ID: 15, Format: "d-mmm-yy"},
	{ID: 16, Format: "d-mmm"},
	{ID: 17, Format: "mmm-yy"},
	{ID: 18, Format: "h:mm AM/PM"},
	{ID: 19, Format: "h:mm:ss AM/PM"},
	{ID: 20, Format: "h:mm"},
	{ID: 21, Format: "h:mm:ss"},
	{ID: 22, Format: "m/d/yy h:mm"},
	{ID: 37, Format: "#,##0 ;(#,##0)"},
	{ID: 38, Format: "#,##0 ;[Red](#,##0)"},
	{ID: 39, Format: "#,##0.00;(#,##0.00)"},
	{ID: 40, Format: "#,##0.00;[Red](#,##0.00)"},
	{ID: 45, Format: "mm:ss"},
	{ID: 46, Format: "[h]:mm:ss"},
	{ID: 47, Format: "mmss.0"},
	{ID: 48, Format: "##0.0E+0"},
	{ID: 49, Format: "@"},
}

func init() {
	for i := range BuiltInNumberFormats {
		BuiltInNumberFormats[i].BuiltIn = true
	}
}

// BuiltInNumberFormatID returns the ID of a built-in format.
func BuiltInNumberFormatID(format string) (int, bool) {
	for _, nf := range BuiltInNumberFormats {
		if nf.Format == format {
			return nf.ID, true
		}
	}
	return 0, false
}

// DefaultNumberFormats returns a fresh copy of the default number format per kind.
func DefaultNumberFormats() map[Kind]string {
	return map[Kind]string{
		KindTime:  "yyyy-mm-dd",
		KindInt:   "0",
		KindFloat: "#,##0.00",
		KindText:  "@",
	}
}
