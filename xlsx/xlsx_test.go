// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/UNO-SOFT/simpletable"
	"github.com/UNO-SOFT/simpletable/xlsx"
)

var testSchema = simpletable.MustSchema(
	simpletable.Column{Name: "FIRST",
		Constraint: simpletable.MustDescriptor(simpletable.WithType(simpletable.KindInt))},
	simpletable.Column{Name: "Second"},
	simpletable.Column{Name: "THIRD", Display: "Third column",
		Constraint: simpletable.MustDescriptor(simpletable.WithType(simpletable.KindText))},
	simpletable.Column{Name: "fourth", Display: "Fourth column",
		Format: "#,##0.0000 thousand",
		Constraint: simpletable.MustDescriptor(simpletable.WithType(simpletable.KindFloat))},
)

func TestOpenCreatesWorkbook(t *testing.T) {
	dir := t.TempDir()
	st, err := xlsx.Open(filepath.Join(dir, "test"), "Test1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "test.xlsx"), st.Path())
	assert.Equal(t, "Test1", st.Sheet())
	assert.Equal(t, []string{"Test1"}, st.Sheets())
	_, err = os.Stat(st.Path())
	require.NoError(t, err, "created on open")

	tbl, err := simpletable.NewTable(st, testSchema)
	require.NoError(t, err)
	require.NoError(t, tbl.Set(2, 1, simpletable.Text("TestText"), simpletable.ModeDefault))
	require.NoError(t, tbl.SetAny(3, 1, 10, simpletable.ModeAll))
	require.NoError(t, tbl.SetAny(3, 3, "TestText", simpletable.ModeAll))
	require.ErrorIs(t, tbl.SetAny(3, 4, 1000, simpletable.ModeAll), simpletable.ErrTypeMismatch)
	require.NoError(t, tbl.SetUniform(3, 4, simpletable.Float(1000.25), true, simpletable.ModeAll))
	require.NoError(t, tbl.SetAny(4, 2, true, simpletable.ModeAll))
	require.NoError(t, tbl.Close())

	// reopen: the header is not written again
	st, err = xlsx.Open(filepath.Join(dir, "test.xlsx"), "")
	require.NoError(t, err)
	defer st.Close()
	assert.Equal(t, "Test1", st.Sheet())
	rows, cols, err := st.Dimension()
	require.NoError(t, err)
	assert.Equal(t, 4, rows)
	assert.Equal(t, 4, cols)

	for _, tc := range []struct {
		row, col int
		want     simpletable.Value
	}{
		{1, 3, simpletable.Text("Third column")},
		{2, 1, simpletable.Text("TestText")},
		{3, 1, simpletable.Int(10)},
		{3, 3, simpletable.Text("TestText")},
		{3, 4, simpletable.Float(1000.25)},
		{4, 2, simpletable.Bool(true)},
		{4, 4, simpletable.Null()},
	} {
		got, err := st.Value(tc.row, tc.col)
		require.NoError(t, err)
		assert.True(t, tc.want.Equal(got), "%d/%d: want %v (%s), got %v (%s)",
			tc.row, tc.col, tc.want, tc.want.Kind(), got, got.Kind())
	}
}

func TestOpenRejectsXLS(t *testing.T) {
	_, err := xlsx.Open(filepath.Join(t.TempDir(), "old.XLS"), "")
	assert.ErrorIs(t, err, xlsx.ErrUnsupportedFormat)
}

func TestSelectSheet(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "sheets.xlsx")
	st, err := xlsx.Open(fn, "")
	require.NoError(t, err)
	assert.Equal(t, xlsx.DefaultSheetName, st.Sheet())
	require.NoError(t, st.Close())

	st, err = xlsx.Open(fn, "Other")
	require.NoError(t, err)
	assert.Equal(t, "Other", st.Sheet())
	assert.Equal(t, []string{xlsx.DefaultSheetName, "Other"}, st.Sheets())
	require.NoError(t, st.Close())

	st, err = xlsx.Open(fn, "")
	require.NoError(t, err)
	assert.Equal(t, xlsx.DefaultSheetName, st.Sheet(), "first sheet")
	require.NoError(t, st.Close())
}

func TestNewWritesOnClose(t *testing.T) {
	var buf bytes.Buffer
	st, err := xlsx.New(&buf, "Mem")
	require.NoError(t, err)
	tbl, err := simpletable.NewTable(st, testSchema)
	require.NoError(t, err)
	require.NoError(t, tbl.AppendRow(1, "b", "c", 2.5))
	assert.Equal(t, 0, buf.Len())
	require.NoError(t, tbl.Close())
	require.NotZero(t, buf.Len())

	xl, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer xl.Close()
	got, err := xl.GetCellValue("Mem", "A1")
	require.NoError(t, err)
	assert.Equal(t, "FIRST", got)
	got, err = xl.GetCellValue("Mem", "B2")
	require.NoError(t, err)
	assert.Equal(t, "b", got)

	styleID, err := xl.GetCellStyle("Mem", "A1")
	require.NoError(t, err)
	style, err := xl.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Italic)
	assert.Equal(t, 49, style.NumFmt)

	styleID, err = xl.GetCellStyle("Mem", "D2")
	require.NoError(t, err)
	style, err = xl.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.CustomNumFmt)
	assert.Equal(t, "#,##0.0000 thousand", *style.CustomNumFmt)
}

func TestNumberFormats(t *testing.T) {
	st, err := xlsx.New(nil, "")
	require.NoError(t, err)
	defer st.Close()
	require.NoError(t, st.SetValue(1, 1, simpletable.Float(1)))
	require.NoError(t, st.SetNumberFormat(1, 1, "0.000 \"kg\""))
	require.NoError(t, st.SetNumberFormat(1, 1, "0.00%"))

	var custom, builtIn int
	for _, nf := range st.NumberFormats() {
		if nf.BuiltIn {
			builtIn++
		} else {
			custom++
			assert.Equal(t, "0.000 \"kg\"", nf.Format)
		}
	}
	assert.Equal(t, len(simpletable.BuiltInNumberFormats), builtIn)
	assert.Equal(t, 1, custom)
}

func TestNumberFormatsOfReopenedWorkbook(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "formats.xlsx")
	st, err := xlsx.Open(fn, "")
	require.NoError(t, err)
	require.NoError(t, st.SetValue(1, 1, simpletable.Float(1)))
	require.NoError(t, st.SetNumberFormat(1, 1, `0.000 "kg"`))
	require.NoError(t, st.Close())

	st, err = xlsx.Open(fn, "")
	require.NoError(t, err)
	defer st.Close()
	require.NoError(t, st.SetValue(2, 1, simpletable.Float(2)))
	require.NoError(t, st.SetNumberFormat(2, 1, `0.0 "m"`))

	custom := make(map[int]string)
	for _, nf := range st.NumberFormats() {
		if !nf.BuiltIn {
			custom[nf.ID] = nf.Format
		}
	}
	assert.Equal(t, map[int]string{164: `0.000 "kg"`, 165: `0.0 "m"`}, custom)

	tbl, err := simpletable.NewTable(st, testSchema)
	require.NoError(t, err)
	format, ok := tbl.NumberFormat(164)
	require.True(t, ok)
	assert.Equal(t, `0.000 "kg"`, format)
	require.NoError(t, tbl.SetFormatID(3, 2, simpletable.Float(3), 164, simpletable.ModeAll))

	styleID, err := st.File().GetCellStyle(st.Sheet(), "B3")
	require.NoError(t, err)
	style, err := st.File().GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.CustomNumFmt)
	assert.Equal(t, `0.000 "kg"`, *style.CustomNumFmt)
}
