// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package report renders the rejected cells of an import as HTML or PDF.
package report

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/UNO-SOFT/simpletable"
	"github.com/valyala/quicktemplate"
)

// Report is the summary of an import with its issues.
type Report struct {
	Created time.Time
	Source  string
	Sheet   string
	Unknown []string
	Issues  []Issue
	Records int
	Rows    int
	Cells   int
}

// Issue is a rejected cell.
type Issue struct {
	Column  string
	Value   string
	Code    string
	Message string
	Row     int
	Record  int
}

// FromImport builds a Report from the result of simpletable.Import.
func FromImport(source, sheet string, res simpletable.ImportResult) Report {
	r := Report{
		Created: time.Now(),
		Source:  source, Sheet: sheet,
		Unknown: res.Unknown,
		Records: res.Records, Rows: res.Rows, Cells: res.Cells,
		Issues: make([]Issue, 0, len(res.Errors)),
	}
	for _, e := range res.Errors {
		is := Issue{
			Row: e.Row, Record: e.Record, Column: e.Name,
			Value: e.Raw, Code: "parse", Message: e.Err.Error(),
		}
		var ve *simpletable.ValidationError
		if errors.As(e.Err, &ve) {
			is.Code = ve.Code()
		}
		r.Issues = append(r.Issues, is)
	}
	return r
}

// OK reports whether there are no issues.
func (r Report) OK() bool { return len(r.Issues) == 0 }

// Write renders the report as PDF if name ends with ".pdf", as HTML otherwise.
func Write(w io.Writer, name string, r Report) error {
	if strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return WritePDF(w, r, false)
	}
	bb := quicktemplate.AcquireByteBuffer()
	defer quicktemplate.ReleaseByteBuffer(bb)
	WriteHTML(bb, r)
	_, err := w.Write(bb.B)
	return err
}
