// Copyright 2021, 2026 Tamás Gulácsi. All rights reserved.

package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// AlternateColor is the background of every second issue row.
var AlternateColor = props.Color{Red: 230, Green: 230, Blue: 230}

// FontSize is the size of the issue rows; the title is 1.375 times bigger.
var FontSize = 8.0

// grid sizes of the issue table (12 in total)
var issueGrid = [...]int{1, 1, 2, 2, 2, 4}

// WritePDF renders the report as PDF.
func WritePDF(w io.Writer, r Report, landscape bool) error {
	b := config.NewBuilder()
	if landscape {
		b = b.WithOrientation(orientation.Horizontal)
	} else {
		b = b.WithOrientation(orientation.Vertical)
	}
	m := maroto.New(b.Build())

	title := props.Text{Family: fontfamily.Arial, Style: fontstyle.Bold, Size: FontSize * 1.375}
	normal := props.Text{Family: fontfamily.Courier, Style: fontstyle.Normal, Size: FontSize}
	height := FontSize * 0.8

	m.AddRows(
		row.New(FontSize*1.2).Add(text.NewCol(12, r.Source, title)),
		row.New(height).Add(text.NewCol(12, fmt.Sprintf("Sheet: %s, created: %s", r.Sheet, r.Created.Format(time.RFC3339)), normal)),
		row.New(height).Add(text.NewCol(12, fmt.Sprintf("Records: %d, rows: %d, cells: %d, issues: %d",
			r.Records, r.Rows, r.Cells, len(r.Issues)), normal)),
	)
	if len(r.Unknown) != 0 {
		m.AddRows(row.New(height).Add(text.NewCol(12, fmt.Sprintf("Unknown columns: %q", r.Unknown), normal)))
	}
	if r.OK() {
		m.AddRows(row.New(FontSize * 1.2).Add(text.NewCol(12, "OK", title)))
	} else {
		header := props.Text{Family: fontfamily.Arial, Style: fontstyle.Bold, Size: FontSize, Align: align.Center}
		m.AddRows(issueRow(FontSize*1.2, header, "Row", "Record", "Column", "Value", "Code", "Message"))
		for i, is := range r.Issues {
			rw := issueRow(height*2, normal,
				strconv.Itoa(is.Row), strconv.Itoa(is.Record), is.Column, is.Value, is.Code, is.Message)
			if i%2 == 1 {
				rw = rw.WithStyle(&props.Cell{BackgroundColor: &AlternateColor})
			}
			m.AddRows(rw)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return err
	}
	_, err = w.Write(doc.GetBytes())
	return err
}

func issueRow(height float64, p props.Text, cells ...string) core.Row {
	cols := make([]core.Col, len(cells))
	for i, s := range cells {
		cols[i] = text.NewCol(issueGrid[i], s, p)
	}
	return row.New(height).Add(cols...)
}
