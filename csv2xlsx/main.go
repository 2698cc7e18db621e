// Copyright 2021, 2026 Tamas Gulacsi. All rights reserved.

// Command csv2xlsx imports CSV files into typed, validated xlsx sheets.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/UNO-SOFT/simpletable"
	"github.com/UNO-SOFT/simpletable/report"
	"github.com/UNO-SOFT/simpletable/xlsx"
	"github.com/UNO-SOFT/zlog/v2"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
)

var verbose zlog.VerboseVar
var logger = zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

// errIssues is returned when the input has rejected cells.
var errIssues = errors.New("there are issues")

func main() {
	if err := Main(); err != nil {
		logger.Error("MAIN", "error", err)
		if errors.Is(err, errIssues) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func Main() error {
	ffOpts := []ff.Option{
		ff.WithEnvVarPrefix("SIMPLETABLE"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
		ff.WithAllowMissingConfigFile(true),
	}

	type importFlags struct {
		schema, sheet, charset, report string
		mode                           simpletable.Mode
		maxErrors                      int
		uniform, noHeader              bool
	}
	addImportFlags := func(fs *flag.FlagSet, f *importFlags) {
		fs.StringVar(&f.schema, "schema", "", "YAML schema file (required)")
		fs.StringVar(&f.sheet, "sheet", "", "sheet name (default: CSV file name)")
		fs.StringVar(&f.charset, "charset", simpletable.EncName, "csv charset name")
		fs.StringVar(&f.report, "report", "", "write a report (.html or .pdf) of the rejected cells")
		fs.Var(&f.mode, "mode", "checks: none, type, interval, all (type|interval)")
		fs.IntVar(&f.maxErrors, "max-errors", 0, "stop after this many rejected cells (0: no limit)")
		fs.BoolVar(&f.uniform, "uniform", true, "apply the column's (or value's default) number format")
		fs.BoolVar(&f.noHeader, "no-header", false, "the first record is data, columns map by position")
	}

	var impF importFlags
	fsImport := newFlagSet("import")
	addImportFlags(fsImport, &impF)
	importCmd := ffcli.Command{Name: "import", FlagSet: fsImport, Options: ffOpts,
		ShortUsage: "import [flags] out.xlsx [sheet:]in.csv...",
		ShortHelp:  "import CSV files into sheets of an xlsx workbook",
		Exec: func(ctx context.Context, args []string) error {
			if len(args) < 2 {
				return flag.ErrHelp
			}
			schema, err := loadSchema(impF.schema)
			if err != nil {
				return err
			}
			var issues int
			for _, fn := range args[1:] {
				sheetName := impF.sheet
				if i := strings.IndexByte(fn, ':'); i >= 0 {
					sheetName, fn = fn[:i], fn[i+1:]
				} else if sheetName == "" && fn != "" && fn != "-" {
					sheetName = csvBase(fn)
				}
				st, err := xlsx.Open(args[0], sheetName)
				if err != nil {
					return err
				}
				res, err := importFile(ctx, st, schema, fn, impF.charset, impF.mode, simpletable.ImportOptions{
					Mode: impF.mode, MaxErrors: impF.maxErrors, Uniform: impF.uniform, NoHeader: impF.noHeader,
				})
				if closeErr := st.Close(); closeErr != nil && err == nil {
					err = closeErr
				}
				if err != nil {
					return fmt.Errorf("%q: %w", fn, err)
				}
				issues += len(res.Errors)
				if err = writeReport(reportName(impF.report, fn, len(args) > 2), fn, st.Sheet(), res); err != nil {
					return err
				}
			}
			if issues != 0 {
				return fmt.Errorf("%d: %w", issues, errIssues)
			}
			return nil
		},
	}

	var chkF importFlags
	fsCheck := newFlagSet("check")
	addImportFlags(fsCheck, &chkF)
	checkCmd := ffcli.Command{Name: "check", FlagSet: fsCheck, Options: ffOpts,
		ShortUsage: "check [flags] in.csv...",
		ShortHelp:  "validate CSV files against the schema, without writing anything",
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return flag.ErrHelp
			}
			schema, err := loadSchema(chkF.schema)
			if err != nil {
				return err
			}
			var issues int
			for _, fn := range args {
				st, err := xlsx.New(nil, chkF.sheet)
				if err != nil {
					return err
				}
				res, err := importFile(ctx, st, schema, fn, chkF.charset, chkF.mode, simpletable.ImportOptions{
					Mode: chkF.mode, MaxErrors: chkF.maxErrors, NoHeader: chkF.noHeader,
				})
				st.Close()
				if err != nil {
					return fmt.Errorf("%q: %w", fn, err)
				}
				for _, e := range res.Errors {
					fmt.Fprintf(os.Stdout, "%s:%d: %v\n", fn, e.Record, e.Err)
				}
				issues += len(res.Errors)
				if err = writeReport(reportName(chkF.report, fn, len(args) > 1), fn, st.Sheet(), res); err != nil {
					return err
				}
			}
			if issues != 0 {
				return fmt.Errorf("%d: %w", issues, errIssues)
			}
			return nil
		},
	}

	fsFormats := newFlagSet("formats")
	flagFormatsSheet := fsFormats.String("sheet", "", "sheet name")
	formatsCmd := ffcli.Command{Name: "formats", FlagSet: fsFormats, Options: ffOpts,
		ShortUsage: "formats file.xlsx",
		ShortHelp:  "list the number format catalog of the workbook",
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return flag.ErrHelp
			}
			st, err := openExisting(args[0], *flagFormatsSheet)
			if err != nil {
				return err
			}
			defer st.Close()
			for _, nf := range st.NumberFormats() {
				fmt.Fprintf(os.Stdout, "%3d\t%t\t%s\n", nf.ID, nf.BuiltIn, nf.Format)
			}
			return nil
		},
	}

	fsInfo := newFlagSet("info")
	flagInfoSheet := fsInfo.String("sheet", "", "sheet name")
	infoCmd := ffcli.Command{Name: "info", FlagSet: fsInfo, Options: ffOpts,
		ShortUsage: "info [-sheet name] file.xlsx",
		ShortHelp:  "print the row and column count of a sheet",
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return flag.ErrHelp
			}
			st, err := openExisting(args[0], *flagInfoSheet)
			if err != nil {
				return err
			}
			defer st.Close()
			rows, cols, err := st.Dimension()
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "%s\t%s\trows=%d\tcolumns=%d\n", st.Path(), st.Sheet(), rows, cols)
			return nil
		},
	}

	fs := newFlagSet("csv2xlsx")
	fs.Var(&verbose, "v", "logging verbosity")
	app := ffcli.Command{Name: "csv2xlsx", FlagSet: fs, Options: ffOpts,
		ShortUsage:  "csv2xlsx [-v] <subcommand>",
		Subcommands: []*ffcli.Command{&importCmd, &checkCmd, &formatsCmd, &infoCmd},
		Exec: func(ctx context.Context, args []string) error {
			return flag.ErrHelp
		},
	}

	if err := app.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()
	err := app.Run(ctx)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(os.Stderr, ffcli.DefaultUsageFunc(&app))
		return nil
	}
	return err
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.String("config", "", "config file (flag=value lines)")
	return fs
}

func openExisting(fn, sheet string) (*xlsx.Store, error) {
	if _, err := os.Stat(fn); err != nil {
		return nil, err
	}
	return xlsx.Open(fn, sheet)
}

func loadSchema(fn string) (*simpletable.Schema, error) {
	if fn == "" {
		return nil, fmt.Errorf("-schema is required: %w", flag.ErrHelp)
	}
	return simpletable.LoadSchemaFile(fn)
}

func csvBase(fn string) string {
	base := filepath.Base(fn)
	for _, ext := range []string{".gz", ".zst", ".csv"} {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

func importFile(ctx context.Context, st simpletable.Store, schema *simpletable.Schema, fn, charset string, mode simpletable.Mode, opts simpletable.ImportOptions) (simpletable.ImportResult, error) {
	cr, err := simpletable.OpenCsv(fn, charset)
	if err != nil {
		return simpletable.ImportResult{}, err
	}
	defer cr.Close()
	t, err := simpletable.NewTable(st, schema,
		simpletable.WithLogger(logger), simpletable.WithTableDefaultMode(mode))
	if err != nil {
		return simpletable.ImportResult{}, err
	}
	res, err := simpletable.Import(ctx, t, cr, opts)
	logger.Info("import", "file", fn, "records", res.Records, "rows", res.Rows, "cells", res.Cells, "issues", len(res.Errors))
	return res, err
}

// reportName inserts the CSV file's base name before the extension
// of dest when there are multiple inputs.
func reportName(dest, fn string, multi bool) string {
	if !multi || dest == "" || dest == "-" {
		return dest
	}
	ext := filepath.Ext(dest)
	return strings.TrimSuffix(dest, ext) + "-" + csvBase(fn) + ext
}

func writeReport(dest, source, sheet string, res simpletable.ImportResult) error {
	if dest == "" {
		return nil
	}
	r := report.FromImport(source, sheet, res)
	if dest == "-" {
		return report.Write(os.Stdout, dest, r)
	}
	fh, err := os.Create(dest)
	if err != nil {
		return err
	}
	if err = report.Write(fh, dest, r); err != nil {
		fh.Close()
		return fmt.Errorf("%s: %w", dest, err)
	}
	return fh.Close()
}
