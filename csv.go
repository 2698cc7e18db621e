package simpletable

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

var EncName = "utf-8"

func init() {
	EncName = os.Getenv("LANG")
	if i := strings.IndexByte(EncName, '.'); i >= 0 {
		EncName = strings.ToLower(EncName[i+1:])
	}
	if EncName == "" || EncName == "c" || EncName == "posix" {
		EncName = "utf-8"
	}
}

func GetEncoding(encName string) (encoding.Encoding, error) {
	encName = strings.ToLower(encName)
	if encName == "" || encName == "utf-8" || encName == "utf8" {
		return nil, nil
	}
	enc, err := htmlindex.Get(encName)
	if err != nil {
		err = fmt.Errorf("%q: %w", encName, err)
	}
	return enc, err
}

// RecordReader reads CSV records.
type RecordReader interface {
	Read() ([]string, error)
}

type csvReadCloser struct {
	*csv.Reader
	io.Closer
}

type multiCloser []io.Closer

func (mc multiCloser) Close() error {
	var errs []error
	for i := len(mc) - 1; i >= 0; i-- {
		if err := mc[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenCsv opens the named file ("" or "-" is stdin) as CSV,
// decompressing ".gz" and ".zst" files, decoding from encName
// and sniffing the field separator.
func OpenCsv(fn, encName string) (csvReadCloser, error) {
	var enc encoding.Encoding
	if encName != "" {
		var err error
		if enc, err = GetEncoding(encName); err != nil {
			return csvReadCloser{}, err
		}
	}
	fh := os.Stdin
	if !(fn == "" || fn == "-") {
		var err error
		if fh, err = os.Open(fn); err != nil {
			return csvReadCloser{}, err
		}
	}
	closers := multiCloser{fh}
	r := io.Reader(fh)
	switch {
	case strings.HasSuffix(fn, ".gz"):
		zr, err := gzip.NewReader(r)
		if err != nil {
			fh.Close()
			return csvReadCloser{}, fmt.Errorf("%q: %w", fn, err)
		}
		r = zr
		closers = append(closers, zr)
	case strings.HasSuffix(fn, ".zst"):
		zr, err := zstd.NewReader(r)
		if err != nil {
			fh.Close()
			return csvReadCloser{}, fmt.Errorf("%q: %w", fn, err)
		}
		r = zr
		closers = append(closers, zr.IOReadCloser())
	}
	if enc != nil {
		r = enc.NewDecoder().Reader(r)
	}
	cr, err := NewCsvReader(r)
	if err != nil {
		closers.Close()
		return csvReadCloser{}, err
	}
	return csvReadCloser{cr, closers}, nil
}

// NewCsvReader returns a csv.Reader with the separator
// guessed from the first non-letter, non-digit character.
func NewCsvReader(r io.Reader) (*csv.Reader, error) {
	br := bufio.NewReaderSize(r, 1<<20)
	b, err := br.Peek(1024)
	if err != nil && len(b) == 0 {
		return nil, err
	}
	sep := rune(',')
	for _, r := range string(b) {
		if r == '\n' || r == '\r' {
			break
		}
		if r == '"' || r == '_' || r == ' ' || unicode.IsLetter(r) || unicode.IsNumber(r) {
			continue
		}
		sep = r
		break
	}

	cr := csv.NewReader(br)
	cr.ReuseRecord = true
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	return cr, nil
}
