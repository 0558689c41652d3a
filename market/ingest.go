package market

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// maxMagnitude bounds the decimal exponent converted exactly. Above it a
// price cannot be a finite float64; below its negative it underflows to zero.
const maxMagnitude = 400

var (
	errMissingValue = errors.New("missing value")
	errNotFinite    = errors.New("not a finite number")
)

// Columns names the header cells that carry each bar field.
type Columns struct {
	Date  string `json:"date" yaml:"date"`
	Time  string `json:"time" yaml:"time"`
	Open  string `json:"open" yaml:"open"`
	High  string `json:"high" yaml:"high"`
	Low   string `json:"low" yaml:"low"`
	Close string `json:"close" yaml:"close"`
}

// DefaultColumns returns the DATE, TIME, OPEN, HIGH, LOW, CLOSE layout.
func DefaultColumns() Columns {
	return Columns{
		Date:  "DATE",
		Time:  "TIME",
		Open:  "OPEN",
		High:  "HIGH",
		Low:   "LOW",
		Close: "CLOSE",
	}
}

// Names returns the required column names in header order of the default
// layout.
func (c Columns) Names() []string {
	return []string{c.Date, c.Time, c.Open, c.High, c.Low, c.Close}
}

// IngestOptions tunes Ingest.
type IngestOptions struct {
	// CollectErrors keeps reading after a bad row and returns every row
	// error joined together. No bars are returned either way.
	CollectErrors bool
}

// layout holds the header position of each required column.
type layout struct {
	cols                               Columns
	date, time, open, high, low, close int
}

// Ingest reads a header-delimited CSV table and returns one Bar per data
// row, in file order. Header names are compared after trimming surrounding
// whitespace. Missing columns fail with *SchemaError before any row is
// read; a row whose prices are not finite numbers fails with *ParseError
// and no bars are returned.
func Ingest(r io.Reader, cols Columns, opts IngestOptions) (Bars, error) {
	// Spreadsheet exports are frequently UTF-16 with a BOM.
	src := transform.NewReader(r, unicode.BOMOverride(transform.Nop))

	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &SchemaError{Missing: cols.Names()}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	lay, err := locate(cols, header)
	if err != nil {
		return nil, err
	}

	bars := Bars{}
	var rowErrs []error
	for row := 0; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}

		bar, err := lay.bar(row, rec)
		if err != nil {
			if !opts.CollectErrors {
				return nil, err
			}
			rowErrs = append(rowErrs, err)
			continue
		}
		if len(rowErrs) == 0 {
			bars = append(bars, bar)
		}
	}

	if len(rowErrs) > 0 {
		return nil, errors.Join(rowErrs...)
	}
	return bars, nil
}

// TrimHeader returns the header names with surrounding whitespace removed.
func TrimHeader(header []string) []string {
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(h)
	}
	return names
}

func locate(cols Columns, header []string) (*layout, error) {
	names := TrimHeader(header)

	// last occurrence wins, like a dict built from the header
	pos := make(map[string]int, len(names))
	for i, n := range names {
		pos[n] = i
	}

	var missing []string
	find := func(name string) int {
		i, ok := pos[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}

	lay := &layout{
		cols:  cols,
		date:  find(cols.Date),
		time:  find(cols.Time),
		open:  find(cols.Open),
		high:  find(cols.High),
		low:   find(cols.Low),
		close: find(cols.Close),
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing, Header: names}
	}
	return lay, nil
}

func (l *layout) bar(row int, rec []string) (Bar, error) {
	b := Bar{Index: row}

	date, err := field(row, rec, l.date, l.cols.Date)
	if err != nil {
		return Bar{}, err
	}
	tm, err := field(row, rec, l.time, l.cols.Time)
	if err != nil {
		return Bar{}, err
	}
	b.Timestamp = date + " " + tm

	prices := []struct {
		idx  int
		name string
		dst  *float64
	}{
		{l.open, l.cols.Open, &b.Open},
		{l.high, l.cols.High, &b.High},
		{l.low, l.cols.Low, &b.Low},
		{l.close, l.cols.Close, &b.Close},
	}
	for _, p := range prices {
		raw, err := field(row, rec, p.idx, p.name)
		if err != nil {
			return Bar{}, err
		}
		v, err := ParsePrice(raw)
		if err != nil {
			return Bar{}, &ParseError{Row: row, Field: p.name, Value: raw, Err: err}
		}
		*p.dst = v
	}
	return b, nil
}

func field(row int, rec []string, idx int, name string) (string, error) {
	if idx >= len(rec) {
		return "", &ParseError{Row: row, Field: name, Err: errMissingValue}
	}
	return rec[idx], nil
}

// ParsePrice parses a decimal string, ignoring surrounding whitespace, into
// the nearest float64. NaN, infinities and values too large for a float64
// are rejected; values too small for one round to zero.
func ParsePrice(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if d.IsZero() {
		return 0, nil
	}
	mag := int64(d.NumDigits()) + int64(d.Exponent())
	if mag > maxMagnitude {
		return 0, errNotFinite
	}
	if mag < -maxMagnitude {
		return 0, nil
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, errNotFinite
	}
	return f, nil
}
