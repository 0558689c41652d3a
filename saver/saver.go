package saver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrUnknownFormat is returned by New for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown output format")

// Encoder writes a list of records in one output format.
type Encoder interface {
	Encode(w io.Writer, recs []Record) error
	Extension() string
	ContentType() string
}

var encoders = map[string]Encoder{
	"json":    JSONEncoder{},
	"csv":     CSVEncoder{},
	"parquet": ParquetEncoder{},
	"msgpack": MsgPackEncoder{},
}

// Formats lists the supported format names.
func Formats() []string {
	return []string{"json", "csv", "parquet", "msgpack"}
}

// New returns the encoder for format (json, csv, parquet, msgpack).
func New(format string) (Encoder, error) {
	enc, ok := encoders[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, fmt.Errorf("%w %q (use: %s)", ErrUnknownFormat, format, strings.Join(Formats(), ", "))
	}
	return enc, nil
}

// FileName returns base with the encoder's extension appended.
func FileName(base string, enc Encoder) string {
	return base + "." + enc.Extension()
}

// SaveFile encodes recs into path. A partially written file is removed.
func SaveFile(enc Encoder, path string, recs []Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	return enc.Encode(f, recs)
}
