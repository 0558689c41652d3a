package saver

import (
	"io"

	"github.com/parquet-go/parquet-go"
)

// ParquetEncoder writes records as a Parquet file.
type ParquetEncoder struct{}

func (ParquetEncoder) Extension() string   { return "parquet" }
func (ParquetEncoder) ContentType() string { return "application/vnd.apache.parquet" }

func (ParquetEncoder) Encode(w io.Writer, recs []Record) error {
	return parquet.Write(w, recs)
}
