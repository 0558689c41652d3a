package saver

import (
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{"id", "open", "high", "low", "close", "date"}

// CSVEncoder writes a header row followed by one row per record.
type CSVEncoder struct{}

func (CSVEncoder) Extension() string   { return "csv" }
func (CSVEncoder) ContentType() string { return "text/csv" }

func (CSVEncoder) Encode(w io.Writer, recs []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range recs {
		err := cw.Write([]string{
			strconv.Itoa(r.ID),
			f(r.Open),
			f(r.High),
			f(r.Low),
			f(r.Close),
			r.Date,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// f formats with the fewest digits that round trip.
func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
