package saver

import "github.com/rustyeddy/resample/market"

// Record is the serialized form of one output bar.
type Record struct {
	ID    int     `json:"id" parquet:"id" msgpack:"id"`
	Open  float64 `json:"open" parquet:"open" msgpack:"open"`
	High  float64 `json:"high" parquet:"high" msgpack:"high"`
	Low   float64 `json:"low" parquet:"low" msgpack:"low"`
	Close float64 `json:"close" parquet:"close" msgpack:"close"`
	Date  string  `json:"date" parquet:"date" msgpack:"date"`
}

// FromBars converts bars to records, preserving order.
func FromBars(bars market.Bars) []Record {
	recs := make([]Record, len(bars))
	for i, b := range bars {
		recs[i] = Record{
			ID:    b.Index,
			Open:  b.Open,
			High:  b.High,
			Low:   b.Low,
			Close: b.Close,
			Date:  b.Timestamp,
		}
	}
	return recs
}
