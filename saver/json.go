package saver

import (
	"encoding/json"
	"io"
)

// JSONEncoder writes an indented JSON array of records.
type JSONEncoder struct{}

func (JSONEncoder) Extension() string   { return "json" }
func (JSONEncoder) ContentType() string { return "application/json" }

func (JSONEncoder) Encode(w io.Writer, recs []Record) error {
	if recs == nil {
		recs = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(recs)
}
