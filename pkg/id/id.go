package id

import (
	"github.com/oklog/ulid/v2"
)

// New returns a ULID string identifying one conversion run.
//
// ULIDs sort by creation time, so run IDs in logs and response headers line
// up with the order requests arrived. ulid.Make is safe for concurrent use
// and monotonic within a millisecond.
func New() string {
	return ulid.Make().String()
}

// Valid reports whether s parses as a ULID.
func Valid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
