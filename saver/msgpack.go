package saver

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// MsgPackEncoder writes records as a MessagePack array of maps.
type MsgPackEncoder struct{}

func (MsgPackEncoder) Extension() string   { return "msgpack" }
func (MsgPackEncoder) ContentType() string { return "application/msgpack" }

func (MsgPackEncoder) Encode(w io.Writer, recs []Record) error {
	if recs == nil {
		recs = []Record{}
	}
	return msgpack.NewEncoder(w).Encode(recs)
}
