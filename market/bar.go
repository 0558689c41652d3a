package market

// Bar represents one OHLC (Open, High, Low, Close) price record.
//
// Timestamp is a label only. It is never parsed, compared or sorted; the
// position of a Bar in its Bars is the only ordering that matters.
type Bar struct {
	Index     int
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Timestamp string
}

// Bars is an ordered sequence of bars.
type Bars []Bar

// Len returns the number of bars in the sequence.
func (bs Bars) Len() int {
	return len(bs)
}

// Equal reports whether two sequences carry the same prices and timestamps
// in the same order. Index is ignored, so a renumbered sequence compares
// equal to its source.
func (bs Bars) Equal(other Bars) bool {
	if len(bs) != len(other) {
		return false
	}
	for i := range bs {
		a, b := bs[i], other[i]
		if a.Open != b.Open || a.High != b.High || a.Low != b.Low ||
			a.Close != b.Close || a.Timestamp != b.Timestamp {
			return false
		}
	}
	return true
}
