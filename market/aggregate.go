package market

// Span is the half-open input index range [Start, End) of one chunk.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bars covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// ValidateGroupSize rejects a non-positive grouping factor.
func ValidateGroupSize(groupSize int) error {
	if groupSize <= 0 {
		return &InvalidArgumentError{Name: "group size", Value: groupSize, Want: "positive"}
	}
	return nil
}

// Partition splits n positions into consecutive chunks of groupSize. The
// last chunk holds the remainder when n is not a multiple of groupSize.
func Partition(n, groupSize int) ([]Span, error) {
	if err := ValidateGroupSize(groupSize); err != nil {
		return nil, err
	}

	count := n / groupSize
	if n%groupSize != 0 {
		count++
	}
	spans := make([]Span, 0, count)
	for start := 0; start < n; start += groupSize {
		// start+groupSize may overflow for huge groups
		if groupSize >= n-start {
			spans = append(spans, Span{Start: start, End: n})
			break
		}
		spans = append(spans, Span{Start: start, End: start + groupSize})
	}
	return spans, nil
}

// Aggregate collapses every groupSize consecutive bars into one bar:
// first open, highest high, lowest low, last close, labelled with the
// timestamp of the first bar. Chunk boundaries depend on position only.
// Output Index is the chunk number.
func Aggregate(bars Bars, groupSize int) (Bars, error) {
	spans, err := Partition(len(bars), groupSize)
	if err != nil {
		return nil, err
	}

	out := make(Bars, len(spans))
	for i, s := range spans {
		out[i] = collapse(i, bars[s.Start:s.End])
	}
	return out, nil
}

// collapse folds a non-empty chunk into a single bar.
func collapse(idx int, chunk Bars) Bar {
	first := chunk[0]
	b := Bar{
		Index:     idx,
		Open:      first.Open,
		High:      first.High,
		Low:       first.Low,
		Close:     chunk[len(chunk)-1].Close,
		Timestamp: first.Timestamp,
	}
	for _, c := range chunk[1:] {
		if c.High > b.High {
			b.High = c.High
		}
		if c.Low < b.Low {
			b.Low = c.Low
		}
	}
	return b
}
