package ts

import "strconv"

// Align controls the reference point aggregation buckets are aligned to.
// The zero value means "no alignment".
type Align struct {
	token string
}

// AlignStart aligns buckets to the query's start bound.
func AlignStart() Align {
	return Align{token: "-"}
}

// AlignEnd aligns buckets to the query's end bound.
func AlignEnd() Align {
	return Align{token: "+"}
}

// AlignTimestamp aligns buckets to an explicit timestamp in milliseconds.
func AlignTimestamp(timestamp uint64) Align {
	return Align{token: strconv.FormatUint(timestamp, 10)}
}

// IsZero reports whether no alignment was chosen.
func (a Align) IsZero() bool {
	return a.token == ""
}

// String returns the wire token of the alignment.
func (a Align) String() string {
	return a.token
}

// BucketTimestamp selects which timestamp each aggregation bucket reports.
// The zero value means "server default".
type BucketTimestamp uint8

const (
	BucketTimestampLow  BucketTimestamp = iota + 1 // bucket start
	BucketTimestampHigh                            // bucket end
	BucketTimestampMid                             // bucket midpoint
)

// String returns the wire token of the bucket timestamp mode.
func (b BucketTimestamp) String() string {
	switch b {
	case BucketTimestampLow:
		return "-"
	case BucketTimestampHigh:
		return "+"
	case BucketTimestampMid:
		return "~"
	default:
		return "unknown"
	}
}
