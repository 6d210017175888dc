package ts

import (
	"github.com/tompro/redis-ts/args"
)

// RangeQuery configures the read side of TS.RANGE, TS.REVRANGE, TS.MRANGE
// and TS.MREVRANGE.
//
// RangeQuery is a value builder like Options. Unset bounds encode the "-"
// and "+" sentinels covering the whole series.
type RangeQuery struct {
	from           int64
	hasFrom        bool
	to             int64
	hasTo          bool
	latest         bool
	filterTS       []int64
	minValue       float64
	maxValue       float64
	hasValueFilter bool
	count          uint64
	hasCount       bool
	align          Align
	agg            Aggregation
	bucketTS       BucketTimestamp
	empty          bool
}

var _ args.Appender = RangeQuery{}

// From sets the inclusive start timestamp in milliseconds.
func (q RangeQuery) From(timestamp int64) RangeQuery {
	q.from = timestamp
	q.hasFrom = true

	return q
}

// To sets the inclusive end timestamp in milliseconds.
func (q RangeQuery) To(timestamp int64) RangeQuery {
	q.to = timestamp
	q.hasTo = true

	return q
}

// Latest reports the most recent still-open compaction bucket in addition
// to closed ones.
func (q RangeQuery) Latest(latest bool) RangeQuery {
	q.latest = latest

	return q
}

// FilterByTimestamps restricts the result to samples at exactly the given
// timestamps, replacing any previously set list.
func (q RangeQuery) FilterByTimestamps(timestamps ...int64) RangeQuery {
	if len(timestamps) == 0 {
		q.filterTS = nil

		return q
	}

	cp := make([]int64, len(timestamps))
	copy(cp, timestamps)
	q.filterTS = cp

	return q
}

// FilterByValue restricts the result to samples whose value lies in
// [min, max].
func (q RangeQuery) FilterByValue(min, max float64) RangeQuery {
	q.minValue = min
	q.maxValue = max
	q.hasValueFilter = true

	return q
}

// Count caps the number of returned samples.
func (q RangeQuery) Count(count uint64) RangeQuery {
	q.count = count
	q.hasCount = true

	return q
}

// Align sets the bucket alignment reference. Only encoded when an
// aggregation is present.
func (q RangeQuery) Align(align Align) RangeQuery {
	q.align = align

	return q
}

// Aggregation groups samples into fixed-duration buckets reduced by the
// given aggregation function.
func (q RangeQuery) Aggregation(agg Aggregation) RangeQuery {
	q.agg = agg

	return q
}

// BucketTimestamp selects the timestamp reported per aggregation bucket.
// Only encoded when an aggregation is present.
func (q RangeQuery) BucketTimestamp(bucketTS BucketTimestamp) RangeQuery {
	q.bucketTS = bucketTS

	return q
}

// Empty also reports empty aggregation buckets. Only encoded when an
// aggregation is present.
func (q RangeQuery) Empty(empty bool) RangeQuery {
	q.empty = empty

	return q
}

// AppendArgs appends the query clauses in the fixed order the server's
// parser requires: bounds, LATEST, FILTER_BY_TS, FILTER_BY_VALUE, COUNT,
// then ALIGN ahead of the AGGREGATION clause with BUCKETTIMESTAMP and EMPTY
// after it.
//
// ALIGN, BUCKETTIMESTAMP and EMPTY may be set in any order on the builder,
// but the server rejects them without an aggregation, so they are dropped
// here when none is present.
func (q RangeQuery) AppendArgs(dst *args.Args) {
	if q.hasFrom {
		dst.AddInt(q.from)
	} else {
		dst.Add("-")
	}

	if q.hasTo {
		dst.AddInt(q.to)
	} else {
		dst.Add("+")
	}

	if q.latest {
		dst.Add("LATEST")
	}

	if len(q.filterTS) > 0 {
		dst.Add("FILTER_BY_TS")
		for _, timestamp := range q.filterTS {
			dst.AddInt(timestamp)
		}
	}

	if q.hasValueFilter {
		dst.Add("FILTER_BY_VALUE")
		dst.AddFloat(q.minValue)
		dst.AddFloat(q.maxValue)
	}

	if q.hasCount {
		dst.Add("COUNT")
		dst.AddUint(q.count)
	}

	if q.agg.Kind == 0 {
		return
	}

	if !q.align.IsZero() {
		dst.Add("ALIGN", q.align.String())
	}

	q.agg.AppendArgs(dst)

	if q.bucketTS != 0 {
		dst.Add("BUCKETTIMESTAMP", q.bucketTS.String())
	}

	if q.empty {
		dst.Add("EMPTY")
	}
}
