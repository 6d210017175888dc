package ts

import (
	"github.com/tompro/redis-ts/args"
)

// AggregationKind identifies a server-side aggregation function.
type AggregationKind uint8

const (
	AggregationAvg AggregationKind = iota + 1
	AggregationSum
	AggregationMin
	AggregationMax
	AggregationRange
	AggregationCount
	AggregationFirst
	AggregationLast
	AggregationStdP
	AggregationStdS
	AggregationVarP
	AggregationVarS
	AggregationTwa
)

// String returns the wire name of the aggregation kind.
func (k AggregationKind) String() string {
	switch k {
	case AggregationAvg:
		return "avg"
	case AggregationSum:
		return "sum"
	case AggregationMin:
		return "min"
	case AggregationMax:
		return "max"
	case AggregationRange:
		return "range"
	case AggregationCount:
		return "count"
	case AggregationFirst:
		return "first"
	case AggregationLast:
		return "last"
	case AggregationStdP:
		return "std.p"
	case AggregationStdS:
		return "std.s"
	case AggregationVarP:
		return "var.p"
	case AggregationVarS:
		return "var.s"
	case AggregationTwa:
		return "twa"
	default:
		return "unknown"
	}
}

// Aggregation pairs an aggregation kind with its time bucket duration in
// milliseconds. The zero value means "no aggregation".
type Aggregation struct {
	Kind   AggregationKind
	Bucket uint64
}

var _ args.Appender = Aggregation{}

// AppendArgs appends the AGGREGATION clause.
func (a Aggregation) AppendArgs(dst *args.Args) {
	dst.Add("AGGREGATION", a.Kind.String())
	dst.AddUint(a.Bucket)
}

// Avg aggregates by arithmetic mean over buckets of the given duration.
func Avg(bucket uint64) Aggregation {
	return Aggregation{Kind: AggregationAvg, Bucket: bucket}
}

// Sum aggregates by sum.
func Sum(bucket uint64) Aggregation {
	return Aggregation{Kind: AggregationSum, Bucket: bucket}
}

// Min aggregates by minimum value.
func Min(bucket uint64) Aggregation {
	return Aggregation{Kind: AggregationMin, Bucket: bucket}
}

// Max aggregates by maximum value.
func Max(bucket uint64) Aggregation {
	return Aggregation{Kind: AggregationMax, Bucket: bucket}
}

// Range aggregates by the difference between the maximum and minimum value.
func Range(bucket uint64) Aggregation {
	return Aggregation{Kind: AggregationRange, Bucket: bucket}
}

// Count aggregates by sample count.
func Count(bucket uint64) Aggregation {
	return Aggregation{Kind: AggregationCount, Bucket: bucket}
}

// First aggregates by the earliest sample in each bucket.
func First(bucket uint64) Aggregation {
	return Aggregation{Kind: AggregationFirst, Bucket: bucket}
}

// Last aggregates by the latest sample in each bucket.
func Last(bucket uint64) Aggregation {
	return Aggregation{Kind: AggregationLast, Bucket: bucket}
}

// StdP aggregates by population standard deviation.
func StdP(bucket uint64) Aggregation {
	return Aggregation{Kind: AggregationStdP, Bucket: bucket}
}

// StdS aggregates by sample standard deviation.
func StdS(bucket uint64) Aggregation {
	return Aggregation{Kind: AggregationStdS, Bucket: bucket}
}

// VarP aggregates by population variance.
func VarP(bucket uint64) Aggregation {
	return Aggregation{Kind: AggregationVarP, Bucket: bucket}
}

// VarS aggregates by sample variance.
func VarS(bucket uint64) Aggregation {
	return Aggregation{Kind: AggregationVarS, Bucket: bucket}
}

// Twa aggregates by time-weighted average.
func Twa(bucket uint64) Aggregation {
	return Aggregation{Kind: AggregationTwa, Bucket: bucket}
}
