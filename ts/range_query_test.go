package ts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRangeQuery_AppendArgs_DefaultBounds(t *testing.T) {
	require.Equal(t, []string{"-", "+"}, tokensOf(RangeQuery{}))
}

func TestRangeQuery_AppendArgs_ExplicitBounds(t *testing.T) {
	q := RangeQuery{}.From(1500).To(2500)
	require.Equal(t, []string{"1500", "2500"}, tokensOf(q))
}

func TestRangeQuery_AppendArgs_SuppressesAggregationSubClauses(t *testing.T) {
	// ALIGN, BUCKETTIMESTAMP and EMPTY are only valid alongside an
	// aggregation; without one they must vanish from the encoding.
	q := RangeQuery{}.
		Align(AlignStart()).
		BucketTimestamp(BucketTimestampHigh).
		Empty(true)

	require.Equal(t, []string{"-", "+"}, tokensOf(q))
}

func TestRangeQuery_AppendArgs_FullInterleaving(t *testing.T) {
	q := RangeQuery{}.
		From(1500).
		To(2500).
		Latest(true).
		FilterByTimestamps(10, 20).
		FilterByValue(1.0, 5.5).
		Count(10).
		Align(AlignStart()).
		Aggregation(Avg(5000)).
		BucketTimestamp(BucketTimestampHigh).
		Empty(true)

	want := []string{
		"1500", "2500",
		"LATEST",
		"FILTER_BY_TS", "10", "20",
		"FILTER_BY_VALUE", "1", "5.5",
		"COUNT", "10",
		"ALIGN", "-",
		"AGGREGATION", "avg", "5000",
		"BUCKETTIMESTAMP", "+",
		"EMPTY",
	}
	require.Equal(t, want, tokensOf(q))
}

func TestRangeQuery_AppendArgs_CallOrderIndependent(t *testing.T) {
	before := RangeQuery{}.
		Empty(true).
		BucketTimestamp(BucketTimestampMid).
		Align(AlignEnd()).
		Aggregation(Sum(1000))

	after := RangeQuery{}.
		Aggregation(Sum(1000)).
		Align(AlignEnd()).
		BucketTimestamp(BucketTimestampMid).
		Empty(true)

	require.Equal(t, tokensOf(after), tokensOf(before))
	require.Equal(t, []string{"-", "+", "ALIGN", "+", "AGGREGATION", "sum", "1000", "BUCKETTIMESTAMP", "~", "EMPTY"}, tokensOf(before))
}

func TestRangeQuery_AppendArgs_AlignTimestamp(t *testing.T) {
	q := RangeQuery{}.
		Align(AlignTimestamp(1234)).
		Aggregation(Count(100))

	require.Equal(t, []string{"-", "+", "ALIGN", "1234", "AGGREGATION", "count", "100"}, tokensOf(q))
}

func TestRangeQuery_AppendArgs_NegativeBound(t *testing.T) {
	q := RangeQuery{}.From(-1).To(0)
	require.Equal(t, []string{"-1", "0"}, tokensOf(q))
}

func TestRangeQuery_FilterByTimestamps_Replaces(t *testing.T) {
	q := RangeQuery{}.FilterByTimestamps(1, 2).FilterByTimestamps(3)
	require.Equal(t, []string{"-", "+", "FILTER_BY_TS", "3"}, tokensOf(q))

	q = q.FilterByTimestamps()
	require.Equal(t, []string{"-", "+"}, tokensOf(q))
}

func TestRangeQuery_FilterByTimestamps_CopiesInput(t *testing.T) {
	timestamps := []int64{10, 20}
	q := RangeQuery{}.FilterByTimestamps(timestamps...)

	timestamps[0] = 99

	require.Equal(t, []string{"-", "+", "FILTER_BY_TS", "10", "20"}, tokensOf(q))
}

func TestRangeQuery_TemplateReuse(t *testing.T) {
	base := RangeQuery{}.From(0).To(1000)

	avg := base.Aggregation(Avg(100))
	max := base.Aggregation(Max(100))

	require.Equal(t, []string{"0", "1000"}, tokensOf(base))
	require.Equal(t, []string{"0", "1000", "AGGREGATION", "avg", "100"}, tokensOf(avg))
	require.Equal(t, []string{"0", "1000", "AGGREGATION", "max", "100"}, tokensOf(max))
}
