package ts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregationKind_String_WireNames(t *testing.T) {
	tests := []struct {
		kind AggregationKind
		want string
	}{
		{kind: AggregationAvg, want: "avg"},
		{kind: AggregationSum, want: "sum"},
		{kind: AggregationMin, want: "min"},
		{kind: AggregationMax, want: "max"},
		{kind: AggregationRange, want: "range"},
		{kind: AggregationCount, want: "count"},
		{kind: AggregationFirst, want: "first"},
		{kind: AggregationLast, want: "last"},
		{kind: AggregationStdP, want: "std.p"},
		{kind: AggregationStdS, want: "std.s"},
		{kind: AggregationVarP, want: "var.p"},
		{kind: AggregationVarS, want: "var.s"},
		{kind: AggregationTwa, want: "twa"},
		{kind: AggregationKind(0), want: "unknown"},
		{kind: AggregationKind(0xFF), want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestAggregation_Helpers(t *testing.T) {
	require.Equal(t, Aggregation{Kind: AggregationAvg, Bucket: 5000}, Avg(5000))
	require.Equal(t, Aggregation{Kind: AggregationRange, Bucket: 10}, Range(10))
	require.Equal(t, Aggregation{Kind: AggregationStdP, Bucket: 60000}, StdP(60000))
	require.Equal(t, Aggregation{Kind: AggregationTwa, Bucket: 1}, Twa(1))
}

func TestAggregation_AppendArgs(t *testing.T) {
	require.Equal(t, []string{"AGGREGATION", "avg", "5000"}, tokensOf(Avg(5000)))
	require.Equal(t, []string{"AGGREGATION", "var.s", "250"}, tokensOf(VarS(250)))
}

func TestAlign_Tokens(t *testing.T) {
	require.Equal(t, "-", AlignStart().String())
	require.Equal(t, "+", AlignEnd().String())
	require.Equal(t, "1234", AlignTimestamp(1234).String())

	require.True(t, Align{}.IsZero())
	require.False(t, AlignStart().IsZero())
}

func TestBucketTimestamp_String(t *testing.T) {
	require.Equal(t, "-", BucketTimestampLow.String())
	require.Equal(t, "+", BucketTimestampHigh.String())
	require.Equal(t, "~", BucketTimestampMid.String())
	require.Equal(t, "unknown", BucketTimestamp(0).String())
}
