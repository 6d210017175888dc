package ts

import (
	"fmt"

	"github.com/tompro/redis-ts/errs"
	"github.com/tompro/redis-ts/resp"
)

// CompactionRule describes one server-side rule that continuously
// aggregates this series into a destination series.
type CompactionRule struct {
	DestinationKey string
	// BucketDuration is the rule's time bucket in milliseconds.
	BucketDuration int64
	// Aggregation is the server-reported aggregation name, kept as a plain
	// string: rule metadata may name aggregations this client predates.
	Aggregation string
}

// SeriesInfo is the decoded TS.INFO reply.
//
// Every field is optional on the wire. Absent fields keep their zero value,
// so a SeriesInfo from an older or newer server version still decodes.
type SeriesInfo struct {
	TotalSamples       int64
	MemoryUsage        int64
	FirstTimestamp     int64
	LastTimestamp      int64
	RetentionTime      int64
	ChunkCount         int64
	MaxSamplesPerChunk int64
	ChunkSize          int64
	// SourceKey names the series this one is compacted from; empty when the
	// series is not a compaction target.
	SourceKey       string
	DuplicatePolicy DuplicatePolicy
	Labels          Labels
	Rules           []CompactionRule
}

// ParseSeriesInfo decodes a TS.INFO reply, interpreting the top-level
// sequence as alternating field-name/value pairs.
//
// Decoding is permissive: unknown field names are ignored,
// fields whose value has an unexpected shape keep their zero value, and
// malformed elements inside the labels and rules sub-sequences are skipped.
// It fails only when the reply is not a sequence at all.
func ParseSeriesInfo(v resp.Value) (SeriesInfo, error) {
	if v.Kind() != resp.KindArray {
		return SeriesInfo{}, fmt.Errorf("%w: info reply is %s, want array", errs.ErrMalformedReply, v.Kind())
	}

	var info SeriesInfo

	items := v.Items()
	for i := 0; i+1 < len(items); i += 2 {
		name, err := items[i].Text()
		if err != nil {
			continue
		}
		field := items[i+1]

		switch name {
		case "totalSamples":
			setInt(&info.TotalSamples, field)
		case "memoryUsage":
			setInt(&info.MemoryUsage, field)
		case "firstTimestamp":
			setInt(&info.FirstTimestamp, field)
		case "lastTimestamp":
			setInt(&info.LastTimestamp, field)
		case "retentionTime":
			setInt(&info.RetentionTime, field)
		case "chunkCount":
			setInt(&info.ChunkCount, field)
		case "maxSamplesPerChunk":
			setInt(&info.MaxSamplesPerChunk, field)
		case "chunkSize":
			setInt(&info.ChunkSize, field)
		case "sourceKey":
			if s, err := field.Text(); err == nil {
				info.SourceKey = s
			}
		case "duplicatePolicy":
			if s, err := field.Text(); err == nil {
				info.DuplicatePolicy = ParseDuplicatePolicy(s)
			}
		case "labels":
			info.Labels = parseLabelPairs(field)
		case "rules":
			info.Rules = parseRules(field)
		}
	}

	return info, nil
}

func setInt(dst *int64, v resp.Value) {
	if n, err := v.Int64(); err == nil {
		*dst = n
	}
}

// parseLabelPairs decodes a sequence of 2-element (name, value) sequences,
// skipping malformed elements. Shared by the info, mrange and mget decoders.
func parseLabelPairs(v resp.Value) Labels {
	if v.Kind() != resp.KindArray {
		return nil
	}

	var labels Labels
	for _, item := range v.Items() {
		if item.Len() < 2 {
			continue
		}
		name, err := item.Index(0).Text()
		if err != nil {
			continue
		}
		value, err := item.Index(1).Text()
		if err != nil {
			continue
		}
		labels = append(labels, Label{Name: name, Value: value})
	}

	return labels
}

// parseRules decodes a sequence of 3-element (destination key, bucket,
// aggregation name) sequences, skipping malformed elements.
func parseRules(v resp.Value) []CompactionRule {
	if v.Kind() != resp.KindArray {
		return nil
	}

	var rules []CompactionRule
	for _, item := range v.Items() {
		if item.Len() < 3 {
			continue
		}
		dest, err := item.Index(0).Text()
		if err != nil {
			continue
		}
		bucket, err := item.Index(1).Int64()
		if err != nil {
			continue
		}
		agg, err := item.Index(2).Text()
		if err != nil {
			continue
		}
		rules = append(rules, CompactionRule{
			DestinationKey: dest,
			BucketDuration: bucket,
			Aggregation:    agg,
		})
	}

	return rules
}
