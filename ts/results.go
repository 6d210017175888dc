package ts

import (
	"fmt"

	"github.com/tompro/redis-ts/errs"
	"github.com/tompro/redis-ts/resp"
)

// Sample is one (timestamp, value) data point, generic over the scalar
// types the caller wants them decoded into. Timestamps are milliseconds.
type Sample[TS resp.Scalar, V resp.Scalar] struct {
	Timestamp TS
	Value     V
}

// MultiRangeEntry is one series' slice of a TS.MRANGE or TS.MREVRANGE
// reply. Labels is empty unless the query asked for WITHLABELS.
type MultiRangeEntry[TS resp.Scalar, V resp.Scalar] struct {
	Key    string
	Labels Labels
	Values []Sample[TS, V]
}

// MultiLatestEntry is one series' slice of a TS.MGET reply. Sample is nil
// when the series holds no samples.
type MultiLatestEntry[TS resp.Scalar, V resp.Scalar] struct {
	Key    string
	Labels Labels
	Sample *Sample[TS, V]
}

// parseSample decodes one 2-element (timestamp, value) pair.
func parseSample[TS, V resp.Scalar](v resp.Value) (Sample[TS, V], error) {
	if v.Kind() != resp.KindArray || v.Len() != 2 {
		return Sample[TS, V]{}, fmt.Errorf("want a (timestamp, value) pair, got %s of %d elements", v.Kind(), v.Len())
	}

	timestamp, err := resp.To[TS](v.Index(0))
	if err != nil {
		return Sample[TS, V]{}, fmt.Errorf("timestamp: %v", err)
	}

	value, err := resp.To[V](v.Index(1))
	if err != nil {
		return Sample[TS, V]{}, fmt.Errorf("value: %v", err)
	}

	return Sample[TS, V]{Timestamp: timestamp, Value: value}, nil
}

// ParseRange decodes a TS.RANGE or TS.REVRANGE reply into samples in
// server-returned order.
//
// Range decoding is strict: a wrong-arity pair or a failed scalar
// conversion anywhere fails the whole decode with errs.ErrMalformedReply.
// Partial sample data is never returned; a caller aggregating over it would
// silently compute wrong answers.
func ParseRange[TS, V resp.Scalar](v resp.Value) ([]Sample[TS, V], error) {
	if v.Kind() != resp.KindArray {
		return nil, fmt.Errorf("%w: range reply is %s, want array", errs.ErrMalformedReply, v.Kind())
	}

	items := v.Items()
	samples := make([]Sample[TS, V], 0, len(items))
	for i, item := range items {
		sample, err := parseSample[TS, V](item)
		if err != nil {
			return nil, fmt.Errorf("%w: sample %d: %v", errs.ErrMalformedReply, i, err)
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

// ParseMultiRange decodes a TS.MRANGE or TS.MREVRANGE reply into per-series
// entries in server-returned order.
//
// Entries must be (key, labels, samples) sequences; samples decode with
// ParseRange's strictness, while labels are metadata and decode
// permissively. A top-level value that is not a sequence decodes to an
// empty result.
func ParseMultiRange[TS, V resp.Scalar](v resp.Value) ([]MultiRangeEntry[TS, V], error) {
	if v.Kind() != resp.KindArray {
		return nil, nil
	}

	items := v.Items()
	entries := make([]MultiRangeEntry[TS, V], 0, len(items))
	for i, item := range items {
		if item.Kind() != resp.KindArray || item.Len() < 3 {
			return nil, fmt.Errorf("%w: series entry %d: want (key, labels, samples), got %s of %d elements",
				errs.ErrMalformedReply, i, item.Kind(), item.Len())
		}

		key, err := item.Index(0).Text()
		if err != nil {
			return nil, fmt.Errorf("%w: series entry %d key: %v", errs.ErrMalformedReply, i, err)
		}

		values, err := ParseRange[TS, V](item.Index(2))
		if err != nil {
			return nil, fmt.Errorf("series entry %d (%s): %w", i, key, err)
		}

		entries = append(entries, MultiRangeEntry[TS, V]{
			Key:    key,
			Labels: parseLabelPairs(item.Index(1)),
			Values: values,
		})
	}

	return entries, nil
}

// ParseLatest decodes a TS.GET reply. The second return is false when the
// series holds no samples.
//
// ParseLatest has no error path: an empty, nil or otherwise unexpected
// reply shape means "no sample". TS.GET is the one operation where shape
// mismatch collapses to absence instead of failing; see the client's Get
// for where server error replies join that collapse.
func ParseLatest[TS, V resp.Scalar](v resp.Value) (Sample[TS, V], bool) {
	sample, err := parseSample[TS, V](v)
	if err != nil {
		return Sample[TS, V]{}, false
	}

	return sample, true
}

// ParseMultiLatest decodes a TS.MGET reply into per-series entries in
// server-returned order.
//
// Entries must be (key, labels, sample) sequences. An empty or non-sequence
// sample slot means that series has no samples and leaves the entry's
// Sample nil without failing the batch; a non-empty slot must be a valid
// pair. A top-level value that is not a sequence decodes to an empty
// result.
func ParseMultiLatest[TS, V resp.Scalar](v resp.Value) ([]MultiLatestEntry[TS, V], error) {
	if v.Kind() != resp.KindArray {
		return nil, nil
	}

	items := v.Items()
	entries := make([]MultiLatestEntry[TS, V], 0, len(items))
	for i, item := range items {
		if item.Kind() != resp.KindArray || item.Len() < 3 {
			return nil, fmt.Errorf("%w: series entry %d: want (key, labels, sample), got %s of %d elements",
				errs.ErrMalformedReply, i, item.Kind(), item.Len())
		}

		key, err := item.Index(0).Text()
		if err != nil {
			return nil, fmt.Errorf("%w: series entry %d key: %v", errs.ErrMalformedReply, i, err)
		}

		entry := MultiLatestEntry[TS, V]{
			Key:    key,
			Labels: parseLabelPairs(item.Index(1)),
		}

		slot := item.Index(2)
		if slot.Kind() == resp.KindArray && slot.Len() > 0 {
			sample, err := parseSample[TS, V](slot)
			if err != nil {
				return nil, fmt.Errorf("%w: series entry %d (%s) sample: %v", errs.ErrMalformedReply, i, key, err)
			}
			entry.Sample = &sample
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
