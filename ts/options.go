package ts

import (
	"github.com/tompro/redis-ts/args"
)

// Options configures a series for TS.CREATE, TS.ALTER and the auto-creating
// write commands.
//
// Options is a value builder: every method returns a modified copy, so a
// shared base Options can be used as a template without synchronization.
// The zero value encodes no tokens at all.
type Options struct {
	retention    uint64
	hasRetention bool
	uncompressed bool
	policy       DuplicatePolicy
	chunkSize    uint64
	hasChunkSize bool
	labels       Labels
}

var _ args.Appender = Options{}

// Retention sets the maximum age of samples, in milliseconds, relative to
// the last sample.
func (o Options) Retention(millis uint64) Options {
	o.retention = millis
	o.hasRetention = true

	return o
}

// Uncompressed selects uncompressed chunk storage for the series.
func (o Options) Uncompressed(uncompressed bool) Options {
	o.uncompressed = uncompressed

	return o
}

// DuplicatePolicy sets the conflict policy for samples whose timestamp
// already exists.
func (o Options) DuplicatePolicy(policy DuplicatePolicy) Options {
	o.policy = policy

	return o
}

// ChunkSize sets the memory allocated per data chunk, in bytes.
func (o Options) ChunkSize(bytes uint64) Options {
	o.chunkSize = bytes
	o.hasChunkSize = true

	return o
}

// Label appends one label. Appending a name that is already present keeps
// both entries; the server receives the full list in append order.
func (o Options) Label(name, value string) Options {
	labels := make(Labels, len(o.labels), len(o.labels)+1)
	copy(labels, o.labels)
	o.labels = append(labels, Label{Name: name, Value: value})

	return o
}

// Labels replaces the entire label list. An empty list clears it.
func (o Options) Labels(labels Labels) Options {
	if len(labels) == 0 {
		o.labels = nil

		return o
	}

	cp := make(Labels, len(labels))
	copy(cp, labels)
	o.labels = cp

	return o
}

// AppendArgs appends the configured clauses in the order the server's
// parser requires: RETENTION, UNCOMPRESSED, DUPLICATE_POLICY, CHUNK_SIZE,
// LABELS. Label pairs flatten to alternating name/value tokens.
func (o Options) AppendArgs(dst *args.Args) {
	if o.hasRetention {
		dst.Add("RETENTION")
		dst.AddUint(o.retention)
	}

	if o.uncompressed {
		dst.Add("UNCOMPRESSED")
	}

	if o.policy != "" {
		dst.Add("DUPLICATE_POLICY", string(o.policy))
	}

	if o.hasChunkSize {
		dst.Add("CHUNK_SIZE")
		dst.AddUint(o.chunkSize)
	}

	if len(o.labels) > 0 {
		dst.Add("LABELS")
		for _, label := range o.labels {
			dst.Add(label.Name, label.Value)
		}
	}
}
