package ts

import (
	"github.com/cespare/xxhash/v2"
)

// Label is one (name, value) metadata tag attached to a series.
type Label struct {
	Name  string
	Value string
}

// Labels is an order-preserving label list. Duplicate names are allowed;
// ordering is significant and preserved through encoding and decoding.
type Labels []Label

// Get returns the value of the first label with the given name.
func (l Labels) Get(name string) (string, bool) {
	for _, label := range l {
		if label.Name == name {
			return label.Value, true
		}
	}

	return "", false
}

// labelSep separates fingerprint components. 0xFF cannot appear in UTF-8
// text, so distinct label lists cannot collide by concatenation.
var labelSep = []byte{0xFF}

// Fingerprint returns a stable 64-bit identity of the ordered label list,
// usable as a grouping or cache key.
func (l Labels) Fingerprint() uint64 {
	d := xxhash.New()
	for _, label := range l {
		_, _ = d.WriteString(label.Name)
		_, _ = d.Write(labelSep)
		_, _ = d.WriteString(label.Value)
		_, _ = d.Write(labelSep)
	}

	return d.Sum64()
}
