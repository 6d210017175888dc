package ts

import "strings"

// DuplicatePolicy decides how the server resolves inserting a sample whose
// timestamp already exists in the series.
//
// The type is an open enumeration: the constants cover the policies the
// server documents today, and any other string round-trips verbatim so newer
// server-side policy names survive decoding. The zero value means "no policy
// configured".
type DuplicatePolicy string

const (
	PolicyBlock DuplicatePolicy = "BLOCK" // reject the insert
	PolicyFirst DuplicatePolicy = "FIRST" // keep the stored value
	PolicyLast  DuplicatePolicy = "LAST"  // overwrite with the new value
	PolicyMin   DuplicatePolicy = "MIN"   // keep the smaller value
	PolicyMax   DuplicatePolicy = "MAX"   // keep the larger value
)

// ParseDuplicatePolicy maps a server-reported policy name to its constant,
// matching case-insensitively. Unknown names are returned as-is rather than
// failing, preserving forward compatibility.
func ParseDuplicatePolicy(s string) DuplicatePolicy {
	switch strings.ToLower(s) {
	case "block":
		return PolicyBlock
	case "first":
		return PolicyFirst
	case "last":
		return PolicyLast
	case "min":
		return PolicyMin
	case "max":
		return PolicyMax
	default:
		return DuplicatePolicy(s)
	}
}

// Known reports whether the policy is one of the documented constants.
func (p DuplicatePolicy) Known() bool {
	switch p {
	case PolicyBlock, PolicyFirst, PolicyLast, PolicyMin, PolicyMax:
		return true
	default:
		return false
	}
}

// String returns the wire form of the policy.
func (p DuplicatePolicy) String() string {
	return string(p)
}
