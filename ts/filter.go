package ts

import (
	"strings"

	"github.com/tompro/redis-ts/args"
)

// Filter is one rendered label predicate, e.g. "sensor=temperature" or
// "region=(us,eu)". Filters are built through FilterOptions.
type Filter struct {
	expr string
}

// String returns the wire form of the predicate.
func (f Filter) String() string {
	return f.expr
}

// FilterOptions accumulates label predicates for TS.MRANGE, TS.MREVRANGE,
// TS.MGET and TS.QUERYINDEX, plus the WITHLABELS flag.
//
// FilterOptions is a value builder like Options. The server requires at
// least one predicate per command; that precondition is the caller's to
// meet, not enforced here.
type FilterOptions struct {
	withLabels bool
	filters    []Filter
}

var _ args.Appender = FilterOptions{}

// WithLabels asks the server to include each matched series' labels in the
// reply.
func (o FilterOptions) WithLabels(withLabels bool) FilterOptions {
	o.withLabels = withLabels

	return o
}

// Equals matches series whose label name has exactly the given value.
func (o FilterOptions) Equals(name, value string) FilterOptions {
	return o.add(name + "=" + value)
}

// NotEquals matches series whose label name does not have the given value.
func (o FilterOptions) NotEquals(name, value string) FilterOptions {
	return o.add(name + "!=" + value)
}

// InSet matches series whose label value is one of the given values.
func (o FilterOptions) InSet(name string, values ...string) FilterOptions {
	return o.add(name + "=(" + strings.Join(values, ",") + ")")
}

// NotInSet matches series whose label value is none of the given values.
func (o FilterOptions) NotInSet(name string, values ...string) FilterOptions {
	return o.add(name + "!=(" + strings.Join(values, ",") + ")")
}

// HasLabel matches series that carry the label, whatever its value. On the
// wire this is "not equal to the empty value".
func (o FilterOptions) HasLabel(name string) FilterOptions {
	return o.add(name + "!=")
}

// LacksLabel matches series that do not carry the label.
func (o FilterOptions) LacksLabel(name string) FilterOptions {
	return o.add(name + "=")
}

func (o FilterOptions) add(expr string) FilterOptions {
	filters := make([]Filter, len(o.filters), len(o.filters)+1)
	copy(filters, o.filters)
	o.filters = append(filters, Filter{expr: expr})

	return o
}

// Filters returns the accumulated predicates in build order, for commands
// that take bare filter expressions without the FILTER keyword.
func (o FilterOptions) Filters() []Filter {
	cp := make([]Filter, len(o.filters))
	copy(cp, o.filters)

	return cp
}

// AppendArgs appends WITHLABELS when requested, then the FILTER keyword
// followed by every predicate in build order. FILTER is emitted even when
// no predicates were added; the server rejects such a command itself.
func (o FilterOptions) AppendArgs(dst *args.Args) {
	if o.withLabels {
		dst.Add("WITHLABELS")
	}

	dst.Add("FILTER")
	for _, f := range o.filters {
		dst.Add(f.expr)
	}
}
