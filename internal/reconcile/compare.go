package reconcile

import (
	"fmt"
	"strings"

	"sidmatch/internal/sid"
)

// Op names a set operation over the first (A) and second (B) inputs.
type Op string

const (
	// OnlyFirst is A \ B, the primary report.
	OnlyFirst Op = "only_first"
	// OnlySecond is B \ A.
	OnlySecond Op = "only_second"
	// Common is A ∩ B.
	Common Op = "common"
	// Union is A ∪ B.
	Union Op = "union"
)

// Ops lists every supported operation in report order.
func Ops() []Op {
	return []Op{Common, OnlyFirst, OnlySecond, Union}
}

// ParseOp maps a configuration string onto an Op.
func ParseOp(value string) (Op, error) {
	switch Op(strings.ToLower(strings.TrimSpace(value))) {
	case OnlyFirst:
		return OnlyFirst, nil
	case OnlySecond:
		return OnlySecond, nil
	case Common:
		return Common, nil
	case Union:
		return Union, nil
	default:
		return "", fmt.Errorf("unknown report %q (want one of only_first, only_second, common, union)", value)
	}
}

// Entry is one identifier in a result with the origin used for reporting.
type Entry struct {
	ID     sid.ID
	Origin Origin
}

// Result is the sorted outcome of a single operation.
type Result struct {
	Op      Op
	Entries []Entry
}

// Len returns the number of identifiers in the result.
func (r Result) Len() int { return len(r.Entries) }

// IDs returns the identifiers in ascending order.
func (r Result) IDs() []sid.ID {
	out := make([]sid.ID, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.ID
	}
	return out
}

// Compare applies op to a and b. Nil sets behave as empty. Origins come from
// a when the identifier is present there, otherwise from b.
func Compare(op Op, a, b *Set) Result {
	res := Result{Op: op}
	pick := func(id sid.ID) {
		origin, ok := a.Origin(id)
		if !ok {
			origin, _ = b.Origin(id)
		}
		res.Entries = append(res.Entries, Entry{ID: id, Origin: origin})
	}

	switch op {
	case OnlyFirst:
		for _, id := range a.Sorted() {
			if !b.Has(id) {
				pick(id)
			}
		}
	case OnlySecond:
		for _, id := range b.Sorted() {
			if !a.Has(id) {
				pick(id)
			}
		}
	case Common:
		for _, id := range a.Sorted() {
			if b.Has(id) {
				pick(id)
			}
		}
	case Union:
		merged := &Set{}
		for _, id := range a.Sorted() {
			merged.Add(id, Origin{})
		}
		for _, id := range b.Sorted() {
			merged.Add(id, Origin{})
		}
		for _, id := range merged.Sorted() {
			pick(id)
		}
	}
	return res
}
