// Package ast declares the directive stream the accounting core operates on.
//
// Directives are produced by a parser or built programmatically with the
// constructors in this package. A stream is kept ordered by date; the
// summarization functions read it without modifying it and return new
// streams that share the original directive pointers.
package ast

import (
	"time"

	"golang.org/x/exp/slices"
)

// Directives is a slice of Directive that implements sort.Interface.
type Directives []Directive

func (d Directives) Len() int           { return len(d) }
func (d Directives) Swap(i, j int)      { d[i], d[j] = d[j], d[i] }
func (d Directives) Less(i, j int) bool { return compareDirectives(d[i], d[j]) < 0 }

// Directive is the interface implemented by all directive types.
type Directive interface {
	WithMetadata

	Position() Position
	Directive() string
	date() *Date
}

// DateOf returns the date of a directive, or the zero time if it has none.
func DateOf(d Directive) time.Time {
	if date := d.date(); date != nil {
		return date.Time
	}
	return time.Time{}
}

// compareDirectives compares two directives by their date, then by type priority.
// Returns -1 if a < b, 0 if a == b, 1 if a > b.
//
// For same-date directives, the processing order is:
//  1. Open (accounts must be opened before use)
//  2. Balance (assertions apply at the beginning of the day)
//  3. All other directives (transactions, prices, notes, ...)
//  4. Document entries
//  5. Close (accounts stay usable for the whole closing day)
func compareDirectives(a, b Directive) int {
	if c := DateOf(a).Compare(DateOf(b)); c != 0 {
		return c
	}

	aPriority := directiveTypePriority(a)
	bPriority := directiveTypePriority(b)
	if aPriority < bPriority {
		return -1
	} else if aPriority > bPriority {
		return 1
	}

	return 0
}

// directiveTypePriority returns the processing priority for a directive type.
// Lower numbers are processed first.
func directiveTypePriority(d Directive) int {
	switch d := d.(type) {
	case *Open:
		return -2
	case *Balance:
		return -1
	case *Entry:
		if d.Kind == KindDocument {
			return 1
		}
		return 0
	case *Close:
		return 2
	default:
		return 0
	}
}

// IsSorted reports whether the directives are ordered by date and type.
func (d Directives) IsSorted() bool {
	for i := 1; i < len(d); i++ {
		if d.Less(i, i-1) {
			return false
		}
	}
	return true
}

// Sort orders the directives in place by date, then type priority. Directives
// that compare equal keep their relative order.
func (d Directives) Sort() {
	// Skip sorting if already sorted (common case for well-maintained files)
	if d.IsSorted() {
		return
	}
	slices.SortStableFunc(d, compareDirectives)
}

// Sorted returns a sorted copy of the directives.
func (d Directives) Sorted() Directives {
	sorted := slices.Clone(d)
	sorted.Sort()
	return sorted
}

// Transactions returns the transactions of the stream, in order.
func (d Directives) Transactions() []*Transaction {
	var txns []*Transaction
	for _, directive := range d {
		if txn, ok := directive.(*Transaction); ok {
			txns = append(txns, txn)
		}
	}
	return txns
}

// SearchDate returns the index of the first directive dated on or after t.
// The directives must be sorted.
func (d Directives) SearchDate(t time.Time) int {
	i, _ := slices.BinarySearchFunc(d, t, func(directive Directive, t time.Time) int {
		if DateOf(directive).Before(t) {
			return -1
		}
		return 1
	})
	return i
}

// WithMetadata is an interface for nodes that can have metadata attached.
type WithMetadata interface {
	AddMetadata(...*Metadata)
}

// withMetadata is an embeddable struct that implements WithMetadata.
type withMetadata struct {
	Metadata []*Metadata
}

func (w *withMetadata) AddMetadata(m ...*Metadata) {
	w.Metadata = append(w.Metadata, m...)
}

// Meta returns the value of the first metadata entry with key.
func (w *withMetadata) Meta(key string) (string, bool) {
	for _, m := range w.Metadata {
		if m.Key == key {
			return m.Value, true
		}
	}
	return "", false
}

// Metadata is a key-value pair attached to a directive or posting.
//
// Example:
//
//	2014-05-05 * "Payment"
//	  invoice: "INV-2014-05-001"
type Metadata struct {
	Key   string
	Value string
}
