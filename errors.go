/*
Package freqtable implements an approximate frequency counter over an
unbounded stream of byte-string keys under a fixed memory budget: an
open-addressed, linear-probing hash table that self-prunes by discarding
low-count entries once it fills past a load-factor threshold, paired with
a HyperLogLog sketch (see the hll package) that keeps a reliable
cardinality estimate alive even after a prune has destroyed exact set
information.
*/
package freqtable

import "errors"

// Sentinel errors for the five kinds named in the error handling design.
// Every operation-boundary error returned by freqtable wraps one of these
// with fmt.Errorf's %w, so callers can errors.Is against the kind without
// parsing strings.
var (
	// ErrInvalidArgument covers an out-of-range bucket count, a negative
	// increment delta, a negative set value, an embedded null byte in a
	// key, or an unrecognized Update source.
	ErrInvalidArgument = errors.New("freqtable: invalid argument")

	// ErrOverflow is returned when a count would exceed the 64-bit signed
	// counter's maximum.
	ErrOverflow = errors.New("freqtable: counter overflow")

	// ErrOutOfMemory is returned when an allocation fails during
	// construction or when copying a key into a cell.
	ErrOutOfMemory = errors.New("freqtable: out of memory")

	// ErrCorruptSnapshot is returned when restoring a snapshot whose keys
	// blob is exhausted before every recorded slot has been filled, or
	// whose header is otherwise inconsistent.
	ErrCorruptSnapshot = errors.New("freqtable: corrupt snapshot")

	// ErrInternal covers iterator/type misuse that should be unreachable
	// through the public API.
	ErrInternal = errors.New("freqtable: internal error")
)
