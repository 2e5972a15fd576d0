package parfold

import "fmt"

// ConfigError reports an invalid reduction configuration, such as a thread
// count below 1. It is returned before any worker is started.
type ConfigError struct {
	// Field names the offending setting.
	Field string
	// Message explains what is wrong with it.
	Message string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration for %q: %s", e.Field, e.Message)
}

// RangeError reports malformed sequence bounds: an end that precedes its
// begin, a window that exceeds its underlying sequence, or a negative length.
type RangeError struct {
	Begin, End int
}

func (e RangeError) Error() string {
	return fmt.Sprintf("invalid range: %v:%v", e.Begin, e.End)
}

// CombinerError wraps an error returned by an ErrCombiner. Slot is the index
// of the worker whose block failed, or, if Merge is set, the index of the
// partial accumulator that was being merged.
type CombinerError struct {
	Slot  int
	Merge bool
	Cause error
}

func (e CombinerError) Error() string {
	if e.Merge {
		return fmt.Sprintf("merging slot %d: %v", e.Slot, e.Cause)
	}
	return fmt.Sprintf("worker %d: %v", e.Slot, e.Cause)
}

// Unwrap returns the error returned by the combiner.
func (e CombinerError) Unwrap() error { return e.Cause }
