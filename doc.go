// Package parfold provides a parallel reduction engine for finite ordered
// sequences. A reduction divides its input into one contiguous block per
// worker goroutine, folds each block into a private partial accumulator, and
// then folds the partial accumulators into a single result, in block order,
// on the calling goroutine.
//
// This package defines the vocabulary shared by the subpackages: sequences,
// combining functions, partitions, configuration, and errors.
//
// parfold provides the following subpackages:
//
// parfold/parallel provides the reduction engine itself. Every call performs
// exactly one fan-out and one fan-in; there is no worker pool that outlives a
// call.
//
// parfold/sequential provides sequential implementations of all functions
// from parfold/parallel, for testing and debugging purposes. They walk the
// same blocks in the same order and merge the same way, so their results are
// identical to the parallel ones for any combining function.
//
// parfold/accum provides accumulator types that can be used with the
// zero-seeded reductions, such as pairs, running moments, and vectors.
//
// Results only depend on the number of workers when the combining function is
// not associative and commutative. This is a precondition on the caller, and
// is not checked.
package parfold
