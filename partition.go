package parfold

import (
	"fmt"

	"github.com/exascience/parfold/internal"
)

// A Block is the half-open range of sequence positions [Low, High) that one
// worker folds.
type Block = internal.Block

// CheckThreads returns a ConfigError if an explicit thread count p is below 1.
func CheckThreads(p int) error {
	if p < 1 {
		return ConfigError{Field: "threads", Message: fmt.Sprintf("must be at least 1, got %d", p)}
	}
	return nil
}

// Partition divides n sequence positions among p workers. Block i holds
// n/p positions, plus one if i < n%p, so block sizes differ by at most one,
// sum to n, and follow each other in sequence order.
//
// Partition returns a ConfigError if p < 1, and a RangeError if n < 0.
func Partition(n, p int) ([]Block, error) {
	if err := CheckThreads(p); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, RangeError{Begin: 0, End: n}
	}
	return internal.Partition(n, p), nil
}
