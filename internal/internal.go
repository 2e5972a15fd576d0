// Package internal holds the partitioning arithmetic and panic handling
// shared by the parallel and sequential reductions.
package internal

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
)

// A Block is the half-open range of sequence positions from Low to High,
// including Low but excluding High, assigned to one worker.
type Block struct {
	Low, High int
}

// Len returns the number of positions in the block.
func (b Block) Len() int { return b.High - b.Low }

// DefaultThreads returns twice the number of logical CPUs usable by the
// runtime, to account for hardware multithreading.
func DefaultThreads() int {
	return 2 * runtime.GOMAXPROCS(0)
}

// BlockSize returns the size of block i when n positions are divided among p
// workers. The first n%p blocks receive one extra position.
func BlockSize(n, p, i int) int {
	size := n / p
	if i < n%p {
		size++
	}
	return size
}

// Partition divides the positions 0 to n into p contiguous blocks, in order.
// Blocks may be empty when n < p.
//
// Partition panics if n < 0 or p < 1; callers validate both first.
func Partition(n, p int) []Block {
	switch {
	case p < 1:
		panic(fmt.Sprintf("invalid number of blocks: %v", p))
	case n < 0:
		panic(fmt.Sprintf("invalid range: 0:%v", n))
	}
	blocks := make([]Block, p)
	low := 0
	for i := range blocks {
		high := low + BlockSize(n, p, i)
		blocks[i] = Block{Low: low, High: high}
		low = high
	}
	return blocks
}

type runtimeError struct{ error }

func (runtimeError) RuntimeError() {}

// WrapPanic adds stack trace information to a recovered panic.
func WrapPanic(p any) any {
	if p != nil {
		s := fmt.Sprintf("%v\n%s\nrethrown at", p, debug.Stack())
		if _, isError := p.(error); isError {
			r := errors.New(s)
			if _, isRuntimeError := p.(runtime.Error); isRuntimeError {
				return runtimeError{r}
			}
			return r
		}
		return s
	}
	return nil
}

// FirstPanic returns the left-most non-nil recovered panic value, or nil.
func FirstPanic(panics []any) any {
	for _, p := range panics {
		if p != nil {
			return p
		}
	}
	return nil
}
