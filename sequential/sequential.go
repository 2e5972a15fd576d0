// Package sequential provides sequential implementations of the functions
// provided by the parallel package. This is useful for testing and
// debugging.
//
// The functions of this package partition their input exactly like their
// parallel counterparts, fold the blocks one after the other on the calling
// goroutine, and then merge the partial accumulators in the same order. Their
// results are therefore identical to the parallel ones even for combining
// functions that are not associative or commutative. Panics are not
// recovered.
package sequential

import (
	"github.com/exascience/parfold"
	"github.com/exascience/parfold/internal"
)

func plan[T any](seq parfold.Sequence[T], cfg parfold.Config) ([]parfold.Block, error) {
	threads, err := cfg.ThreadCount()
	if err != nil {
		return nil, err
	}
	n, err := parfold.Length(seq)
	if err != nil {
		return nil, err
	}
	return internal.Partition(n, threads), nil
}

func fold[T, C any](seq parfold.Sequence[T], blocks []parfold.Block, seed func() T, f parfold.Combiner[T, C], merge parfold.Merger[T], ctx C) T {
	if merge == nil {
		merge = func(partial T, acc *T) { f(partial, acc, ctx) }
	}
	partials := make([]T, len(blocks))
	for i, block := range blocks {
		acc := seed()
		for j := block.Low; j < block.High; j++ {
			f(seq.At(j), &acc, ctx)
		}
		partials[i] = acc
	}
	result := seed()
	for _, partial := range partials {
		merge(partial, &result)
	}
	return result
}

func zero[T any]() (z T) { return }

func zeroOf[T parfold.Zeroer[T]]() T {
	var z T
	return z.Zero()
}

// Fold folds seq with f strictly from left to right into an accumulator that
// starts out as init, without any partitioning.
func Fold[T, C any](seq parfold.Sequence[T], init T, f parfold.Combiner[T, C], ctx C) (T, error) {
	n, err := parfold.Length(seq)
	if err != nil {
		return init, err
	}
	acc := init
	for i := 0; i < n; i++ {
		f(seq.At(i), &acc, ctx)
	}
	return acc, nil
}

// Reduce folds seq with f block by block, seeding every accumulator with 0.
func Reduce[T parfold.Number, C any](
	seq parfold.Sequence[T],
	f parfold.Combiner[T, C],
	ctx C,
	opts ...parfold.Option,
) (result T, err error) {
	blocks, err := plan(seq, parfold.NewConfig(opts...))
	if err != nil {
		return
	}
	return fold(seq, blocks, zero[T], f, nil, ctx), nil
}

// ReduceZero folds seq with f block by block, seeding every accumulator with
// a fresh Zero.
func ReduceZero[T parfold.Zeroer[T], C any](
	seq parfold.Sequence[T],
	f parfold.Combiner[T, C],
	ctx C,
	opts ...parfold.Option,
) (result T, err error) {
	blocks, err := plan(seq, parfold.NewConfig(opts...))
	if err != nil {
		return
	}
	return fold(seq, blocks, zeroOf[T], f, nil, ctx), nil
}

// ReduceInit folds seq with f block by block, seeding every accumulator with
// init.
func ReduceInit[T, C any](
	seq parfold.Sequence[T],
	init T,
	f parfold.Combiner[T, C],
	ctx C,
	opts ...parfold.Option,
) (result T, err error) {
	blocks, err := plan(seq, parfold.NewConfig(opts...))
	if err != nil {
		return
	}
	return fold(seq, blocks, func() T { return init }, f, nil, ctx), nil
}

// ReduceInitMerge folds seq with f block by block, seeding every
// accumulator with init, and merges the partial accumulators with merge.
func ReduceInitMerge[T, C any](
	seq parfold.Sequence[T],
	init T,
	f parfold.Combiner[T, C],
	merge parfold.Merger[T],
	ctx C,
	opts ...parfold.Option,
) (result T, err error) {
	blocks, err := plan(seq, parfold.NewConfig(opts...))
	if err != nil {
		return
	}
	return fold(seq, blocks, func() T { return init }, f, merge, ctx), nil
}

// ReduceN folds the slice s with f using exactly threads blocks, seeding
// every accumulator with 0.
func ReduceN[T parfold.Number, C any](
	s []T,
	threads int,
	f parfold.Combiner[T, C],
	ctx C,
	opts ...parfold.Option,
) (result T, err error) {
	if err = parfold.CheckThreads(threads); err != nil {
		return
	}
	return Reduce[T, C](parfold.Slice[T](s), f, ctx, append(opts[:len(opts):len(opts)], parfold.WithThreads(threads))...)
}

// ReduceInitErr folds seq with f block by block, seeding every accumulator
// with init, and returns the error of the first failing block as a
// parfold.CombinerError.
func ReduceInitErr[T, C any](
	seq parfold.Sequence[T],
	init T,
	f parfold.ErrCombiner[T, C],
	ctx C,
	opts ...parfold.Option,
) (result T, err error) {
	blocks, err := plan(seq, parfold.NewConfig(opts...))
	if err != nil {
		return
	}
	partials := make([]T, len(blocks))
	for i, block := range blocks {
		acc := init
		for j := block.Low; j < block.High; j++ {
			if e := f(seq.At(j), &acc, ctx); e != nil {
				return result, parfold.CombinerError{Slot: i, Cause: e}
			}
		}
		partials[i] = acc
	}
	acc := init
	for i, partial := range partials {
		if e := f(partial, &acc, ctx); e != nil {
			return result, parfold.CombinerError{Slot: i, Merge: true, Cause: e}
		}
	}
	return acc, nil
}
