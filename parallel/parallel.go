// Package parallel provides the parallel reduction engine.
//
// Every function in this package divides its input sequence into one
// contiguous block per worker, folds each block on its own goroutine into a
// private partial accumulator, waits for all workers, and then folds the
// partial accumulators into the result on the calling goroutine, in block
// order. Workers are started fresh for each call and have all terminated when
// the call returns.
//
// If a combining function panics, the corresponding worker recovers the
// panic, the remaining workers still run to completion, and the reduction
// eventually panics with the left-most recovered panic value. No partial
// result is returned in that case.
package parallel

import (
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/exascience/parfold"
	"github.com/exascience/parfold/internal"
)

// plan validates the sequence and the thread count and partitions the
// sequence. Nothing is started before plan succeeds.
func plan[T any](seq parfold.Sequence[T], cfg parfold.Config) ([]parfold.Block, error) {
	threads, err := cfg.ThreadCount()
	if err != nil {
		return nil, err
	}
	n, err := parfold.Length(seq)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Debug().Int("length", n).Int("threads", threads).Msg("partitioning")
	return internal.Partition(n, threads), nil
}

// fold runs one worker per block, each starting from its own seed, joins
// them, and merges the partial accumulators into a final accumulator that
// also starts from a seed. A nil merge merges with f.
func fold[T, C any](
	seq parfold.Sequence[T],
	blocks []parfold.Block,
	seed func() T,
	f parfold.Combiner[T, C],
	merge parfold.Merger[T],
	ctx C,
	logger zerolog.Logger,
) T {
	if merge == nil {
		merge = func(partial T, acc *T) { f(partial, acc, ctx) }
	}
	partials := make([]T, len(blocks))
	panics := make([]any, len(blocks))
	var wg sync.WaitGroup
	wg.Add(len(blocks))
	for i, block := range blocks {
		go func(i int, block parfold.Block) {
			defer func() {
				if p := recover(); p != nil {
					panics[i] = internal.WrapPanic(p)
				}
				wg.Done()
			}()
			acc := seed()
			for j := block.Low; j < block.High; j++ {
				f(seq.At(j), &acc, ctx)
			}
			partials[i] = acc
		}(i, block)
	}
	wg.Wait()
	if p := internal.FirstPanic(panics); p != nil {
		logger.Error().Interface("panic", p).Msg("worker failed")
		panic(p)
	}
	logger.Debug().Int("partials", len(partials)).Msg("merging")
	result := seed()
	for _, partial := range partials {
		merge(partial, &result)
	}
	return result
}

func zero[T any]() T {
	var z T
	return z
}

func zeroOf[T parfold.Zeroer[T]]() T {
	var z T
	return z.Zero()
}

// Reduce folds seq with f in parallel, seeding every partial accumulator and
// the final accumulator with 0. The number of workers is decided by the
// thread policy, which defaults to parfold.DefaultThreads.
//
// The context value ctx is passed to every invocation of f.
//
// Reduce returns a ConfigError if the thread policy yields less than 1, and a
// RangeError if the bounds of seq are malformed.
func Reduce[T parfold.Number, C any](
	seq parfold.Sequence[T],
	f parfold.Combiner[T, C],
	ctx C,
	opts ...parfold.Option,
) (result T, err error) {
	cfg := parfold.NewConfig(opts...)
	blocks, err := plan(seq, cfg)
	if err != nil {
		return
	}
	return fold(seq, blocks, zero[T], f, nil, ctx, cfg.Logger), nil
}

// ReduceZero is like Reduce, but for element types that provide their own
// zero through the parfold.Zeroer interface. Zero is called separately for
// every partial accumulator and for the final accumulator, so accumulators of
// reference types never share storage.
func ReduceZero[T parfold.Zeroer[T], C any](
	seq parfold.Sequence[T],
	f parfold.Combiner[T, C],
	ctx C,
	opts ...parfold.Option,
) (result T, err error) {
	cfg := parfold.NewConfig(opts...)
	blocks, err := plan(seq, cfg)
	if err != nil {
		return
	}
	return fold(seq, blocks, zeroOf[T], f, nil, ctx, cfg.Logger), nil
}

// ReduceInit folds seq with f in parallel, seeding every partial accumulator
// and the final accumulator with init. T can be any type.
//
// The merge folds each of the P partial accumulators into a final
// accumulator that starts out as init, so init enters the result P+1 times.
// f must therefore treat init as an identity, as 0 is for addition or 1 is
// for multiplication. init is copied by assignment; if T holds references,
// all accumulators share what they refer to.
func ReduceInit[T, C any](
	seq parfold.Sequence[T],
	init T,
	f parfold.Combiner[T, C],
	ctx C,
	opts ...parfold.Option,
) (result T, err error) {
	cfg := parfold.NewConfig(opts...)
	blocks, err := plan(seq, cfg)
	if err != nil {
		return
	}
	return fold(seq, blocks, func() T { return init }, f, nil, ctx, cfg.Logger), nil
}

// ReduceInitMerge is like ReduceInit, but merges the partial accumulators
// with merge instead of f. This is needed when f does more than accumulate,
// for example when it scales every element: merging with such an f would
// scale the partial results a second time.
func ReduceInitMerge[T, C any](
	seq parfold.Sequence[T],
	init T,
	f parfold.Combiner[T, C],
	merge parfold.Merger[T],
	ctx C,
	opts ...parfold.Option,
) (result T, err error) {
	cfg := parfold.NewConfig(opts...)
	blocks, err := plan(seq, cfg)
	if err != nil {
		return
	}
	return fold(seq, blocks, func() T { return init }, f, merge, ctx, cfg.Logger), nil
}

// ReduceN folds the slice s with f using exactly threads workers, seeding
// every accumulator with 0. Options other than the thread count, such as the
// logger, are honored.
//
// ReduceN returns a ConfigError if threads < 1. No goroutine is started in
// that case.
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

// ReduceInitErr is like ReduceInit, but for combining functions that can
// fail. A worker stops folding its block at the first error, while the other
// workers continue with theirs. Once all workers have terminated,
// ReduceInitErr returns the error of the left-most failing worker as a
// parfold.CombinerError, without merging. An error during the merge stops
// the merge and is returned the same way, with Merge set.
func ReduceInitErr[T, C any](
	seq parfold.Sequence[T],
	init T,
	f parfold.ErrCombiner[T, C],
	ctx C,
	opts ...parfold.Option,
) (result T, err error) {
	cfg := parfold.NewConfig(opts...)
	blocks, err := plan(seq, cfg)
	if err != nil {
		return
	}
	partials := make([]T, len(blocks))
	errs := make([]error, len(blocks))
	panics := make([]any, len(blocks))
	var g errgroup.Group
	for i, block := range blocks {
		g.Go(func() error {
			defer func() {
				if p := recover(); p != nil {
					panics[i] = internal.WrapPanic(p)
				}
			}()
			acc := init
			for j := block.Low; j < block.High; j++ {
				if err := f(seq.At(j), &acc, ctx); err != nil {
					errs[i] = parfold.CombinerError{Slot: i, Cause: err}
					return errs[i]
				}
			}
			partials[i] = acc
			return nil
		})
	}
	// Wait reports the failure that happened first in time; the left-most
	// one is taken from errs instead.
	failed := g.Wait() != nil
	if p := internal.FirstPanic(panics); p != nil {
		cfg.Logger.Error().Interface("panic", p).Msg("worker failed")
		panic(p)
	}
	if failed {
		for _, e := range errs {
			if e != nil {
				cfg.Logger.Error().Err(e).Msg("worker failed")
				return result, e
			}
		}
	}
	cfg.Logger.Debug().Int("partials", len(partials)).Msg("merging")
	acc := init
	for i, partial := range partials {
		if e := f(partial, &acc, ctx); e != nil {
			err = parfold.CombinerError{Slot: i, Merge: true, Cause: e}
			cfg.Logger.Error().Err(err).Msg("merge failed")
			return result, err
		}
	}
	return acc, nil
}
