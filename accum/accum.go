// Package accum provides accumulator types for the zero-seeded reductions of
// the parallel and sequential packages. Every type implements
// parfold.Zeroer, and every combining function is generic in its context
// type, which it ignores unless documented otherwise.
package accum

import (
	"gonum.org/v1/gonum/floats"

	"github.com/exascience/parfold"
)

// A Pair holds two numbers that are accumulated independently.
type Pair[A, B parfold.Number] struct {
	First  A
	Second B
}

// Zero returns the pair (0, 0).
func (Pair[A, B]) Zero() Pair[A, B] { return Pair[A, B]{} }

// WeightedSum adds elem to acc, scaling each component by the corresponding
// component of the weights w.
//
// Used as the merge step of a reduction, WeightedSum scales the partial
// results again. Use AddPair as the merger in that case.
func WeightedSum[A, B parfold.Number](elem Pair[A, B], acc *Pair[A, B], w Pair[A, B]) {
	acc.First += elem.First * w.First
	acc.Second += elem.Second * w.Second
}

// AddPair adds p to acc component-wise.
func AddPair[A, B parfold.Number](p Pair[A, B], acc *Pair[A, B]) {
	acc.First += p.First
	acc.Second += p.Second
}

// AddPairs is AddPair as a combining function.
func AddPairs[A, B parfold.Number, C any](elem Pair[A, B], acc *Pair[A, B], _ C) {
	AddPair(elem, acc)
}

// Moments accumulates the count, sum, and sum of squares of a series of
// observations.
type Moments struct {
	Count, Sum, SumSq float64
}

// Zero returns the moments of no observations.
func (Moments) Zero() Moments { return Moments{} }

// Observation returns the moments of the single observation x.
func Observation(x float64) Moments {
	return Moments{Count: 1, Sum: x, SumSq: x * x}
}

// AddMoments adds the moments elem to acc.
func AddMoments[C any](elem Moments, acc *Moments, _ C) {
	acc.Count += elem.Count
	acc.Sum += elem.Sum
	acc.SumSq += elem.SumSq
}

// Mean returns the mean of the observations, or NaN if there are none.
func (m Moments) Mean() float64 {
	return m.Sum / m.Count
}

// Variance returns the unbiased sample variance of the observations, or NaN
// or ±Inf if there are fewer than two.
func (m Moments) Variance() float64 {
	return (m.SumSq - m.Sum*m.Sum/m.Count) / (m.Count - 1)
}

type observations []float64

func (o observations) Len() int { return len(o) }

func (o observations) At(i int) Moments { return Observation(o[i]) }

// Observations presents xs as a sequence of single-observation moments.
func Observations(xs []float64) parfold.Sequence[Moments] {
	return observations(xs)
}

// A Vector is a dense vector that is accumulated element-wise.
type Vector []float64

// Zero returns the nil vector, which adopts the length of the first vector
// added to it.
func (Vector) Zero() Vector { return nil }

// AddVectors adds elem to acc element-wise. A nil acc becomes a copy of elem.
// AddVectors panics if the lengths differ.
func AddVectors[C any](elem Vector, acc *Vector, _ C) {
	if elem == nil {
		return
	}
	if *acc == nil {
		*acc = append(Vector(nil), elem...)
		return
	}
	floats.Add(*acc, elem)
}
