package parfold

type (
	// A Sequence is a finite ordered collection of elements with positional
	// access. A Sequence must not be modified while a reduction reads it.
	Sequence[T any] interface {
		Len() int
		At(i int) T
	}

	// A Combiner folds one element into an accumulator in place. The same
	// Combiner is used to fold partial accumulators into the final
	// accumulator. The context value ctx is passed unchanged to every
	// invocation and is shared by all workers, so it must only be read.
	Combiner[T, C any] func(elem T, acc *T, ctx C)

	// A Merger folds one partial accumulator into the final accumulator,
	// for reductions whose per-element rule differs from the rule that
	// combines partial results.
	Merger[T any] func(partial T, acc *T)

	// An ErrCombiner is a Combiner that can fail.
	ErrCombiner[T, C any] func(elem T, acc *T, ctx C) error

	// A Zeroer provides the additive identity for its type. User-defined
	// accumulator types implement Zeroer to be usable with the zero-seeded
	// reductions. Zero is called on the zero value of the type.
	Zeroer[T any] interface {
		Zero() T
	}

	// Number is the set of built-in numeric types whose zero value is the
	// additive identity.
	Number interface {
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
			~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
			~float32 | ~float64
	}
)

// Slice adapts a Go slice to a Sequence.
type Slice[T any] []T

// Len returns the length of the slice.
func (s Slice[T]) Len() int { return len(s) }

// At returns the element at position i.
func (s Slice[T]) At(i int) T { return s[i] }

type window[T any] struct {
	seq        Sequence[T]
	begin, end int
}

// Window returns the positional view [begin, end) of seq. The bounds are not
// checked here; a reduction over a window whose bounds are out of order or
// exceed seq fails with a RangeError before any work starts.
func Window[T any](seq Sequence[T], begin, end int) Sequence[T] {
	return window[T]{seq: seq, begin: begin, end: end}
}

func (w window[T]) Len() int { return w.end - w.begin }

func (w window[T]) At(i int) T { return w.seq.At(w.begin + i) }

func (w window[T]) validate() error {
	if w.begin < 0 || w.end < w.begin {
		return RangeError{Begin: w.begin, End: w.end}
	}
	if n, err := Length(w.seq); err != nil {
		return err
	} else if w.end > n {
		return RangeError{Begin: w.begin, End: w.end}
	}
	return nil
}

// Length returns the number of elements in seq, or a RangeError if the length
// cannot be determined. A nil Sequence has length 0.
func Length[T any](seq Sequence[T]) (int, error) {
	if seq == nil {
		return 0, nil
	}
	if w, ok := seq.(window[T]); ok {
		if err := w.validate(); err != nil {
			return 0, err
		}
	}
	n := seq.Len()
	if n < 0 {
		return 0, RangeError{Begin: 0, End: n}
	}
	return n, nil
}
