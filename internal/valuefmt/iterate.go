package valuefmt

import (
	"fmt"
	"iter"
)

// IterateFrom yields every element of seq exactly once, starting at
// start and wrapping around to the beginning. Negative starts count from
// the end, so start and start-len(seq) produce the same rotation.
//
// start must lie in [-len(seq), len(seq)-1]; anything else panics
// immediately rather than being clamped.
func IterateFrom[T any](seq []T, start int) iter.Seq2[int, T] {
	length := len(seq)
	if start < 0 {
		start += length
	}
	if start < 0 || start >= length {
		panic(fmt.Sprintf("valuefmt: start %d outside the half interval [0, %d)", start, length))
	}
	return func(yield func(int, T) bool) {
		for i := 0; i < length; i++ {
			idx := (start + i) % length
			if !yield(idx, seq[idx]) {
				return
			}
		}
	}
}
