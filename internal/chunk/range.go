package chunk

import (
	"fmt"
	"math"

	"github.com/aryankumar/chunkflow/internal/util"
	"golang.org/x/exp/constraints"
)

// Range is a normalized index space {Begin, End, Step}.
// Element p of the range, for p in [0, Len()), is Begin + p*Step.
type Range[I constraints.Integer] struct {
	Begin I
	End   I
	Step  I
}

// NewRange validates and returns a Range.
// A zero step, or a step whose sign points away from End, is rejected with
// an error matching util.ErrInvalidRange.
func NewRange[I constraints.Integer](begin, end, step I) (Range[I], error) {
	r := Range[I]{Begin: begin, End: end, Step: step}
	if err := r.Validate(); err != nil {
		return Range[I]{}, err
	}
	return r, nil
}

// Validate reports whether End is reachable from Begin by non-negative multiples of Step
// and whether the element count fits in an int
func (r Range[I]) Validate() error {
	var zero I
	switch {
	case r.Step == zero:
		return util.NewRangeError("step", r.Step, "must not be zero")
	case r.Begin < r.End && r.Step < zero:
		return util.NewRangeError("step", r.Step, fmt.Sprintf("negative step cannot reach %v from %v", r.End, r.Begin))
	case r.Begin > r.End && r.Step > zero:
		return util.NewRangeError("step", r.Step, fmt.Sprintf("positive step cannot reach %v from %v", r.End, r.Begin))
	case r.span() > math.MaxInt:
		return util.NewRangeError("end", r.End, fmt.Sprintf("range from %v by %v has more than %d elements", r.Begin, r.Step, math.MaxInt))
	}
	return nil
}

// Len returns max(0, ceil((End-Begin)/Step)).
// Invalid ranges, including those too long for an int, have length zero.
func (r Range[I]) Len() int {
	n := r.span()
	if n > math.MaxInt {
		return 0
	}
	return int(n)
}

// span counts the elements in uint64 so the distance cannot wrap in I.
// Converting a signed I sign-extends, and the subtraction is exact mod 2^64.
func (r Range[I]) span() uint64 {
	var zero I
	var d, s uint64
	switch {
	case r.Step > zero && r.End > r.Begin:
		d = uint64(r.End) - uint64(r.Begin)
		s = uint64(r.Step)
	case r.Step < zero && r.Begin > r.End:
		d = uint64(r.Begin) - uint64(r.End)
		s = -uint64(r.Step)
	default:
		return 0
	}

	n := d / s
	if d%s != 0 {
		n++
	}
	return n
}

// At maps a position in [0, Len()) to its element
func (r Range[I]) At(pos int) I {
	return r.Begin + I(pos)*r.Step
}

// String implements fmt.Stringer
func (r Range[I]) String() string {
	return fmt.Sprintf("[%v, %v) step %v", r.Begin, r.End, r.Step)
}

// Chunk is a half-open run of positions [Start, Stop) within a Range
type Chunk struct {
	Start int `json:"start" yaml:"start"`
	Stop  int `json:"stop" yaml:"stop"`
}

// Len returns the number of positions in the chunk
func (c Chunk) Len() int {
	return c.Stop - c.Start
}

// String implements fmt.Stringer
func (c Chunk) String() string {
	return fmt.Sprintf("[%d, %d)", c.Start, c.Stop)
}
