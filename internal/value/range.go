package value

import (
	"fmt"

	"github.com/go-ascript/ascript/internal/diag"
)

// Range is an immutable arithmetic sequence {begin, end, step}, step != 0.
// Length is floor((end-begin)/step) + 1, clamped to zero if negative.
type Range struct {
	unsupported
	Begin, End, Step int32
}

// NewRange constructs a Range, rejecting step == 0 at construction per the
// invariant in the data model.
func NewRange(begin, end, step int32) (*Range, error) {
	if step == 0 {
		return nil, diag.New(diag.KindTypeMismatch, "range step must not be zero")
	}
	return &Range{unsupported: unsupported{kind: "Range"}, Begin: begin, End: end, Step: step}, nil
}

func (*Range) Type() string { return "Range" }

func (r *Range) Print() string {
	if r.Step == 1 {
		return fmt.Sprintf("[%d..%d]", r.Begin, r.End)
	}
	return fmt.Sprintf("[%d..%d..%d]", r.Begin, r.End, r.Step)
}

func (r *Range) Length() (int, error) {
	d, s := int(r.End)-int(r.Begin), int(r.Step)
	q := d / s
	if d%s != 0 && (d < 0) != (s < 0) {
		q-- // Go's / truncates toward zero; round down instead
	}
	n := q + 1
	if n < 0 {
		n = 0
	}
	return n, nil
}

func (r *Range) At(i int) (Value, error) {
	n, _ := r.Length()
	if i < 0 || i >= n {
		return nil, indexOutOfRange(i, n)
	}
	return NewInt(r.Begin + r.Step*int32(i)), nil
}

func indexOutOfRange(i, length int) error {
	return diag.New(diag.KindIndexOutOfRange, "index %d out of range [0,%d)", i, length)
}
