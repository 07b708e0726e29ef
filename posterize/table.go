// Package posterize reduces the number of intensity levels of an image by
// mapping every channel value through a 256-entry lookup table.
//
// The table splits [0, 255] into bins of width floor(256/n) and maps every
// value to the centre of its bin:
//
//	step     = 256 / n
//	base     = (i / step) * step
//	table[i] = clamp(base + step/2, 0, 255)
//
// When n does not divide 256 the last bin is short, so its centre can fall
// past 255 and is clamped.
package posterize

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	// MinLevels is the smallest supported level count.
	MinLevels = 1
	// MaxLevels is the largest supported level count; it yields the identity table.
	MaxLevels = 256
)

// ErrInvalidLevels is returned when a level count is outside [MinLevels, MaxLevels].
var ErrInvalidLevels = errors.New("level count out of range")

// Table maps each 8-bit input intensity to its posterized value. It is
// immutable once built and safe to share.
type Table struct {
	lut    [256]uint8
	levels int
	step   int
}

// ValidateLevels checks that n can be used to build a table.
func ValidateLevels(n int) error {
	if n < MinLevels || n > MaxLevels {
		return errors.Wrapf(ErrInvalidLevels, "levels=%d, want %d..%d", n, MinLevels, MaxLevels)
	}
	return nil
}

// BuildTable builds the quantization table for n levels.
//
// Arguments:
//   - n: The number of levels, 1..256.
//
// Returns:
//   - *Table: The lookup table.
//   - error: ErrInvalidLevels (wrapped) if n is out of range.
//
// @example
//
//	t, err := BuildTable(5)
//	// t.Map(0) == 25, t.Map(51) == 76, t.Map(255) == 255
func BuildTable(n int) (*Table, error) {
	if err := ValidateLevels(n); err != nil {
		return nil, err
	}

	step := 256 / n
	t := &Table{levels: n, step: step}
	for i := 0; i < 256; i++ {
		v := (i/step)*step + step/2
		if v > 255 {
			v = 255
		}
		t.lut[i] = uint8(v)
	}
	return t, nil
}

// MustBuildTable is like BuildTable but panics on an invalid level count.
func MustBuildTable(n int) *Table {
	t, err := BuildTable(n)
	if err != nil {
		panic(err)
	}
	return t
}

// Map returns the posterized value for v.
func (t *Table) Map(v uint8) uint8 {
	return t.lut[v]
}

// Levels returns the level count the table was built from.
func (t *Table) Levels() int {
	return t.levels
}

// Step returns the bin width, floor(256/levels).
func (t *Table) Step() int {
	return t.step
}

// Bin returns the index of the bin holding v.
func (t *Table) Bin(v uint8) int {
	return int(v) / t.step
}

// LUT returns a copy of the 256 table entries.
func (t *Table) LUT() [256]uint8 {
	return t.lut
}

// Values returns the distinct output values in ascending order. This can be
// one more than Levels when the last bin is short (e.g. six values for n=5).
func (t *Table) Values() []uint8 {
	values := make([]uint8, 0, t.levels+1)
	for i, v := range t.lut {
		if i == 0 || v != t.lut[i-1] {
			values = append(values, v)
		}
	}
	return values
}

// String summarises the table for logging.
func (t *Table) String() string {
	return fmt.Sprintf("Table{levels=%d step=%d values=%v}", t.levels, t.step, t.Values())
}
