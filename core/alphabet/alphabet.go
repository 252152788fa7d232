// Package alphabet provides the fixed Ecoji symbol tables.
//
// Each alphabet version maps the 1024 values of a 10-bit field to a single
// emoji code point and reserves five more code points for padding: one
// generic padding symbol and four numbered padding symbols that carry the two
// residual bits of a 4-byte final chunk.
//
// The tables are parsed once from embedded data at package initialisation and
// never change afterwards, so a *Version is safe for concurrent use.
package alphabet

import (
	_ "embed"
	"fmt"

	"github.com/FocuswithJustin/ecoji/core/errors"
)

// Size is the number of real symbols in every alphabet version.
const Size = 1024

//go:embed data/v1.txt
var v1Table []byte

//go:embed data/v2.txt
var v2Table []byte

var (
	// V1 is the original Ecoji alphabet. Encoders always emit four symbols
	// per group.
	V1 = MustParse(1, "data/v1.txt", v1Table)
	// V2 is the revised alphabet. Encoders stop a group after its first
	// padding symbol.
	V2 = MustParse(2, "data/v2.txt", v2Table)
)

// Version is one immutable alphabet: forward table, reverse index and padding.
type Version struct {
	number   int
	padding  rune
	padding4 [4]rune
	symbols  [Size]rune
	reverse  map[rune]uint16
}

// Lookup returns the alphabet with the given version number.
func Lookup(number int) (*Version, error) {
	switch number {
	case 1:
		return V1, nil
	case 2:
		return V2, nil
	}
	return nil, errors.NewUnsupported("alphabet version", fmt.Sprintf("%d (want 1 or 2)", number))
}

// All returns every built-in alphabet in version order.
func All() []*Version {
	return []*Version{V1, V2}
}

// Number returns the version tag.
func (v *Version) Number() int {
	return v.number
}

// String implements fmt.Stringer.
func (v *Version) String() string {
	return fmt.Sprintf("v%d", v.number)
}

// ElidesPadding reports whether encoders stop a group after the first
// padding symbol instead of always writing four symbols.
func (v *Version) ElidesPadding() bool {
	return v.number >= 2
}

// Sibling returns the other built-in alphabet, used by decoders to fall
// back when input was produced with a different version.
func (v *Version) Sibling() *Version {
	if v.number == 1 {
		return V2
	}
	return V1
}

// Symbol returns the symbol for a 10-bit value. It panics if i is outside
// 0..1023.
func (v *Version) Symbol(i int) rune {
	return v.symbols[i]
}

// Symbols returns a copy of the forward table.
func (v *Version) Symbols() []rune {
	out := make([]rune, Size)
	copy(out, v.symbols[:])
	return out
}

// Padding returns the generic padding symbol.
func (v *Version) Padding() rune {
	return v.padding
}

// Padding4 returns numbered padding symbol i (0..3).
func (v *Version) Padding4(i int) rune {
	return v.padding4[i]
}

// IsPadding reports whether r is the generic padding or one of the numbered
// paddings.
func (v *Version) IsPadding(r rune) bool {
	if r == v.padding {
		return true
	}
	_, ok := v.NumberedPadding(r)
	return ok
}

// NumberedPadding returns the index of r among the numbered paddings.
func (v *Version) NumberedPadding(r rune) (int, bool) {
	for i, p := range v.padding4 {
		if r == p {
			return i, true
		}
	}
	return 0, false
}

// IsAlphabetSymbol reports whether r is a real symbol or a padding symbol
// of this version.
func (v *Version) IsAlphabetSymbol(r rune) bool {
	if _, ok := v.reverse[r]; ok {
		return true
	}
	return v.IsPadding(r)
}

// IndexOf returns the 10-bit value of a real symbol. Padding symbols are not
// found; callers check them separately.
func (v *Version) IndexOf(r rune) (int, bool) {
	i, ok := v.reverse[r]
	return int(i), ok
}

// Len returns the number of entries in the reverse index.
func (v *Version) Len() int {
	return len(v.reverse)
}
