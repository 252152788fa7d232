package alphabet

import (
	"errors"
	"testing"

	apperrors "github.com/FocuswithJustin/ecoji/core/errors"
)

func TestMapping(t *testing.T) {
	for _, v := range All() {
		t.Run(v.String(), func(t *testing.T) {
			if got := v.Len(); got != Size {
				t.Fatalf("reverse has %d entries, want %d", got, Size)
			}
			seen := make(map[rune]int, Size)
			for i := 0; i < Size; i++ {
				c := v.Symbol(i)
				if prev, dup := seen[c]; dup {
					t.Fatalf("symbol U+%04X at %d duplicates index %d", c, i, prev)
				}
				seen[c] = i
				idx, ok := v.IndexOf(c)
				if !ok || idx != i {
					t.Errorf("IndexOf(Symbol(%d)) = %d, %v; want %d, true", i, idx, ok, i)
				}
			}
		})
	}
}

func TestPaddingDisjoint(t *testing.T) {
	for _, v := range All() {
		t.Run(v.String(), func(t *testing.T) {
			pads := []rune{v.Padding(), v.Padding4(0), v.Padding4(1), v.Padding4(2), v.Padding4(3)}
			distinct := make(map[rune]bool)
			for _, p := range pads {
				if distinct[p] {
					t.Errorf("padding U+%04X declared twice", p)
				}
				distinct[p] = true
				if _, ok := v.IndexOf(p); ok {
					t.Errorf("IndexOf(U+%04X) found a padding symbol", p)
				}
				if !v.IsPadding(p) {
					t.Errorf("IsPadding(U+%04X) = false", p)
				}
				if !v.IsAlphabetSymbol(p) {
					t.Errorf("IsAlphabetSymbol(U+%04X) = false", p)
				}
			}
			for i := 0; i < 4; i++ {
				n, ok := v.NumberedPadding(v.Padding4(i))
				if !ok || n != i {
					t.Errorf("NumberedPadding(Padding4(%d)) = %d, %v", i, n, ok)
				}
			}
			if _, ok := v.NumberedPadding(v.Padding()); ok {
				t.Error("generic padding reported as numbered padding")
			}
		})
	}
}

func TestKnownSymbols(t *testing.T) {
	tests := []struct {
		name  string
		v     *Version
		index int
		want  rune
	}{
		{"v1 first", V1, 0, '🀄'},
		{"v1 regional indicator", V1, 29, '🇲'},
		{"v1 balloon", V1, 192, '🎈'},
		{"v1 jeans", V1, 389, '👖'},
		{"v1 baby", V1, 421, '👶'},
		{"v1 camera", V1, 550, '📸'},
		{"v1 bald", V1, 1007, '🦲'},
		{"v1 last", V1, 1023, '🧕'},
		{"v2 balloon", V2, 192, '🎈'},
		{"v2 jeans", V2, 389, '👖'},
		{"v2 camera", V2, 550, '📸'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Symbol(tt.index); got != tt.want {
				t.Errorf("Symbol(%d) = %c (U+%04X), want %c", tt.index, got, got, tt.want)
			}
		})
	}
}

func TestPaddingSymbols(t *testing.T) {
	tests := []struct {
		v        *Version
		padding  rune
		numbered [4]rune
	}{
		{V1, '☕', [4]rune{'⚜', '🏍', '📑', '🙋'}},
		{V2, '☕', [4]rune{'🥷', '🛼', '📑', '🙋'}},
	}

	for _, tt := range tests {
		t.Run(tt.v.String(), func(t *testing.T) {
			if got := tt.v.Padding(); got != tt.padding {
				t.Errorf("Padding() = %c, want %c", got, tt.padding)
			}
			for i, want := range tt.numbered {
				if got := tt.v.Padding4(i); got != want {
					t.Errorf("Padding4(%d) = %c, want %c", i, got, want)
				}
			}
		})
	}
}

func TestVersionsShareIndices(t *testing.T) {
	// A symbol present in both alphabets must carry the same value in both,
	// otherwise a decoder could misread data before it falls back.
	for i := 0; i < Size; i++ {
		c := V1.Symbol(i)
		if j, ok := V2.IndexOf(c); ok && j != i {
			t.Errorf("U+%04X is %d in v1 but %d in v2", c, i, j)
		}
	}
}

func TestRegionalIndicatorsOnlyInV1(t *testing.T) {
	for r := rune(0x1F1E6); r <= 0x1F1FF; r++ {
		if !V1.IsAlphabetSymbol(r) {
			t.Errorf("v1 missing regional indicator U+%04X", r)
		}
		if V2.IsAlphabetSymbol(r) {
			t.Errorf("v2 contains regional indicator U+%04X", r)
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		number  int
		want    *Version
		wantErr bool
	}{
		{1, V1, false},
		{2, V2, false},
		{0, nil, true},
		{3, nil, true},
	}

	for _, tt := range tests {
		got, err := Lookup(tt.number)
		if tt.wantErr {
			if !errors.Is(err, apperrors.ErrUnsupported) {
				t.Errorf("Lookup(%d) error = %v, want ErrUnsupported", tt.number, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Lookup(%d) unexpected error: %v", tt.number, err)
		}
		if got != tt.want {
			t.Errorf("Lookup(%d) = %v, want %v", tt.number, got, tt.want)
		}
	}
}

func TestSibling(t *testing.T) {
	if V1.Sibling() != V2 {
		t.Error("V1.Sibling() != V2")
	}
	if V2.Sibling() != V1 {
		t.Error("V2.Sibling() != V1")
	}
	if V1.ElidesPadding() {
		t.Error("V1.ElidesPadding() = true")
	}
	if !V2.ElidesPadding() {
		t.Error("V2.ElidesPadding() = false")
	}
}

func TestSymbolsIsCopy(t *testing.T) {
	syms := V1.Symbols()
	if len(syms) != Size {
		t.Fatalf("len(Symbols()) = %d", len(syms))
	}
	syms[0] = 'x'
	if V1.Symbol(0) == 'x' {
		t.Error("Symbols() exposed the internal table")
	}
}

func TestNonMembers(t *testing.T) {
	for _, r := range []rune{0, 'a', ' ', '�', 0x10FFFF} {
		for _, v := range All() {
			if v.IsAlphabetSymbol(r) {
				t.Errorf("%s.IsAlphabetSymbol(U+%04X) = true", v, r)
			}
			if _, ok := v.IndexOf(r); ok {
				t.Errorf("%s.IndexOf(U+%04X) found", v, r)
			}
		}
	}
}
