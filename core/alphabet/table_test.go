package alphabet

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	apperrors "github.com/FocuswithJustin/ecoji/core/errors"
)

// buildTable renders a table with n CJK symbols starting at U+4E00.
func buildTable(header string, n int) string {
	var b strings.Builder
	b.WriteString("# test table\n")
	b.WriteString(header)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%x\n", 0x4E00+i)
	}
	return b.String()
}

const validHeader = "padding 2615\npadding4 269c 1f3cd 1f4d1 1f64b\n"

func TestParseValid(t *testing.T) {
	v, err := Parse(1, "test.txt", []byte(buildTable(validHeader, Size)))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if v.Number() != 1 {
		t.Errorf("Number() = %d, want 1", v.Number())
	}
	if v.Padding() != 0x2615 {
		t.Errorf("Padding() = U+%04X, want U+2615", v.Padding())
	}
	if v.Padding4(3) != 0x1F64B {
		t.Errorf("Padding4(3) = U+%04X, want U+1F64B", v.Padding4(3))
	}
	if v.Symbol(1023) != 0x4E00+1023 {
		t.Errorf("Symbol(1023) = U+%04X", v.Symbol(1023))
	}
	if idx, ok := v.IndexOf(0x4E00 + 7); !ok || idx != 7 {
		t.Errorf("IndexOf() = %d, %v; want 7, true", idx, ok)
	}
}

func TestParseAcceptsUppercaseAndTrailingComments(t *testing.T) {
	table := buildTable("padding 2615 # hot beverage\nPADDING4 269C 1F3CD 1F4D1 1F64B\n", Size)
	// Keywords are lowercase only.
	if _, err := Parse(1, "upper.txt", []byte(table)); err == nil {
		t.Fatal("Parse() accepted uppercase keyword")
	}

	table = buildTable("padding 2615 # hot beverage\npadding4 269C 1F3CD 1F4D1 1F64B\n", Size)
	v, err := Parse(1, "upper.txt", []byte(table))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if v.Padding4(0) != 0x269C {
		t.Errorf("Padding4(0) = U+%04X, want U+269C", v.Padding4(0))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		table string
	}{
		{"too few symbols", buildTable(validHeader, Size-1)},
		{"too many symbols", buildTable(validHeader, Size+1)},
		{"missing padding", buildTable("padding4 269c 1f3cd 1f4d1 1f64b\n", Size)},
		{"missing padding4", buildTable("padding 2615\n", Size)},
		{"duplicate padding", buildTable(validHeader+"padding 2614\n", Size)},
		{"duplicate padding4", buildTable(validHeader+"padding4 1 2 3 4\n", Size)},
		{"short padding4", buildTable("padding 2615\npadding4 269c 1f3cd\n", Size)},
		{"padding reused as numbered padding", buildTable("padding 2615\npadding4 2615 1f3cd 1f4d1 1f64b\n", Size)},
		{"padding reused as symbol", buildTable("padding 4e00\npadding4 269c 1f3cd 1f4d1 1f64b\n", Size)},
		{"surrogate", strings.Replace(buildTable(validHeader, Size), "4e00\n", "d800\n", 1)},
		{"out of range", strings.Replace(buildTable(validHeader, Size), "4e00\n", "110000\n", 1)},
		{"garbage token", strings.Replace(buildTable(validHeader, Size), "4e00\n", "zz\n", 1)},
		{"duplicate symbol", strings.Replace(buildTable(validHeader, Size), "4e01\n", "4e00\n", 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(1, "bad.txt", []byte(tt.table))
			if err == nil {
				t.Fatal("Parse() expected error, got nil")
			}
			var parseErr *apperrors.ParseError
			var valErr *apperrors.ValidationError
			if !errors.As(err, &parseErr) && !errors.As(err, &valErr) {
				t.Errorf("Parse() error = %T %v, want ParseError or ValidationError", err, err)
			}
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse() did not panic on an empty table")
		}
	}()
	MustParse(1, "empty.txt", nil)
}
