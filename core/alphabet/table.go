package alphabet

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/ecoji/core/errors"
)

// tableFile represents a parsed alphabet table.
type tableFile struct {
	Entries []*tableEntry `@@*`
}

// tableEntry is a single meaningful line: a padding declaration or a symbol.
type tableEntry struct {
	Pos lexer.Position

	Padding  string   `  "padding" @Hex`
	Numbered []string `| "padding4" @Hex @Hex @Hex @Hex`
	Symbol   string   `| @Hex`
}

// tableLexer tokenizes table files. Keywords must come before Hex.
var tableLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\r\n]*`},
	{Name: "Keyword", Pattern: `padding4|padding`},
	{Name: "Hex", Pattern: `[0-9A-Fa-f]+`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

var tableParser = participle.MustBuild[tableFile](
	participle.Lexer(tableLexer),
	participle.Elide("Comment", "Whitespace"),
)

// Parse builds an alphabet from table data. name is used in error messages.
//
// The table must declare the generic padding once, the four numbered
// paddings once, and exactly 1024 symbols. All 1029 code points must be
// distinct Unicode scalar values.
func Parse(number int, name string, data []byte) (*Version, error) {
	file, err := tableParser.ParseBytes(name, data)
	if err != nil {
		return nil, &errors.ParseError{Format: "alphabet table", Path: name, Message: err.Error(), Err: err}
	}

	v := &Version{
		number:  number,
		reverse: make(map[rune]uint16, Size),
	}
	seen := make(map[rune]string, Size+5)
	claim := func(r rune, role string, pos lexer.Position) error {
		if prev, ok := seen[r]; ok {
			return &errors.ValidationError{
				Field:   fmt.Sprintf("%s:%d", name, pos.Line),
				Value:   fmt.Sprintf("%X", r),
				Message: fmt.Sprintf("U+%04X used as %s is already used as %s", r, role, prev),
			}
		}
		seen[r] = role
		return nil
	}

	var havePadding, havePadding4 bool
	count := 0
	for _, e := range file.Entries {
		switch {
		case e.Padding != "":
			if havePadding {
				return nil, errors.NewValidation(fmt.Sprintf("%s:%d", name, e.Pos.Line), "duplicate padding declaration")
			}
			r, err := parseScalar(name, e.Pos, e.Padding)
			if err != nil {
				return nil, err
			}
			if err := claim(r, "padding", e.Pos); err != nil {
				return nil, err
			}
			v.padding = r
			havePadding = true

		case len(e.Numbered) > 0:
			if havePadding4 {
				return nil, errors.NewValidation(fmt.Sprintf("%s:%d", name, e.Pos.Line), "duplicate padding4 declaration")
			}
			for i, s := range e.Numbered {
				r, err := parseScalar(name, e.Pos, s)
				if err != nil {
					return nil, err
				}
				if err := claim(r, fmt.Sprintf("padding4[%d]", i), e.Pos); err != nil {
					return nil, err
				}
				v.padding4[i] = r
			}
			havePadding4 = true

		default:
			if count == Size {
				return nil, errors.NewValidation(fmt.Sprintf("%s:%d", name, e.Pos.Line),
					fmt.Sprintf("more than %d symbols", Size))
			}
			r, err := parseScalar(name, e.Pos, e.Symbol)
			if err != nil {
				return nil, err
			}
			if err := claim(r, fmt.Sprintf("symbol %d", count), e.Pos); err != nil {
				return nil, err
			}
			v.symbols[count] = r
			v.reverse[r] = uint16(count)
			count++
		}
	}

	if !havePadding {
		return nil, errors.NewValidation(name, "missing padding declaration")
	}
	if !havePadding4 {
		return nil, errors.NewValidation(name, "missing padding4 declaration")
	}
	if count != Size {
		return nil, errors.NewValidation(name, fmt.Sprintf("got %d symbols, want %d", count, Size))
	}
	return v, nil
}

// MustParse is like Parse but panics if the table is invalid.
func MustParse(number int, name string, data []byte) *Version {
	v, err := Parse(number, name, data)
	if err != nil {
		panic(err)
	}
	return v
}

func parseScalar(name string, pos lexer.Position, s string) (rune, error) {
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, &errors.ParseError{
			Format:  "alphabet table",
			Path:    fmt.Sprintf("%s:%d", name, pos.Line),
			Message: fmt.Sprintf("bad code point %q", s),
			Err:     err,
		}
	}
	r := rune(n)
	if !utf8.ValidRune(r) {
		return 0, &errors.ParseError{
			Format:  "alphabet table",
			Path:    fmt.Sprintf("%s:%d", name, pos.Line),
			Message: fmt.Sprintf("U+%04X is not a Unicode scalar value", n),
		}
	}
	return r, nil
}
