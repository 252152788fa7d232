package codec

import (
	"bufio"
	"io"
	"unicode/utf8"

	"github.com/FocuswithJustin/ecoji/core/errors"
)

// scalarReader yields Unicode scalar values from a UTF-8 byte stream and
// tracks the byte offset of each one for error reporting.
type scalarReader struct {
	rr     io.RuneReader
	offset int64
}

func newScalarReader(r io.Reader) *scalarReader {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	return &scalarReader{rr: rr}
}

// next returns the next scalar and its byte offset. It returns io.EOF at the
// end of the stream and an InvalidEncodingError for malformed UTF-8.
func (s *scalarReader) next() (rune, int64, error) {
	r, size, err := s.rr.ReadRune()
	if err != nil {
		if err == io.EOF {
			return 0, s.offset, io.EOF
		}
		return 0, s.offset, errors.NewIO("read", "", err)
	}
	at := s.offset
	s.offset += int64(size)
	// A genuine U+FFFD is three bytes long; a one-byte RuneError is malformed input.
	if r == utf8.RuneError && size == 1 {
		return 0, at, errors.NewInvalidEncoding(at)
	}
	return r, at, nil
}
