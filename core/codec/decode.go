package codec

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/FocuswithJustin/ecoji/core/alphabet"
	"github.com/FocuswithJustin/ecoji/core/errors"
)

// decodeState records which alphabet a Decoder is reading with.
type decodeState int

const (
	usingPrimary decodeState = iota
	usingFallback
)

// Decoder reads Ecoji text from a UTF-8 stream.
//
// A Decoder starts with its Encoding's alphabet. The first code point that
// is not part of that alphabet switches it, once, to the sibling version for
// the rest of the stream; a code point outside the sibling too is an error.
// This lets one decoder read output of either version.
type Decoder struct {
	primary    *alphabet.Version
	state      decodeState
	switchedAt int64
	src        *scalarReader
}

// NewDecoder returns a Decoder reading Ecoji text from src.
func (e *Encoding) NewDecoder(src io.Reader) *Decoder {
	return &Decoder{
		primary:    e.alphabet,
		switchedAt: -1,
		src:        newScalarReader(src),
	}
}

// Active returns the alphabet the decoder is currently reading with.
func (d *Decoder) Active() *alphabet.Version {
	if d.state == usingFallback {
		return d.primary.Sibling()
	}
	return d.primary
}

// SwitchedAt returns the byte offset of the code point that made the decoder
// fall back to the sibling alphabet, or -1 if it has not switched.
func (d *Decoder) SwitchedAt() int64 {
	return d.switchedAt
}

// check accepts c if it belongs to the active alphabet, falling back to the
// sibling alphabet the first time it does not.
func (d *Decoder) check(c rune, off int64) error {
	if d.Active().IsAlphabetSymbol(c) {
		return nil
	}
	if d.state == usingPrimary {
		d.state = usingFallback
		d.switchedAt = off
		if d.Active().IsAlphabetSymbol(c) {
			return nil
		}
	}
	return errors.NewInvalidSymbol(c, off)
}

// readGroup reads up to 4 code points. It returns ok=false at a clean end of
// input. A group may end early only right after a padding symbol.
func (d *Decoder) readGroup() (chars [4]rune, ok bool, err error) {
	c, off, err := d.src.next()
	if err == io.EOF {
		return chars, false, nil
	}
	if err != nil {
		return chars, false, err
	}
	if err := d.check(c, off); err != nil {
		return chars, false, err
	}
	chars[0] = c

	lastWasPadding := false
	for i := 1; i < len(chars); i++ {
		c, off, err := d.src.next()
		if err == io.EOF {
			if !lastWasPadding {
				return chars, false, errors.NewTruncatedGroup(i)
			}
			break
		}
		if err != nil {
			return chars, false, err
		}
		if err := d.check(c, off); err != nil {
			return chars, false, err
		}
		lastWasPadding = d.Active().IsPadding(c)
		chars[i] = c
	}
	return chars, true, nil
}

// decodeGroup reassembles the bytes of one group into out and returns how
// many of them are data.
func decodeGroup(v *alphabet.Version, chars [4]rune, out *[5]byte) int {
	index := func(c rune) uint32 {
		i, _ := v.IndexOf(c)
		return uint32(i)
	}

	bits1, bits2, bits3 := index(chars[0]), index(chars[1]), index(chars[2])
	numbered, isNumbered := v.NumberedPadding(chars[3])
	var bits4 uint32
	if isNumbered {
		bits4 = uint32(numbered) << 8
	} else {
		bits4 = index(chars[3])
	}

	out[0] = byte(bits1 >> 2)
	out[1] = byte((bits1&0x3)<<6 | bits2>>4)
	out[2] = byte((bits2&0xf)<<4 | bits3>>6)
	out[3] = byte((bits3&0x3f)<<2 | bits4>>8)
	out[4] = byte(bits4 & 0xff)

	switch {
	case chars[1] == v.Padding():
		return 1
	case chars[2] == v.Padding():
		return 2
	case chars[3] == v.Padding():
		return 3
	case isNumbered:
		return 4
	}
	return 5
}

// WriteTo decodes the whole stream into dst and returns the number of bytes
// written. It implements io.WriterTo.
func (d *Decoder) WriteTo(dst io.Writer) (int64, error) {
	var (
		out     [5]byte
		written int64
	)
	for {
		chars, ok, err := d.readGroup()
		if err != nil {
			return written, err
		}
		if !ok {
			return written, nil
		}
		n := decodeGroup(d.Active(), chars, &out)
		w, err := dst.Write(out[:n])
		written += int64(w)
		if err != nil {
			return written, errors.NewIO("write", "", err)
		}
	}
}

// Decode reads Ecoji text from src to the end and writes the decoded bytes
// to dst. It returns the number of bytes written to dst.
//
// Decoding fails with ErrInvalidData for malformed UTF-8 or a code point
// outside both alphabets, and with ErrUnexpectedEOF when the last group is
// short and not terminated by padding.
func (e *Encoding) Decode(dst io.Writer, src io.Reader) (int, error) {
	n, err := e.NewDecoder(src).WriteTo(dst)
	return int(n), err
}

// DecodeToBytes decodes all of src and returns the result.
func (e *Encoding) DecodeToBytes(src io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := e.Decode(&buf, src); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeString returns the bytes represented by the Ecoji text s.
func (e *Encoding) DecodeString(s string) ([]byte, error) {
	return e.DecodeToBytes(strings.NewReader(s))
}

// DecodeToString decodes s and returns the result as a string. In addition
// to the Decode failures it returns ErrInvalidData if the decoded bytes are
// not valid UTF-8.
func (e *Encoding) DecodeToString(s string) (string, error) {
	out, err := e.DecodeString(s)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(out) {
		return "", &errors.ValidationError{
			Field:   "output",
			Message: "decoded data is not valid UTF-8",
			Err:     errors.ErrInvalidData,
		}
	}
	return string(out), nil
}
