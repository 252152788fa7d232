// Package codec implements the Ecoji binary-to-emoji encoding.
//
// Every 5 input bytes (40 bits) become 4 symbols of 10 bits each, drawn from
// an alphabet.Version. A short final chunk is completed with padding
// symbols; a 4-byte final chunk uses one of four numbered padding symbols to
// carry its 2 residual bits.
//
// Encode and Decode stream their input and write each group as soon as it is
// complete. When an error occurs, output already written for earlier groups
// stays in the destination.
package codec

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/FocuswithJustin/ecoji/core/alphabet"
	"github.com/FocuswithJustin/ecoji/core/errors"
)

// Encoding is an Ecoji codec bound to one alphabet version.
// It holds no mutable state and is safe for concurrent use.
type Encoding struct {
	alphabet *alphabet.Version
}

// NewEncoding returns an Encoding that encodes with v.
func NewEncoding(v *alphabet.Version) *Encoding {
	return &Encoding{alphabet: v}
}

var (
	// StdEncoding encodes with alphabet version 1.
	StdEncoding = NewEncoding(alphabet.V1)
	// V2Encoding encodes with alphabet version 2.
	V2Encoding = NewEncoding(alphabet.V2)
)

// For returns the built-in Encoding for an alphabet version number.
func For(version int) (*Encoding, error) {
	v, err := alphabet.Lookup(version)
	if err != nil {
		return nil, err
	}
	if v == alphabet.V1 {
		return StdEncoding, nil
	}
	return V2Encoding, nil
}

// Alphabet returns the alphabet used for encoding.
func (e *Encoding) Alphabet() *alphabet.Version {
	return e.alphabet
}

// encodeChunk appends the UTF-8 symbols for a chunk of 1 to 5 bytes to dst.
func (e *Encoding) encodeChunk(dst []byte, s []byte) []byte {
	v := e.alphabet

	var b [5]uint16
	for i := range s {
		b[i] = uint16(s[i])
	}

	chars := [4]rune{
		v.Symbol(int(b[0]<<2 | b[1]>>6)),
		v.Padding(),
		v.Padding(),
		v.Padding(),
	}

	switch len(s) {
	case 1:
	case 2:
		chars[1] = v.Symbol(int((b[1]&0x3f)<<4 | b[2]>>4))
	case 3:
		chars[1] = v.Symbol(int((b[1]&0x3f)<<4 | b[2]>>4))
		chars[2] = v.Symbol(int((b[2]&0x0f)<<6 | b[3]>>2))
	case 4:
		chars[1] = v.Symbol(int((b[1]&0x3f)<<4 | b[2]>>4))
		chars[2] = v.Symbol(int((b[2]&0x0f)<<6 | b[3]>>2))
		chars[3] = v.Padding4(int(b[3] & 0x03))
	case 5:
		chars[1] = v.Symbol(int((b[1]&0x3f)<<4 | b[2]>>4))
		chars[2] = v.Symbol(int((b[2]&0x0f)<<6 | b[3]>>2))
		chars[3] = v.Symbol(int((b[3]&0x03)<<8 | b[4]))
	default:
		panic("codec: chunk length out of range")
	}

	for _, c := range chars {
		dst = utf8.AppendRune(dst, c)
		if v.ElidesPadding() && v.IsPadding(c) {
			break
		}
	}
	return dst
}

// Encode reads src to the end and writes its Ecoji encoding to dst as UTF-8.
// It returns the number of bytes written to dst.
//
// Encoding never rejects input; the only failures are read and write errors.
func (e *Encoding) Encode(dst io.Writer, src io.Reader) (int, error) {
	var (
		chunk   [5]byte
		group   = make([]byte, 0, 4*utf8.UTFMax)
		written int
	)

	for {
		n, err := io.ReadFull(src, chunk[:])
		if n > 0 {
			group = e.encodeChunk(group[:0], chunk[:n])
			w, werr := dst.Write(group)
			written += w
			if werr != nil {
				return written, errors.NewIO("write", "", werr)
			}
		}
		switch err {
		case nil:
		case io.EOF, io.ErrUnexpectedEOF:
			return written, nil
		default:
			return written, errors.NewIO("read", "", err)
		}
	}
}

// EncodeToString returns the Ecoji encoding of src.
func (e *Encoding) EncodeToString(src []byte) string {
	var b strings.Builder
	b.Grow(e.EncodedLen(len(src)) * 4)
	// strings.Builder never returns a write error.
	_, _ = e.Encode(&b, bytes.NewReader(src))
	return b.String()
}

// EncodedLen returns the maximum number of symbols produced for n input
// bytes. Version 1 output always has exactly this many symbols.
func (e *Encoding) EncodedLen(n int) int {
	return (n + 4) / 5 * 4
}
