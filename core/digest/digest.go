// Package digest computes the content hashes used to fingerprint alphabet
// tables and self-check inputs.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"unicode/utf8"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/ecoji/core/alphabet"
	"github.com/FocuswithJustin/ecoji/core/errors"
)

// HashResult contains both SHA-256 and BLAKE3 hashes of the same data.
type HashResult struct {
	SHA256 string `json:"sha256"`
	BLAKE3 string `json:"blake3"`
}

// Hash returns the lowercase hex SHA-256 of data.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Blake3Hash returns the lowercase hex BLAKE3 (256-bit) of data.
func Blake3Hash(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Sum hashes data with both algorithms.
func Sum(data []byte) *HashResult {
	return &HashResult{
		SHA256: Hash(data),
		BLAKE3: Blake3Hash(data),
	}
}

// SumReader hashes everything read from r with both algorithms.
func SumReader(r io.Reader) (*HashResult, error) {
	s := sha256.New()
	b := blake3.New()
	if _, err := io.Copy(io.MultiWriter(s, b), r); err != nil {
		return nil, errors.NewIO("read", "", err)
	}
	return &HashResult{
		SHA256: hex.EncodeToString(s.Sum(nil)),
		BLAKE3: hex.EncodeToString(b.Sum(nil)),
	}, nil
}

// TableBytes returns the canonical form of an alphabet that Table hashes:
// the UTF-8 of the generic padding, the four numbered paddings, then the
// 1024 symbols in index order.
func TableBytes(v *alphabet.Version) []byte {
	buf := make([]byte, 0, (alphabet.Size+5)*4)
	buf = utf8.AppendRune(buf, v.Padding())
	for i := 0; i < 4; i++ {
		buf = utf8.AppendRune(buf, v.Padding4(i))
	}
	for _, r := range v.Symbols() {
		buf = utf8.AppendRune(buf, r)
	}
	return buf
}

// Table fingerprints an alphabet. Two versions with the same symbols at the
// same indices and the same padding have the same fingerprint.
func Table(v *alphabet.Version) *HashResult {
	return Sum(TableBytes(v))
}
