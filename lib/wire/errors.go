package wire

import (
	"github.com/cockroachdb/errors"
	"math"
)

const (
	// NullLength is the length/count prefix value reserved for an absent string, byte slice or array.
	// It is followed by zero bytes.
	NullLength uint32 = math.MaxUint32

	// MaxLength is the largest byte length (strings, byte slices) or element count (arrays)
	// that can be encoded in a length prefix. It is an int64 so it is representable on 32-bit platforms.
	MaxLength int64 = int64(NullLength) - 1

	lengthSize = 4 // uint32 length/count prefix
)

// Error taxonomy of the wire format. Every error returned by a Writer or Reader wraps exactly one
// of these, use errors.Is to classify.
var (
	// ErrEncoding is returned when a value cannot be represented in the wire format.
	ErrEncoding = errors.New("wire: value cannot be encoded")
	// ErrBufferUnderrun is returned when a get needs more bytes than remain in the reader.
	ErrBufferUnderrun = errors.New("wire: buffer underrun")
	// ErrDecoding is returned when the bytes are not a valid encoding of the requested type.
	ErrDecoding = errors.New("wire: invalid encoding")
)

// maxLength is MaxLength, a variable so tests can exercise the limit without allocating 4GB
var maxLength = MaxLength

// checkSize returns ErrEncoding if n elements of size bytes do not fit into an int
func checkSize(n, size int, what string) error {
	if need := int64(n) * int64(size); need > int64(math.MaxInt) {
		return errors.Wrapf(ErrEncoding, "%s of %d bytes exceeds the address space", what, need)
	}
	return nil
}

// checkLength returns ErrEncoding if n does not fit into a length prefix
func checkLength(n int, what string) error {
	if int64(n) > maxLength {
		return errors.Wrapf(ErrEncoding, "%s length %d exceeds maximum of %d", what, n, maxLength)
	}
	return nil
}

func underrun(need int64, pos, available int) error {
	return errors.Wrapf(ErrBufferUnderrun, "need %d bytes at offset %d, %d remaining", need, pos, available)
}
