package wire

import (
	"encoding/binary"
	"github.com/cockroachdb/errors"
	"io"
	"math"
	"unicode/utf8"
)

// Reader is a cursor over a byte slice that decodes values in the order a Writer wrote them.
// It never modifies the underlying bytes. A failed get leaves the cursor unchanged.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a reader positioned at the start of data
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// SetSource points the reader at data and rewinds it, so a reader can be reused
func (r *Reader) SetSource(data []byte) {
	r.data = data
	r.pos = 0
}

// --------------------------------------------------------------------------
// Cursor
// --------------------------------------------------------------------------

// Position returns the offset of the next byte to read
func (r *Reader) Position() int {
	return r.pos
}

// AvailableBytes returns the number of unread bytes
func (r *Reader) AvailableBytes() int {
	return len(r.data) - r.pos
}

// EndOfData reports whether every byte has been consumed
func (r *Reader) EndOfData() bool {
	return r.pos == len(r.data)
}

// SetPosition moves the cursor to pos. It is an escape hatch for callers that need to re-read
// or skip data, ordinary decoding only moves forward.
func (r *Reader) SetPosition(pos int) error {
	if pos < 0 || pos > len(r.data) {
		return errors.Wrapf(ErrBufferUnderrun, "position %d outside of [0, %d]", pos, len(r.data))
	}
	r.pos = pos
	return nil
}

// SkipBytes advances the cursor by n bytes
func (r *Reader) SkipBytes(n int) error {
	_, err := r.take(n)
	return err
}

// GetRemainingBytes returns a copy of all unread bytes and moves the cursor to the end
func (r *Reader) GetRemainingBytes() []byte {
	out := make([]byte, len(r.data)-r.pos)
	copy(out, r.data[r.pos:])
	r.pos = len(r.data)
	return out
}

// take consumes n bytes and returns them without copying
func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || n > len(r.data)-r.pos {
		return nil, underrun(int64(n), r.pos, len(r.data)-r.pos)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// peek returns the next n bytes without consuming them
func (r *Reader) peek(n int) ([]byte, error) {
	if n > len(r.data)-r.pos {
		return nil, underrun(int64(n), r.pos, len(r.data)-r.pos)
	}
	return r.data[r.pos : r.pos+n], nil
}

// getCount reads a length/count prefix. minSize is the minimum number of bytes every counted
// element occupies, a count that cannot fit into the remaining bytes is rejected before anything
// is allocated. On error the cursor is not moved.
func (r *Reader) getCount(minSize int) (n int, isNil bool, err error) {
	start := r.pos
	c, err := r.GetUint32()
	if err != nil {
		return 0, false, err
	}
	if c == NullLength {
		return 0, true, nil
	}
	if int64(c) > maxLength {
		r.pos = start
		return 0, false, errors.Wrapf(ErrDecoding, "length %d exceeds maximum of %d", c, maxLength)
	}
	// the product is computed in int64, a count that passes fits into an int on every platform
	if need, available := int64(c)*int64(minSize), len(r.data)-r.pos; need > int64(available) {
		r.pos = start
		return 0, false, underrun(need, r.pos, available)
	}
	return int(c), false, nil
}

// --------------------------------------------------------------------------
// Fixed size values
// --------------------------------------------------------------------------

// GetBool reads a boolean. Bytes other than 0 and 1 are rejected with ErrDecoding.
func (r *Reader) GetBool() (bool, error) {
	b, err := r.peek(1)
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		r.pos++
		return false, nil
	case 1:
		r.pos++
		return true, nil
	default:
		return false, errors.Wrapf(ErrDecoding, "invalid bool byte %#x at offset %d", b[0], r.pos)
	}
}

func (r *Reader) GetByte() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadByte implements io.ByteReader, it returns io.EOF at the end of the data
func (r *Reader) ReadByte() (byte, error) {
	if r.EndOfData() {
		return 0, io.EOF
	}
	return r.GetByte()
}

func (r *Reader) GetInt8() (int8, error) {
	v, err := r.GetByte()
	return int8(v), err
}

func (r *Reader) GetUint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) GetInt16() (int16, error) {
	v, err := r.GetUint16()
	return int16(v), err
}

func (r *Reader) GetUint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) GetInt32() (int32, error) {
	v, err := r.GetUint32()
	return int32(v), err
}

func (r *Reader) GetUint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Reader) GetInt64() (int64, error) {
	v, err := r.GetUint64()
	return int64(v), err
}

func (r *Reader) GetFloat32() (float32, error) {
	v, err := r.GetUint32()
	return math.Float32frombits(v), err
}

func (r *Reader) GetFloat64() (float64, error) {
	v, err := r.GetUint64()
	return math.Float64frombits(v), err
}

// --------------------------------------------------------------------------
// Peek (decode without advancing)
// --------------------------------------------------------------------------

func (r *Reader) PeekByte() (byte, error) {
	b, err := r.peek(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) PeekUint32() (uint32, error) {
	b, err := r.peek(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) PeekInt32() (int32, error) {
	v, err := r.PeekUint32()
	return int32(v), err
}

// --------------------------------------------------------------------------
// Variable size values
// --------------------------------------------------------------------------

// GetStringPtr reads a string written with PutString or PutStringPtr.
// The null marker is returned as nil.
func (r *Reader) GetStringPtr() (*string, error) {
	start := r.pos
	n, isNil, err := r.getCount(1)
	if err != nil || isNil {
		return nil, err
	}
	b, _ := r.take(n) // getCount verified that n bytes are available
	if !utf8.Valid(b) {
		r.pos = start
		return nil, errors.Wrapf(ErrDecoding, "string at offset %d is not valid UTF-8", start)
	}
	s := string(b)
	return &s, nil
}

// GetString reads a string written with PutString or PutStringPtr.
// The null marker is returned as the empty string, use GetStringPtr to tell them apart.
func (r *Reader) GetString() (string, error) {
	s, err := r.GetStringPtr()
	if s == nil {
		return "", err
	}
	return *s, nil
}

// GetBytesWithLength reads a byte slice written with PutBytesWithLength.
// The returned slice is a copy, the null marker is returned as nil.
func (r *Reader) GetBytesWithLength() ([]byte, error) {
	n, isNil, err := r.getCount(1)
	if err != nil || isNil {
		return nil, err
	}
	b, _ := r.take(n)
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// Read implements io.Reader. It copies up to len(p) unread bytes into p and returns io.EOF
// once all data has been consumed.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.EndOfData() {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
