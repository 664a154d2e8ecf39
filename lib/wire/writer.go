package wire

import (
	"encoding/binary"
	"github.com/cockroachdb/errors"
	"math"
	"unicode/utf8"
)

// Writer is an append-only growable byte buffer with typed put operations.
// The order of put calls is the wire format.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	// buf holds the written bytes, len(buf) is the logical length and cap(buf) the capacity
	buf []byte
}

// --------------------------------------------------------------------------
// Constructors
// --------------------------------------------------------------------------

// NewWriter creates an empty writer with no preallocated capacity
func NewWriter() *Writer {
	return &Writer{}
}

// NewWriterSize creates an empty writer with the given initial capacity
func NewWriterSize(capacity int) *Writer {
	if capacity < 0 {
		capacity = 0
	}
	return &Writer{buf: make([]byte, 0, capacity)}
}

// FromBytes creates a writer whose content is b. Further puts are appended after b.
// If copyData is false the writer takes ownership of b and the caller must not use it anymore.
func FromBytes(b []byte, copyData bool) *Writer {
	if !copyData {
		return &Writer{buf: b}
	}
	w := NewWriterSize(len(b))
	w.buf = append(w.buf, b...)
	return w
}

// --------------------------------------------------------------------------
// Buffer management
// --------------------------------------------------------------------------

// Length returns the number of bytes written
func (w *Writer) Length() int {
	return len(w.buf)
}

// Capacity returns the size of the backing buffer
func (w *Writer) Capacity() int {
	return cap(w.buf)
}

// Bytes returns the written bytes. The slice aliases the internal buffer and is only valid
// until the next put or Reset.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// CopyData returns a copy of the written bytes that is independent of the writer
func (w *Writer) CopyData() []byte {
	out := make([]byte, len(w.buf))
	copy(out, w.buf)
	return out
}

// Reset empties the writer without releasing its capacity
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
}

// EnsureCapacity grows the buffer so that at least n more bytes can be written without
// reallocating
func (w *Writer) EnsureCapacity(n int) {
	w.grow(n)
}

// grow makes room for n more bytes and returns the offset at which they start.
// The buffer grows to at least twice its capacity.
func (w *Writer) grow(n int) int {
	l := len(w.buf)
	if l+n <= cap(w.buf) {
		w.buf = w.buf[:l+n]
		return l
	}

	newCap := 2 * cap(w.buf)
	if newCap < l+n {
		newCap = l + n
	}
	buf := make([]byte, l+n, newCap)
	copy(buf, w.buf)
	w.buf = buf
	return l
}

// --------------------------------------------------------------------------
// Fixed size values (little-endian, natural width)
// --------------------------------------------------------------------------

// PutBool writes a boolean as a single byte (0 or 1)
func (w *Writer) PutBool(v bool) {
	if v {
		w.PutByte(1)
	} else {
		w.PutByte(0)
	}
}

// PutByte writes a single byte
func (w *Writer) PutByte(v byte) {
	pos := w.grow(1)
	w.buf[pos] = v
}

// PutInt8 writes a signed byte
func (w *Writer) PutInt8(v int8) {
	w.PutByte(byte(v))
}

func (w *Writer) PutUint16(v uint16) {
	pos := w.grow(2)
	binary.LittleEndian.PutUint16(w.buf[pos:], v)
}

func (w *Writer) PutInt16(v int16) {
	w.PutUint16(uint16(v))
}

func (w *Writer) PutUint32(v uint32) {
	pos := w.grow(4)
	binary.LittleEndian.PutUint32(w.buf[pos:], v)
}

func (w *Writer) PutInt32(v int32) {
	w.PutUint32(uint32(v))
}

func (w *Writer) PutUint64(v uint64) {
	pos := w.grow(8)
	binary.LittleEndian.PutUint64(w.buf[pos:], v)
}

func (w *Writer) PutInt64(v int64) {
	w.PutUint64(uint64(v))
}

// PutFloat32 writes the IEEE-754 single precision bit pattern of v
func (w *Writer) PutFloat32(v float32) {
	w.PutUint32(math.Float32bits(v))
}

// PutFloat64 writes the IEEE-754 double precision bit pattern of v
func (w *Writer) PutFloat64(v float64) {
	w.PutUint64(math.Float64bits(v))
}

// --------------------------------------------------------------------------
// Variable size values
// --------------------------------------------------------------------------

// PutString writes the UTF-8 byte length of s followed by its bytes.
// It fails with ErrEncoding if s is not valid UTF-8 or too long.
func (w *Writer) PutString(s string) error {
	if err := checkLength(len(s), "string"); err != nil {
		return err
	}
	if !utf8.ValidString(s) {
		return errors.Wrap(ErrEncoding, "string is not valid UTF-8")
	}
	pos := w.grow(lengthSize + len(s))
	binary.LittleEndian.PutUint32(w.buf[pos:], uint32(len(s)))
	copy(w.buf[pos+lengthSize:], s)
	return nil
}

// PutStringPtr writes *s like PutString, or the null marker if s is nil
func (w *Writer) PutStringPtr(s *string) error {
	if s == nil {
		w.PutUint32(NullLength)
		return nil
	}
	return w.PutString(*s)
}

// PutBytesWithLength writes the length of p followed by p.
// A nil slice is written as the null marker and read back as nil.
func (w *Writer) PutBytesWithLength(p []byte) error {
	if p == nil {
		w.PutUint32(NullLength)
		return nil
	}
	if err := checkLength(len(p), "byte slice"); err != nil {
		return err
	}
	pos := w.grow(lengthSize + len(p))
	binary.LittleEndian.PutUint32(w.buf[pos:], uint32(len(p)))
	copy(w.buf[pos+lengthSize:], p)
	return nil
}

// PutBytes appends p without a length prefix
func (w *Writer) PutBytes(p []byte) {
	pos := w.grow(len(p))
	copy(w.buf[pos:], p)
}

// Write appends p without a length prefix. It implements io.Writer and never fails.
func (w *Writer) Write(p []byte) (int, error) {
	w.PutBytes(p)
	return len(p), nil
}

// putCount writes an array count prefix (or the null marker for a nil slice).
// It returns false if no elements follow.
func (w *Writer) putCount(n int, isNil bool) (bool, error) {
	if isNil {
		w.PutUint32(NullLength)
		return false, nil
	}
	if err := checkLength(n, "array"); err != nil {
		return false, err
	}
	w.PutUint32(uint32(n))
	return n > 0, nil
}
