package wire

import (
	"encoding/binary"
	"fmt"
	"github.com/cockroachdb/errors"
	"math"
)

// Arrays are encoded as [uint32 count][element]*count. A nil slice is encoded as the null marker
// and decoded as nil, an empty slice as count 0 and decoded as an empty, non-nil slice.

// --------------------------------------------------------------------------
// Generic arrays
// --------------------------------------------------------------------------

// PutArray writes the count of vs followed by every element written with put
func PutArray[T any](w *Writer, vs []T, put func(*Writer, T) error) error {
	more, err := w.putCount(len(vs), vs == nil)
	if err != nil || !more {
		return err
	}
	for i, v := range vs {
		if err := put(w, v); err != nil {
			return fmt.Errorf("array element %d: %w", i, err)
		}
	}
	return nil
}

// GetArray reads a count followed by that many elements read with get
func GetArray[T any](r *Reader, get func(*Reader) (T, error)) ([]T, error) {
	start := r.pos
	// every element takes at least one byte, reject impossible counts before allocating
	n, isNil, err := r.getCount(1)
	if err != nil || isNil {
		return nil, err
	}
	out := make([]T, n)
	for i := range out {
		if out[i], err = get(r); err != nil {
			r.pos = start
			return nil, fmt.Errorf("array element %d: %w", i, err)
		}
	}
	return out, nil
}

// PutCount writes an array count prefix for n elements, or the null marker if isNil is set.
// The caller writes the elements itself.
func (w *Writer) PutCount(n int, isNil bool) error {
	_, err := w.putCount(n, isNil)
	return err
}

// GetCount reads an array count prefix written with PutCount. minElemSize is the smallest number
// of bytes a single element can occupy, counts that cannot fit in the remaining bytes fail with
// ErrBufferUnderrun.
func (r *Reader) GetCount(minElemSize int) (n int, isNil bool, err error) {
	if minElemSize < 1 {
		minElemSize = 1
	}
	return r.getCount(minElemSize)
}

// --------------------------------------------------------------------------
// Fixed size element arrays (Writer)
// --------------------------------------------------------------------------

// putFixedArray writes the count of vs and reserves size bytes per element.
// It returns the offset of the first element or -1 if no elements follow.
func putFixedArray(w *Writer, n int, isNil bool, size int) (int, error) {
	if err := checkSize(n, size, "array"); err != nil {
		return -1, err
	}
	more, err := w.putCount(n, isNil)
	if err != nil || !more {
		return -1, err
	}
	return w.grow(n * size), nil
}

func (w *Writer) PutBoolArray(vs []bool) error {
	pos, err := putFixedArray(w, len(vs), vs == nil, 1)
	if pos < 0 {
		return err
	}
	for i, v := range vs {
		if v {
			w.buf[pos+i] = 1
		} else {
			w.buf[pos+i] = 0
		}
	}
	return nil
}

func (w *Writer) PutUint16Array(vs []uint16) error {
	pos, err := putFixedArray(w, len(vs), vs == nil, 2)
	if pos < 0 {
		return err
	}
	for i, v := range vs {
		binary.LittleEndian.PutUint16(w.buf[pos+i*2:], v)
	}
	return nil
}

func (w *Writer) PutInt16Array(vs []int16) error {
	pos, err := putFixedArray(w, len(vs), vs == nil, 2)
	if pos < 0 {
		return err
	}
	for i, v := range vs {
		binary.LittleEndian.PutUint16(w.buf[pos+i*2:], uint16(v))
	}
	return nil
}

func (w *Writer) PutUint32Array(vs []uint32) error {
	pos, err := putFixedArray(w, len(vs), vs == nil, 4)
	if pos < 0 {
		return err
	}
	for i, v := range vs {
		binary.LittleEndian.PutUint32(w.buf[pos+i*4:], v)
	}
	return nil
}

func (w *Writer) PutInt32Array(vs []int32) error {
	pos, err := putFixedArray(w, len(vs), vs == nil, 4)
	if pos < 0 {
		return err
	}
	for i, v := range vs {
		binary.LittleEndian.PutUint32(w.buf[pos+i*4:], uint32(v))
	}
	return nil
}

func (w *Writer) PutUint64Array(vs []uint64) error {
	pos, err := putFixedArray(w, len(vs), vs == nil, 8)
	if pos < 0 {
		return err
	}
	for i, v := range vs {
		binary.LittleEndian.PutUint64(w.buf[pos+i*8:], v)
	}
	return nil
}

func (w *Writer) PutInt64Array(vs []int64) error {
	pos, err := putFixedArray(w, len(vs), vs == nil, 8)
	if pos < 0 {
		return err
	}
	for i, v := range vs {
		binary.LittleEndian.PutUint64(w.buf[pos+i*8:], uint64(v))
	}
	return nil
}

func (w *Writer) PutFloat32Array(vs []float32) error {
	pos, err := putFixedArray(w, len(vs), vs == nil, 4)
	if pos < 0 {
		return err
	}
	for i, v := range vs {
		binary.LittleEndian.PutUint32(w.buf[pos+i*4:], math.Float32bits(v))
	}
	return nil
}

func (w *Writer) PutFloat64Array(vs []float64) error {
	pos, err := putFixedArray(w, len(vs), vs == nil, 8)
	if pos < 0 {
		return err
	}
	for i, v := range vs {
		binary.LittleEndian.PutUint64(w.buf[pos+i*8:], math.Float64bits(v))
	}
	return nil
}

// PutStringArray writes the count of vs followed by every string as with PutString
func (w *Writer) PutStringArray(vs []string) error {
	return PutArray(w, vs, (*Writer).PutString)
}

// --------------------------------------------------------------------------
// Fixed size element arrays (Reader)
// --------------------------------------------------------------------------

// getFixedArray reads a count and consumes size bytes per element.
// It returns the element bytes, the count, and whether the array was null.
func getFixedArray(r *Reader, size int) ([]byte, int, bool, error) {
	start := r.pos
	n, isNil, err := r.getCount(size)
	if err != nil || isNil {
		return nil, 0, isNil, err
	}
	b, err := r.take(n * size)
	if err != nil {
		r.pos = start
		return nil, 0, false, err
	}
	return b, n, false, nil
}

func (r *Reader) GetBoolArray() ([]bool, error) {
	start := r.pos
	b, n, isNil, err := getFixedArray(r, 1)
	if err != nil || isNil {
		return nil, err
	}
	out := make([]bool, n)
	for i := range out {
		switch b[i] {
		case 0:
		case 1:
			out[i] = true
		default:
			r.pos = start
			return nil, errors.Wrapf(ErrDecoding, "invalid bool byte %#x in array element %d", b[i], i)
		}
	}
	return out, nil
}

func (r *Reader) GetUint16Array() ([]uint16, error) {
	b, n, isNil, err := getFixedArray(r, 2)
	if err != nil || isNil {
		return nil, err
	}
	out := make([]uint16, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return out, nil
}

func (r *Reader) GetInt16Array() ([]int16, error) {
	b, n, isNil, err := getFixedArray(r, 2)
	if err != nil || isNil {
		return nil, err
	}
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b[i*2:]))
	}
	return out, nil
}

func (r *Reader) GetUint32Array() ([]uint32, error) {
	b, n, isNil, err := getFixedArray(r, 4)
	if err != nil || isNil {
		return nil, err
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return out, nil
}

func (r *Reader) GetInt32Array() ([]int32, error) {
	b, n, isNil, err := getFixedArray(r, 4)
	if err != nil || isNil {
		return nil, err
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out, nil
}

func (r *Reader) GetUint64Array() ([]uint64, error) {
	b, n, isNil, err := getFixedArray(r, 8)
	if err != nil || isNil {
		return nil, err
	}
	out := make([]uint64, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(b[i*8:])
	}
	return out, nil
}

func (r *Reader) GetInt64Array() ([]int64, error) {
	b, n, isNil, err := getFixedArray(r, 8)
	if err != nil || isNil {
		return nil, err
	}
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return out, nil
}

func (r *Reader) GetFloat32Array() ([]float32, error) {
	b, n, isNil, err := getFixedArray(r, 4)
	if err != nil || isNil {
		return nil, err
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out, nil
}

func (r *Reader) GetFloat64Array() ([]float64, error) {
	b, n, isNil, err := getFixedArray(r, 8)
	if err != nil || isNil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return out, nil
}

// GetStringArray reads an array written with PutStringArray
func (r *Reader) GetStringArray() ([]string, error) {
	return GetArray(r, (*Reader).GetString)
}
