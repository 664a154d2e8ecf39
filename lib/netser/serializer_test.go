package netser

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/ValentinKolb/dWire/lib/wire"
	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y int32
}

func writePoint(w *wire.Writer, p point) error {
	w.PutInt32(p.X)
	w.PutInt32(p.Y)
	return nil
}

func readPoint(r *wire.Reader) (point, error) {
	x, err := r.GetInt32()
	if err != nil {
		return point{}, err
	}
	y, err := r.GetInt32()
	return point{X: x, Y: y}, err
}

type counter struct {
	Value int32
}

func (c *counter) Serialize(w *wire.Writer) error {
	w.PutInt32(c.Value)
	return nil
}

func (c *counter) Deserialize(r *wire.Reader) error {
	v, err := r.GetInt32()
	c.Value = v
	return err
}

type everything struct {
	Bool    bool
	Int8    int8
	Int16   int16
	Int32   int32
	Int64   int64
	Int     int
	Uint8   uint8
	Uint16  uint16
	Uint32  uint32
	Uint64  uint64
	Uint    uint
	Float32 float32
	Float64 float64
	String  string
	Nilable *string
	Bytes   []byte
	Ints    []int32
	Strings []string
	Point   point
	Points  []point
	Counter counter
	Skipped string `netser:"-"`
	private int
}

func newSerializer() *Serializer {
	s := New()
	RegisterNested(s, writePoint, readPoint)
	RegisterSerializable[counter](s)
	return s
}

func TestSerializeRoundTrip(t *testing.T) {
	s := newSerializer()
	text := "present"

	in := everything{
		Bool: true, Int8: math.MinInt8, Int16: -300, Int32: -70000, Int64: math.MinInt64, Int: -5,
		Uint8: 200, Uint16: 60000, Uint32: math.MaxUint32, Uint64: math.MaxUint64, Uint: 9,
		Float32: 0.3, Float64: math.Inf(-1),
		String: "TEST", Nilable: &text, Bytes: []byte{1, 2}, Ints: []int32{1, 2, 3},
		Strings: []string{"a", ""}, Point: point{1, 2}, Points: []point{{3, 4}, {5, 6}},
		Counter: counter{Value: 11}, Skipped: "not written", private: 3,
	}

	w := wire.NewWriter()
	require.NoError(t, s.Serialize(w, &in))

	var out everything
	r := wire.NewReader(w.Bytes())
	require.NoError(t, s.Deserialize(r, &out))
	require.True(t, r.EndOfData())

	in.Skipped, in.private = "", 0
	require.Equal(t, in, out)
}

func TestSerializeNilAndEmpty(t *testing.T) {
	s := newSerializer()

	in := everything{Bytes: []byte{}, Ints: []int32{}, Points: nil}
	w := wire.NewWriter()
	require.NoError(t, s.Serialize(w, in)) // by value

	var out everything
	require.NoError(t, s.Deserialize(wire.NewReader(w.Bytes()), &out))

	require.Nil(t, out.Nilable)
	require.NotNil(t, out.Bytes)
	require.Empty(t, out.Bytes)
	require.NotNil(t, out.Ints)
	require.Empty(t, out.Ints)
	require.Nil(t, out.Points)
	require.Nil(t, out.Strings)
}

func TestSerializeMatchesHandWritten(t *testing.T) {
	type packet struct {
		F float32
		S string
		A []int32
		P point
	}
	s := newSerializer()
	in := packet{F: 0.3, S: "TEST", A: []int32{1, 2, 3}, P: point{1, 2}}

	reflected := wire.NewWriter()
	require.NoError(t, s.Serialize(reflected, &in))

	manual := wire.NewWriter()
	manual.PutFloat32(in.F)
	require.NoError(t, manual.PutString(in.S))
	require.NoError(t, manual.PutInt32Array(in.A))
	require.NoError(t, writePoint(manual, in.P))

	require.Equal(t, manual.Bytes(), reflected.Bytes())
}

func TestPlanIsCached(t *testing.T) {
	s := newSerializer()
	require.NoError(t, s.Prepare(everything{}))

	p1, ok := s.plans.Load(reflect.TypeFor[everything]())
	require.True(t, ok)

	require.NoError(t, s.Serialize(wire.NewWriter(), &everything{}))
	p2, _ := s.plans.Load(reflect.TypeFor[everything]())
	require.Same(t, p1, p2)
	require.Len(t, p1.fields, 21)
}

func TestSerializeInvalidTargets(t *testing.T) {
	s := newSerializer()
	w := wire.NewWriter()

	require.ErrorIs(t, s.Serialize(w, 42), ErrInvalidTarget)
	require.ErrorIs(t, s.Serialize(w, (*everything)(nil)), ErrInvalidTarget)
	require.ErrorIs(t, s.Deserialize(wire.NewReader(nil), everything{}), ErrInvalidTarget)
	require.ErrorIs(t, s.Deserialize(wire.NewReader(nil), new(int)), ErrInvalidTarget)
}

func TestUnsupportedTypes(t *testing.T) {
	s := New()

	type unregistered struct {
		P point
	}
	type withMap struct {
		M map[string]int
	}

	err := s.Serialize(wire.NewWriter(), unregistered{})
	require.ErrorIs(t, err, ErrUnsupportedType)

	err = s.Prepare(withMap{})
	require.ErrorIs(t, err, ErrUnsupportedType)

	// failed plans are not cached
	_, ok := s.plans.Load(reflect.TypeFor[withMap]())
	require.False(t, ok)
}

func TestDeserializeTruncated(t *testing.T) {
	s := newSerializer()
	w := wire.NewWriter()
	require.NoError(t, s.Serialize(w, &everything{String: "long enough", Ints: []int32{1, 2, 3}}))

	data := w.Bytes()
	for _, n := range []int{0, 1, 10, len(data) / 2, len(data) - 1} {
		var out everything
		err := s.Deserialize(wire.NewReader(data[:n]), &out)
		require.True(t, errors.Is(err, wire.ErrBufferUnderrun), "truncated at %d: %v", n, err)
	}
}

func TestSerializeTopLevelRegistered(t *testing.T) {
	s := newSerializer()

	w := wire.NewWriter()
	require.NoError(t, s.Serialize(w, counter{Value: 5}))
	require.Equal(t, 4, w.Length())

	var out counter
	require.NoError(t, s.Deserialize(wire.NewReader(w.Bytes()), &out))
	require.Equal(t, int32(5), out.Value)
}
