// Package sample provides the packet used to compare the serializers of dWire.
//
// The packet mixes the value shapes a game or RPC message typically contains: a float, strings
// (one of them absent), a primitive array, a small nested struct, an array of nested structs and
// a nested type that serializes itself.
package sample

import (
	"fmt"
	"github.com/ValentinKolb/dWire/lib/wire"
	"strings"
)

// --------------------------------------------------------------------------
// Nested types
// --------------------------------------------------------------------------

// Vector2 is a nested value type serialized through registered functions
type Vector2 struct {
	X int32
	Y int32
}

func (v Vector2) String() string {
	return fmt.Sprintf("X: %d, Y: %d", v.X, v.Y)
}

// WriteVector2 writes v as two int32 values
func WriteVector2(w *wire.Writer, v Vector2) error {
	w.PutInt32(v.X)
	w.PutInt32(v.Y)
	return nil
}

// ReadVector2 reads a Vector2 written with WriteVector2
func ReadVector2(r *wire.Reader) (Vector2, error) {
	x, err := r.GetInt32()
	if err != nil {
		return Vector2{}, err
	}
	y, err := r.GetInt32()
	if err != nil {
		return Vector2{}, err
	}
	return Vector2{X: x, Y: y}, nil
}

// NetSerializable is a nested type that implements netser.Serializable itself
type NetSerializable struct {
	Value int32
}

func (n *NetSerializable) Serialize(w *wire.Writer) error {
	w.PutInt32(n.Value)
	return nil
}

func (n *NetSerializable) Deserialize(r *wire.Reader) error {
	v, err := r.GetInt32()
	if err != nil {
		return err
	}
	n.Value = v
	return nil
}

// --------------------------------------------------------------------------
// Packet
// --------------------------------------------------------------------------

// Packet is the object serialized by every benchmarked approach
type Packet struct {
	SomeString   string
	SomeFloat    float32
	SomeIntArray []int32
	SomeVector2  Vector2
	SomeVectors  []Vector2
	EmptyString  *string
	TestObj      NetSerializable
}

// New returns the benchmark fixture
func New() *Packet {
	return &Packet{
		SomeFloat:    0.3,
		SomeString:   "TEST",
		SomeIntArray: []int32{1, 2, 3},
		SomeVector2:  Vector2{X: 1, Y: 2},
		SomeVectors:  []Vector2{{X: 3, Y: 4}, {X: 5, Y: 6}},
	}
}

func (p *Packet) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("SomeString: %s\n", p.SomeString))
	sb.WriteString(fmt.Sprintf("SomeFloat: %v\n", p.SomeFloat))
	sb.WriteString("SomeIntArray:\n")
	for _, v := range p.SomeIntArray {
		sb.WriteString(fmt.Sprintf("  %d\n", v))
	}
	sb.WriteString(fmt.Sprintf("SomeVector2: %s\n", p.SomeVector2))
	sb.WriteString("SomeVectors:\n")
	for _, v := range p.SomeVectors {
		sb.WriteString(fmt.Sprintf("  %s\n", v))
	}
	if p.EmptyString == nil {
		sb.WriteString("EmptyString: <nil>\n")
	} else {
		sb.WriteString(fmt.Sprintf("EmptyString: %s\n", *p.EmptyString))
	}
	sb.WriteString(fmt.Sprintf("TestObj value: %d\n", p.TestObj.Value))
	return sb.String()
}

// --------------------------------------------------------------------------
// Hand written field by field encoding
// --------------------------------------------------------------------------

// WriteRaw writes p with direct put calls. The layout matches what a netser.Serializer produces
// for Packet with Vector2 and NetSerializable registered.
func WriteRaw(w *wire.Writer, p *Packet) error {
	if err := w.PutString(p.SomeString); err != nil {
		return err
	}
	w.PutFloat32(p.SomeFloat)
	if err := w.PutInt32Array(p.SomeIntArray); err != nil {
		return err
	}
	w.PutInt32(p.SomeVector2.X)
	w.PutInt32(p.SomeVector2.Y)
	if err := w.PutCount(len(p.SomeVectors), p.SomeVectors == nil); err != nil {
		return err
	}
	for _, v := range p.SomeVectors {
		w.PutInt32(v.X)
		w.PutInt32(v.Y)
	}
	if err := w.PutStringPtr(p.EmptyString); err != nil {
		return err
	}
	w.PutInt32(p.TestObj.Value)
	return nil
}

// ReadRaw reads a packet written with WriteRaw into p
func ReadRaw(r *wire.Reader, p *Packet) error {
	var err error
	if p.SomeString, err = r.GetString(); err != nil {
		return fmt.Errorf("SomeString: %w", err)
	}
	if p.SomeFloat, err = r.GetFloat32(); err != nil {
		return fmt.Errorf("SomeFloat: %w", err)
	}
	if p.SomeIntArray, err = r.GetInt32Array(); err != nil {
		return fmt.Errorf("SomeIntArray: %w", err)
	}
	if p.SomeVector2, err = ReadVector2(r); err != nil {
		return fmt.Errorf("SomeVector2: %w", err)
	}
	if p.SomeVectors, err = wire.GetArray(r, ReadVector2); err != nil {
		return fmt.Errorf("SomeVectors: %w", err)
	}
	if p.EmptyString, err = r.GetStringPtr(); err != nil {
		return fmt.Errorf("EmptyString: %w", err)
	}
	if err = p.TestObj.Deserialize(r); err != nil {
		return fmt.Errorf("TestObj: %w", err)
	}
	return nil
}
