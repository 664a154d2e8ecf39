// Package netser maps Go structs to an ordered sequence of wire.Writer puts and wire.Reader gets.
//
// A Serializer inspects a struct type once by reflection and caches a plan: one codec per
// exported field, in declaration order. Later calls for the same type only execute the plan, so
// the per call reflection cost is limited to field access.
//
// Supported field types:
//   - bool, int8/16/32/64, uint8/16/32/64, float32/64 (natural width)
//   - int and uint (always 64 bit)
//   - string, *string (nil is the null marker), []byte
//   - slices of any supported type
//   - struct types registered with RegisterNested or RegisterSerializable
//
// Unregistered struct fields, maps, channels and interfaces are rejected with ErrUnsupportedType
// when the plan is built.
//
// The Processor adds a 64 bit type hash in front of every struct so a stream of different packet
// types can be dispatched to subscribers on the receiving side.
//
// Usage:
//
//	s := netser.New()
//	netser.RegisterNested(s, writeVector, readVector)
//
//	w := wire.NewWriter()
//	err := s.Serialize(w, &packet)
//
//	var out Packet
//	err = s.Deserialize(wire.NewReader(w.Bytes()), &out)
package netser
