// Package serializer provides the packet serializers compared by the dWire benchmark. It defines
// a common interface and multiple implementations that all write into a wire.Writer and read from
// a wire.Reader, so every approach profits from the same reusable buffer.
//
// The package focuses on:
//   - Providing a consistent interface for different serialization approaches
//   - Contrasting general purpose formats with a plan based and a hand written encoding
//   - Keeping the benchmark fair: every implementation appends to the same reused writer
//
// Key Components:
//
//   - ISerializer: Core interface that all serializer implementations must satisfy.
//
//   - gobSerializerImpl: General purpose reflective formatter using Go's gob encoding. Every
//     packet is written with a fresh encoder and therefore carries its type descriptors,
//     resulting in the largest payloads.
//
//   - jsonSerializerImpl: JSON encoding via json-iterator, length prefixed in the writer.
//     Human readable, useful for debugging.
//
//   - netSerializerImpl: Reflection based serializer from lib/netser. Builds a per type plan of
//     field codecs once and caches it, the output is byte identical to the hand written encoding.
//
//   - binarySerializerImpl: Hand written field by field put calls. The baseline every other
//     implementation is measured against.
//
// Performance Characteristics:
//
//   - Binary: Fastest, smallest payload and zero allocations on a reused writer.
//
//   - Net: Same payload as Binary. The first packet pays for plan construction, later packets
//     only pay for reflective field access.
//
//   - JSON: Moderate speed, larger payloads.
//
//   - GOB: Slowest with the largest payload when every packet is encoded independently.
//
// Thread Safety:
//
//	All serializer implementations are safe for concurrent use across multiple goroutines.
//	The wire.Writer and wire.Reader passed to them are not.
//
// Usage:
//
//	s, err := serializer.ByName("net")
//	w := wire.NewWriter()
//	err = s.Serialize(w, sample.New())
//	// ... send w.Bytes() ...
//	var pkt sample.Packet
//	err = s.Deserialize(wire.NewReader(received), &pkt)
package serializer
