// Package wire provides the byte level building blocks of the dWire serialization library:
// a growable Writer with typed put operations and a Reader with the matching get operations.
//
// The package focuses on:
//   - A canonical, deterministic and platform independent binary encoding
//   - Zero allocations in the steady state by reusing a Writer across Reset calls
//   - Bounds checked decoding that never reads past the end of the input
//
// Wire Format:
//
//	The format is not self describing. It is exactly the sequence of put calls, and a reader
//	must issue the same get calls in the same order.
//
//	  - Fixed size values: little-endian, natural width (bool and byte 1, 16 bit 2, 32 bit 4,
//	    64 bit 8 bytes). Floats are stored as their IEEE-754 bit pattern.
//	  - Strings:     [uint32 byte length][UTF-8 bytes]
//	  - Byte slices: [uint32 length][bytes]
//	  - Arrays:      [uint32 count][element]*count
//
//	The length value NullLength (0xFFFFFFFF) marks an absent string, byte slice or array and is
//	followed by no bytes. An empty string is length 0. The two survive a round trip as distinct
//	values (see Writer.PutStringPtr and Reader.GetStringPtr).
//
// Key Components:
//
//   - Writer: Append-only buffer. Grows to at least twice its capacity when full, Reset empties
//     it without releasing memory.
//
//   - Reader: Cursor over a finished byte slice. Every get advances the cursor by exactly the
//     number of bytes it consumed, a failing get does not move it.
//
//   - PutArray / GetArray: Generic array helpers for element types that have no typed
//     Put*Array method.
//
// Errors:
//
//   - ErrEncoding: a value cannot be represented (string longer than MaxLength, invalid UTF-8)
//   - ErrBufferUnderrun: a get needs more bytes than remain
//   - ErrDecoding: the bytes are not a valid encoding (invalid UTF-8, bool byte other than 0/1)
//
//	Length checks are computed in 64 bits, the package builds for 32-bit targets (GOARCH=386, arm)
//	and produces the same bytes there.
//
//	Reading with a type order that differs from the write order is not detected as such. It
//	either decodes length consistent garbage or fails with ErrBufferUnderrun/ErrDecoding, and the
//	outcome is deterministic for a given byte sequence.
//
// Thread Safety:
//
//	Writer and Reader are not safe for concurrent use. Independent instances share no state.
//
// Usage:
//
//	w := wire.NewWriter()
//	w.PutInt32(42)
//	_ = w.PutString("TEST")
//	_ = w.PutInt32Array([]int32{1, 2, 3})
//
//	r := wire.NewReader(w.Bytes())
//	n, _ := r.GetInt32()
//	s, _ := r.GetString()
//	a, _ := r.GetInt32Array()
package wire
