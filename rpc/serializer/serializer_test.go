package serializer

import (
	"bytes"
	"errors"
	"github.com/ValentinKolb/dWire/lib/sample"
	"github.com/ValentinKolb/dWire/lib/wire"
	"reflect"
	"testing"
)

// testSerializers is a map of serializer name to factory function
var testSerializers = map[string]func() ISerializer{
	"JSON":   NewJSONSerializer,
	"GOB":    NewGOBSerializer,
	"Net":    NewNetSerializer,
	"Binary": NewBinarySerializer,
}

// testPackets creates a set of test packets with different fields filled
func testPackets() []*sample.Packet {
	present := "present"
	return []*sample.Packet{
		// The benchmark fixture
		sample.New(),

		// Packet with the optional string set and a nested value
		{
			SomeString:   "with optional",
			SomeFloat:    -1.5,
			SomeIntArray: []int32{-1, 0, 1},
			SomeVector2:  sample.Vector2{X: -7, Y: 7},
			SomeVectors:  []sample.Vector2{{X: 1, Y: 1}},
			EmptyString:  &present,
			TestObj:      sample.NetSerializable{Value: 42},
		},

		// Packet with unicode text and a longer array
		{
			SomeString:   "grüße ✓",
			SomeFloat:    1e-10,
			SomeIntArray: []int32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			SomeVectors:  []sample.Vector2{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}},
			TestObj:      sample.NetSerializable{Value: -1},
		},
	}
}

// TestSerializerRoundTrip tests that packets can be serialized and deserialized correctly
func TestSerializerRoundTrip(t *testing.T) {
	packets := testPackets()

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			for i, pkt := range packets {
				// Serialize
				w := wire.NewWriter()
				if err := serializer.Serialize(w, pkt); err != nil {
					t.Errorf("Failed to serialize packet %d: %v", i, err)
					continue
				}

				// Deserialize
				var result sample.Packet
				r := wire.NewReader(w.Bytes())
				if err := serializer.Deserialize(r, &result); err != nil {
					t.Errorf("Failed to deserialize packet %d: %v", i, err)
					continue
				}

				// Compare
				if !reflect.DeepEqual(pkt, &result) {
					t.Errorf("Packet %d doesn't match after round trip:\nOriginal: %+v\nResult: %+v",
						i, pkt, result)
				}
				if !r.EndOfData() {
					t.Errorf("Packet %d left %d unread bytes", i, r.AvailableBytes())
				}
			}
		})
	}
}

// TestSerializerStream tests that several packets written to one writer are read back in order
func TestSerializerStream(t *testing.T) {
	packets := testPackets()

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()
			w := wire.NewWriter()

			for i, pkt := range packets {
				if err := serializer.Serialize(w, pkt); err != nil {
					t.Fatalf("Failed to serialize packet %d: %v", i, err)
				}
			}

			r := wire.NewReader(w.Bytes())
			for i, pkt := range packets {
				var result sample.Packet
				if err := serializer.Deserialize(r, &result); err != nil {
					t.Fatalf("Failed to deserialize packet %d: %v", i, err)
				}
				if !reflect.DeepEqual(pkt, &result) {
					t.Errorf("Packet %d doesn't match:\nOriginal: %+v\nResult: %+v", i, pkt, result)
				}
			}

			if !r.EndOfData() {
				t.Errorf("Expected all bytes to be consumed, %d left", r.AvailableBytes())
			}
		})
	}
}

// TestNetMatchesBinary tests that the plan based serializer produces the hand written layout
func TestNetMatchesBinary(t *testing.T) {
	for i, pkt := range testPackets() {
		net := wire.NewWriter()
		if err := NewNetSerializer().Serialize(net, pkt); err != nil {
			t.Fatalf("Failed to serialize packet %d: %v", i, err)
		}

		raw := wire.NewWriter()
		if err := NewBinarySerializer().Serialize(raw, pkt); err != nil {
			t.Fatalf("Failed to serialize packet %d: %v", i, err)
		}

		if !bytes.Equal(net.Bytes(), raw.Bytes()) {
			t.Errorf("Packet %d: net and binary encodings differ:\nNet: %v\nBinary: %v", i, net.Bytes(), raw.Bytes())
		}
	}
}

// TestSerializerDeterministic tests that the same packet always produces the same bytes,
// also on a writer that is reused after Reset
func TestSerializerDeterministic(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()
			pkt := sample.New()

			fresh := wire.NewWriter()
			if err := serializer.Serialize(fresh, pkt); err != nil {
				t.Fatalf("Failed to serialize: %v", err)
			}

			reused := wire.NewWriter()
			for i := 0; i < 3; i++ {
				reused.Reset()
				if err := serializer.Serialize(reused, pkt); err != nil {
					t.Fatalf("Failed to serialize: %v", err)
				}
				if !bytes.Equal(fresh.Bytes(), reused.Bytes()) {
					t.Errorf("Iteration %d produced different bytes", i)
				}
			}
		})
	}
}

// TestInvalidBinaryData tests how the binary serializers handle corrupt or truncated data
func TestInvalidBinaryData(t *testing.T) {
	w := wire.NewWriter()
	_ = NewBinarySerializer().Serialize(w, sample.New())
	valid := w.CopyData()

	testCases := []struct {
		name        string
		data        []byte
		expectError error
	}{
		{
			name:        "Empty data",
			data:        []byte{},
			expectError: wire.ErrBufferUnderrun,
		},
		{
			name:        "Too short string length",
			data:        []byte{4, 0},
			expectError: wire.ErrBufferUnderrun,
		},
		{
			name:        "Invalid length for string",
			data:        []byte{5, 0, 0, 0, 'a', 'b', 'c'}, // Claims string length 5 but only 3 bytes provided
			expectError: wire.ErrBufferUnderrun,
		},
		{
			name:        "Invalid utf-8 in string",
			data:        []byte{2, 0, 0, 0, 0xC3, 0x28},
			expectError: wire.ErrDecoding,
		},
		{
			name:        "Missing last field",
			data:        valid[:len(valid)-4],
			expectError: wire.ErrBufferUnderrun,
		},
		{
			name:        "Valid packet",
			data:        valid,
			expectError: nil,
		},
	}

	for _, name := range []string{"Net", "Binary"} {
		serializer := testSerializers[name]()
		for _, tc := range testCases {
			t.Run(name+"_"+tc.name, func(t *testing.T) {
				var pkt sample.Packet
				err := serializer.Deserialize(wire.NewReader(tc.data), &pkt)

				if tc.expectError == nil && err != nil {
					t.Errorf("Did not expect error but got: %v", err)
				} else if tc.expectError != nil && !errors.Is(err, tc.expectError) {
					t.Errorf("Expected %v but got: %v", tc.expectError, err)
				}
			})
		}
	}
}

// TestByName tests the serializer factory
func TestByName(t *testing.T) {
	for _, name := range Names() {
		if s, err := ByName(name); err != nil || s == nil {
			t.Errorf("Failed to create serializer %s: %v", name, err)
		}
	}

	if _, err := ByName("xml"); err == nil {
		t.Errorf("Expected error for unknown serializer")
	}

	if len(Names()) != len(factories) {
		t.Errorf("Names() and factories are out of sync")
	}
}
