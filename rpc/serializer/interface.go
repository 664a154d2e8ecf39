package serializer

import (
	"github.com/ValentinKolb/dWire/lib/sample"
	"github.com/ValentinKolb/dWire/lib/wire"
)

// ISerializer is the interface for all Packet Serializers
type ISerializer interface {
	// Serialize appends the encoded packet to w
	// It returns an error if the packet cannot be encoded, bytes written before the error remain in w
	Serialize(w *wire.Writer, pkt *sample.Packet) error
	// Deserialize decodes the next packet from r into pkt
	// It takes a reader positioned at the start of a packet and a pointer to a Packet as parameters
	// It returns an error if any
	Deserialize(r *wire.Reader, pkt *sample.Packet) error
}
