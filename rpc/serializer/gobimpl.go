package serializer

import (
	"encoding/gob"
	"github.com/ValentinKolb/dWire/lib/sample"
	"github.com/ValentinKolb/dWire/lib/wire"
)

// NewGOBSerializer creates a new serializer using Go's binary gob format
func NewGOBSerializer() ISerializer {
	return &gobSerializerImpl{}
}

// gobSerializerImpl implements the ISerializer interface using gob encoding.
// A new encoder is used for every packet, so every packet carries its own type descriptors.
type gobSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (g gobSerializerImpl) Serialize(w *wire.Writer, pkt *sample.Packet) error {
	return gob.NewEncoder(w).Encode(pkt)
}

func (g gobSerializerImpl) Deserialize(r *wire.Reader, pkt *sample.Packet) error {
	// the reader implements io.ByteReader, so the decoder does not read past the packet
	*pkt = sample.Packet{}
	return gob.NewDecoder(r).Decode(pkt)
}
