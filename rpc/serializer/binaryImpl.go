package serializer

import (
	"github.com/ValentinKolb/dWire/lib/sample"
	"github.com/ValentinKolb/dWire/lib/wire"
)

// NewBinarySerializer creates a new serializer that writes every field with a direct put call.
// This is the baseline the reflective serializers are measured against.
func NewBinarySerializer() ISerializer {
	return &binarySerializerImpl{}
}

// binarySerializerImpl implements ISerializer using hand written put/get sequences
type binarySerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (b binarySerializerImpl) Serialize(w *wire.Writer, pkt *sample.Packet) error {
	return sample.WriteRaw(w, pkt)
}

func (b binarySerializerImpl) Deserialize(r *wire.Reader, pkt *sample.Packet) error {
	return sample.ReadRaw(r, pkt)
}
