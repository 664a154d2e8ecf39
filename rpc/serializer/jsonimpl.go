package serializer

import (
	"github.com/ValentinKolb/dWire/lib/sample"
	"github.com/ValentinKolb/dWire/lib/wire"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NewJSONSerializer creates a new serializer using json encoding
func NewJSONSerializer() ISerializer {
	return &jsonSerializerImpl{}
}

// jsonSerializerImpl implements the ISerializer interface using json encoding.
// JSON documents are not self delimiting in a byte stream, so every document is length prefixed.
type jsonSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (j jsonSerializerImpl) Serialize(w *wire.Writer, pkt *sample.Packet) error {
	b, err := json.Marshal(pkt)
	if err != nil {
		return err
	}
	return w.PutBytesWithLength(b)
}

func (j jsonSerializerImpl) Deserialize(r *wire.Reader, pkt *sample.Packet) error {
	b, err := r.GetBytesWithLength()
	if err != nil {
		return err
	}
	*pkt = sample.Packet{}
	return json.Unmarshal(b, pkt)
}
