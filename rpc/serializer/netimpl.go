package serializer

import (
	"github.com/ValentinKolb/dWire/lib/netser"
	"github.com/ValentinKolb/dWire/lib/sample"
	"github.com/ValentinKolb/dWire/lib/wire"
)

// NewNetSerializer creates a new serializer that encodes packets field by field using a
// reflection plan that is built on first use and cached
func NewNetSerializer() ISerializer {
	s := netser.New()
	netser.RegisterSerializable[sample.NetSerializable](s)
	netser.RegisterNested(s, sample.WriteVector2, sample.ReadVector2)
	return &netSerializerImpl{s: s}
}

// netSerializerImpl implements the ISerializer interface using the netser package
type netSerializerImpl struct {
	s *netser.Serializer
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (n netSerializerImpl) Serialize(w *wire.Writer, pkt *sample.Packet) error {
	return n.s.Serialize(w, pkt)
}

func (n netSerializerImpl) Deserialize(r *wire.Reader, pkt *sample.Packet) error {
	return n.s.Deserialize(r, pkt)
}
