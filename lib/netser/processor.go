package netser

import (
	"errors"
	"fmt"
	"github.com/ValentinKolb/dWire/lib/wire"
	"github.com/cespare/xxhash/v2"
	"github.com/puzpuzpuz/xsync/v3"
	"reflect"
)

// ErrUnknownPacket is returned when a packet hash has no subscriber
var ErrUnknownPacket = errors.New("netser: unknown packet type")

// subscription decodes one packet type and hands it to the subscriber
type subscription struct {
	typ    reflect.Type
	handle func(r *wire.Reader) error
}

// Processor frames structs as packets: a 64 bit type hash followed by the fields written by a
// Serializer. On the receiving side every packet is decoded and passed to the handler subscribed
// for its type.
//
// Packet layout:
//
//	[uint64 xxhash of "<package path>.<type name>"][fields]
type Processor struct {
	serializer *Serializer
	hashes     *xsync.MapOf[reflect.Type, uint64]
	handlers   *xsync.MapOf[uint64, subscription]
}

// NewProcessor creates a processor that encodes packets with s
func NewProcessor(s *Serializer) *Processor {
	return &Processor{
		serializer: s,
		hashes:     xsync.NewMapOf[reflect.Type, uint64](),
		handlers:   xsync.NewMapOf[uint64, subscription](),
	}
}

// --------------------------------------------------------------------------
// Writing
// --------------------------------------------------------------------------

// Write appends v as a packet to w. v must be a named struct or a non-nil pointer to one.
// Nothing is written if v is rejected.
func (p *Processor) Write(w *wire.Writer, v any) error {
	// validates v and builds its plan, so the hash is only written for a packet that can follow
	if err := p.serializer.Prepare(v); err != nil {
		return err
	}
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if err := checkNamed(t); err != nil {
		return err
	}

	w.PutUint64(p.hashOf(t))
	return p.serializer.Serialize(w, v)
}

// --------------------------------------------------------------------------
// Reading
// --------------------------------------------------------------------------

// Subscribe registers handler for packets of type T. A new *T is decoded for every packet.
// The plan for T is built immediately so unsupported types are reported here.
func Subscribe[T any](p *Processor, handler func(*T)) error {
	return subscribe[T](p, func() *T { return new(T) }, handler)
}

// SubscribeReusable registers handler for packets of type T. The same *T is decoded into for
// every packet, the handler must not retain it.
func SubscribeReusable[T any](p *Processor, handler func(*T)) error {
	reused := new(T)
	return subscribe[T](p, func() *T { return reused }, handler)
}

func subscribe[T any](p *Processor, alloc func() *T, handler func(*T)) error {
	t := reflect.TypeFor[T]()
	if err := checkNamed(t); err != nil {
		return err
	}
	if err := p.serializer.Prepare(new(T)); err != nil {
		return err
	}

	hash := p.hashOf(t)
	sub := subscription{
		typ: t,
		handle: func(r *wire.Reader) error {
			v := alloc()
			if err := p.serializer.Deserialize(r, v); err != nil {
				return err
			}
			handler(v)
			return nil
		},
	}

	if prev, loaded := p.handlers.LoadOrStore(hash, sub); loaded {
		if prev.typ != t {
			return fmt.Errorf("netser: hash collision between %s and %s", prev.typ, t)
		}
		p.handlers.Store(hash, sub)
		Logger.Warningf("replaced subscriber for %s", t)
	}
	return nil
}

// Unsubscribe removes the handler for packets of type T
func Unsubscribe[T any](p *Processor) {
	p.handlers.Delete(p.hashOf(reflect.TypeFor[T]()))
}

// ReadPacket decodes the next packet from r and calls its subscriber
func (p *Processor) ReadPacket(r *wire.Reader) error {
	hash, err := r.GetUint64()
	if err != nil {
		return err
	}

	sub, ok := p.handlers.Load(hash)
	if !ok {
		return fmt.Errorf("%w: hash %#016x", ErrUnknownPacket, hash)
	}
	if err := sub.handle(r); err != nil {
		return fmt.Errorf("packet %s: %w", sub.typ, err)
	}
	return nil
}

// ReadAll decodes packets until r is exhausted and returns how many were dispatched.
// It stops at the first error.
func (p *Processor) ReadAll(r *wire.Reader) (int, error) {
	n := 0
	for !r.EndOfData() {
		if err := p.ReadPacket(r); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// checkNamed rejects unnamed struct types, they have no name to hash
func checkNamed(t reflect.Type) error {
	if t.Name() == "" {
		return fmt.Errorf("%w: unnamed type %s cannot be a packet", ErrInvalidTarget, t)
	}
	return nil
}

// hashOf returns the cached type hash of t
func (p *Processor) hashOf(t reflect.Type) uint64 {
	h, _ := p.hashes.LoadOrCompute(t, func() uint64 {
		return xxhash.Sum64String(t.PkgPath() + "." + t.Name())
	})
	return h
}
