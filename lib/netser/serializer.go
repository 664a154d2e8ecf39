package netser

import (
	"errors"
	"fmt"
	"github.com/ValentinKolb/dWire/lib/wire"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
	"reflect"
)

var Logger = logger.GetLogger("netser")

var (
	// ErrUnsupportedType is returned when a struct contains a field that has no codec
	ErrUnsupportedType = errors.New("netser: unsupported type")
	// ErrInvalidTarget is returned when a value is not a struct (or, for decoding, not a non-nil
	// pointer to a struct)
	ErrInvalidTarget = errors.New("netser: invalid target")
)

// Serializable is implemented by types that write and read their own fields
type Serializable interface {
	// Serialize writes the value to w
	Serialize(w *wire.Writer) error
	// Deserialize reads the value from r, in the order Serialize wrote it
	Deserialize(r *wire.Reader) error
}

// fieldOp is a single step of a plan: the codec for the struct field at index
type fieldOp struct {
	name  string
	index int
	codec
}

// plan is the ordered list of field operations for one struct type
type plan struct {
	typ    reflect.Type
	fields []fieldOp
}

// Serializer writes and reads structs field by field in declaration order.
// Exported fields are serialized, fields tagged `netser:"-"` are skipped.
//
// The reflection work is done once per type: the first Serialize or Deserialize of a type builds
// a plan of field codecs that is cached and reused by every later call. A Serializer is safe for
// concurrent use, the Writer and Reader passed to it are not.
type Serializer struct {
	plans  *xsync.MapOf[reflect.Type, *plan]
	nested *xsync.MapOf[reflect.Type, codec]
}

// New creates a Serializer with no registered nested types
func New() *Serializer {
	return &Serializer{
		plans:  xsync.NewMapOf[reflect.Type, *plan](),
		nested: xsync.NewMapOf[reflect.Type, codec](),
	}
}

// --------------------------------------------------------------------------
// Nested type registration
// --------------------------------------------------------------------------

// RegisterNested registers functions that write and read values of type T.
// Fields of type T (and slices of T) are encoded with them. Registration must happen before the
// first plan that contains T is built.
func RegisterNested[T any](s *Serializer, write func(*wire.Writer, T) error, read func(*wire.Reader) (T, error)) {
	typ := reflect.TypeFor[T]()
	s.nested.Store(typ, codec{
		write: func(w *wire.Writer, v reflect.Value) error {
			if v.CanAddr() {
				return write(w, *v.Addr().Interface().(*T))
			}
			return write(w, v.Interface().(T))
		},
		read: func(r *wire.Reader, v reflect.Value) error {
			val, err := read(r)
			if err != nil {
				return err
			}
			*v.Addr().Interface().(*T) = val
			return nil
		},
	})
	Logger.Debugf("registered nested type %s", typ)
}

// RegisterSerializable registers T as a nested type whose pointer implements Serializable
func RegisterSerializable[T any, PT interface {
	*T
	Serializable
}](s *Serializer) {
	typ := reflect.TypeFor[T]()
	s.nested.Store(typ, codec{
		write: func(w *wire.Writer, v reflect.Value) error {
			if v.CanAddr() {
				return PT(v.Addr().Interface().(*T)).Serialize(w)
			}
			val := v.Interface().(T)
			return PT(&val).Serialize(w)
		},
		read: func(r *wire.Reader, v reflect.Value) error {
			return PT(v.Addr().Interface().(*T)).Deserialize(r)
		},
	})
	Logger.Debugf("registered serializable type %s", typ)
}

// --------------------------------------------------------------------------
// Serialization
// --------------------------------------------------------------------------

// Serialize writes v to w. v must be a struct or a non-nil pointer to a struct.
func (s *Serializer) Serialize(w *wire.Writer, v any) error {
	rv, err := structValue(v, false)
	if err != nil {
		return err
	}

	// registered types are written with their own codec
	if c, ok := s.nested.Load(rv.Type()); ok {
		return c.write(w, rv)
	}

	p, err := s.planFor(rv.Type())
	if err != nil {
		return err
	}
	for _, f := range p.fields {
		if err := f.write(w, rv.Field(f.index)); err != nil {
			return fmt.Errorf("serialize %s.%s: %w", p.typ, f.name, err)
		}
	}
	return nil
}

// Deserialize reads into v, which must be a non-nil pointer to a struct, the fields written by
// Serialize for the same type.
func (s *Serializer) Deserialize(r *wire.Reader, v any) error {
	rv, err := structValue(v, true)
	if err != nil {
		return err
	}

	if c, ok := s.nested.Load(rv.Type()); ok {
		return c.read(r, rv)
	}

	p, err := s.planFor(rv.Type())
	if err != nil {
		return err
	}
	for _, f := range p.fields {
		if err := f.read(r, rv.Field(f.index)); err != nil {
			return fmt.Errorf("deserialize %s.%s: %w", p.typ, f.name, err)
		}
	}
	return nil
}

// Prepare builds and caches the plan for the type of v without serializing anything.
// It reports unsupported fields up front.
func (s *Serializer) Prepare(v any) error {
	rv, err := structValue(v, false)
	if err != nil {
		return err
	}
	if _, ok := s.nested.Load(rv.Type()); ok {
		return nil
	}
	_, err = s.planFor(rv.Type())
	return err
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// structValue unwraps v to a struct value. If settable is true v must be a non-nil pointer.
func structValue(v any, settable bool) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: nil %s", ErrInvalidTarget, rv.Type())
		}
		rv = rv.Elem()
	} else if settable {
		return reflect.Value{}, fmt.Errorf("%w: %T is not a pointer", ErrInvalidTarget, v)
	}

	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: %T is not a struct", ErrInvalidTarget, v)
	}
	return rv, nil
}

// planFor returns the cached plan for t, building it on first use
func (s *Serializer) planFor(t reflect.Type) (*plan, error) {
	if p, ok := s.plans.Load(t); ok {
		return p, nil
	}

	p, err := s.buildPlan(t)
	if err != nil {
		return nil, err
	}

	// another goroutine may have built the same plan concurrently, keep the first one
	p, _ = s.plans.LoadOrStore(t, p)
	return p, nil
}

// buildPlan creates the field operations for struct type t
func (s *Serializer) buildPlan(t reflect.Type) (*plan, error) {
	p := &plan{typ: t}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("netser") == "-" {
			continue
		}

		c, err := s.codecFor(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", t, f.Name, err)
		}
		p.fields = append(p.fields, fieldOp{name: f.Name, index: i, codec: c})
	}

	Logger.Debugf("built plan for %s with %d fields", t, len(p.fields))
	return p, nil
}
