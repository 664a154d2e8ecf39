package netser

import (
	"fmt"
	"github.com/ValentinKolb/dWire/lib/wire"
	"reflect"
)

// --------------------------------------------------------------------------
// Field codecs
// --------------------------------------------------------------------------

// codec writes and reads a single value of one type. Values passed to read are always settable.
type codec struct {
	write func(w *wire.Writer, v reflect.Value) error
	read  func(r *wire.Reader, v reflect.Value) error
}

// codecFor returns the codec for values of type t. Registered nested types take precedence over
// the built-in kinds.
func (s *Serializer) codecFor(t reflect.Type) (codec, error) {
	if c, ok := s.nested.Load(t); ok {
		return c, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return codec{
			write: func(w *wire.Writer, v reflect.Value) error { w.PutBool(v.Bool()); return nil },
			read: func(r *wire.Reader, v reflect.Value) error {
				b, err := r.GetBool()
				v.SetBool(b)
				return err
			},
		}, nil
	case reflect.Int8:
		return codec{
			write: func(w *wire.Writer, v reflect.Value) error { w.PutInt8(int8(v.Int())); return nil },
			read: func(r *wire.Reader, v reflect.Value) error {
				i, err := r.GetInt8()
				v.SetInt(int64(i))
				return err
			},
		}, nil
	case reflect.Int16:
		return codec{
			write: func(w *wire.Writer, v reflect.Value) error { w.PutInt16(int16(v.Int())); return nil },
			read: func(r *wire.Reader, v reflect.Value) error {
				i, err := r.GetInt16()
				v.SetInt(int64(i))
				return err
			},
		}, nil
	case reflect.Int32:
		return codec{
			write: func(w *wire.Writer, v reflect.Value) error { w.PutInt32(int32(v.Int())); return nil },
			read: func(r *wire.Reader, v reflect.Value) error {
				i, err := r.GetInt32()
				v.SetInt(int64(i))
				return err
			},
		}, nil
	case reflect.Int64, reflect.Int: // int is always written as 64 bit
		return codec{
			write: func(w *wire.Writer, v reflect.Value) error { w.PutInt64(v.Int()); return nil },
			read: func(r *wire.Reader, v reflect.Value) error {
				i, err := r.GetInt64()
				if err == nil && v.OverflowInt(i) {
					return fmt.Errorf("%w: %d overflows %s", wire.ErrDecoding, i, v.Type())
				}
				v.SetInt(i)
				return err
			},
		}, nil
	case reflect.Uint8:
		return codec{
			write: func(w *wire.Writer, v reflect.Value) error { w.PutByte(byte(v.Uint())); return nil },
			read: func(r *wire.Reader, v reflect.Value) error {
				b, err := r.GetByte()
				v.SetUint(uint64(b))
				return err
			},
		}, nil
	case reflect.Uint16:
		return codec{
			write: func(w *wire.Writer, v reflect.Value) error { w.PutUint16(uint16(v.Uint())); return nil },
			read: func(r *wire.Reader, v reflect.Value) error {
				i, err := r.GetUint16()
				v.SetUint(uint64(i))
				return err
			},
		}, nil
	case reflect.Uint32:
		return codec{
			write: func(w *wire.Writer, v reflect.Value) error { w.PutUint32(uint32(v.Uint())); return nil },
			read: func(r *wire.Reader, v reflect.Value) error {
				i, err := r.GetUint32()
				v.SetUint(uint64(i))
				return err
			},
		}, nil
	case reflect.Uint64, reflect.Uint:
		return codec{
			write: func(w *wire.Writer, v reflect.Value) error { w.PutUint64(v.Uint()); return nil },
			read: func(r *wire.Reader, v reflect.Value) error {
				i, err := r.GetUint64()
				if err == nil && v.OverflowUint(i) {
					return fmt.Errorf("%w: %d overflows %s", wire.ErrDecoding, i, v.Type())
				}
				v.SetUint(i)
				return err
			},
		}, nil
	case reflect.Float32:
		return codec{
			write: func(w *wire.Writer, v reflect.Value) error { w.PutFloat32(float32(v.Float())); return nil },
			read: func(r *wire.Reader, v reflect.Value) error {
				f, err := r.GetFloat32()
				v.SetFloat(float64(f))
				return err
			},
		}, nil
	case reflect.Float64:
		return codec{
			write: func(w *wire.Writer, v reflect.Value) error { w.PutFloat64(v.Float()); return nil },
			read: func(r *wire.Reader, v reflect.Value) error {
				f, err := r.GetFloat64()
				v.SetFloat(f)
				return err
			},
		}, nil
	case reflect.String:
		return codec{
			write: func(w *wire.Writer, v reflect.Value) error { return w.PutString(v.String()) },
			read: func(r *wire.Reader, v reflect.Value) error {
				str, err := r.GetString()
				v.SetString(str)
				return err
			},
		}, nil
	case reflect.Pointer:
		if t.Elem().Kind() == reflect.String {
			return nullableStringCodec(t), nil
		}
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return bytesCodec(t), nil
		}
		elem, err := s.codecFor(t.Elem())
		if err != nil {
			return codec{}, err
		}
		return sliceCodec(t, elem), nil
	}

	return codec{}, fmt.Errorf("%w: %s (register it with RegisterNested or RegisterSerializable)", ErrUnsupportedType, t)
}

// nullableStringCodec encodes *string fields, nil is written as the null marker
func nullableStringCodec(t reflect.Type) codec {
	return codec{
		write: func(w *wire.Writer, v reflect.Value) error {
			if v.IsNil() {
				return w.PutStringPtr(nil)
			}
			return w.PutString(v.Elem().String())
		},
		read: func(r *wire.Reader, v reflect.Value) error {
			str, err := r.GetStringPtr()
			if err != nil {
				return err
			}
			if str == nil {
				v.SetZero()
				return nil
			}
			p := reflect.New(t.Elem())
			p.Elem().SetString(*str)
			v.Set(p)
			return nil
		},
	}
}

// bytesCodec encodes []byte (and named byte slice) fields
func bytesCodec(t reflect.Type) codec {
	return codec{
		write: func(w *wire.Writer, v reflect.Value) error {
			if v.IsNil() {
				return w.PutBytesWithLength(nil)
			}
			return w.PutBytesWithLength(v.Bytes())
		},
		read: func(r *wire.Reader, v reflect.Value) error {
			b, err := r.GetBytesWithLength()
			if err != nil {
				return err
			}
			if b == nil {
				v.SetZero()
				return nil
			}
			v.Set(reflect.ValueOf(b).Convert(t))
			return nil
		},
	}
}

// sliceCodec encodes a slice as a count followed by every element encoded with elem
func sliceCodec(t reflect.Type, elem codec) codec {
	return codec{
		write: func(w *wire.Writer, v reflect.Value) error {
			n := v.Len()
			if err := w.PutCount(n, v.IsNil()); err != nil {
				return err
			}
			for i := 0; i < n; i++ {
				if err := elem.write(w, v.Index(i)); err != nil {
					return fmt.Errorf("element %d: %w", i, err)
				}
			}
			return nil
		},
		read: func(r *wire.Reader, v reflect.Value) error {
			n, isNil, err := r.GetCount(1)
			if err != nil {
				return err
			}
			if isNil {
				v.SetZero()
				return nil
			}
			// reuse the existing backing array when it is large enough
			if !v.IsNil() && v.Cap() >= n {
				v.SetLen(n)
			} else {
				v.Set(reflect.MakeSlice(t, n, n))
			}
			for i := 0; i < n; i++ {
				if err := elem.read(r, v.Index(i)); err != nil {
					return fmt.Errorf("element %d: %w", i, err)
				}
			}
			return nil
		},
	}
}
