package jce

import (
	"fmt"
	"sort"
)

// EncodeGeneric encodes a TarsValue using only wire type codes, with no
// schema, no defaults and no constraints. The top-level value must be a
// TarsStruct, emitted as a bare field sequence per the Tars convention;
// nested struct-shaped values are framed with StructBegin/StructEnd as
// usual.
func EncodeGeneric(v TarsValue, limits *Limits) ([]byte, error) {
	top, ok := v.(TarsStruct)
	if !ok {
		return nil, newErr(KindTypeMismatch, "", noTag, noWireType, "top-level generic value must be a TarsStruct")
	}

	w := NewWriter(limits, BigEndian)
	if err := writeStructFieldsBare(w, "", top); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// writeStructFieldsBare writes a TarsStruct's fields in ascending tag
// order without an enclosing StructBegin/StructEnd, matching the
// top-level convention.
func writeStructFieldsBare(w *Writer, path string, s TarsStruct) error {
	tags := make([]int, 0, len(s))
	for t := range s {
		tags = append(tags, t)
	}
	sort.Ints(tags)

	for _, t := range tags {
		if t < 0 || t > 255 {
			return newErr(KindOutOfRange, path, t, noWireType, "struct-map tag out of range")
		}
		if err := encodeGenericField(w, path, t, s[t]); err != nil {
			return err
		}
	}
	return nil
}

// encodeGenericField writes one tagged field for any TarsValue variant.
func encodeGenericField(w *Writer, path string, tag int, v TarsValue) error {
	switch val := v.(type) {
	case nil:
		return w.WriteHead(tag, TypeZeroTag)
	case bool:
		return w.WriteBool(tag, val)
	case int64:
		return w.WriteInt(path, tag, val)
	case int:
		return w.WriteInt(path, tag, int64(val))
	case float32:
		return w.WriteFloat32(tag, val)
	case float64:
		return w.WriteFloat(tag, val)
	case string:
		return w.WriteString(tag, val)
	case []byte:
		return w.WriteBytes(tag, val)
	case TarsList:
		return w.WriteList(path, tag, len(val), func(i int) error {
			return encodeGenericField(w, path, 0, val[i])
		})
	case TarsMap:
		return w.WriteMap(path, tag, len(val), func(i int) error {
			if err := encodeGenericField(w, path, 0, val[i].Key); err != nil {
				return err
			}
			return encodeGenericField(w, path, 1, val[i].Value)
		})
	case TarsStruct:
		return w.WriteStruct(path, tag, func() error {
			return writeStructFieldsBare(w, path, val)
		})
	default:
		return newErr(KindTypeMismatch, path, tag, noWireType, fmt.Sprintf("unsupported TarsValue type %T", v))
	}
}

// DecodeGeneric decodes a TarsValue from data with no schema: the top
// level is read as a bare sequence of fields until EOF, producing a
// TarsStruct. No integer narrowing, no defaults, no constraints are
// applied.
func DecodeGeneric(data []byte, limits *Limits) (TarsValue, error) {
	r := NewReader(data, limits, BigEndian)
	out := TarsStruct{}

	for !r.AtEOF() {
		tag, typ, err := r.ReadHead("")
		if err != nil {
			return nil, err
		}
		v, err := decodeGenericValue(r, "", typ)
		if err != nil {
			return nil, err
		}
		out[tag] = v
	}
	return out, nil
}

// decodeGenericValue decodes the value following an already-consumed
// (tag, type) head.
func decodeGenericValue(r *Reader, path string, typ WireType) (TarsValue, error) {
	switch typ {
	case TypeZeroTag:
		return int64(0), nil
	case TypeInt1, TypeInt2, TypeInt4, TypeInt8:
		return r.ReadInt(path, typ)
	case TypeFloat:
		v, err := r.ReadFloat(path, typ)
		if err != nil {
			return nil, err
		}
		return float32(v), nil
	case TypeDouble:
		return r.ReadFloat(path, typ)
	case TypeString1, TypeString4:
		return r.ReadString(path, typ)
	case TypeSimpleList:
		return r.ReadSimpleList(path)
	case TypeList:
		n, err := r.ReadListHeader(path)
		if err != nil {
			return nil, err
		}
		out := make(TarsList, 0, min(n, 1024))
		err = withDepth(r, path, func() error {
			for i := 0; i < n; i++ {
				_, et, err := r.ReadHead(path)
				if err != nil {
					return err
				}
				v, err := decodeGenericValue(r, path, et)
				if err != nil {
					return err
				}
				out = append(out, v)
			}
			return nil
		})
		return out, err
	case TypeMap:
		n, err := r.ReadMapHeader(path)
		if err != nil {
			return nil, err
		}
		out := make(TarsMap, 0, min(n, 1024))
		err = withDepth(r, path, func() error {
			for i := 0; i < n; i++ {
				_, kt, err := r.ReadHead(path)
				if err != nil {
					return err
				}
				kv, err := decodeGenericValue(r, path, kt)
				if err != nil {
					return err
				}
				_, vt, err := r.ReadHead(path)
				if err != nil {
					return err
				}
				vv, err := decodeGenericValue(r, path, vt)
				if err != nil {
					return err
				}
				out = append(out, TarsPair{Key: kv, Value: vv})
			}
			return nil
		})
		return out, err
	case TypeStructBegin:
		out := TarsStruct{}
		err := r.ReadStructBody(path, func(tag int, ft WireType) error {
			v, err := decodeGenericValue(r, path, ft)
			if err != nil {
				return err
			}
			out[tag] = v
			return nil
		})
		return out, err
	default:
		return nil, newErr(KindBadType, path, noTag, byte(typ), "unsupported wire type in generic decode")
	}
}

// withDepth increments/decrements the reader's recursion depth around fn,
// reusing the same counter Reader.ReadStructBody uses so List/Map nesting
// counts against the same MaxDepth budget as Struct nesting.
func withDepth(r *Reader, path string, fn func() error) error {
	if err := r.enterContainer(path); err != nil {
		return err
	}
	defer r.exitContainer()
	return fn()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
