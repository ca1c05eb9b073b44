package jce

import (
	"fmt"
)

// Resolver resolves a SchemaID to its CompiledSchema, letting Struct-kind
// fields recurse into a nested schema without the field itself owning a
// pointer to it - this is what makes cyclic/self-referential schemas
// representable.
type Resolver interface {
	Resolve(id SchemaID) (*CompiledSchema, bool)
}

// EncodeWithSchema drives the writer from rec + schema, honoring
// Optional-skip and omit_defaults rules, and writes the top-level struct
// as a bare field sequence with no enclosing StructBegin/StructEnd. Nested
// Struct-kind fields are framed with StructBegin/StructEnd and resolved
// via resolver.
func EncodeWithSchema(rec Record, schema *CompiledSchema, resolver Resolver, limits *Limits) ([]byte, error) {
	w := NewWriter(limits, BigEndian)
	if err := encodeStructFields(w, "", rec, schema, resolver); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// encodeStructFields writes schema's fields, in compiled (tag-ascending)
// order, without an enclosing StructBegin/StructEnd - used both for the
// bare top level and, via encodeField's KStruct case, reused inside
// an explicit WriteStruct body for nested structs.
func encodeStructFields(w *Writer, path string, rec Record, schema *CompiledSchema, resolver Resolver) error {
	for slot, f := range schema.Fields {
		fieldPath := childPath(path, f.Name)

		var value TarsValue
		if slot < len(rec) {
			value = rec[slot]
		} else {
			value = Unset
		}

		if f.Kind.Tag == KOptional && (isUnset(value) || value == nil) {
			continue
		}
		if isUnset(value) {
			if !schema.DefaultMask[slot] {
				return newErr(KindMissingRequired, fieldPath, f.Tag, noWireType, "required field has no value to encode")
			}
			value = effectiveDefault(f)
		}

		if schema.Options.OmitDefaults && schema.DefaultMask[slot] {
			def := effectiveDefault(f)
			if valuesEqual(value, def) {
				continue
			}
		}

		if err := encodeField(w, fieldPath, f.Tag, value, f.Kind, resolver); err != nil {
			return err
		}
	}
	return nil
}

func effectiveDefault(f FieldDef) TarsValue {
	if f.Default != nil {
		return *f.Default
	}
	return zeroValueForKind(f.Kind)
}

// encodeField dispatches a single field's value according to its
// declared Kind.
func encodeField(w *Writer, path string, tag int, value TarsValue, kind Kind, resolver Resolver) error {
	switch kind.Tag {
	case KBool:
		v, ok := value.(bool)
		if !ok {
			return typeErr(path, tag, "bool", value)
		}
		return w.WriteBool(tag, v)

	case KInt, KEnum:
		v, ok := toInt64(value)
		if !ok {
			return typeErr(path, tag, "int", value)
		}
		return w.WriteInt(path, tag, v)

	case KFloat:
		v, ok := toFloat64(value)
		if !ok {
			return typeErr(path, tag, "float32", value)
		}
		return w.WriteFloat32(tag, float32(v))

	case KDouble:
		v, ok := toFloat64(value)
		if !ok {
			return typeErr(path, tag, "float64", value)
		}
		return w.WriteFloat(tag, v)

	case KStr:
		v, ok := value.(string)
		if !ok {
			return typeErr(path, tag, "string", value)
		}
		return w.WriteString(tag, v)

	case KBytes:
		v, ok := value.([]byte)
		if !ok {
			return typeErr(path, tag, "[]byte", value)
		}
		return w.WriteBytes(tag, v)

	case KList, KSet:
		v, ok := value.(TarsList)
		if !ok {
			return typeErr(path, tag, "list", value)
		}
		return w.WriteList(path, tag, len(v), func(i int) error {
			return encodeField(w, fmt.Sprintf("%s[%d]", path, i), 0, v[i], *kind.Elem, resolver)
		})

	case KTuple:
		v, ok := value.(TarsList)
		if !ok {
			return typeErr(path, tag, "tuple", value)
		}
		if len(v) != len(kind.Elems) {
			return newErr(KindTypeMismatch, path, tag, noWireType, "tuple arity mismatch")
		}
		return w.WriteList(path, tag, len(v), func(i int) error {
			return encodeField(w, fmt.Sprintf("%s[%d]", path, i), 0, v[i], kind.Elems[i], resolver)
		})

	case KMap:
		v, ok := value.(TarsMap)
		if !ok {
			return typeErr(path, tag, "map", value)
		}
		return w.WriteMap(path, tag, len(v), func(i int) error {
			if err := encodeField(w, path, 0, v[i].Key, *kind.Key, resolver); err != nil {
				return err
			}
			return encodeField(w, path, 1, v[i].Value, *kind.Value, resolver)
		})

	case KStruct:
		child, ok := resolver.Resolve(kind.SchemaID)
		if !ok {
			return newErr(KindTypeMismatch, path, tag, noWireType, "unresolved child schema")
		}
		rec, ok := value.(Record)
		if !ok {
			return typeErr(path, tag, "Record", value)
		}
		return w.WriteStruct(path, tag, func() error {
			return encodeStructFields(w, path, rec, child, resolver)
		})

	case KOptional:
		if value == nil {
			return w.WriteHead(tag, TypeZeroTag)
		}
		return encodeField(w, path, tag, value, *kind.Elem, resolver)

	case KUnion:
		for _, variant := range kind.Variants {
			if valueMatchesKind(value, variant) {
				return encodeField(w, path, tag, value, variant, resolver)
			}
		}
		return newErr(KindTypeMismatch, path, tag, noWireType, "value matches no union variant")

	case KAny:
		return encodeGenericField(w, path, tag, value)

	default:
		return newErr(KindTypeMismatch, path, tag, noWireType, "unknown field kind")
	}
}

func typeErr(path string, tag int, want string, got TarsValue) error {
	return newErr(KindTypeMismatch, path, tag, noWireType, fmt.Sprintf("expected %s, got %T", want, got))
}

func toInt64(v TarsValue) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	case uint64:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint8:
		return int64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func toFloat64(v TarsValue) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		i, ok := toInt64(v)
		return float64(i), ok
	}
}

// valueMatchesKind reports whether value's runtime type is compatible
// with kind, used by KUnion's ordered-trial dispatch.
func valueMatchesKind(value TarsValue, kind Kind) bool {
	switch kind.Tag {
	case KBool:
		_, ok := value.(bool)
		return ok
	case KInt, KEnum:
		_, ok := toInt64(value)
		return ok
	case KFloat, KDouble:
		_, ok := toFloat64(value)
		return ok
	case KStr:
		_, ok := value.(string)
		return ok
	case KBytes:
		_, ok := value.([]byte)
		return ok
	case KList, KSet, KTuple:
		_, ok := value.(TarsList)
		return ok
	case KMap:
		_, ok := value.(TarsMap)
		return ok
	case KStruct:
		_, ok := value.(Record)
		return ok
	case KOptional:
		return value == nil || valueMatchesKind(value, *kind.Elem)
	default:
		return false
	}
}

func childPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}
