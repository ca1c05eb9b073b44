package jce

import "fmt"

// DecodeWithSchema decodes a top-level struct (a bare field sequence, with
// no enclosing StructBegin/StructEnd) from data using schema, returning a
// Record addressable by compiled slot index.
func DecodeWithSchema(data []byte, schema *CompiledSchema, resolver Resolver, limits *Limits) (Record, error) {
	r := NewReader(data, limits, BigEndian)
	rec := NewRecord(schema)
	setMask := make([]bool, schema.NumSlots())

	for !r.AtEOF() {
		tag, typ, err := r.ReadHead("")
		if err != nil {
			return nil, err
		}
		if err := decodeOneField(r, "", tag, typ, schema, resolver, rec, setMask); err != nil {
			return nil, err
		}
	}

	if err := fillDefaultsAndCheckRequired(schema, "", rec, setMask); err != nil {
		return nil, err
	}
	return rec, nil
}

// decodeNestedStruct decodes a Struct-kind field: fields framed between an
// already-consumed StructBegin and its StructEnd.
func decodeNestedStruct(r *Reader, path string, schema *CompiledSchema, resolver Resolver) (Record, error) {
	rec := NewRecord(schema)
	setMask := make([]bool, schema.NumSlots())

	err := r.ReadStructBody(path, func(tag int, typ WireType) error {
		return decodeOneField(r, path, tag, typ, schema, resolver, rec, setMask)
	})
	if err != nil {
		return nil, err
	}

	if err := fillDefaultsAndCheckRequired(schema, path, rec, setMask); err != nil {
		return nil, err
	}
	return rec, nil
}

func fillDefaultsAndCheckRequired(schema *CompiledSchema, path string, rec Record, setMask []bool) error {
	for slot, f := range schema.Fields {
		if setMask[slot] {
			continue
		}
		if schema.DefaultMask[slot] {
			rec[slot] = effectiveDefault(f)
			continue
		}
		return newErr(KindMissingRequired, childPath(path, f.Name), f.Tag, noWireType, "required field missing at StructEnd")
	}
	return nil
}

// decodeOneField routes a single (tag, type) pair: unknown-tag handling,
// duplicate detection, kind/wire compatibility, decode, numeric narrowing
// and constraint evaluation.
func decodeOneField(r *Reader, path string, tag int, typ WireType, schema *CompiledSchema, resolver Resolver, rec Record, setMask []bool) error {
	slot, ok := schema.SlotForTag(tag)
	if !ok {
		if schema.Options.ForbidUnknown {
			return newErr(KindUnknownTag, path, tag, byte(typ), "tag not present in schema")
		}
		return r.SkipField(path, typ)
	}

	if setMask[slot] {
		return newErr(KindDuplicateTag, path, tag, byte(typ), "tag already routed to this slot")
	}

	f := schema.Fields[slot]
	fieldPath := childPath(path, f.Name)

	if !kindCompatible(f.Kind, typ) {
		return newErr(KindTypeMismatch, fieldPath, tag, byte(typ), fmt.Sprintf("wire type %s incompatible with declared kind", typ))
	}

	v, err := decodeField(r, fieldPath, typ, f.Kind, resolver)
	if err != nil {
		return err
	}

	v, err = narrowNumeric(f, v, fieldPath, tag)
	if err != nil {
		return err
	}

	if err := evaluateConstraints(f.Constraints, v, fieldPath); err != nil {
		return err
	}

	rec[slot] = v
	setMask[slot] = true
	return nil
}

// kindCompatible reports whether a decoded wire type is an acceptable
// encoding for a field declared with kind.
func kindCompatible(kind Kind, typ WireType) bool {
	switch kind.Tag {
	case KBool, KInt, KEnum:
		switch typ {
		case TypeInt1, TypeInt2, TypeInt4, TypeInt8, TypeZeroTag:
			return true
		}
		return false
	case KFloat, KDouble:
		switch typ {
		case TypeFloat, TypeDouble, TypeZeroTag:
			return true
		}
		return false
	case KStr:
		return typ == TypeString1 || typ == TypeString4
	case KBytes:
		return typ == TypeSimpleList
	case KList, KSet:
		if typ == TypeList {
			return true
		}
		// List<Int8> also accepts the SimpleList fast path.
		return typ == TypeSimpleList && kind.Elem != nil && kind.Elem.Tag == KInt && kind.Elem.IntWidth == 1
	case KTuple:
		return typ == TypeList
	case KMap:
		return typ == TypeMap
	case KStruct, KAny:
		return typ == TypeStructBegin || kind.Tag == KAny
	case KOptional:
		return kindCompatible(*kind.Elem, typ)
	case KUnion:
		for _, v := range kind.Variants {
			if kindCompatible(v, typ) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// decodeField decodes the value following an already-consumed (tag, type)
// head, according to kind.
func decodeField(r *Reader, path string, typ WireType, kind Kind, resolver Resolver) (TarsValue, error) {
	switch kind.Tag {
	case KBool:
		return r.ReadBool(path, typ)

	case KInt, KEnum:
		return r.ReadInt(path, typ)

	case KFloat:
		v, err := r.ReadFloat(path, typ)
		if err != nil {
			return nil, err
		}
		return float32(v), nil

	case KDouble:
		return r.ReadFloat(path, typ)

	case KStr:
		return r.ReadString(path, typ)

	case KBytes:
		return r.ReadSimpleList(path)

	case KList, KSet:
		if typ == TypeSimpleList {
			b, err := r.ReadSimpleList(path)
			if err != nil {
				return nil, err
			}
			out := make(TarsList, len(b))
			for i, c := range b {
				out[i] = int64(int8(c))
			}
			return out, nil
		}
		n, err := r.ReadListHeader(path)
		if err != nil {
			return nil, err
		}
		var out TarsList
		err = withDepth(r, path, func() error {
			out = make(TarsList, 0, min(n, 4096))
			for i := 0; i < n; i++ {
				_, et, err := r.ReadHead(path)
				if err != nil {
					return err
				}
				elemPath := fmt.Sprintf("%s[%d]", path, i)
				if !kindCompatible(*kind.Elem, et) {
					return newErr(KindTypeMismatch, elemPath, noTag, byte(et), "element wire type incompatible with declared kind")
				}
				v, err := decodeField(r, elemPath, et, *kind.Elem, resolver)
				if err != nil {
					return err
				}
				out = append(out, v)
			}
			return nil
		})
		return out, err

	case KTuple:
		n, err := r.ReadListHeader(path)
		if err != nil {
			return nil, err
		}
		if n != len(kind.Elems) {
			return nil, newErr(KindTypeMismatch, path, noTag, byte(typ), "tuple arity mismatch")
		}
		var out TarsList
		err = withDepth(r, path, func() error {
			out = make(TarsList, 0, n)
			for i := 0; i < n; i++ {
				_, et, err := r.ReadHead(path)
				if err != nil {
					return err
				}
				elemPath := fmt.Sprintf("%s[%d]", path, i)
				if !kindCompatible(kind.Elems[i], et) {
					return newErr(KindTypeMismatch, elemPath, noTag, byte(et), "element wire type incompatible with declared kind")
				}
				v, err := decodeField(r, elemPath, et, kind.Elems[i], resolver)
				if err != nil {
					return err
				}
				out = append(out, v)
			}
			return nil
		})
		return out, err

	case KMap:
		n, err := r.ReadMapHeader(path)
		if err != nil {
			return nil, err
		}
		var out TarsMap
		err = withDepth(r, path, func() error {
			out = make(TarsMap, 0, min(n, 4096))
			for i := 0; i < n; i++ {
				_, kt, err := r.ReadHead(path)
				if err != nil {
					return err
				}
				if !kindCompatible(*kind.Key, kt) {
					return newErr(KindTypeMismatch, path, noTag, byte(kt), "map key wire type incompatible")
				}
				kv, err := decodeField(r, path, kt, *kind.Key, resolver)
				if err != nil {
					return err
				}
				_, vt, err := r.ReadHead(path)
				if err != nil {
					return err
				}
				if !kindCompatible(*kind.Value, vt) {
					return newErr(KindTypeMismatch, path, noTag, byte(vt), "map value wire type incompatible")
				}
				vv, err := decodeField(r, path, vt, *kind.Value, resolver)
				if err != nil {
					return err
				}
				out = append(out, TarsPair{Key: kv, Value: vv})
			}
			return nil
		})
		return out, err

	case KStruct:
		child, ok := resolver.Resolve(kind.SchemaID)
		if !ok {
			return nil, newErr(KindTypeMismatch, path, noTag, byte(typ), "unresolved child schema")
		}
		return decodeNestedStruct(r, path, child, resolver)

	case KOptional:
		return decodeField(r, path, typ, *kind.Elem, resolver)

	case KUnion:
		for _, variant := range kind.Variants {
			if kindCompatible(variant, typ) {
				return decodeField(r, path, typ, variant, resolver)
			}
		}
		return nil, newErr(KindTypeMismatch, path, noTag, byte(typ), "wire type matches no union variant")

	case KAny:
		return decodeGenericValue(r, path, typ)

	default:
		return nil, newErr(KindTypeMismatch, path, noTag, byte(typ), "unknown field kind")
	}
}

// narrowNumeric applies the target integer width's range check and the
// Int<->Bool coercion.
func narrowNumeric(f FieldDef, v TarsValue, path string, tag int) (TarsValue, error) {
	switch f.Kind.Tag {
	case KBool:
		n, ok := v.(int64)
		if !ok {
			return v, nil
		}
		return n != 0, nil

	case KInt, KEnum:
		n, ok := v.(int64)
		if !ok {
			return v, nil
		}
		if !fitsWidth(n, f.Kind.IntWidth) {
			return nil, newErr(KindOutOfRange, path, tag, noWireType, "integer value out of range for declared width")
		}
		if f.Kind.Tag == KEnum && len(f.Kind.Allowed) > 0 && !int64InSet(n, f.Kind.Allowed) {
			return nil, newErr(KindOutOfRange, path, tag, noWireType, "value not in enum's allowed set")
		}
		return n, nil

	default:
		return v, nil
	}
}

func fitsWidth(v int64, width int) bool {
	switch width {
	case 1:
		return v >= -128 && v <= 127
	case 2:
		return v >= -32768 && v <= 32767
	case 4:
		return v >= -2147483648 && v <= 2147483647
	default:
		return true // width 8 or unspecified: full int64 range
	}
}

func int64InSet(v int64, set []int64) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// evaluateConstraints runs the decode-time-only constraint checks: gt/lt/
// ge/le for numeric values, min_len/max_len for strings/bytes/containers,
// and pattern for strings.
func evaluateConstraints(c *Constraints, v TarsValue, path string) error {
	if c == nil {
		return nil
	}

	if f, ok := toFloat64(v); ok && (c.Gt != nil || c.Lt != nil || c.Ge != nil || c.Le != nil) {
		if c.Gt != nil && !(f > *c.Gt) {
			return newErr(KindValidation, path, noTag, noWireType, "value does not satisfy gt")
		}
		if c.Lt != nil && !(f < *c.Lt) {
			return newErr(KindValidation, path, noTag, noWireType, "value does not satisfy lt")
		}
		if c.Ge != nil && !(f >= *c.Ge) {
			return newErr(KindValidation, path, noTag, noWireType, "value does not satisfy ge")
		}
		if c.Le != nil && !(f <= *c.Le) {
			return newErr(KindValidation, path, noTag, noWireType, "value does not satisfy le")
		}
	}

	if c.MinLen != nil || c.MaxLen != nil {
		n, ok := lengthOf(v)
		if ok {
			if c.MinLen != nil && n < *c.MinLen {
				return newErr(KindValidation, path, noTag, noWireType, "length below min_len")
			}
			if c.MaxLen != nil && n > *c.MaxLen {
				return newErr(KindValidation, path, noTag, noWireType, "length exceeds max_len")
			}
		}
	}

	if c.compiledPattern != nil {
		s, ok := v.(string)
		if ok && !c.compiledPattern.MatchString(s) {
			return newErr(KindValidation, path, noTag, noWireType, "value does not match pattern")
		}
	}

	return nil
}

func lengthOf(v TarsValue) (int, bool) {
	switch x := v.(type) {
	case string:
		return len(x), true
	case []byte:
		return len(x), true
	case TarsList:
		return len(x), true
	case TarsMap:
		return len(x), true
	default:
		return 0, false
	}
}
