package jce

import "math"

// Reader is a cursor over a byte slice. All reads advance pos; none
// allocate proportionally to an attacker-controlled length without first
// checking it against the remaining buffer and the configured Limits. No
// Reader method panics - every fallible operation returns an error.
type Reader struct {
	buf    []byte
	pos    int
	depth  int
	limits Limits
	endian Endianness
}

// NewReader creates a Reader over buf with the given limits (nil for
// DefaultLimits) and endianness.
func NewReader(buf []byte, limits *Limits, endian Endianness) *Reader {
	return &Reader{buf: buf, limits: limitsOrDefault(limits), endian: endian}
}

// Pos returns the current read offset.
func (r *Reader) Pos() int { return r.pos }

// Len returns the total buffer length.
func (r *Reader) Len() int { return len(r.buf) }

// AtEOF reports whether the cursor has consumed the entire buffer.
func (r *Reader) AtEOF() bool { return r.pos >= len(r.buf) }

// Remaining returns the count of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

func (r *Reader) need(path string, n int) error {
	if n < 0 || r.pos+n > len(r.buf) {
		return newErr(KindTruncated, path, noTag, noWireType, "not enough bytes remaining")
	}
	return nil
}

func (r *Reader) take(path string, n int) ([]byte, error) {
	if err := r.need(path, n); err != nil {
		return nil, err
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *Reader) enterContainer(path string) error {
	r.depth++
	if r.depth > r.limits.MaxDepth {
		return newErr(KindDepthExceeded, path, noTag, noWireType, "recursion limit exceeded")
	}
	return nil
}

func (r *Reader) exitContainer() { r.depth-- }

// ReadHead reads a 1- or 2-byte head, returning (tag, type). Truncated if
// fewer bytes are available than the head demands; BadType if the 4-bit
// type isn't in 0..=13.
func (r *Reader) ReadHead(path string) (tag int, typ WireType, err error) {
	b, err := r.take(path, 1)
	if err != nil {
		return 0, 0, err
	}

	t := b[0] & 0x0F
	if !validWireType(t) {
		return 0, 0, newErr(KindBadType, path, noTag, b[0], "type code not in 0..=13")
	}

	tagNibble := b[0] >> 4
	if tagNibble != 0x0F {
		return int(tagNibble), WireType(t), nil
	}

	b2, err := r.take(path, 1)
	if err != nil {
		return 0, 0, err
	}
	return int(b2[0]), WireType(t), nil
}

// PeekHead reads a head without advancing the cursor.
func (r *Reader) PeekHead(path string) (tag int, typ WireType, err error) {
	save := r.pos
	tag, typ, err = r.ReadHead(path)
	r.pos = save
	return tag, typ, err
}

// ReadInt interprets Int1..Int8/ZeroTag as the promoted 64-bit integer.
// Range narrowing to a target width is the schema decoder's responsibility.
func (r *Reader) ReadInt(path string, typ WireType) (int64, error) {
	switch typ {
	case TypeZeroTag:
		return 0, nil
	case TypeInt1:
		b, err := r.take(path, 1)
		if err != nil {
			return 0, err
		}
		return int64(int8(b[0])), nil
	case TypeInt2:
		b, err := r.take(path, 2)
		if err != nil {
			return 0, err
		}
		return int64(int16(r.endian.order().Uint16(b))), nil
	case TypeInt4:
		b, err := r.take(path, 4)
		if err != nil {
			return 0, err
		}
		return int64(int32(r.endian.order().Uint32(b))), nil
	case TypeInt8:
		b, err := r.take(path, 8)
		if err != nil {
			return 0, err
		}
		return int64(r.endian.order().Uint64(b)), nil
	default:
		return 0, newErr(KindTypeMismatch, path, noTag, byte(typ), "not an integer wire type")
	}
}

// ReadFloat interprets Float/Double/ZeroTag as a promoted float64.
func (r *Reader) ReadFloat(path string, typ WireType) (float64, error) {
	switch typ {
	case TypeZeroTag:
		return 0, nil
	case TypeFloat:
		b, err := r.take(path, 4)
		if err != nil {
			return 0, err
		}
		return float64(math.Float32frombits(r.endian.order().Uint32(b))), nil
	case TypeDouble:
		b, err := r.take(path, 8)
		if err != nil {
			return 0, err
		}
		return math.Float64frombits(r.endian.order().Uint64(b)), nil
	default:
		return 0, newErr(KindTypeMismatch, path, noTag, byte(typ), "not a floating wire type")
	}
}

// ReadBool interprets ZeroTag as false and any Int-family nonzero value as
// true.
func (r *Reader) ReadBool(path string, typ WireType) (bool, error) {
	v, err := r.ReadInt(path, typ)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// ReadString reads a length-prefixed string body. typ selects whether the
// length is a byte (String1) or a 4-byte value (String4). The length is
// validated against both the remaining buffer and Limits.MaxStringLen
// before any allocation.
func (r *Reader) ReadString(path string, typ WireType) (string, error) {
	var n int
	switch typ {
	case TypeString1:
		b, err := r.take(path, 1)
		if err != nil {
			return "", err
		}
		n = int(b[0])
	case TypeString4:
		b, err := r.take(path, 4)
		if err != nil {
			return "", err
		}
		n = int(r.endian.order().Uint32(b))
	default:
		return "", newErr(KindTypeMismatch, path, noTag, byte(typ), "not a string wire type")
	}

	if n > r.limits.MaxStringLen {
		return "", newErr(KindLimitExceeded, path, noTag, byte(typ), "string length exceeds limit")
	}
	b, err := r.take(path, n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadSimpleList reads a SimpleList payload after its outer head has
// already been consumed: the byte count as a single tag-0 integer field,
// then exactly that many raw bytes.
func (r *Reader) ReadSimpleList(path string) ([]byte, error) {
	lenTag, lenType, err := r.ReadHead(path)
	if err != nil {
		return nil, err
	}
	if lenTag != 0 {
		return nil, newErr(KindBadType, path, lenTag, byte(lenType), "SimpleList length header must be tag=0")
	}
	n64, err := r.ReadInt(path, lenType)
	if err != nil {
		return nil, err
	}
	n := int(n64)
	if n < 0 || n > r.limits.MaxBytesLen {
		return nil, newErr(KindLimitExceeded, path, noTag, noWireType, "SimpleList length exceeds limit")
	}
	b, err := r.take(path, n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// ReadListHeader reads the tag-0 integer length of a List (any integer
// wire type or ZeroTag). The outer List head must already have been
// consumed.
func (r *Reader) ReadListHeader(path string) (int, error) {
	return r.readCountHeader(path)
}

// ReadMapHeader reads the tag-0 integer pair count of a Map (any integer
// wire type or ZeroTag). The outer Map head must already have been
// consumed.
func (r *Reader) ReadMapHeader(path string) (int, error) {
	return r.readCountHeader(path)
}

func (r *Reader) readCountHeader(path string) (int, error) {
	tag, typ, err := r.ReadHead(path)
	if err != nil {
		return 0, err
	}
	if tag != 0 {
		return 0, newErr(KindBadType, path, tag, byte(typ), "length header must be tag=0")
	}
	n64, err := r.ReadInt(path, typ)
	if err != nil {
		return 0, err
	}
	n := int(n64)
	if n < 0 || n > r.limits.MaxContainerLen {
		return 0, newErr(KindLimitExceeded, path, noTag, noWireType, "container length exceeds limit")
	}
	return n, nil
}

// StructFieldFunc is invoked by ReadStructBody for every (tag, type) pair
// encountered until StructEnd. It must either consume the value or call
// SkipField.
type StructFieldFunc func(tag int, typ WireType) error

// ReadStructBody reads successive fields until StructEnd, invoking cb for
// each. Depth is incremented on entry and decremented on exit; the limit
// is re-checked against Limits.MaxDepth.
func (r *Reader) ReadStructBody(path string, cb StructFieldFunc) error {
	if err := r.enterContainer(path); err != nil {
		return err
	}
	defer r.exitContainer()

	for {
		tag, typ, err := r.ReadHead(path)
		if err != nil {
			return err
		}
		if typ == TypeStructEnd {
			return nil
		}
		if err := cb(tag, typ); err != nil {
			return err
		}
	}
}

// SkipField skips a single field's payload of the given wire type. Scalars
// skip fixed widths, lists/maps recursively skip their elements and
// structs read nested fields until StructEnd, none of which allocates.
// Strings and SimpleList bodies are read through ReadString and
// ReadSimpleList, so their length limits apply and the body is copied
// before being discarded.
func (r *Reader) SkipField(path string, typ WireType) error {
	switch typ {
	case TypeZeroTag:
		return nil
	case TypeInt1:
		_, err := r.take(path, 1)
		return err
	case TypeInt2:
		_, err := r.take(path, 2)
		return err
	case TypeInt4, TypeFloat:
		_, err := r.take(path, 4)
		return err
	case TypeInt8, TypeDouble:
		_, err := r.take(path, 8)
		return err
	case TypeString1, TypeString4:
		_, err := r.ReadString(path, typ)
		return err
	case TypeSimpleList:
		_, err := r.ReadSimpleList(path)
		return err
	case TypeList:
		n, err := r.ReadListHeader(path)
		if err != nil {
			return err
		}
		if err := r.enterContainer(path); err != nil {
			return err
		}
		defer r.exitContainer()
		for i := 0; i < n; i++ {
			_, et, err := r.ReadHead(path)
			if err != nil {
				return err
			}
			if err := r.SkipField(path, et); err != nil {
				return err
			}
		}
		return nil
	case TypeMap:
		n, err := r.ReadMapHeader(path)
		if err != nil {
			return err
		}
		if err := r.enterContainer(path); err != nil {
			return err
		}
		defer r.exitContainer()
		for i := 0; i < n; i++ {
			_, kt, err := r.ReadHead(path)
			if err != nil {
				return err
			}
			if err := r.SkipField(path, kt); err != nil {
				return err
			}
			_, vt, err := r.ReadHead(path)
			if err != nil {
				return err
			}
			if err := r.SkipField(path, vt); err != nil {
				return err
			}
		}
		return nil
	case TypeStructBegin:
		return r.ReadStructBody(path, func(tag int, ft WireType) error {
			return r.SkipField(path, ft)
		})
	default:
		return newErr(KindBadType, path, noTag, byte(typ), "unskippable type code")
	}
}
