package jce

import "encoding/binary"

// WireType is one of the 14 closed wire type codes carried in a field's
// head. It occupies 4 bits on the wire.
type WireType byte

const (
	TypeInt1        WireType = 0
	TypeInt2        WireType = 1
	TypeInt4        WireType = 2
	TypeInt8        WireType = 3
	TypeFloat       WireType = 4
	TypeDouble      WireType = 5
	TypeString1     WireType = 6
	TypeString4     WireType = 7
	TypeMap         WireType = 8
	TypeList        WireType = 9
	TypeStructBegin WireType = 10
	TypeStructEnd   WireType = 11
	TypeZeroTag     WireType = 12
	TypeSimpleList  WireType = 13
)

// validWireType reports whether b is one of the 14 defined type codes
// (0..=13).
func validWireType(b byte) bool {
	return b <= byte(TypeSimpleList)
}

func (w WireType) String() string {
	switch w {
	case TypeInt1:
		return "Int1"
	case TypeInt2:
		return "Int2"
	case TypeInt4:
		return "Int4"
	case TypeInt8:
		return "Int8"
	case TypeFloat:
		return "Float"
	case TypeDouble:
		return "Double"
	case TypeString1:
		return "String1"
	case TypeString4:
		return "String4"
	case TypeMap:
		return "Map"
	case TypeList:
		return "List"
	case TypeStructBegin:
		return "StructBegin"
	case TypeStructEnd:
		return "StructEnd"
	case TypeZeroTag:
		return "ZeroTag"
	case TypeSimpleList:
		return "SimpleList"
	default:
		return "Invalid"
	}
}

// Endianness selects the byte order used for multi-byte numeric fields on
// the wire. Tag/type heads are built from single bytes and do not depend
// on it; every multi-byte number does, including Int2..Int8 payloads,
// Float/Double payloads and the 4-byte String4 length prefix. Default is
// BigEndian, matching standard Tars wire traffic.
type Endianness int

const (
	BigEndian Endianness = iota
	LittleEndian
)

func (e Endianness) order() binary.ByteOrder {
	if e == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// headBytes computes the 1- or 2-byte head encoding for (tag, type).
// Tag must be in 0..=255; callers must check this before calling.
func headBytes(tag int, typ WireType) []byte {
	if tag < 15 {
		return []byte{byte(tag<<4) | byte(typ)}
	}
	return []byte{0xF0 | byte(typ), byte(tag)}
}
