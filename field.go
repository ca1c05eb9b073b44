package jce

import "regexp"

// KindTag discriminates the closed Kind variant a FieldDef can declare.
type KindTag int

const (
	KBool KindTag = iota
	KInt
	KFloat
	KDouble
	KStr
	KBytes
	KList
	KSet
	KTuple
	KMap
	KStruct
	KOptional
	KEnum
	KUnion
	KAny
)

// Kind describes the declared shape of a field. It is a closed variant:
// Bool | Int{width} | Float | Double | Str | Bytes | List(kind) |
// Set(kind) | Tuple(kinds) | Map(k,v) | Struct(schema ref) |
// Optional(kind) | Enum(int kind, allowed set) | Union(kinds) | Any.
type Kind struct {
	Tag      KindTag
	IntWidth int       // 1, 2, 4 or 8; meaningful for KInt and as KEnum's backing width
	Elem     *Kind     // KList, KSet, KOptional element kind
	Elems    []Kind    // KTuple element kinds, in order
	Key      *Kind     // KMap key kind
	Value    *Kind     // KMap value kind
	SchemaID SchemaID  // KStruct: the referenced compiled schema
	Allowed  []int64   // KEnum: the set of permitted backing values
	Variants []Kind    // KUnion: ordered list of candidate kinds
}

func KindBool() Kind  { return Kind{Tag: KBool} }
func KindInt(width int) Kind {
	return Kind{Tag: KInt, IntWidth: width}
}
func KindFloat() Kind  { return Kind{Tag: KFloat} }
func KindDouble() Kind { return Kind{Tag: KDouble} }
func KindStr() Kind    { return Kind{Tag: KStr} }
func KindBytes() Kind  { return Kind{Tag: KBytes} }
func KindList(elem Kind) Kind {
	return Kind{Tag: KList, Elem: &elem}
}
func KindSet(elem Kind) Kind {
	return Kind{Tag: KSet, Elem: &elem}
}
func KindTuple(elems ...Kind) Kind {
	return Kind{Tag: KTuple, Elems: elems}
}
func KindMap(key, value Kind) Kind {
	return Kind{Tag: KMap, Key: &key, Value: &value}
}
func KindStruct(ref SchemaID) Kind {
	return Kind{Tag: KStruct, SchemaID: ref}
}
func KindOptional(elem Kind) Kind {
	return Kind{Tag: KOptional, Elem: &elem}
}
func KindEnum(width int, allowed ...int64) Kind {
	return Kind{Tag: KEnum, IntWidth: width, Allowed: allowed}
}
func KindUnion(variants ...Kind) Kind {
	return Kind{Tag: KUnion, Variants: variants}
}
func KindAny() Kind { return Kind{Tag: KAny} }

// Constraints are decode-time-only field validations: gt/lt/ge/le apply
// to numeric kinds, min_len/max_len to strings/bytes/containers, and
// pattern to strings (anchored full match, compiled once at schema
// registration time - see CompileSchema).
type Constraints struct {
	Gt, Lt, Ge, Le   *float64
	MinLen, MaxLen   *int
	Pattern          string
	compiledPattern  *regexp.Regexp
}

// FieldDef is the host-façade-supplied descriptor for one struct field.
type FieldDef struct {
	Name                   string
	Tag                    int
	Kind                   Kind
	Default                *TarsValue
	Constraints            *Constraints
	HasCustomSerializer    bool
	HasCustomDeserializer  bool
}

// compilePattern compiles Pattern as an anchored full match. A no-op if
// Pattern is empty.
func (c *Constraints) compilePattern(path string) error {
	if c == nil || c.Pattern == "" {
		return nil
	}
	re, err := regexp.Compile("^(?:" + c.Pattern + ")$")
	if err != nil {
		return wrapCompile(path, err)
	}
	c.compiledPattern = re
	return nil
}
