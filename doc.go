// Package jce implements the wire codec and schema engine for Tencent's
// Tars/JCE binary serialization format: a self-describing tag-type-value
// (TLV) encoding used for cross-service RPC payloads.
//
// # Overview
//
// The package splits into three layers:
//
//   - Wire primitives (wire.go) and a cursor Reader/append-only Writer
//     (reader.go, writer.go) implement the bit-exact head encoding, the
//     14 wire type codes, integer auto-compaction and the SimpleList
//     byte-array fast path.
//   - A schema compiler (field.go, schema.go) turns an ordered list of
//     FieldDef descriptors into a CompiledSchema with O(1) tag routing,
//     default/required bitmasks and compiled constraints. A schema
//     encoder/decoder pair (encode.go, decode.go) drives the wire layer
//     from a CompiledSchema and a Record (a value addressable by slot
//     index - the host-language façade owns the mapping from its own
//     model type to a Record).
//   - A schemaless codec (value.go, generic.go) round-trips arbitrary
//     TarsValue trees without a compiled schema, and a prober/tracer
//     (probe.go, trace.go) supports structure discovery and diagnostics.
//
// The host-language façade - dataclass-style model declaration, struct
// tag / annotation parsing, the constraint DSL surface, a CLI inspector,
// a length-prefixed TCP framer and documentation generation - is out of
// scope for this package; it is assumed to present each struct type as a
// compiled Schema and each value as a Record.
//
// # Basic usage
//
//	fields := []jce.FieldDef{
//		{Name: "id", Tag: 0, Kind: jce.KindInt(8)},
//		{Name: "name", Tag: 1, Kind: jce.KindStr()},
//	}
//	reg := jce.NewSchemaRegistry()
//	schema, err := reg.RegisterSchema(1, fields, jce.SchemaOptions{})
//	data, err := reg.Encode(1, jce.Record{int64(7), "alice"}, nil)
//	rec, err := reg.Decode(data, 1, nil)
//
// # Resource safety
//
// Every entry point accepts an optional Limits, bounding recursion depth
// and container/string/byte lengths before any allocation proportional to
// a declared size is performed. No operation in this package panics on
// malformed input; failures surface as a typed *Error.
package jce
