package jce

// Record is a schema-driven value, addressable by compiled slot index
// rather than by Go struct field offset. This is the value view the
// host-language façade is expected to present: the façade owns the
// mapping from its own model type to/from a Record; the engine only ever
// sees slot-indexed values.
//
// A slot holding Unset means "no value was supplied/decoded for this
// field". The encoder skips an Unset Optional field, writes the effective
// default for an Unset field that has one, and fails with MissingRequired
// for any other Unset field; the decoder leaves a slot Unset until a
// matching tag is seen.
type Record []TarsValue

// unsetType is the type of the sentinel stored in a Record slot that has no value. It is
// a distinct, unexported type so it can never collide with a legitimate
// decoded value (including nil, which is a valid decoded Optional).
type unsetType struct{}

// Unset is the sentinel value for "no value in this slot".
var Unset TarsValue = unsetType{}

func isUnset(v TarsValue) bool {
	_, ok := v.(unsetType)
	return ok
}

// NewRecord allocates a Record sized to schema's slot count, with every
// slot Unset.
func NewRecord(schema *CompiledSchema) Record {
	rec := make(Record, schema.NumSlots())
	for i := range rec {
		rec[i] = Unset
	}
	return rec
}
