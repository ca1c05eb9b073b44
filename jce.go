package jce

// Encode encodes rec against the schema registered under id, resolving
// any nested Struct-kind fields through reg.
func (reg *SchemaRegistry) Encode(id SchemaID, rec Record, limits *Limits) ([]byte, error) {
	schema, ok := reg.Resolve(id)
	if !ok {
		return nil, newErr(KindTypeMismatch, "", noTag, noWireType, "no schema registered for this id")
	}
	return EncodeWithSchema(rec, schema, reg, limits)
}

// Decode decodes data against the schema registered under id, resolving
// any nested Struct-kind fields through reg.
func (reg *SchemaRegistry) Decode(data []byte, id SchemaID, limits *Limits) (Record, error) {
	schema, ok := reg.Resolve(id)
	if !ok {
		return nil, newErr(KindTypeMismatch, "", noTag, noWireType, "no schema registered for this id")
	}
	return DecodeWithSchema(data, schema, reg, limits)
}

// DecodeTrace decodes data into a diagnostic TraceNode tree, annotating
// recognised tags using the schema registered under id if one is found
// (pass an unregistered id, e.g. SchemaID(0) if nothing was ever
// registered there, for an entirely schemaless trace).
func (reg *SchemaRegistry) DecodeTrace(data []byte, id SchemaID, limits *Limits) (*TraceNode, error) {
	schema, _ := reg.Resolve(id)
	return DecodeTrace(data, schema, reg, limits)
}
