package jce

import "sync"

// SchemaRegistry holds compiled schemas addressable by SchemaID, letting
// Struct-kind fields reference each other (including cyclically) without
// an ownership cycle in Go's type system. It implements Resolver so it can
// be handed directly to EncodeWithSchema/DecodeWithSchema.
type SchemaRegistry struct {
	mu      sync.RWMutex
	schemas map[SchemaID]*CompiledSchema
}

// NewSchemaRegistry returns an empty registry.
func NewSchemaRegistry() *SchemaRegistry {
	return &SchemaRegistry{schemas: make(map[SchemaID]*CompiledSchema)}
}

// RegisterSchema compiles fields and stores the result under id, replacing
// any schema previously registered at that id. Re-registration is logged
// at Warn level rather than rejected, since schema hot-reload during
// development is a normal workflow for this registry.
func (reg *SchemaRegistry) RegisterSchema(id SchemaID, fields []FieldDef, opts SchemaOptions) (*CompiledSchema, error) {
	compiled, err := CompileSchema(fields, opts)
	if err != nil {
		return nil, err
	}
	compiled.ID = id

	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, exists := reg.schemas[id]; exists {
		logSchemaReregistered(id)
	}
	reg.schemas[id] = compiled
	return compiled, nil
}

// Resolve implements Resolver.
func (reg *SchemaRegistry) Resolve(id SchemaID) (*CompiledSchema, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	s, ok := reg.schemas[id]
	return s, ok
}

// RegisteredSchemas returns the ids currently registered, for diagnostics.
// The order is unspecified.
func (reg *SchemaRegistry) RegisteredSchemas() []SchemaID {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	out := make([]SchemaID, 0, len(reg.schemas))
	for id := range reg.schemas {
		out = append(out, id)
	}
	return out
}
