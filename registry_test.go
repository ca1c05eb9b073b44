package jce

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndResolve(t *testing.T) {
	reg := NewSchemaRegistry()
	schema, err := reg.RegisterSchema(1, []FieldDef{
		{Name: "a", Tag: 0, Kind: KindInt(8)},
	}, SchemaOptions{})
	require.NoError(t, err)
	assert.Equal(t, SchemaID(1), schema.ID)

	got, ok := reg.Resolve(1)
	require.True(t, ok)
	assert.Same(t, schema, got)

	_, ok = reg.Resolve(2)
	assert.False(t, ok)
}

func TestRegistryReRegistrationReplacesSchema(t *testing.T) {
	reg := NewSchemaRegistry()
	_, err := reg.RegisterSchema(1, []FieldDef{{Name: "a", Tag: 0, Kind: KindInt(8)}}, SchemaOptions{})
	require.NoError(t, err)

	_, err = reg.RegisterSchema(1, []FieldDef{{Name: "b", Tag: 0, Kind: KindStr()}}, SchemaOptions{})
	require.NoError(t, err)

	got, ok := reg.Resolve(1)
	require.True(t, ok)
	assert.Equal(t, "b", got.Fields[0].Name)
}

func TestRegisteredSchemasSnapshot(t *testing.T) {
	reg := NewSchemaRegistry()
	_, err := reg.RegisterSchema(1, []FieldDef{{Name: "a", Tag: 0, Kind: KindInt(8)}}, SchemaOptions{})
	require.NoError(t, err)
	_, err = reg.RegisterSchema(2, []FieldDef{{Name: "b", Tag: 0, Kind: KindStr()}}, SchemaOptions{})
	require.NoError(t, err)

	ids := reg.RegisteredSchemas()
	assert.ElementsMatch(t, []SchemaID{1, 2}, ids)
}

func TestRegistryEncodeDecodeEndToEnd(t *testing.T) {
	reg := NewSchemaRegistry()
	_, err := reg.RegisterSchema(1, []FieldDef{
		{Name: "id", Tag: 0, Kind: KindInt(8)},
		{Name: "name", Tag: 1, Kind: KindStr()},
	}, SchemaOptions{})
	require.NoError(t, err)

	data, err := reg.Encode(1, Record{int64(7), "alice"}, nil)
	require.NoError(t, err)

	rec, err := reg.Decode(data, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), rec[0])
	assert.Equal(t, "alice", rec[1])
}

func TestRegistryEncodeUnknownSchemaID(t *testing.T) {
	reg := NewSchemaRegistry()
	_, err := reg.Encode(99, Record{}, nil)
	require.Error(t, err)
}

func TestRegistryConcurrentReadsDuringRegistration(t *testing.T) {
	reg := NewSchemaRegistry()
	_, err := reg.RegisterSchema(1, []FieldDef{{Name: "a", Tag: 0, Kind: KindInt(8)}}, SchemaOptions{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = reg.Resolve(1)
		}()
	}
	wg.Wait()
}
