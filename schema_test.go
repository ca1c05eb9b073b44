package jce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSchemaSortsByTag(t *testing.T) {
	fields := []FieldDef{
		{Name: "b", Tag: 2, Kind: KindStr()},
		{Name: "a", Tag: 0, Kind: KindInt(8)},
	}
	schema, err := CompileSchema(fields, SchemaOptions{})
	require.NoError(t, err)
	require.Len(t, schema.Fields, 2)
	assert.Equal(t, "a", schema.Fields[0].Name)
	assert.Equal(t, "b", schema.Fields[1].Name)
}

func TestCompileSchemaRejectsDuplicateTag(t *testing.T) {
	fields := []FieldDef{
		{Name: "a", Tag: 0, Kind: KindInt(8)},
		{Name: "b", Tag: 0, Kind: KindStr()},
	}
	_, err := CompileSchema(fields, SchemaOptions{})
	require.Error(t, err)
}

func TestCompileSchemaRejectsOutOfRangeTag(t *testing.T) {
	fields := []FieldDef{{Name: "a", Tag: 256, Kind: KindInt(8)}}
	_, err := CompileSchema(fields, SchemaOptions{})
	require.Error(t, err)
}

func TestCompileSchemaAggregatesMultipleErrors(t *testing.T) {
	fields := []FieldDef{
		{Name: "a", Tag: 300, Kind: KindInt(8)},
		{Name: "a", Tag: 1, Kind: KindStr()},
	}
	_, err := CompileSchema(fields, SchemaOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
	assert.Contains(t, err.Error(), "duplicate field name")
}

func TestCompileSchemaSlotForTag(t *testing.T) {
	fields := []FieldDef{
		{Name: "a", Tag: 5, Kind: KindInt(8)},
		{Name: "b", Tag: 1, Kind: KindStr()},
	}
	schema, err := CompileSchema(fields, SchemaOptions{})
	require.NoError(t, err)

	slot, ok := schema.SlotForTag(1)
	require.True(t, ok)
	assert.Equal(t, "b", schema.Fields[slot].Name)

	_, ok = schema.SlotForTag(2)
	assert.False(t, ok)
}

func TestCompileSchemaDefaultMaskForContainersAndOptional(t *testing.T) {
	fields := []FieldDef{
		{Name: "list", Tag: 0, Kind: KindList(KindInt(1))},
		{Name: "opt", Tag: 1, Kind: KindOptional(KindStr())},
		{Name: "required", Tag: 2, Kind: KindInt(8)},
	}
	schema, err := CompileSchema(fields, SchemaOptions{})
	require.NoError(t, err)

	assert.True(t, schema.DefaultMask[0])
	assert.True(t, schema.DefaultMask[1])
	assert.False(t, schema.DefaultMask[2])
	assert.True(t, schema.RequiredMask[2])
}

func TestCompilePatternRejectedAtCompileTime(t *testing.T) {
	fields := []FieldDef{
		{Name: "a", Tag: 0, Kind: KindStr(), Constraints: &Constraints{Pattern: "("}},
	}
	_, err := CompileSchema(fields, SchemaOptions{})
	require.Error(t, err)
}
