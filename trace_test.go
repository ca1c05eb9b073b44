package jce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTraceSchemalessRecordsEveryField(t *testing.T) {
	value := TarsStruct{0: int64(5), 1: "hi"}
	data, err := EncodeGeneric(value, nil)
	require.NoError(t, err)

	root, err := DecodeTrace(data, nil, nil, nil)
	require.NoError(t, err)
	require.Len(t, root.Children, 2)
	assert.Equal(t, 0, root.Children[0].Tag)
	assert.Equal(t, int64(5), root.Children[0].Value)
	assert.Equal(t, 1, root.Children[1].Tag)
	assert.Equal(t, "hi", root.Children[1].Value)
}

func TestDecodeTraceAnnotatesNamesFromSchema(t *testing.T) {
	schema := mustSchema(t, []FieldDef{
		{Name: "id", Tag: 0, Kind: KindInt(8)},
	}, SchemaOptions{})

	data, err := EncodeWithSchema(Record{int64(42)}, schema, nilResolver{}, nil)
	require.NoError(t, err)

	root, err := DecodeTrace(data, schema, nilResolver{}, nil)
	require.NoError(t, err)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "id", root.Children[0].Name)
	assert.Equal(t, "Int", root.Children[0].TypeName)
}

func TestDecodeTraceRecordsErrorAtOffendingNodeAndStops(t *testing.T) {
	w := NewWriter(nil, BigEndian)
	require.NoError(t, w.WriteInt("", 0, 1))
	data := w.Bytes()
	data = append(data, 0x0E) // a second, malformed field head

	root, err := DecodeTrace(data, nil, nil, nil)
	require.Error(t, err)
	require.Len(t, root.Children, 1, "the first valid field must still be recorded")
	assert.Equal(t, int64(1), root.Children[0].Value)
}

func TestDecodeTraceDescendsIntoNestedStructWithChildSchema(t *testing.T) {
	reg := NewSchemaRegistry()
	_, err := reg.RegisterSchema(1, []FieldDef{
		{Name: "x", Tag: 0, Kind: KindInt(8)},
	}, SchemaOptions{})
	require.NoError(t, err)
	parent, err := reg.RegisterSchema(2, []FieldDef{
		{Name: "point", Tag: 0, Kind: KindStruct(1)},
	}, SchemaOptions{})
	require.NoError(t, err)

	data, err := EncodeWithSchema(Record{Record{int64(9)}}, parent, reg, nil)
	require.NoError(t, err)

	root, err := DecodeTrace(data, parent, reg, nil)
	require.NoError(t, err)
	require.Len(t, root.Children, 1)
	pointNode := root.Children[0]
	assert.Equal(t, "point", pointNode.Name)
	require.Len(t, pointNode.Children, 1)
	assert.Equal(t, "x", pointNode.Children[0].Name)
	assert.Equal(t, int64(9), pointNode.Children[0].Value)
}
