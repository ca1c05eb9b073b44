package jce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordAllSlotsUnset(t *testing.T) {
	fields := []FieldDef{
		{Name: "a", Tag: 0, Kind: KindInt(8)},
		{Name: "b", Tag: 1, Kind: KindStr()},
	}
	schema, err := CompileSchema(fields, SchemaOptions{})
	require.NoError(t, err)

	rec := NewRecord(schema)
	require.Len(t, rec, 2)
	for _, v := range rec {
		assert.True(t, isUnset(v))
	}
}

func TestUnsetNeverEqualsNil(t *testing.T) {
	assert.False(t, isUnset(nil))
	assert.True(t, isUnset(Unset))
}
