package jce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenericRoundtripScalarsAndContainers(t *testing.T) {
	value := TarsStruct{
		0: int64(0),
		1: int64(100),
		2: "Alice",
		3: []byte{1, 2, 3},
		4: TarsList{int64(1), int64(2), int64(3)},
		5: TarsMap{{Key: "k", Value: int64(9)}},
	}

	data, err := EncodeGeneric(value, nil)
	require.NoError(t, err)

	got, err := DecodeGeneric(data, nil)
	require.NoError(t, err)

	gotStruct, ok := got.(TarsStruct)
	require.True(t, ok)
	assert.True(t, valuesEqual(value, gotStruct))
}

func TestGenericTopLevelMustBeStruct(t *testing.T) {
	_, err := EncodeGeneric(int64(5), nil)
	require.Error(t, err)
	var jerr *Error
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, KindTypeMismatch, jerr.Kind)
}

func TestGenericNestedStructPreservesStructVsMapDistinction(t *testing.T) {
	inner := TarsStruct{0: int64(1)}
	value := TarsStruct{0: inner, 1: TarsMap{{Key: int64(1), Value: int64(2)}}}

	data, err := EncodeGeneric(value, nil)
	require.NoError(t, err)
	got, err := DecodeGeneric(data, nil)
	require.NoError(t, err)

	gotStruct := got.(TarsStruct)
	_, isStruct := gotStruct[0].(TarsStruct)
	assert.True(t, isStruct, "a TarsStruct field must decode back as TarsStruct, not TarsMap")
	_, isMap := gotStruct[1].(TarsMap)
	assert.True(t, isMap)
}

func TestGenericZeroTagParity(t *testing.T) {
	value := TarsStruct{0: int64(0)}
	data, err := EncodeGeneric(value, nil)
	require.NoError(t, err)

	r := NewReader(data, nil, BigEndian)
	_, typ, err := r.ReadHead("")
	require.NoError(t, err)
	assert.Equal(t, TypeZeroTag, typ)
}

func TestProbeStructRequiresExactEOF(t *testing.T) {
	value := TarsStruct{0: int64(1), 1: "ok"}
	data, err := EncodeGeneric(value, nil)
	require.NoError(t, err)

	got, ok := ProbeStruct(data, nil)
	require.True(t, ok)
	assert.True(t, valuesEqual(value, got.(TarsStruct)))

	_, ok = ProbeStruct(append(data, 0xFF), nil)
	assert.False(t, ok, "trailing garbage bytes must fail the probe")

	_, ok = ProbeStruct(data[:len(data)-1], nil)
	assert.False(t, ok, "truncated payload must fail the probe")
}

func TestProbeStructRejectsMalformedInputWithoutPanicking(t *testing.T) {
	malformed := [][]byte{
		{0x0E},                   // undefined type nibble
		{0xF0},                   // two-byte head missing the tag byte
		{0x09, 0x00, 0x7F},       // List header claims huge count, no elements follow
	}
	for _, b := range malformed {
		assert.NotPanics(t, func() {
			_, _ = ProbeStruct(b, nil)
		})
	}
}
