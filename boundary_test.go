package jce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The scenarios below pin down the six concrete wire encodings called out
// as canonical examples: ZeroTag int, Int1, String1, SimpleList, List<int>
// and unknown-tag skip.

func TestHexSceneZeroTagInt(t *testing.T) {
	w := NewWriter(nil, BigEndian)
	require.NoError(t, w.WriteInt("", 0, 0))
	assert.Equal(t, []byte{0x0C}, w.Bytes())

	schema := mustSchema(t, []FieldDef{{Name: "field0", Tag: 0, Kind: KindInt(8)}}, SchemaOptions{})
	got, err := DecodeWithSchema(w.Bytes(), schema, nilResolver{}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got[0])
}

func TestHexSceneInt1(t *testing.T) {
	w := NewWriter(nil, BigEndian)
	require.NoError(t, w.WriteInt("", 0, 100))
	assert.Equal(t, []byte{0x00, 0x64}, w.Bytes())

	schema := mustSchema(t, []FieldDef{{Name: "field0", Tag: 0, Kind: KindInt(8)}}, SchemaOptions{})
	got, err := DecodeWithSchema(w.Bytes(), schema, nilResolver{}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got[0])
}

func TestHexSceneString1Alice(t *testing.T) {
	w := NewWriter(nil, BigEndian)
	require.NoError(t, w.WriteString(1, "Alice"))
	assert.Equal(t, []byte{0x16, 0x05, 0x41, 0x6C, 0x69, 0x63, 0x65}, w.Bytes())
}

func TestHexSceneSimpleListThreeBytes(t *testing.T) {
	w := NewWriter(nil, BigEndian)
	require.NoError(t, w.WriteBytes(2, []byte{1, 2, 3}))
	assert.Equal(t, []byte{0x2D, 0x00, 0x03, 0x01, 0x02, 0x03}, w.Bytes())
}

func TestHexSceneListOfInt123(t *testing.T) {
	w := NewWriter(nil, BigEndian)
	require.NoError(t, w.WriteList("", 0, 3, func(i int) error {
		return w.WriteInt("", 0, int64(i+1))
	}))
	assert.Equal(t, []byte{0x09, 0x00, 0x03, 0x00, 0x01, 0x00, 0x02, 0x00, 0x03}, w.Bytes())
}

func TestHexSceneUnknownTagSkip(t *testing.T) {
	writerSchema := mustSchema(t, []FieldDef{
		{Name: "field0", Tag: 0, Kind: KindInt(8)},
		{Name: "field1", Tag: 1, Kind: KindStr()},
	}, SchemaOptions{})
	readerSchema := mustSchema(t, []FieldDef{
		{Name: "field0", Tag: 0, Kind: KindInt(8)},
	}, SchemaOptions{ForbidUnknown: false})

	data, err := EncodeWithSchema(Record{int64(1), "Alice"}, writerSchema, nilResolver{}, nil)
	require.NoError(t, err)

	r := NewReader(data, nil, BigEndian)
	rec := NewRecord(readerSchema)
	setMask := make([]bool, readerSchema.NumSlots())
	for !r.AtEOF() {
		tag, typ, err := r.ReadHead("")
		require.NoError(t, err)
		require.NoError(t, decodeOneField(r, "", tag, typ, readerSchema, nilResolver{}, rec, setMask))
	}
	assert.Equal(t, int64(1), rec[0])
	assert.True(t, r.AtEOF())
}

func TestTagBoundaryFourteenFifteen(t *testing.T) {
	for _, tag := range []int{14, 15, 255} {
		w := NewWriter(nil, BigEndian)
		require.NoError(t, w.WriteInt("", tag, 5))

		r := NewReader(w.Bytes(), nil, BigEndian)
		gotTag, typ, err := r.ReadHead("")
		require.NoError(t, err)
		assert.Equal(t, tag, gotTag)
		v, err := r.ReadInt("", typ)
		require.NoError(t, err)
		assert.Equal(t, int64(5), v)
	}
}

func TestTagOutOfRange256Rejected(t *testing.T) {
	w := NewWriter(nil, BigEndian)
	err := w.WriteHead(256, TypeInt1)
	require.Error(t, err)
	var jerr *Error
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, KindOutOfRange, jerr.Kind)
}

func TestIntegerBoundariesRoundtrip(t *testing.T) {
	boundaries := []int64{-128, 127, -32768, 32767, -2147483648, 2147483647, -9223372036854775808, 9223372036854775807}
	for _, v := range boundaries {
		w := NewWriter(nil, BigEndian)
		require.NoError(t, w.WriteInt("", 0, v))
		r := NewReader(w.Bytes(), nil, BigEndian)
		_, typ, err := r.ReadHead("")
		require.NoError(t, err)
		got, err := r.ReadInt("", typ)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestStringLengthBoundaries(t *testing.T) {
	lengths := []int{0, 255, 256, 65536}
	for _, n := range lengths {
		s := make([]byte, n)
		w := NewWriter(nil, BigEndian)
		require.NoError(t, w.WriteString(0, string(s)))

		r := NewReader(w.Bytes(), nil, BigEndian)
		_, typ, err := r.ReadHead("")
		require.NoError(t, err)
		if n <= 255 {
			assert.Equal(t, TypeString1, typ)
		} else {
			assert.Equal(t, TypeString4, typ)
		}
		got, err := r.ReadString("", typ)
		require.NoError(t, err)
		assert.Len(t, got, n)
	}
}
