package jce

import (
	"math"
	"sync"
)

// Writer is an append-only cursor over a growable byte buffer. It tracks
// container nesting depth so that a single Limits.MaxDepth bound applies
// uniformly to Struct, List, Map, Set and Tuple fields.
type Writer struct {
	buf    []byte
	depth  int
	limits Limits
	endian Endianness
}

// NewWriter creates a Writer with the given limits (nil for DefaultLimits)
// and endianness.
func NewWriter(limits *Limits, endian Endianness) *Writer {
	return &Writer{limits: limitsOrDefault(limits), endian: endian}
}

var writerPool = sync.Pool{
	New: func() any { return &Writer{} },
}

// NewWriterFromPool obtains a reset Writer from the pool. Call Release
// when finished with it.
func NewWriterFromPool(limits *Limits, endian Endianness) *Writer {
	w := writerPool.Get().(*Writer)
	w.buf = w.buf[:0]
	w.depth = 0
	w.limits = limitsOrDefault(limits)
	w.endian = endian
	return w
}

// Release returns the Writer to the pool. Using it afterwards is undefined.
func (w *Writer) Release() {
	writerPool.Put(w)
}

// Bytes returns the accumulated wire bytes.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// Truncate discards everything written after mark, restoring the writer
// to a prior checkpoint. Used to discard partial output on encode error.
func (w *Writer) Truncate(mark int) {
	w.buf = w.buf[:mark]
}

func (w *Writer) enterContainer(path string) error {
	w.depth++
	if w.depth > w.limits.MaxDepth {
		return newErr(KindDepthExceeded, path, noTag, noWireType, "recursion limit exceeded")
	}
	return nil
}

func (w *Writer) exitContainer() { w.depth-- }

// WriteHead appends the 1- or 2-byte head for (tag, type). tag must be in
// 0..=255.
func (w *Writer) WriteHead(tag int, typ WireType) error {
	if tag < 0 || tag > 255 {
		return newErr(KindOutOfRange, "", tag, byte(typ), "tag out of range")
	}
	w.buf = append(w.buf, headBytes(tag, typ)...)
	return nil
}

// WriteInt applies integer compaction: exact zero becomes a bare ZeroTag
// head, otherwise the smallest of Int1..Int8 that holds the value.
func (w *Writer) WriteInt(path string, tag int, v int64) error {
	if v == 0 {
		return w.WriteHead(tag, TypeZeroTag)
	}

	switch {
	case v >= -128 && v <= 127:
		if err := w.WriteHead(tag, TypeInt1); err != nil {
			return err
		}
		w.buf = append(w.buf, byte(int8(v)))
	case v >= -32768 && v <= 32767:
		if err := w.WriteHead(tag, TypeInt2); err != nil {
			return err
		}
		w.appendUint16(uint16(int16(v)))
	case v >= math.MinInt32 && v <= math.MaxInt32:
		if err := w.WriteHead(tag, TypeInt4); err != nil {
			return err
		}
		w.appendUint32(uint32(int32(v)))
	default:
		if err := w.WriteHead(tag, TypeInt8); err != nil {
			return err
		}
		w.appendUint64(uint64(v))
	}
	return nil
}

// WriteFloat writes a float64 field. A bit-pattern-exact zero (not -0.0)
// produces ZeroTag; otherwise a Double is emitted. Façades that need an
// explicit single-precision Float on the wire should use WriteFloat32.
func (w *Writer) WriteFloat(tag int, v float64) error {
	if math.Float64bits(v) == 0 {
		return w.WriteHead(tag, TypeZeroTag)
	}
	if err := w.WriteHead(tag, TypeDouble); err != nil {
		return err
	}
	w.appendUint64(math.Float64bits(v))
	return nil
}

// WriteFloat32 writes an explicit single-precision Float field.
func (w *Writer) WriteFloat32(tag int, v float32) error {
	if math.Float32bits(v) == 0 {
		return w.WriteHead(tag, TypeZeroTag)
	}
	if err := w.WriteHead(tag, TypeFloat); err != nil {
		return err
	}
	w.appendUint32(math.Float32bits(v))
	return nil
}

// WriteBool writes ZeroTag for false, Int1 carrying 1 for true.
func (w *Writer) WriteBool(tag int, v bool) error {
	if !v {
		return w.WriteHead(tag, TypeZeroTag)
	}
	if err := w.WriteHead(tag, TypeInt1); err != nil {
		return err
	}
	w.buf = append(w.buf, 1)
	return nil
}

// WriteString chooses String1 if the byte length fits in a byte, else
// String4.
func (w *Writer) WriteString(tag int, s string) error {
	if len(s) <= 255 {
		if err := w.WriteHead(tag, TypeString1); err != nil {
			return err
		}
		w.buf = append(w.buf, byte(len(s)))
	} else {
		if err := w.WriteHead(tag, TypeString4); err != nil {
			return err
		}
		w.appendUint32(uint32(len(s)))
	}
	w.buf = append(w.buf, s...)
	return nil
}

// WriteBytes always emits the SimpleList fast path: outer head, then the
// byte count as a single tag-0 integer field (head + compacted value),
// then the raw payload.
func (w *Writer) WriteBytes(tag int, b []byte) error {
	if err := w.WriteHead(tag, TypeSimpleList); err != nil {
		return err
	}
	if err := w.WriteInt("", 0, int64(len(b))); err != nil {
		return err
	}
	w.buf = append(w.buf, b...)
	return nil
}

// WriteList emits a List head and its element count as a tag-0 integer
// field (compacted like WriteInt: ZeroTag for 0, Int1 up to 127, wider
// above), then calls elemWriter once per element; each element is written
// at tag 0.
func (w *Writer) WriteList(path string, tag int, n int, elemWriter func(i int) error) error {
	if err := w.WriteHead(tag, TypeList); err != nil {
		return err
	}
	if err := w.enterContainer(path); err != nil {
		return err
	}
	defer w.exitContainer()

	if err := w.WriteInt(path, 0, int64(n)); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := elemWriter(i); err != nil {
			return err
		}
	}
	return nil
}

// WriteMap emits a Map head, the pair count as a tag-0 integer field
// (compacted like WriteInt), then
// (key@tag 0, value@tag 1) per pair in caller-supplied iteration order.
func (w *Writer) WriteMap(path string, tag int, n int, pairWriter func(i int) error) error {
	if err := w.WriteHead(tag, TypeMap); err != nil {
		return err
	}
	if err := w.enterContainer(path); err != nil {
		return err
	}
	defer w.exitContainer()

	if err := w.WriteInt(path, 0, int64(n)); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := pairWriter(i); err != nil {
			return err
		}
	}
	return nil
}

// WriteStruct emits StructBegin, invokes body (which writes fields using
// this same writer), then StructEnd at tag 0.
func (w *Writer) WriteStruct(path string, tag int, body func() error) error {
	if err := w.WriteHead(tag, TypeStructBegin); err != nil {
		return err
	}
	if err := w.enterContainer(path); err != nil {
		return err
	}
	defer w.exitContainer()

	if err := body(); err != nil {
		return err
	}
	return w.WriteHead(0, TypeStructEnd)
}

func (w *Writer) appendUint16(v uint16) {
	var tmp [2]byte
	w.endian.order().PutUint16(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

func (w *Writer) appendUint32(v uint32) {
	var tmp [4]byte
	w.endian.order().PutUint32(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

func (w *Writer) appendUint64(v uint64) {
	var tmp [8]byte
	w.endian.order().PutUint64(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}
