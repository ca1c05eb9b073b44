package jce

// TarsValue is the engine's dynamic value type, used by the generic
// (schemaless) codec and as the intermediate representation for fields
// declared Any. It is represented as Go's any, holding exactly one of:
// bool, int64, float32, float64, string, []byte, TarsList, TarsMap, or
// TarsStruct.
//
// TarsStruct and TarsMap are both "integer/value-ish" containers on the
// surface but are wire-distinct: a TarsStruct round-trips through
// StructBegin/StructEnd (or the bare top-level field sequence), while a
// TarsMap always round-trips through the Map wire type. The two are kept
// as distinct Go types specifically so the writer can recover which wire
// type code to re-emit (spec requirement: "this distinction is preserved
// by a dedicated variant").
type TarsValue = any

// TarsList is the List<TarsValue> variant.
type TarsList []TarsValue

// TarsMap is the ordinary Map variant: an iteration-ordered list of
// key/value pairs. A plain Go map can't preserve insertion order and JCE
// map keys are not restricted to Go-hashable types (e.g. a struct key), so
// pairs are kept as a slice rather than a map[TarsValue]TarsValue.
type TarsMap []TarsPair

// TarsPair is one key/value entry of a TarsMap.
type TarsPair struct {
	Key   TarsValue
	Value TarsValue
}

// TarsStruct is the schemaless representation of a struct: tags routed to
// values, with no named fields, no defaults and no constraints.
type TarsStruct map[int]TarsValue

// valuesEqual performs the structural equality used by round-trip tests,
// treating TarsList/TarsMap/TarsStruct recursively and []byte by content.
func valuesEqual(a, b TarsValue) bool {
	switch av := a.(type) {
	case []byte:
		bv, ok := b.([]byte)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	case TarsList:
		bv, ok := b.(TarsList)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case TarsMap:
		bv, ok := b.(TarsMap)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valuesEqual(av[i].Key, bv[i].Key) || !valuesEqual(av[i].Value, bv[i].Value) {
				return false
			}
		}
		return true
	case TarsStruct:
		bv, ok := b.(TarsStruct)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bvv, ok := bv[k]
			if !ok || !valuesEqual(v, bvv) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
