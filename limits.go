package jce

// Limits bounds resource consumption during encode/decode so that
// malformed or malicious input can never force an allocation proportional
// to an attacker-declared size, and can never recurse without bound.
//
// Every entry point in this package accepts an optional *Limits; a nil
// value means DefaultLimits.
type Limits struct {
	MaxDepth         int // maximum nesting of Struct/List/Map/Set/Tuple
	MaxContainerLen  int // maximum element count for List/Map/Set/Tuple
	MaxStringLen     int // maximum decoded string length, in bytes
	MaxBytesLen      int // maximum decoded []byte / SimpleList length
}

// DefaultLimits are the engine-wide defaults used when no override is
// supplied. They are generous enough for ordinary RPC payloads while still
// bounding adversarial input.
var DefaultLimits = Limits{
	MaxDepth:        100,
	MaxContainerLen: 1 << 20,  // ~1M elements
	MaxStringLen:    64 << 20, // 64MB
	MaxBytesLen:     64 << 20, // 64MB
}

func limitsOrDefault(l *Limits) Limits {
	if l == nil {
		return DefaultLimits
	}
	return *l
}
