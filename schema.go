package jce

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"
)

// SchemaID identifies a compiled schema, typically within a SchemaRegistry.
// KStruct fields carry a SchemaID rather than an owning pointer so that
// self-referential and mutually recursive struct types can be expressed
// without an ownership cycle.
type SchemaID int

// SchemaOptions controls struct-level compiler/encoder/decoder behavior.
type SchemaOptions struct {
	OmitDefaults  bool // encoder: skip fields whose value equals the compiled default
	ForbidUnknown bool // decoder: treat an unrecognised tag as UnknownTag rather than skipping it
}

// CompiledSchema is the immutable, offline-compiled description of a
// struct type: its field list (ordered by tag ascending), an O(1)
// tag-to-slot routing table, and the required/default bitmasks used by
// the decoder at StructEnd.
type CompiledSchema struct {
	ID            SchemaID
	Fields        []FieldDef // ordered by Tag ascending
	tagLookup     [256]int   // slot index + 1; 0 means "no field at this tag"
	RequiredMask  []bool     // indexed by slot
	DefaultMask   []bool     // indexed by slot
	Options       SchemaOptions
}

// SlotForTag returns the compiled slot index for tag, and whether one
// exists.
func (s *CompiledSchema) SlotForTag(tag int) (int, bool) {
	if tag < 0 || tag > 255 {
		return 0, false
	}
	v := s.tagLookup[tag]
	if v == 0 {
		return 0, false
	}
	return v - 1, true
}

// NumSlots returns the number of compiled field slots.
func (s *CompiledSchema) NumSlots() int { return len(s.Fields) }

// CompileSchema validates an ordered list of field descriptors and
// produces an immutable CompiledSchema. It runs once at schema
// registration time, not per encode/decode call. Every validation failure
// found across the field list is aggregated into a single error rather
// than stopping at the first one.
func CompileSchema(fields []FieldDef, opts SchemaOptions) (*CompiledSchema, error) {
	var errs *multierror.Error

	sorted := make([]FieldDef, len(fields))
	copy(sorted, fields)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Tag < sorted[j].Tag })

	seenTag := map[int]bool{}
	seenName := map[string]bool{}

	for _, f := range sorted {
		if f.Tag < 0 || f.Tag > 255 {
			errs = multierror.Append(errs, fmt.Errorf("field %q: tag %d out of range 0..=255", f.Name, f.Tag))
		} else {
			if seenTag[f.Tag] {
				errs = multierror.Append(errs, fmt.Errorf("field %q: duplicate tag %d", f.Name, f.Tag))
			}
			seenTag[f.Tag] = true
		}

		if f.Name == "" {
			errs = multierror.Append(errs, fmt.Errorf("tag %d: field name must not be empty", f.Tag))
		} else if seenName[f.Name] {
			errs = multierror.Append(errs, fmt.Errorf("field %q: duplicate field name", f.Name))
		}
		seenName[f.Name] = true

		if err := f.Constraints.compilePattern(f.Name); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	if errs != nil {
		return nil, errs.ErrorOrNil()
	}

	schema := &CompiledSchema{
		Fields:       sorted,
		RequiredMask: make([]bool, len(sorted)),
		DefaultMask:  make([]bool, len(sorted)),
		Options:      opts,
	}

	for slot, f := range sorted {
		schema.tagLookup[f.Tag] = slot + 1

		hasDefault := f.Default != nil || f.Kind.Tag == KOptional || isContainerKind(f.Kind.Tag)
		schema.DefaultMask[slot] = hasDefault
		schema.RequiredMask[slot] = !hasDefault
	}

	return schema, nil
}

func isContainerKind(t KindTag) bool {
	switch t {
	case KList, KSet, KMap:
		return true
	default:
		return false
	}
}

// zeroValueForKind materialises the implicit default for a field that has
// no explicit Default but whose Kind carries one (Optional -> nil,
// List/Set/Map -> an empty container).
func zeroValueForKind(k Kind) TarsValue {
	switch k.Tag {
	case KOptional:
		return nil
	case KList, KSet:
		return TarsList{}
	case KMap:
		return TarsMap{}
	default:
		return nil
	}
}
