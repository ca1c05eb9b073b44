package jce

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind enumerates the error classes the engine can surface. Every
// *Error carries exactly one ErrorKind, plus path/tag/wire-type context
// where relevant.
type ErrorKind int

const (
	// KindTruncated means the buffer ended mid-value.
	KindTruncated ErrorKind = iota + 1
	// KindBadType means a type code was not in 0..=13, or SimpleList's
	// inner head was malformed.
	KindBadType
	// KindTypeMismatch means the wire type was incompatible with the
	// declared field kind.
	KindTypeMismatch
	// KindOutOfRange means integer narrowing failed, or a tag exceeded 255.
	KindOutOfRange
	// KindDepthExceeded means the recursion limit was hit.
	KindDepthExceeded
	// KindLimitExceeded means a container/string/bytes length limit was hit.
	KindLimitExceeded
	// KindUnknownTag means an unrecognised tag was seen with forbid_unknown set.
	KindUnknownTag
	// KindDuplicateTag means the same tag routed to an already-set slot.
	KindDuplicateTag
	// KindMissingRequired means a required slot was still unset at StructEnd.
	KindMissingRequired
	// KindValidation means a field constraint failed.
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindTruncated:
		return "Truncated"
	case KindBadType:
		return "BadType"
	case KindTypeMismatch:
		return "TypeMismatch"
	case KindOutOfRange:
		return "OutOfRange"
	case KindDepthExceeded:
		return "DepthExceeded"
	case KindLimitExceeded:
		return "LimitExceeded"
	case KindUnknownTag:
		return "UnknownTag"
	case KindDuplicateTag:
		return "DuplicateTag"
	case KindMissingRequired:
		return "MissingRequired"
	case KindValidation:
		return "Validation"
	default:
		return "Unknown"
	}
}

// Error is the single error type surfaced by this package. It always
// carries a path (<root>.field[index].field...) and, where applicable, the
// tag and wire type observed when the error was raised.
type Error struct {
	Kind     ErrorKind
	Path     string
	Tag      int  // -1 if not applicable
	WireType byte // 0xFF if not applicable
	Reason   string
	cause    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("jce: %s at %s", e.Kind, pathOrRoot(e.Path))
	if e.Tag >= 0 {
		msg += fmt.Sprintf(" (tag %d)", e.Tag)
	}
	if e.WireType != 0xFF {
		msg += fmt.Sprintf(" (wire type %d)", e.WireType)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

// Unwrap exposes the wrapped cause, if any, so callers may use errors.Is/As.
func (e *Error) Unwrap() error { return e.cause }

func pathOrRoot(p string) string {
	if p == "" {
		return "<root>"
	}
	return p
}

func newErr(kind ErrorKind, path string, tag int, wireType byte, reason string) *Error {
	return &Error{Kind: kind, Path: path, Tag: tag, WireType: wireType, Reason: reason}
}

func wrapErr(kind ErrorKind, path string, tag int, wireType byte, cause error) *Error {
	return &Error{Kind: kind, Path: path, Tag: tag, WireType: wireType, cause: cause}
}

// wrapCompile wraps a lower-level error (e.g. a failed regexp.Compile) with
// path context using github.com/pkg/errors, preserving the original as the
// error chain's Cause for callers that want it.
func wrapCompile(path string, err error) error {
	return errors.Wrapf(err, "jce: compiling schema at %s", pathOrRoot(path))
}

const noTag = -1
const noWireType = 0xFF
