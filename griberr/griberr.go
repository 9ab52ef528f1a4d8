// Package griberr defines the typed error taxonomy used across the grib2
// module. Errors are values: nothing in this module panics on malformed
// input. A structural error (framing or grammar) invalidates the whole
// stream being scanned; a decode error invalidates a single submessage and
// never corrupts submessages already returned.
package griberr

import (
	"errors"
	"fmt"
)

// NotGrib is returned when a message does not begin with the "GRIB" magic.
var NotGrib = errors.New("griberr: not a GRIB message")

// EndSectionMismatch is returned when the trailing 4 octets of a message
// are not the "7777" sentinel.
var EndSectionMismatch = errors.New("griberr: end section is not \"7777\"")

// IterationEndedUnexpectedly is returned when the section sequence ends
// before the grammar expects it to (spec.md §4.3/§8).
var IterationEndedUnexpectedly = errors.New("griberr: section sequence ended before a valid submessage could be completed")

// BitMapIndicatorUnsupported is returned for any bitmap indicator value
// other than 255 (no bitmap); this core does not decode explicit bitmaps.
var BitMapIndicatorUnsupported = errors.New("griberr: bitmap indicator other than 255 is not supported")

// InternalDataError marks a decode attempted against a submessage missing
// an expected body on a section number the resolver already validated —
// a bug in the scanner/resolver pairing, not malformed input.
var InternalDataError = errors.New("griberr: internal error, missing expected section body")

// VersionMismatch is returned when the GRIB edition octet is not 2.
type VersionMismatch struct {
	Version uint8
}

func (e *VersionMismatch) Error() string {
	return fmt.Sprintf("griberr: unsupported GRIB edition %d, want 2", e.Version)
}

// UnknownSectionNumber is returned when the scanner encounters a section
// number outside 1..7 in a section header (sections 0 and 8 have no such
// header, so their numbers are not valid there either).
type UnknownSectionNumber struct {
	Number uint8
}

func (e *UnknownSectionNumber) Error() string {
	return fmt.Sprintf("griberr: unknown section number %d", e.Number)
}

// InvalidSectionLength is returned when a section header declares a size
// too small to even hold the header itself, so no body size can be derived
// from it.
type InvalidSectionLength struct {
	Number uint8
	Size   uint32
}

func (e *InvalidSectionLength) Error() string {
	return fmt.Sprintf("griberr: section %d: declared size %d is smaller than the section header", e.Number, e.Size)
}

// NoGridDefinition is returned when a §4 or §8 is reached with no §3
// default carried forward, indexed by the 0-based position of the
// offending section descriptor.
type NoGridDefinition struct {
	Index int
}

func (e *NoGridDefinition) Error() string {
	return fmt.Sprintf("griberr: section %d: no grid definition (section 3) in scope", e.Index)
}

// WrongIteration is returned when the grammar expects one section number
// and observes another, indexed by the 0-based position of the offending
// section descriptor.
type WrongIteration struct {
	Index int
}

func (e *WrongIteration) Error() string {
	return fmt.Sprintf("griberr: section %d: out of the expected submessage grammar order", e.Index)
}

// ReadError wraps a failed byte-source read with the operation that failed.
type ReadError struct {
	Message string
	Cause   error
}

func (e *ReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("griberr: read error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("griberr: read error: %s", e.Message)
}

func (e *ReadError) Unwrap() error { return e.Cause }

// OriginalFieldValueTypeNotSupported is returned by the simple-packing
// decoder when §5's "type of original field values" octet is not 0
// (floating point).
type OriginalFieldValueTypeNotSupported struct {
	Type uint8
}

func (e *OriginalFieldValueTypeNotSupported) Error() string {
	return fmt.Sprintf("griberr: original field value type %d is not supported (only floating point)", e.Type)
}

// LengthMismatch is returned when a decoder produces a different number of
// values than §5's declared point count.
type LengthMismatch struct {
	Got, Want int
}

func (e *LengthMismatch) Error() string {
	return fmt.Sprintf("griberr: decoded %d values, expected %d", e.Got, e.Want)
}

// Jpeg2000Kind enumerates the JPEG 2000 decode failure modes from
// spec.md §4.5/§7.
type Jpeg2000Kind int

const (
	Jpeg2000NotSupported Jpeg2000Kind = iota
	Jpeg2000DecoderSetupError
	Jpeg2000MainHeaderReadError
	Jpeg2000BodyReadError
)

func (k Jpeg2000Kind) String() string {
	switch k {
	case Jpeg2000NotSupported:
		return "NotSupported"
	case Jpeg2000DecoderSetupError:
		return "DecoderSetupError"
	case Jpeg2000MainHeaderReadError:
		return "MainHeaderReadError"
	case Jpeg2000BodyReadError:
		return "BodyReadError"
	default:
		return "Unknown"
	}
}

// Jpeg2000Error reports a failure decoding a JPEG 2000 codestream
// representation (§5 template 40).
type Jpeg2000Error struct {
	Kind  Jpeg2000Kind
	Cause error
}

func (e *Jpeg2000Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("griberr: jpeg2000 %s: %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("griberr: jpeg2000 %s", e.Kind)
}

func (e *Jpeg2000Error) Unwrap() error { return e.Cause }

// UnsupportedRepresentation is returned when a submessage's data
// representation template is neither simple packing (0) nor JPEG 2000 (40),
// the only two this module decodes.
type UnsupportedRepresentation struct {
	TemplateNumber uint16
}

func (e *UnsupportedRepresentation) Error() string {
	return fmt.Sprintf("griberr: data representation template %d is not supported", e.TemplateNumber)
}
