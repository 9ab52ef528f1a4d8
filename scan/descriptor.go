// Package scan frames a GRIB2 byte stream into section descriptors without
// interpreting the submessage grammar between them (that is submsg's job).
// It offers two entry points grounded on scorix-grib/grib2/reader: a
// sequential Scanner for plain io.Reader sources, and a RandomAccessScanner
// for io.ReaderAt sources that frames individual messages with
// io.NewSectionReader instead of reading everything before them. The
// sections inside a message are read sequentially either way.
package scan

import (
	"github.com/nimbusgrib/grib2/section"
)

// Descriptor is one parsed section: its number, its position and length in
// the source, and its decoded body. Body holds one of section.Identification,
// section.LocalUse, section.GridDefinition, section.ProductDefinition,
// section.DataRepresentation, section.Bitmap, or section.Data, depending on
// Number. The framing-only sections 0 and 8 get no Descriptor: section 0 is
// Message.Envelope and section 8 is consumed as the end sentinel.
type Descriptor struct {
	Number uint8
	Offset int64
	Size   uint32
	Body   any
}

// Message is one complete GRIB2 message: its envelope and the section
// descriptors between it and the end sentinel, in source order. Message
// does not itself resolve the submessage grammar; pass Descriptors to
// submsg.Resolve for that.
type Message struct {
	Envelope    section.Envelope
	Descriptors []Descriptor
}
