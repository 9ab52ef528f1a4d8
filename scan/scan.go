package scan

import (
	"io"

	"github.com/nimbusgrib/grib2/griberr"
	"github.com/nimbusgrib/grib2/section"
)

// scanMessage reads one complete message — envelope, section descriptors,
// end sentinel — from r. r must be positioned at the start of a message.
func scanMessage(r io.Reader) (*Message, error) {
	env, err := section.ReadEnvelope(r)
	if err != nil {
		return nil, err
	}
	return scanBody(r, env)
}

// scanBody reads every section after the envelope and the trailing end
// sentinel. Descriptor offsets are relative to the start of this message,
// not the underlying source, so the same logic serves both a sequential
// Scanner (one message at a time off a plain io.Reader) and a
// RandomAccessScanner (each message framed to its own io.SectionReader).
func scanBody(r io.Reader, env section.Envelope) (*Message, error) {
	cursor := int64(section.EnvelopeSize)
	restSize := int64(env.TotalLength) - section.EnvelopeSize

	var descriptors []Descriptor
	for restSize > section.EndSectionSize {
		hdr, err := section.ReadHeader(r)
		if err != nil {
			return nil, err
		}
		if hdr.Size < section.HeaderSize {
			return nil, &griberr.InvalidSectionLength{Number: hdr.Number, Size: hdr.Size}
		}

		secOffset := cursor
		bodySize := hdr.Size - section.HeaderSize
		cursor += section.HeaderSize

		body, err := parseBody(r, hdr.Number, bodySize, secOffset)
		if err != nil {
			return nil, err
		}

		descriptors = append(descriptors, Descriptor{
			Number: hdr.Number,
			Offset: secOffset,
			Size:   hdr.Size,
			Body:   body,
		})

		cursor += int64(bodySize)
		restSize -= int64(hdr.Size)
	}

	if err := section.ReadEndSection(r); err != nil {
		return nil, err
	}

	return &Message{Envelope: env, Descriptors: descriptors}, nil
}

// parseBody dispatches to the per-section-number parser in the section
// package. It returns griberr.UnknownSectionNumber for any number outside
// 1..7 — section 0 and 8 are handled by the envelope/end-sentinel framing
// and never reach here.
func parseBody(r io.Reader, number uint8, bodySize uint32, offset int64) (any, error) {
	switch number {
	case 1:
		return section.ParseIdentification(r, bodySize)
	case 2:
		return section.ParseLocalUse(r, bodySize)
	case 3:
		return section.ParseGridDefinition(r, bodySize)
	case 4:
		return section.ParseProductDefinition(r, bodySize)
	case 5:
		return section.ParseDataRepresentation(r, bodySize)
	case 6:
		return section.ParseBitmap(r, bodySize)
	case 7:
		return section.ParseData(r, bodySize, offset)
	default:
		return nil, &griberr.UnknownSectionNumber{Number: number}
	}
}
