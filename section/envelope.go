// Package section decodes the fixed headers and body prefixes of a GRIB2
// message: the 16-octet indicator section, the 5-octet header that begins
// every numbered section 1 through 7, the per-section body value types
// named in spec.md §3, and the 4-octet end sentinel.
//
// Every parser here except ParseData reads only the fixed-width prefix it
// needs and discards the remainder of the body sequentially (io.CopyN to
// io.Discard); ParseData reads section 7's whole body into memory. None of
// it requires the source to be seekable.
package section

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/nimbusgrib/grib2/griberr"
	"github.com/nimbusgrib/grib2/internal/binutil"
)

// EnvelopeSize is the fixed length in octets of section 0, the indicator
// section: "GRIB" (4) + reserved (2) + discipline (1) + edition (1) +
// total message length (8).
const EnvelopeSize = 16

// HeaderSize is the length in octets of the length+number header that
// begins every section 1 through 7.
const HeaderSize = 5

// EndSectionSize is the fixed length in octets of section 8, the "7777"
// end sentinel.
const EndSectionSize = 4

// Magic is the 4-octet identifier that must open every GRIB2 message.
const Magic = "GRIB"

// EndMagic is the 4-octet sentinel that must close every GRIB2 message.
const EndMagic = "7777"

// Envelope is the decoded section 0 (Indicator Section).
type Envelope struct {
	Discipline  uint8
	Edition     uint8
	TotalLength uint64
}

// ReadEnvelope reads and validates the 16-octet indicator section.
func ReadEnvelope(r io.Reader) (Envelope, error) {
	var buf [EnvelopeSize]byte
	if err := binutil.ReadExact(r, buf[:]); err != nil {
		if err == io.EOF {
			return Envelope{}, io.EOF
		}
		return Envelope{}, fmt.Errorf("section: reading envelope: %w", err)
	}

	if string(buf[0:4]) != Magic {
		return Envelope{}, griberr.NotGrib
	}

	edition := buf[7]
	if edition != 2 {
		return Envelope{}, &griberr.VersionMismatch{Version: edition}
	}

	return Envelope{
		Discipline:  buf[6],
		Edition:     edition,
		TotalLength: binary.BigEndian.Uint64(buf[8:16]),
	}, nil
}

// ReadEndSection reads and validates the 4-octet "7777" end sentinel.
func ReadEndSection(r io.Reader) error {
	var buf [EndSectionSize]byte
	if err := binutil.ReadExact(r, buf[:]); err != nil {
		return fmt.Errorf("section: reading end sentinel: %w", err)
	}
	if string(buf[:]) != EndMagic {
		return griberr.EndSectionMismatch
	}
	return nil
}

// Header is the common 5-octet prefix of sections 1 through 7: the total
// section size (including this header) and the section number.
type Header struct {
	Size   uint32
	Number uint8
}

// ReadHeader reads the 5-octet section header. It does not consume the
// body.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	if err := binutil.ReadExact(r, buf[:]); err != nil {
		return Header{}, fmt.Errorf("section: reading header: %w", err)
	}
	return Header{
		Size:   binary.BigEndian.Uint32(buf[0:4]),
		Number: buf[4],
	}, nil
}
