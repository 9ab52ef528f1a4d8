package section

import (
	"io"
	"time"

	"github.com/nimbusgrib/grib2/internal/binutil"
)

// Identification is the decoded fixed prefix of section 1.
type Identification struct {
	CentreID            uint16
	SubCentreID         uint16
	MasterTableVersion  uint8
	LocalTableVersion   uint8
	RefTimeSignificance uint8
	RefYear             uint16
	RefMonth            uint8
	RefDay              uint8
	RefHour             uint8
	RefMinute           uint8
	RefSecond           uint8
	ProductionStatus    uint8
	Type                uint8
}

// Time returns the section's reference time as a UTC time.Time. GRIB2
// stores a broken-down calendar time with no time zone; it is always UTC.
func (id Identification) Time() time.Time {
	return time.Date(int(id.RefYear), time.Month(id.RefMonth), int(id.RefDay),
		int(id.RefHour), int(id.RefMinute), int(id.RefSecond), 0, time.UTC)
}

// identificationPrefixSize is the 16-octet fixed-layout prefix of section 1
// (everything after the 5-octet section header).
const identificationPrefixSize = 16

// ParseIdentification reads section 1's fixed prefix and discards the rest
// of its body (reserved/local use octets beyond the fixed layout, if any).
func ParseIdentification(r io.Reader, bodySize uint32) (Identification, error) {
	var buf [identificationPrefixSize]byte
	if err := binutil.ReadExact(r, buf[:]); err != nil {
		return Identification{}, err
	}
	id := Identification{
		CentreID:            uint16(mustUint(buf[:], 0, 2)),
		SubCentreID:         uint16(mustUint(buf[:], 2, 2)),
		MasterTableVersion:  buf[4],
		LocalTableVersion:   buf[5],
		RefTimeSignificance: buf[6],
		RefYear:             uint16(mustUint(buf[:], 7, 2)),
		RefMonth:            buf[9],
		RefDay:              buf[10],
		RefHour:             buf[11],
		RefMinute:           buf[12],
		RefSecond:           buf[13],
		ProductionStatus:    buf[14],
		Type:                buf[15],
	}
	if err := binutil.Discard(r, int64(bodySize)-identificationPrefixSize); err != nil {
		return Identification{}, err
	}
	return id, nil
}

// LocalUse is section 2. Its content is centre-specific and opaque to this
// module; only its presence (and its length, tracked by the caller's
// Descriptor) matters to the submessage grammar.
type LocalUse struct{}

// ParseLocalUse discards the entirety of section 2's body.
func ParseLocalUse(r io.Reader, bodySize uint32) (LocalUse, error) {
	if err := binutil.Discard(r, int64(bodySize)); err != nil {
		return LocalUse{}, err
	}
	return LocalUse{}, nil
}

// GridDefinition is the decoded fixed prefix of section 3. This module does
// not interpret grid geometry; it retains only what the resolver and the
// data-representation/decode paths need.
type GridDefinition struct {
	NumPoints      uint32
	TemplateNumber uint16
}

// gridDefinitionPrefixSize covers the source of grid definition (1 octet,
// discarded into the struct below as unused), number of data points
// (4 octets), number of octets for optional list (1, discarded), octet for
// list interpretation (1, discarded), and grid definition template number
// (2 octets): 9 octets total.
const gridDefinitionPrefixSize = 9

// ParseGridDefinition reads section 3's fixed prefix and discards the rest.
func ParseGridDefinition(r io.Reader, bodySize uint32) (GridDefinition, error) {
	var buf [gridDefinitionPrefixSize]byte
	if err := binutil.ReadExact(r, buf[:]); err != nil {
		return GridDefinition{}, err
	}
	gd := GridDefinition{
		NumPoints:      uint32(mustUint(buf[:], 1, 4)),
		TemplateNumber: uint16(mustUint(buf[:], 7, 2)),
	}
	if err := binutil.Discard(r, int64(bodySize)-gridDefinitionPrefixSize); err != nil {
		return GridDefinition{}, err
	}
	return gd, nil
}

// ProductDefinition is the decoded fixed prefix of section 4. This module
// does not interpret product metadata beyond the template number needed to
// validate the grammar.
type ProductDefinition struct {
	NumCoordinates uint16
	TemplateNumber uint16
}

const productDefinitionPrefixSize = 4

// ParseProductDefinition reads section 4's fixed prefix and discards the
// rest.
func ParseProductDefinition(r io.Reader, bodySize uint32) (ProductDefinition, error) {
	var buf [productDefinitionPrefixSize]byte
	if err := binutil.ReadExact(r, buf[:]); err != nil {
		return ProductDefinition{}, err
	}
	pd := ProductDefinition{
		NumCoordinates: uint16(mustUint(buf[:], 0, 2)),
		TemplateNumber: uint16(mustUint(buf[:], 2, 2)),
	}
	if err := binutil.Discard(r, int64(bodySize)-productDefinitionPrefixSize); err != nil {
		return ProductDefinition{}, err
	}
	return pd, nil
}

// SimplePacking is the decoded data-representation template 5.0/5.40 body:
// the reference value, binary and decimal scale factors, bit width, and
// original field value type shared by both simple packing and JPEG 2000.
type SimplePacking struct {
	Reference              float32
	BinaryScaleFactor      int16
	DecimalScaleFactor     int16
	Bits                   uint8
	OriginalFieldValueType uint8
}

// DataRepresentation is the decoded section 5.
type DataRepresentation struct {
	NumPoints      uint32
	TemplateNumber uint16

	// Simple is populated when TemplateNumber is 0 (grid point data, simple
	// packing) or 40 (grid point data, JPEG 2000), the only two templates
	// this module decodes; both templates share the same 10-octet layout
	// after the 6-octet fixed prefix below.
	Simple *SimplePacking
}

const (
	dataRepresentationPrefixSize = 6
	simplePackingExtraSize       = 10
)

// ParseDataRepresentation reads section 5's fixed prefix, and, for template
// 0 or 40, the additional simple-packing fields that follow it. Any bytes
// beyond what is understood are discarded.
func ParseDataRepresentation(r io.Reader, bodySize uint32) (DataRepresentation, error) {
	var prefix [dataRepresentationPrefixSize]byte
	if err := binutil.ReadExact(r, prefix[:]); err != nil {
		return DataRepresentation{}, err
	}
	dr := DataRepresentation{
		NumPoints:      uint32(mustUint(prefix[:], 0, 4)),
		TemplateNumber: uint16(mustUint(prefix[:], 4, 2)),
	}
	consumed := int64(dataRepresentationPrefixSize)

	if dr.TemplateNumber == 0 || dr.TemplateNumber == 40 {
		var extra [simplePackingExtraSize]byte
		if err := binutil.ReadExact(r, extra[:]); err != nil {
			return DataRepresentation{}, err
		}
		ref, err := binutil.Float32(extra[:], 0)
		if err != nil {
			return DataRepresentation{}, err
		}
		dr.Simple = &SimplePacking{
			Reference:              ref,
			BinaryScaleFactor:      binutil.SignMagnitudeInt16(uint16(mustUint(extra[:], 4, 2))),
			DecimalScaleFactor:     binutil.SignMagnitudeInt16(uint16(mustUint(extra[:], 6, 2))),
			Bits:                   extra[8],
			OriginalFieldValueType: extra[9],
		}
		consumed += simplePackingExtraSize
	}

	if err := binutil.Discard(r, int64(bodySize)-consumed); err != nil {
		return DataRepresentation{}, err
	}
	return dr, nil
}

// Bitmap is the decoded section 6: just the bitmap indicator. This module
// decodes only the no-bitmap case (indicator 255); the indicator's other
// values are reported to the caller as BitMapIndicatorUnsupported at decode
// time rather than interpreted here.
type Bitmap struct {
	Indicator uint8
}

const bitmapPrefixSize = 1

// ParseBitmap reads section 6's indicator octet and discards the rest of
// its body (present only when the indicator is 0, an embedded bitmap).
func ParseBitmap(r io.Reader, bodySize uint32) (Bitmap, error) {
	var buf [bitmapPrefixSize]byte
	if err := binutil.ReadExact(r, buf[:]); err != nil {
		return Bitmap{}, err
	}
	bm := Bitmap{Indicator: buf[0]}
	if err := binutil.Discard(r, int64(bodySize)-bitmapPrefixSize); err != nil {
		return Bitmap{}, err
	}
	return bm, nil
}

// Data is section 7: the packed data payload, referenced by its offset in
// the source and held in memory as Bytes. Offset is relative to the start
// of the message (its Envelope), matching the position recorded for every
// other Descriptor.
type Data struct {
	Offset int64
	Length uint32
	Bytes  []byte
}

// ParseData reads the entirety of section 7's body into memory. It is the
// one section this module buffers in full: its content is exactly what the
// simplepack/jp2 decoders need, and deferring the read would otherwise
// require every byte source this module supports to also be seekable.
func ParseData(r io.Reader, bodySize uint32, offset int64) (Data, error) {
	buf := make([]byte, bodySize)
	if err := binutil.ReadExact(r, buf); err != nil {
		return Data{}, err
	}
	return Data{Offset: offset, Length: bodySize, Bytes: buf}, nil
}

func mustUint(buf []byte, offset, width int) uint64 {
	v, err := binutil.Uint(buf, offset, width)
	if err != nil {
		// buf is always sized to fit the fixed layouts above; an error here
		// means one of those layouts was mis-specified.
		panic(err)
	}
	return v
}
