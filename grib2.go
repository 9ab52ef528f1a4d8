// Package grib2 reads WMO GRIB2 binary meteorological messages: it frames
// sections, resolves the submessage grammar, and decodes packed field
// values for the simple-packing and JPEG 2000 data representations.
//
// Open a stream from a plain io.Reader for forward-only sources, or OpenAt
// one from an io.ReaderAt for random access:
//
//	s := grib2.Open(r)
//	for {
//		msg, err := s.Next()
//		if err == io.EOF {
//			break
//		}
//		for _, sub := range msg.Submessages() {
//			values, err := sub.Decode()
//			...
//		}
//	}
package grib2

import (
	"io"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/nimbusgrib/grib2/griberr"
	"github.com/nimbusgrib/grib2/jp2"
	"github.com/nimbusgrib/grib2/scan"
	"github.com/nimbusgrib/grib2/section"
	"github.com/nimbusgrib/grib2/simplepack"
	"github.com/nimbusgrib/grib2/submsg"
)

// Stream scans messages strictly forward from an io.Reader.
type Stream struct {
	sc  *scan.Scanner
	cfg config
}

// Open wraps r for sequential message scanning, the only strategy
// available for non-seekable sources.
func Open(r io.Reader, opts ...Option) *Stream {
	return &Stream{sc: scan.NewScanner(r), cfg: newConfig(opts)}
}

// Next reads and resolves the next message, or returns io.EOF once r is
// exhausted between messages.
func (s *Stream) Next() (*Message, error) {
	raw, err := s.sc.Next()
	if err != nil {
		if err != io.EOF {
			err = errors.Wrap(err, "grib2: scanning message")
		}
		return nil, err
	}
	return newMessage(raw, s.cfg)
}

// RandomAccessStream scans messages from an io.ReaderAt, framing each one
// to its own section without reading the bytes between them.
type RandomAccessStream struct {
	sc  *scan.RandomAccessScanner
	cfg config
}

// OpenAt wraps src for random-access message scanning starting at byte 0.
// WithByteSource overrides src with a different io.ReaderAt over the same
// data — scan.HTTPByteSource, say — without otherwise changing the call.
func OpenAt(src io.ReaderAt, opts ...Option) *RandomAccessStream {
	cfg := newConfig(opts)
	if cfg.byteSource != nil {
		src = cfg.byteSource
	}
	return &RandomAccessStream{sc: scan.NewRandomAccessScanner(src), cfg: cfg}
}

// Next reads the message at the stream's current offset and advances past
// it, or returns io.EOF once that offset has nothing left to read.
func (s *RandomAccessStream) Next() (*Message, error) {
	raw, err := s.sc.Next()
	if err != nil {
		if err != io.EOF {
			err = errors.Wrap(err, "grib2: scanning message")
		}
		return nil, err
	}
	return newMessage(raw, s.cfg)
}

// ReadAt reads the single message starting at the given byte offset.
func (s *RandomAccessStream) ReadAt(offset int64) (*Message, error) {
	raw, err := s.sc.ReadAt(offset)
	if err != nil {
		if err != io.EOF {
			err = errors.Wrap(err, "grib2: scanning message")
		}
		return nil, err
	}
	return newMessage(raw, s.cfg)
}

// Message is one resolved GRIB2 message: its envelope and the submessages
// the grammar in submsg found inside it.
type Message struct {
	raw         *scan.Message
	submessages []submsg.Submessage
	cfg         config
}

func newMessage(raw *scan.Message, cfg config) (*Message, error) {
	subs, err := submsg.Resolve(raw.Descriptors)
	if err != nil {
		return nil, errors.Wrap(err, "grib2: resolving submessages")
	}
	cfg.logf("grib2: message discipline=%d edition=%d sections=%d submessages=%d",
		raw.Envelope.Discipline, raw.Envelope.Edition, len(raw.Descriptors), len(subs))
	return &Message{raw: raw, submessages: subs, cfg: cfg}, nil
}

// Envelope returns the message's section 0.
func (m *Message) Envelope() section.Envelope {
	return m.raw.Envelope
}

// Identification returns the message's section 1.
func (m *Message) Identification() (section.Identification, error) {
	for _, d := range m.raw.Descriptors {
		if d.Number == 1 {
			if id, ok := d.Body.(section.Identification); ok {
				return id, nil
			}
			break
		}
	}
	return section.Identification{}, griberr.InternalDataError
}

// Submessages returns every submessage the grammar resolved inside this
// message, in source order.
func (m *Message) Submessages() []*Submessage {
	out := make([]*Submessage, len(m.submessages))
	for i, sub := range m.submessages {
		out[i] = &Submessage{sub: sub, msg: m}
	}
	return out
}

// Submessage is one resolved section 4-7 group, with whichever section 2
// and section 3 are in scope for it.
type Submessage struct {
	sub submsg.Submessage
	msg *Message
}

// GridDefinition returns the grid definition (section 3) in scope for this
// submessage.
func (s *Submessage) GridDefinition() section.GridDefinition {
	return s.msg.raw.Descriptors[s.sub.S3].Body.(section.GridDefinition)
}

// ProductDefinition returns this submessage's section 4.
func (s *Submessage) ProductDefinition() section.ProductDefinition {
	return s.msg.raw.Descriptors[s.sub.S4].Body.(section.ProductDefinition)
}

// DataRepresentation returns this submessage's section 5.
func (s *Submessage) DataRepresentation() section.DataRepresentation {
	return s.msg.raw.Descriptors[s.sub.S5].Body.(section.DataRepresentation)
}

// HasLocalUse reports whether a section 2 is in scope for this submessage.
func (s *Submessage) HasLocalUse() bool {
	return s.sub.S2 != submsg.NoSection2
}

// Decode unpacks and dequantizes this submessage's field values, dispatched
// on its data representation template number: 0 is simple packing, 40 is
// JPEG 2000. Any other template number returns
// griberr.UnsupportedRepresentation. A bitmap indicator other than 255 (no
// bitmap) returns griberr.BitMapIndicatorUnsupported, since this module
// does not reconstruct fields from an explicit bitmap.
func (s *Submessage) Decode() ([]float32, error) {
	bitmap, ok := s.msg.raw.Descriptors[s.sub.S6].Body.(section.Bitmap)
	if !ok {
		return nil, griberr.InternalDataError
	}
	if bitmap.Indicator != 255 {
		return nil, griberr.BitMapIndicatorUnsupported
	}

	dr := s.DataRepresentation()
	if dr.Simple == nil {
		return nil, &griberr.UnsupportedRepresentation{TemplateNumber: dr.TemplateNumber}
	}

	data, ok := s.msg.raw.Descriptors[s.sub.S7].Body.(section.Data)
	if !ok {
		return nil, griberr.InternalDataError
	}

	switch dr.TemplateNumber {
	case 0:
		values, err := simplepack.Decode(data.Bytes, int(dr.NumPoints), *dr.Simple)
		if err != nil {
			return nil, errors.Wrap(err, "grib2: decoding simple packing")
		}
		return values, nil

	case 40:
		if dr.Simple.OriginalFieldValueType != 0 {
			return nil, &griberr.OriginalFieldValueTypeNotSupported{Type: dr.Simple.OriginalFieldValueType}
		}
		samples, err := jp2.Decode(data.Bytes, s.msg.cfg.discardLevel)
		if err != nil {
			return nil, errors.Wrap(err, "grib2: decoding jpeg2000")
		}
		if len(samples) != int(dr.NumPoints) {
			return nil, &griberr.LengthMismatch{Got: len(samples), Want: int(dr.NumPoints)}
		}
		values := make([]float32, len(samples))
		for i, x := range samples {
			values[i] = simplepack.Dequantize(x, *dr.Simple)
		}
		glog.V(2).Infof("grib2: jpeg2000 decoded %d samples", len(samples))
		return values, nil

	default:
		return nil, &griberr.UnsupportedRepresentation{TemplateNumber: dr.TemplateNumber}
	}
}
