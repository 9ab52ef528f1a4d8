package scan

import (
	"io"

	"github.com/nimbusgrib/grib2/section"
)

// RandomAccessScanner reads messages from an io.ReaderAt, the way
// scorix-grib/grib2/reader.ReaderAt does, framing each message to its own
// io.SectionReader instead of reading every intervening byte. Useful once a
// caller already knows (or can cheaply discover) message boundaries, e.g.
// from an external GRIB2 index, and wants ReadAt to jump straight to a
// message without replaying everything before it.
type RandomAccessScanner struct {
	src    io.ReaderAt
	offset int64
}

// NewRandomAccessScanner wraps src for random-access message scanning
// starting at byte 0.
func NewRandomAccessScanner(src io.ReaderAt) *RandomAccessScanner {
	return &RandomAccessScanner{src: src}
}

// Next reads the message at the scanner's current offset and advances past
// it, or returns io.EOF once no bytes at all remain at that offset. A
// partial envelope there is an error, not io.EOF.
func (s *RandomAccessScanner) Next() (*Message, error) {
	msg, err := s.ReadAt(s.offset)
	if err != nil {
		return nil, err
	}
	s.offset += int64(msg.Envelope.TotalLength)
	return msg, nil
}

// ReadAt reads the single message starting at the given byte offset,
// without disturbing the scanner's own cursor used by Next.
func (s *RandomAccessScanner) ReadAt(offset int64) (*Message, error) {
	envelopeSection := io.NewSectionReader(s.src, offset, section.EnvelopeSize)
	env, err := section.ReadEnvelope(envelopeSection)
	if err != nil {
		return nil, err
	}

	rest := io.NewSectionReader(s.src, offset+section.EnvelopeSize, int64(env.TotalLength)-section.EnvelopeSize)
	return scanBody(rest, env)
}
