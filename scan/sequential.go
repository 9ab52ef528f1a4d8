package scan

import "io"

// Scanner reads messages strictly forward from an io.Reader, the way
// scorix-grib/grib2/reader.Reader.EachMessage iterates a file — the only
// strategy available for sources that cannot seek, such as a streamed
// HTTP body or a compressed pipe.
type Scanner struct {
	r io.Reader
}

// NewScanner wraps r for sequential, forward-only message scanning.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: r}
}

// Next reads and returns the next message, or io.EOF once the source is
// exhausted between messages.
func (s *Scanner) Next() (*Message, error) {
	return scanMessage(s.r)
}
