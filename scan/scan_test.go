package scan

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbusgrib/grib2/section"
)

// buildSection encodes a section header (5 octets: size + number) followed
// by body, returning the bytes of the whole section.
func buildSection(number uint8, body []byte) []byte {
	size := uint32(5 + len(body))
	buf := make([]byte, 5, 5+len(body))
	buf[0] = byte(size >> 24)
	buf[1] = byte(size >> 16)
	buf[2] = byte(size >> 8)
	buf[3] = byte(size)
	buf[4] = number
	return append(buf, body...)
}

func buildEnvelope(totalLength uint64) []byte {
	buf := []byte("GRIB")
	buf = append(buf, 0, 0, 0, 2)
	lenBuf := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		lenBuf[i] = byte(totalLength)
		totalLength >>= 8
	}
	return append(buf, lenBuf...)
}

// buildMinimalMessage assembles a single-submessage GRIB2 message: §1, §3,
// §4, §5 (template 0, zero-bit simple packing), §7 (empty payload), §8.
func buildMinimalMessage(t *testing.T) []byte {
	t.Helper()

	sec1 := buildSection(1, make([]byte, 16))
	sec3 := buildSection(3, make([]byte, 9))
	sec4 := buildSection(4, make([]byte, 4))

	sec5Body := make([]byte, 16)
	sec5Body[5] = 0 // template number 0
	sec5 := buildSection(5, sec5Body)

	sec7 := buildSection(7, nil)

	body := append(append(append(append(sec1, sec3...), sec4...), sec5...), sec7...)
	total := uint64(section.EnvelopeSize) + uint64(len(body)) + section.EndSectionSize

	msg := buildEnvelope(total)
	msg = append(msg, body...)
	msg = append(msg, []byte(section.EndMagic)...)
	return msg
}

func TestScanner_Next(t *testing.T) {
	raw := buildMinimalMessage(t)
	scanner := NewScanner(bytes.NewReader(raw))

	msg, err := scanner.Next()
	require.NoError(t, err)
	assert.Equal(t, uint8(2), msg.Envelope.Edition)
	require.Len(t, msg.Descriptors, 5)
	assert.Equal(t, uint8(1), msg.Descriptors[0].Number)
	assert.Equal(t, uint8(7), msg.Descriptors[4].Number)

	_, err = scanner.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestScanner_MultipleMessages(t *testing.T) {
	raw := append(buildMinimalMessage(t), buildMinimalMessage(t)...)
	scanner := NewScanner(bytes.NewReader(raw))

	_, err := scanner.Next()
	require.NoError(t, err)
	_, err = scanner.Next()
	require.NoError(t, err)
	_, err = scanner.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestRandomAccessScanner_Next(t *testing.T) {
	raw := append(buildMinimalMessage(t), buildMinimalMessage(t)...)
	scanner := NewRandomAccessScanner(bytes.NewReader(raw))

	msg, err := scanner.Next()
	require.NoError(t, err)
	require.Len(t, msg.Descriptors, 5)

	msg, err = scanner.Next()
	require.NoError(t, err)
	require.Len(t, msg.Descriptors, 5)

	_, err = scanner.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestRandomAccessScanner_ReadAt(t *testing.T) {
	first := buildMinimalMessage(t)
	raw := append(append([]byte{}, first...), buildMinimalMessage(t)...)
	scanner := NewRandomAccessScanner(bytes.NewReader(raw))

	msg, err := scanner.ReadAt(int64(len(first)))
	require.NoError(t, err)
	assert.Equal(t, uint8(2), msg.Envelope.Edition)
}
