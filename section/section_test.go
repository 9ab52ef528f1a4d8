package section

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbusgrib/grib2/griberr"
)

func TestReadEnvelope(t *testing.T) {
	buf := []byte("GRIB")
	buf = append(buf, 0x00, 0x00) // reserved
	buf = append(buf, 0)          // discipline
	buf = append(buf, 2)          // edition
	buf = append(buf, 0, 0, 0, 0, 0, 0, 0, 64)

	env, err := ReadEnvelope(bytes.NewReader(buf))
	require.NoError(t, err)
	assert.Equal(t, uint8(0), env.Discipline)
	assert.Equal(t, uint8(2), env.Edition)
	assert.Equal(t, uint64(64), env.TotalLength)
}

func TestReadEnvelope_NotGrib(t *testing.T) {
	buf := make([]byte, EnvelopeSize)
	copy(buf, "XXXX")
	_, err := ReadEnvelope(bytes.NewReader(buf))
	assert.ErrorIs(t, err, griberr.NotGrib)
}

func TestReadEnvelope_VersionMismatch(t *testing.T) {
	buf := []byte("GRIB")
	buf = append(buf, 0x00, 0x00, 0, 1) // edition 1
	buf = append(buf, 0, 0, 0, 0, 0, 0, 0, 0)

	_, err := ReadEnvelope(bytes.NewReader(buf))
	var mismatch *griberr.VersionMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, uint8(1), mismatch.Version)
}

func TestReadEndSection(t *testing.T) {
	require.NoError(t, ReadEndSection(bytes.NewReader([]byte("7777"))))

	err := ReadEndSection(bytes.NewReader([]byte("9999")))
	assert.ErrorIs(t, err, griberr.EndSectionMismatch)
}

func TestReadHeader(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x00, 0x15, 1}
	h, err := ReadHeader(bytes.NewReader(buf))
	require.NoError(t, err)
	assert.Equal(t, uint32(0x15), h.Size)
	assert.Equal(t, uint8(1), h.Number)
}

func TestParseIdentification(t *testing.T) {
	body := []byte{
		0x00, 0x07, // centre
		0x00, 0x00, // subcentre
		2,          // master table version
		1,          // local table version
		1,          // ref time significance
		0x07, 0xE8, // year 2024
		8,  // month
		15, // day
		12, // hour
		30, // minute
		0,  // second
		0,  // production status
		1,  // data type
	}
	id, err := ParseIdentification(bytes.NewReader(body), uint32(len(body)))
	require.NoError(t, err)
	assert.Equal(t, uint16(7), id.CentreID)
	assert.Equal(t, uint16(2024), id.RefYear)
	assert.Equal(t, time.Date(2024, 8, 15, 12, 30, 0, 0, time.UTC), id.Time())
}

func TestParseIdentification_DiscardsTrailingOctets(t *testing.T) {
	body := make([]byte, identificationPrefixSize+5)
	r := bytes.NewReader(body)
	_, err := ParseIdentification(r, uint32(len(body)))
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestParseGridDefinition(t *testing.T) {
	body := []byte{
		0,                      // grid definition source
		0x00, 0x00, 0x01, 0x00, // num points = 256
		0,          // optional list octets
		0,          // optional list interpretation
		0x00, 0x1E, // template number = 30
	}
	gd, err := ParseGridDefinition(bytes.NewReader(body), uint32(len(body)))
	require.NoError(t, err)
	assert.Equal(t, uint32(256), gd.NumPoints)
	assert.Equal(t, uint16(30), gd.TemplateNumber)
}

func TestParseProductDefinition(t *testing.T) {
	body := []byte{0x00, 0x00, 0x00, 0x00}
	pd, err := ParseProductDefinition(bytes.NewReader(body), uint32(len(body)))
	require.NoError(t, err)
	assert.Equal(t, uint16(0), pd.TemplateNumber)
}

func TestParseDataRepresentation_SimplePacking(t *testing.T) {
	body := []byte{
		0x00, 0x00, 0x01, 0x00, // num points = 256
		0x00, 0x00, // template number = 0
		0x3F, 0xC0, 0x00, 0x00, // reference = 1.5
		0x00, 0x01, // binary scale factor = 1
		0x80, 0x01, // decimal scale factor = -1
		12, // bits
		0,  // original field value type = float
	}
	dr, err := ParseDataRepresentation(bytes.NewReader(body), uint32(len(body)))
	require.NoError(t, err)
	require.NotNil(t, dr.Simple)
	assert.Equal(t, float32(1.5), dr.Simple.Reference)
	assert.Equal(t, int16(1), dr.Simple.BinaryScaleFactor)
	assert.Equal(t, int16(-1), dr.Simple.DecimalScaleFactor)
	assert.Equal(t, uint8(12), dr.Simple.Bits)
}

func TestParseDataRepresentation_UnhandledTemplate(t *testing.T) {
	body := []byte{
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x03, // template number = 3, not simple packing or jpeg2000
		0xAA, 0xBB, // trailing bytes to discard
	}
	dr, err := ParseDataRepresentation(bytes.NewReader(body), uint32(len(body)))
	require.NoError(t, err)
	assert.Nil(t, dr.Simple)
	assert.Equal(t, uint16(3), dr.TemplateNumber)
}

func TestParseBitmap(t *testing.T) {
	bm, err := ParseBitmap(bytes.NewReader([]byte{255}), 1)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), bm.Indicator)
}

func TestParseData(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5}
	d, err := ParseData(bytes.NewReader(payload), uint32(len(payload)), 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), d.Offset)
	assert.Equal(t, uint32(5), d.Length)
	assert.Equal(t, payload, d.Bytes)
}
