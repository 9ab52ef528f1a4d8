// Package simplepack decodes GRIB2 simple packing (data representation
// template 5.0): a linear dequantization of n-bit packed integers, per
// mmp-squall/data/template50.go. It is also the final stage of JPEG 2000
// decoding (template 5.40): the jp2 package produces the same X integer
// sequence simple packing would have unpacked from §7 directly, and
// grib2.Submessage.Decode hands it to Dequantize here.
package simplepack

import (
	"math"

	"github.com/nimbusgrib/grib2/griberr"
	"github.com/nimbusgrib/grib2/section"
)

// Unpack reads numValues consecutive bits-wide unsigned integers from a raw
// §7 payload, MSB first, with no padding between values — the packed X
// sequence of data representation template 5.0.
//
// A bits of 0 means every value is implicitly the reference value; Unpack
// returns numValues zeros in that case without reading payload, matching
// mmp-squall/data/template50.go's Decode special case.
func Unpack(payload []byte, numValues int, bits uint8) ([]uint64, error) {
	values := make([]uint64, numValues)
	if bits == 0 {
		return values, nil
	}

	br := newBitReader(payload)
	for i := range values {
		v, err := br.readBits(int(bits))
		if err != nil {
			return nil, &griberr.LengthMismatch{Got: i, Want: numValues}
		}
		values[i] = v
	}
	return values, nil
}

// Dequantize applies the simple-packing linear scaling formula to one
// packed integer: value = (R + X * 2^E) * 10^-D. X is signed so the same
// formula serves both simple packing's always-nonnegative unpacked fields
// and JPEG 2000's potentially signed decoded samples. The multiplication
// and exponentiation run in float64 and the result narrows to float32,
// matching the precision GRIB2's reference value itself is stored at.
func Dequantize(x int64, rep SimplePacking) float32 {
	value := float64(rep.Reference)
	if x != 0 {
		value += float64(x) * math.Pow(2, float64(rep.BinaryScaleFactor))
	}
	if rep.DecimalScaleFactor != 0 {
		value *= math.Pow(10, -float64(rep.DecimalScaleFactor))
	}
	return float32(value)
}

// SimplePacking is an alias of section.SimplePacking, the template 5.0/5.40
// fields that Dequantize and Decode read, accepted by value.
type SimplePacking = section.SimplePacking

// Decode unpacks and dequantizes a whole §7 payload for data representation
// template 5.0: numValues values, each bits wide, packed back to back. It
// returns griberr.OriginalFieldValueTypeNotSupported if rep's original field
// value type is not 0 (floating point) and griberr.LengthMismatch if the
// payload is too short to hold numValues values. Bytes after the last value
// are ignored.
func Decode(payload []byte, numValues int, rep SimplePacking) ([]float32, error) {
	if rep.OriginalFieldValueType != 0 {
		return nil, &griberr.OriginalFieldValueTypeNotSupported{Type: rep.OriginalFieldValueType}
	}

	packed, err := Unpack(payload, numValues, rep.Bits)
	if err != nil {
		return nil, err
	}

	out := make([]float32, len(packed))
	for i, x := range packed {
		out[i] = Dequantize(int64(x), rep)
	}
	return out, nil
}
