// Package jp2 decodes a GRIB2 data representation template 5.40 payload: a
// raw J2K codestream holding a single grayscale component, whose samples
// feed simplepack.Dequantize exactly as simple packing's own unpacked
// integers would.
//
// original_source/src/decoders/jpeg2000/mod.rs drives this through
// openjpeg-sys: set up a decoder, read the codestream header, decode the
// body, then reach into the decoded opj_image_t's single component for its
// raw (possibly signed) int32 samples. github.com/mrjoshuak/go-jpeg2000 is a
// pure-Go decoder with no cgo dependency, but its public surface returns an
// image.Image rather than raw samples, so Decode here reconstructs the
// sample sequence from the decoded image's pixel buffer instead.
package jp2

import (
	"bytes"
	"image"

	"github.com/mrjoshuak/go-jpeg2000"

	"github.com/nimbusgrib/grib2/griberr"
)

// Decode decodes a raw J2K codestream into its component samples in raster
// order, reduced by discardLevel resolution levels (0 means full
// resolution), the Go-native equivalent of the original's
// opj_set_default_decoder_parameters + discard-level handling.
//
// It returns griberr.Jpeg2000Error{Kind: Jpeg2000NotSupported} for anything
// but a single-component image — GRIB2 JPEG 2000 representations are always
// single-band grayscale fields.
func Decode(codestream []byte, discardLevel int) ([]int64, error) {
	meta, err := jpeg2000.DecodeMetadata(bytes.NewReader(codestream))
	if err != nil {
		return nil, &griberr.Jpeg2000Error{Kind: griberr.Jpeg2000MainHeaderReadError, Cause: err}
	}
	if meta.NumComponents != 1 {
		return nil, &griberr.Jpeg2000Error{Kind: griberr.Jpeg2000NotSupported}
	}

	img, err := jpeg2000.DecodeConfig(bytes.NewReader(codestream), &jpeg2000.Config{ReduceResolution: discardLevel})
	if err != nil {
		return nil, &griberr.Jpeg2000Error{Kind: griberr.Jpeg2000BodyReadError, Cause: err}
	}

	signed := len(meta.Signed) > 0 && meta.Signed[0]
	bits := 0
	if len(meta.BitsPerComponent) > 0 {
		bits = meta.BitsPerComponent[0]
	}

	return samples(img, signed, bits)
}

// samples reads a single-component image's pixel buffer in raster order,
// sign-extending from its native bit depth when the component is signed —
// the Go-native stand-in for reading opj_image_comp_t.data directly.
func samples(img image.Image, signed bool, bits int) ([]int64, error) {
	switch px := img.(type) {
	case *image.Gray:
		out := make([]int64, len(px.Pix))
		for i, v := range px.Pix {
			out[i] = extend(int64(v), signed, bits)
		}
		return out, nil
	case *image.Gray16:
		n := len(px.Pix) / 2
		out := make([]int64, n)
		for i := 0; i < n; i++ {
			v := int64(px.Pix[2*i])<<8 | int64(px.Pix[2*i+1])
			out[i] = extend(v, signed, bits)
		}
		return out, nil
	default:
		return nil, &griberr.Jpeg2000Error{Kind: griberr.Jpeg2000NotSupported}
	}
}

// extend sign-extends a bits-wide unsigned sample to int64 when signed is
// true, leaving unsigned samples untouched.
func extend(v int64, signed bool, bits int) int64 {
	if !signed || bits <= 0 || bits >= 64 {
		return v
	}
	signBit := int64(1) << (bits - 1)
	if v&signBit != 0 {
		return v - (int64(1) << bits)
	}
	return v
}
