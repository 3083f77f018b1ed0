// ABOUTME: In-place signed<->unsigned sign flipper
package convert

import "fmt"

// flipSign toggles the top bit of every native-endian sample in buf and
// returns the format with Signed inverted. Supported at widths 8, 16, 24
// (padded), and 32; 24-packed is not supported since sign flips always
// co-occur with a full conversion path in this pipeline.
func flipSign(buf []byte, format SampleFormat) (SampleFormat, error) {
	bps := format.BytesPerSample()
	if len(buf)%bps != 0 {
		return format, fmt.Errorf("convert: signflip: buffer length %d not a multiple of %d bytes: %w", len(buf), bps, ErrUnsupportedFormat)
	}

	mask := byte(1) << (signBit(format.Width) % 8)

	switch format.Width {
	case Width8:
		for i := range buf {
			buf[i] ^= mask
		}
	case Width16:
		for i := 1; i < len(buf); i += 2 {
			buf[i] ^= mask
		}
	case Width24:
		for i := 2; i < len(buf); i += 4 {
			buf[i] ^= mask
		}
	case Width32:
		for i := 3; i < len(buf); i += 4 {
			buf[i] ^= mask
		}
	default:
		return format, fmt.Errorf("convert: signflip: %v: %w", format, ErrUnsupportedFormat)
	}

	format.Signed = !format.Signed
	return format, nil
}
