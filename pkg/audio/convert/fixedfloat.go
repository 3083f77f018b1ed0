// ABOUTME: Fixed<->float sample converter (quantize / normalize)
package convert

import (
	"encoding/binary"
	"fmt"
	"math"
)

// toFloat converts a native-endian fixed-point buffer in format to a
// freshly allocated float32 buffer normalized to [-1, 1].
func toFloat(buf []byte, format SampleFormat) ([]float32, error) {
	bps := format.BytesPerSample()
	if len(buf)%bps != 0 {
		return nil, fmt.Errorf("convert: toFloat: buffer length %d not a multiple of %d bytes: %w", len(buf), bps, ErrUnsupportedFormat)
	}
	n := len(buf) / bps
	out := make([]float32, n)

	denom := float64(widthMax(normalizeWidth(format.Width)) + 1)

	for i := 0; i < n; i++ {
		raw, err := readInt(buf[i*bps:(i+1)*bps], format)
		if err != nil {
			return nil, err
		}
		if !format.Signed {
			raw -= widthMax(normalizeWidth(format.Width)) + 1
		}
		out[i] = float32(float64(raw) / denom)
	}
	return out, nil
}

// normalizeWidth maps Width24Packed onto Width24's numeric range: packed
// and padded 24-bit formats share the same numeric range and differ only
// in container size.
func normalizeWidth(w Width) Width {
	if w == Width24Packed {
		return Width24
	}
	return w
}

// bitsToFloat32 decodes 4 native-endian bytes as an IEEE-754 float32.
func bitsToFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// float32ToBits encodes f into 4 native-endian bytes.
func float32ToBits(b []byte, f float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(f))
}

// readInt reads one native-endian sample of format from b as a signed
// int64, sign-extending as needed. b must be exactly format.BytesPerSample()
// long.
func readInt(b []byte, format SampleFormat) (int64, error) {
	switch format.Width {
	case Width8:
		if format.Signed {
			return int64(int8(b[0])), nil
		}
		return int64(b[0]), nil
	case Width16:
		u := binary.LittleEndian.Uint16(b)
		if format.Signed {
			return int64(int16(u)), nil
		}
		return int64(u), nil
	case Width24Packed:
		v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
		if format.Signed && v&0x800000 != 0 {
			v |= ^0xFFFFFF
		}
		return int64(v), nil
	case Width24:
		u := binary.LittleEndian.Uint32(b)
		v := int64(int32(u) << 8 >> 8) // sign-extend the low 24 bits
		if !format.Signed {
			v = int64(u & 0xFFFFFF)
		}
		return v, nil
	case Width32:
		u := binary.LittleEndian.Uint32(b)
		if format.Signed {
			return int64(int32(u)), nil
		}
		return int64(u), nil
	default:
		return 0, fmt.Errorf("convert: readInt: %v: %w", format, ErrUnsupportedFormat)
	}
}

// fromFloat quantizes a float32 buffer into a freshly allocated
// native-endian fixed-point buffer in format, rounding half-to-even and
// clamping to format's representable range.
func fromFloat(samples []float32, format SampleFormat) ([]byte, error) {
	if format.Width == WidthFloat {
		return float32ToBytes(samples), nil
	}

	bps := format.BytesPerSample()
	out := make([]byte, len(samples)*bps)

	scale := float64(fullScaleMax(format.Width))
	offset := int64(0)
	if !format.Signed {
		offset = widthMax(normalizeWidth(format.Width)) + 1
	}

	for i, x := range samples {
		v := float64(x) * scale
		if v > scale {
			v = scale
		} else if v < -scale-1 {
			v = -scale - 1
		}
		q := int64(math.RoundToEven(v))

		switch format.Width {
		case Width8:
			q >>= 24
		case Width16:
			q >>= 16
		case Width24, Width24Packed:
			// already in 24-bit range, no shift
		case Width32:
			// no shift
		default:
			return nil, fmt.Errorf("convert: fromFloat: %v: %w", format, ErrUnsupportedFormat)
		}

		q += offset

		b := out[i*bps : (i+1)*bps]
		switch format.Width {
		case Width8:
			b[0] = byte(q)
		case Width16:
			binary.LittleEndian.PutUint16(b, uint16(q))
		case Width24Packed:
			b[0] = byte(q)
			b[1] = byte(q >> 8)
			b[2] = byte(q >> 16)
		case Width24, Width32:
			binary.LittleEndian.PutUint32(b, uint32(q))
		}
	}
	return out, nil
}
