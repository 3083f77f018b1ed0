// ABOUTME: Bridges this package's int32 24-bit-justified sample convention
// ABOUTME: and the convert package's raw SampleFormat byte encodings
package main

import (
	"encoding/binary"
	"fmt"

	"github.com/resonate-audio/pcmconv/pkg/audio/convert"
)

// widthForBits returns the pipeline Width a CLI --bits value of 8, 16 or 24
// maps to; 24 maps to the packed 3-byte width.
func widthForBits(bits int) (convert.Width, error) {
	switch bits {
	case 8:
		return convert.Width8, nil
	case 16:
		return convert.Width16, nil
	case 24:
		return convert.Width24Packed, nil
	default:
		return 0, fmt.Errorf("unsupported bit depth %d (supported: 8, 16, 24)", bits)
	}
}

func bitsForWidth(w convert.Width) int {
	switch w {
	case convert.Width8:
		return 8
	case convert.Width16:
		return 16
	case convert.Width24Packed, convert.Width24:
		return 24
	default:
		return 32
	}
}

// samplesToBytes packs interleaved int32 samples, left-justified to 24 bits,
// into format's raw byte encoding.
func samplesToBytes(samples []int32, format convert.SampleFormat) ([]byte, error) {
	bits := bitsForWidth(format.Width)
	shift := uint(24 - bits)
	mask := uint32(1<<uint(bits)) - 1
	signBit := uint32(1) << uint(bits-1)
	bps := format.BytesPerSample()

	out := make([]byte, len(samples)*bps)
	for i, s := range samples {
		pattern := uint32(s>>shift) & mask
		if !format.Signed {
			pattern ^= signBit
		}
		putPattern(out[i*bps:(i+1)*bps], pattern, format)
	}
	return out, nil
}

// bytesToSamples unpacks format's raw byte encoding into interleaved int32
// samples, left-justified to 24 bits.
func bytesToSamples(data []byte, format convert.SampleFormat) ([]int32, error) {
	bps := format.BytesPerSample()
	if bps == 0 || len(data)%bps != 0 {
		return nil, fmt.Errorf("pcm codec: buffer length %d is not a multiple of the frame size %d", len(data), bps)
	}
	bits := bitsForWidth(format.Width)
	shift := uint(24 - bits)
	signBit := uint32(1) << uint(bits-1)

	n := len(data) / bps
	samples := make([]int32, n)
	for i := 0; i < n; i++ {
		pattern := readPattern(data[i*bps:(i+1)*bps], format)
		if !format.Signed {
			pattern ^= signBit
		}
		// Sign-extend from bits wide to int32.
		shiftToTop := 32 - bits
		signed := int32(pattern<<uint(shiftToTop)) >> uint(shiftToTop)
		samples[i] = signed << shift
	}
	return samples, nil
}

func putPattern(b []byte, pattern uint32, format convert.SampleFormat) {
	switch format.Width {
	case convert.Width8:
		b[0] = byte(pattern)
	case convert.Width16:
		if format.Endian == convert.BigEndian {
			binary.BigEndian.PutUint16(b, uint16(pattern))
		} else {
			binary.LittleEndian.PutUint16(b, uint16(pattern))
		}
	case convert.Width24Packed:
		if format.Endian == convert.BigEndian {
			b[0], b[1], b[2] = byte(pattern>>16), byte(pattern>>8), byte(pattern)
		} else {
			b[0], b[1], b[2] = byte(pattern), byte(pattern>>8), byte(pattern>>16)
		}
	default:
		panic(fmt.Sprintf("pcm codec: unsupported width %v", format.Width))
	}
}

func readPattern(b []byte, format convert.SampleFormat) uint32 {
	switch format.Width {
	case convert.Width8:
		return uint32(b[0])
	case convert.Width16:
		if format.Endian == convert.BigEndian {
			return uint32(binary.BigEndian.Uint16(b))
		}
		return uint32(binary.LittleEndian.Uint16(b))
	case convert.Width24Packed:
		if format.Endian == convert.BigEndian {
			return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
		}
		return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	default:
		panic(fmt.Sprintf("pcm codec: unsupported width %v", format.Width))
	}
}
