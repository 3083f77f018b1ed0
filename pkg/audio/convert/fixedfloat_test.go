// ABOUTME: Tests for the fixed<->float sample converter
package convert

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

// bitsOf reports the nominal bit width a format's round-trip tolerance is
// measured against.
func bitsOf(format SampleFormat) int {
	switch format.Width {
	case Width8:
		return 8
	case Width16:
		return 16
	case Width24, Width24Packed:
		return 24
	case Width32:
		return 32
	default:
		return 32
	}
}

// TestFixedFloatRoundTrip property-tests that quantizing a float to a fixed
// format and back differs from the original by at most 2/2^bits, for every
// supported fixed format, drawing x from the full [-1, 1] range.
func TestFixedFloatRoundTrip(t *testing.T) {
	formats := []SampleFormat{
		FormatU8, FormatS8,
		FormatS16LE, FormatU16LE,
		FormatS24LE, FormatS24Packed,
		FormatS32LE,
	}

	rapid.Check(t, func(rt *rapid.T) {
		format := rapid.SampledFrom(formats).Draw(rt, "format")
		x := rapid.Float64Range(-1.0, 1.0).Draw(rt, "x")

		encoded, err := fromFloat([]float32{float32(x)}, format)
		if err != nil {
			rt.Fatalf("fromFloat: %v", err)
		}
		decoded, err := toFloat(encoded, format)
		if err != nil {
			rt.Fatalf("toFloat: %v", err)
		}

		tolerance := 2.0 / math.Pow(2, float64(bitsOf(format)))
		diff := math.Abs(float64(decoded[0]) - x)
		if diff > tolerance {
			rt.Fatalf("%v: round-trip of %v differs by %v, want <= %v (decoded=%v)", format, x, diff, tolerance, decoded[0])
		}
	})
}

// TestFixedFloatNamedPoints checks the five points the spec calls out by
// name, in addition to the property-based sweep above.
func TestFixedFloatNamedPoints(t *testing.T) {
	points := []float64{-1.0 + 1e-6, -0.5, 0, 0.5, 1.0 - 1e-6}
	formats := []SampleFormat{FormatS16LE, FormatS24LE, FormatS24Packed, FormatS32LE}

	for _, format := range formats {
		tolerance := 2.0 / math.Pow(2, float64(bitsOf(format)))
		for _, x := range points {
			encoded, err := fromFloat([]float32{float32(x)}, format)
			if err != nil {
				t.Fatalf("%v: fromFloat(%v): %v", format, x, err)
			}
			decoded, err := toFloat(encoded, format)
			if err != nil {
				t.Fatalf("%v: toFloat: %v", format, err)
			}
			diff := math.Abs(float64(decoded[0]) - x)
			if diff > tolerance {
				t.Errorf("%v: round-trip of %v differs by %v, want <= %v", format, x, diff, tolerance)
			}
		}
	}
}

func TestFixedFloatUnsignedMidScale(t *testing.T) {
	// U8 mid-scale (0x80) must normalize to near-zero.
	floats, err := toFloat([]byte{0x80}, FormatU8)
	if err != nil {
		t.Fatal(err)
	}
	if floats[0] != 0 {
		t.Errorf("expected 0.0 for U8 mid-scale, got %v", floats[0])
	}
}
