// ABOUTME: Channel remapper: mono->stereo duplication, 5.1->stereo downmix
package convert

import "fmt"

// downmixScale is the fixed normalization scalar applied after the downmix
// matrix, chosen to prevent clipping under worst-case matrix loading.
const downmixScale = 0.2626

// downmixMatrix is the 2x6 down-mix matrix. Source channel order is
// {L, R, C, LFE, Ls, Rs}.
var downmixMatrix = [2][6]float64{
	{1.000, 0.000, 0.707, 0.707, -0.8165, -0.5774}, // Left
	{0.000, 1.000, 0.707, 0.707, 0.5774, 0.8165},   // Right
}

// monoToStereo duplicates each sample into both output channels. format
// is unchanged and the output buffer is exactly twice the input size.
func monoToStereo(buf []byte, format SampleFormat) []byte {
	bps := format.BytesPerSample()
	n := len(buf) / bps
	out := make([]byte, len(buf)*2)
	for i := 0; i < n; i++ {
		sample := buf[i*bps : (i+1)*bps]
		copy(out[i*2*bps:], sample)
		copy(out[i*2*bps+bps:], sample)
	}
	return out
}

// surroundToStereo applies the fixed 5.1->stereo downmix matrix. Supported
// encodings are 16-bit signed, 32-bit signed, and float; all three are
// promoted to float for the mix, avoiding integer overflow from the matrix
// coefficients, then clamped and quantized back.
func surroundToStereo(buf []byte, format SampleFormat) ([]byte, error) {
	switch {
	case format.Float:
	case format.Width == Width16 && format.Signed:
	case format.Width == Width32 && format.Signed:
	default:
		return nil, fmt.Errorf("convert: 5.1 downmix: %v: %w", format, ErrUnsupportedChannelLayout)
	}

	bps := format.BytesPerSample()
	frames := len(buf) / bps / 6
	if frames == 0 {
		return []byte{}, nil
	}

	var floatIn []float32
	if format.Float {
		floatIn = bytesToFloat32(buf)
	} else {
		var err error
		floatIn, err = toFloat(buf, format)
		if err != nil {
			return nil, err
		}
	}

	floatOut := make([]float32, frames*2)
	for f := 0; f < frames; f++ {
		src := floatIn[f*6 : f*6+6]
		for out := 0; out < 2; out++ {
			var acc float64
			for ch := 0; ch < 6; ch++ {
				acc += downmixMatrix[out][ch] * float64(src[ch])
			}
			floatOut[f*2+out] = float32(acc * downmixScale)
		}
	}

	if format.Float {
		return float32ToBytes(floatOut), nil
	}
	return fromFloat(floatOut, format)
}

func bytesToFloat32(buf []byte) []float32 {
	out := make([]float32, len(buf)/4)
	for i := range out {
		out[i] = bitsToFloat32(buf[i*4 : i*4+4])
	}
	return out
}

func float32ToBytes(samples []float32) []byte {
	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		float32ToBits(out[i*4:i*4+4], s)
	}
	return out
}
