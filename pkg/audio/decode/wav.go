// ABOUTME: WAV container decoder
// ABOUTME: Decodes WAV audio to int32 samples
package decode

import (
	"bytes"
	"fmt"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/resonate-audio/pcmconv/pkg/audio"
)

// WAVDecoder decodes a complete in-memory WAV file to interleaved int32
// samples, left-justified to this package's 24-bit convention. Unlike the
// other decoders here, the container itself carries the sample rate,
// channel count and bit depth, so Decode ignores the hint passed to NewWAV
// beyond the codec check.
type WAVDecoder struct {
	format audio.Format
}

// NewWAV creates a new WAV decoder.
func NewWAV(format audio.Format) (Decoder, error) {
	if format.Codec != "wav" {
		return nil, fmt.Errorf("invalid codec for WAV decoder: %s", format.Codec)
	}
	return &WAVDecoder{format: format}, nil
}

// Decode parses data as a complete WAV file and returns every sample it
// contains, interleaved. It ignores the repeated-call contract the other
// decoders follow: the whole file is consumed in one call.
func (d *WAVDecoder) Decode(data []byte) ([]int32, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("wav decode: not a valid WAV file")
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("wav decode: seek to PCM chunk: %w", err)
	}

	d.format.Codec = "wav"
	d.format.SampleRate = int(dec.SampleRate)
	d.format.Channels = int(dec.NumChans)
	d.format.BitDepth = int(dec.BitDepth)

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: d.format.Channels,
			SampleRate:  d.format.SampleRate,
		},
		Data:           make([]int, 4096),
		SourceBitDepth: d.format.BitDepth,
	}
	shift := uint(24 - d.format.BitDepth)

	var samples []int32
	for {
		n, err := dec.PCMBuffer(buf)
		if err != nil {
			return nil, fmt.Errorf("wav decode: %w", err)
		}
		if n == 0 {
			break
		}
		for _, s := range buf.Data[:n] {
			samples = append(samples, int32(s)<<shift)
		}
		if dec.EOF() {
			break
		}
	}
	return samples, nil
}

// Format reports the sample rate, channel count and bit depth read from the
// WAV container's own header.
func (d *WAVDecoder) Format() (sampleRate, channels, bitDepth int) {
	return d.format.SampleRate, d.format.Channels, d.format.BitDepth
}

// Close releases decoder resources.
func (d *WAVDecoder) Close() error {
	return nil
}
