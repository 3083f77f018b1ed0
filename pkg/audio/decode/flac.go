// ABOUTME: FLAC audio decoder
// ABOUTME: Decodes FLAC audio to int32 samples
package decode

import (
	"bytes"
	"fmt"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"

	"github.com/resonate-audio/pcmconv/pkg/audio"
)

// FLACDecoder decodes a complete in-memory FLAC stream to interleaved
// int32 samples, left-justified to this package's 24-bit convention.
type FLACDecoder struct {
	format audio.Format
	stream *flac.Stream
	next   int // index into stream.Frames not yet returned
}

// NewFLAC creates a new FLAC decoder.
func NewFLAC(format audio.Format) (Decoder, error) {
	if format.Codec != "flac" {
		return nil, fmt.Errorf("invalid codec for FLAC decoder: %s", format.Codec)
	}
	return &FLACDecoder{format: format}, nil
}

// Decode parses data as a complete FLAC stream on the first call, caching
// the result, then returns one frame's worth of interleaved int32 samples
// per call. Subsequent calls ignore data and advance through the cached
// stream, matching this package's other decoders' repeated-call contract.
// Decode returns a nil slice once every frame has been returned.
func (d *FLACDecoder) Decode(data []byte) ([]int32, error) {
	if d.stream == nil {
		stream, err := flac.NewStream(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("flac decode: parse: %w", err)
		}
		d.stream = stream
	}

	if d.next >= len(d.stream.Frames) {
		return nil, nil
	}
	f := d.stream.Frames[d.next]
	d.next++

	bps := f.Header.BitsPerSample
	if bps == 0 {
		if si, ok := d.streamInfo(); ok {
			bps = si.BitsPerSample
		}
	}

	return interleaveFLACFrame(f, bps), nil
}

// streamInfo returns the stream's STREAMINFO metadata block, which carries
// the sample rate, channel count and bits-per-sample when a frame header
// leaves them at 0 to inherit the stream-wide value.
func (d *FLACDecoder) streamInfo() (*meta.StreamInfo, bool) {
	if d.stream == nil {
		return nil, false
	}
	for _, block := range d.stream.MetaBlocks {
		if si, ok := block.Body.(*meta.StreamInfo); ok {
			return si, true
		}
	}
	return nil, false
}

// Format reports the sample rate, channel count and bits-per-sample of the
// parsed stream. It returns ok == false until the first successful Decode
// call has parsed the stream's STREAMINFO block.
func (d *FLACDecoder) Format() (sampleRate, channels, bitsPerSample int, ok bool) {
	si, ok := d.streamInfo()
	if !ok {
		return 0, 0, 0, false
	}
	return int(si.SampleRate), int(si.ChannelCount), int(si.BitsPerSample), true
}

// interleaveFLACFrame normalizes one FLAC frame's per-channel subframe
// samples into interleaved int32 samples, left-justified to this package's
// 24-bit convention.
func interleaveFLACFrame(f *frame.Frame, bitsPerSample uint8) []int32 {
	channels := len(f.SubFrames)
	if channels == 0 {
		return nil
	}
	shift := uint(24 - bitsPerSample)

	frames := len(f.SubFrames[0].Samples)
	out := make([]int32, frames*channels)
	for ch, sf := range f.SubFrames {
		for i, s := range sf.Samples {
			out[i*channels+ch] = int32(s) << shift
		}
	}
	return out
}

// Close releases decoder resources.
func (d *FLACDecoder) Close() error {
	return nil
}
