// ABOUTME: Carry-over-aware wrapper around go-libsamplerate's Converter
package resample

import (
	"fmt"

	libsamplerate "github.com/keereets/go-libsamplerate"
)

// qualityTable maps the method names this pipeline accepts onto the
// underlying library's named converter qualities.
var qualityTable = map[string]libsamplerate.ConverterType{
	"SincBestQuality":   libsamplerate.SincBestQuality,
	"SincMediumQuality": libsamplerate.SincMediumQuality,
	"SincFastest":       libsamplerate.SincFastest,
	"ZeroOrderHold":     libsamplerate.ZeroOrderHold,
	"Linear":            libsamplerate.Linear,
}

// Quality resolves a method name to the underlying converter quality. ok is
// false for an unrecognized name.
func Quality(method string) (q libsamplerate.ConverterType, ok bool) {
	q, ok = qualityTable[method]
	return q, ok
}

// Resampler converts interleaved float32 PCM from one sample rate to
// another at an arbitrary ratio. It is not safe for concurrent use.
type Resampler struct {
	conv     libsamplerate.Converter
	method   string
	channels int
	ratio    float64
	carry    []float32 // unconsumed input frames, interleaved, from the previous call
}

// New constructs a Resampler for the named quality, converting from
// inputRate to outputRate over channels interleaved channels.
func New(method string, inputRate, outputRate, channels int) (*Resampler, error) {
	q, ok := Quality(method)
	if !ok {
		return nil, fmt.Errorf("resample: unknown method %q", method)
	}
	conv, err := libsamplerate.New(q, channels)
	if err != nil {
		return nil, fmt.Errorf("resample: init: %w", err)
	}
	return &Resampler{
		conv:     conv,
		method:   method,
		channels: channels,
		ratio:    float64(outputRate) / float64(inputRate),
	}, nil
}

// Resample converts in, interleaved float32 frames at the input rate, into
// interleaved float32 frames at the output rate. Any input frames the
// underlying converter does not consume are retained internally and
// prepended to the next call's input, so callers may feed arbitrarily
// sized chunks across repeated calls.
func (r *Resampler) Resample(in []float32) ([]float32, error) {
	input := in
	if len(r.carry) > 0 {
		input = make([]float32, len(r.carry)+len(in))
		copy(input, r.carry)
		copy(input[len(r.carry):], in)
	}

	inputFrames := int64(len(input) / r.channels)
	if inputFrames == 0 {
		r.carry = append(r.carry[:0], input...)
		return nil, nil
	}

	estOutFrames := int64(float64(inputFrames)*r.ratio) + 16
	scratch := make([]float32, estOutFrames*int64(r.channels))
	result := make([]float32, 0, len(scratch))

	var consumed int64
	for consumed < inputFrames {
		data := libsamplerate.SrcData{
			DataIn:       input[consumed*int64(r.channels):],
			InputFrames:  inputFrames - consumed,
			DataOut:      scratch,
			OutputFrames: int64(len(scratch) / r.channels),
			SrcRatio:     r.ratio,
			EndOfInput:   false,
		}
		if err := r.conv.Process(&data); err != nil {
			return nil, fmt.Errorf("resample: process: %w", err)
		}
		if data.OutputFramesGen > 0 {
			result = append(result, scratch[:data.OutputFramesGen*int64(r.channels)]...)
		}
		consumed += data.InputFramesUsed
		if data.InputFramesUsed == 0 {
			break // no progress this round; remaining frames carry over
		}
	}

	r.carry = append(r.carry[:0], input[consumed*int64(r.channels):]...)
	return result, nil
}

// Flush drains any frames the underlying converter is still holding once no
// further input will arrive, as when a stream ends.
func (r *Resampler) Flush() ([]float32, error) {
	if len(r.carry) > 0 {
		out, err := r.finalPass(r.carry)
		r.carry = r.carry[:0]
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	return r.finalPass(nil)
}

func (r *Resampler) finalPass(tail []float32) ([]float32, error) {
	inputFrames := int64(len(tail) / r.channels)
	estOutFrames := int64(float64(inputFrames)*r.ratio) + 64
	scratch := make([]float32, estOutFrames*int64(r.channels))
	result := make([]float32, 0, len(scratch))

	data := libsamplerate.SrcData{
		DataIn:       tail,
		InputFrames:  inputFrames,
		DataOut:      scratch,
		OutputFrames: int64(len(scratch) / r.channels),
		SrcRatio:     r.ratio,
		EndOfInput:   true,
	}
	for {
		data.DataOut = scratch
		data.OutputFrames = int64(len(scratch) / r.channels)
		data.OutputFramesGen = 0
		if err := r.conv.Process(&data); err != nil {
			return nil, fmt.Errorf("resample: flush: %w", err)
		}
		if data.OutputFramesGen <= 0 {
			break
		}
		result = append(result, scratch[:data.OutputFramesGen*int64(r.channels)]...)
		data.DataIn = nil
		data.InputFrames = 0
	}
	return result, nil
}

// Reset discards any carried-over input and reinitializes the underlying
// converter, clearing its filter history.
func (r *Resampler) Reset() error {
	if err := r.conv.Close(); err != nil {
		return fmt.Errorf("resample: reset: %w", err)
	}
	q, _ := Quality(r.method)
	conv, err := libsamplerate.New(q, r.channels)
	if err != nil {
		return fmt.Errorf("resample: reset: %w", err)
	}
	r.conv = conv
	r.carry = r.carry[:0]
	return nil
}

// Close releases the underlying converter's resources.
func (r *Resampler) Close() error {
	return r.conv.Close()
}
