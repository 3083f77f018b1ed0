// ABOUTME: Pipeline orchestrator tying the component stages together
package convert

import (
	"fmt"

	"github.com/resonate-audio/pcmconv/pkg/audio/resample"
)

// Descriptor holds everything one stream's conversion needs across
// repeated Convert calls: the fixed source and target parameters, and the
// resampler (and its carry-over state) if the sample rates differ. A
// Descriptor is owned by exactly one producer goroutine for its lifetime;
// it is not safe for concurrent use.
type Descriptor struct {
	from, to  SoundParams
	resampler *resample.Resampler
}

// Build validates the requested conversion and constructs a Descriptor.
// Channel counts must be equal, or one of the supported remaps (1->2,
// 6->2); anything else is an *ErrUnsupportedChannelConversion. If the
// sample rates differ, Build also resolves and initializes the resampler
// named by opts.
//
// from and to must differ in at least one field — callers that already
// know source and target match should never call Build at all.
func Build(from, to SoundParams, opts Options) (*Descriptor, error) {
	if from.Equal(to) {
		panic("convert: Build called with identical from and to parameters")
	}
	if !validChannelCount(from.Channels) || !validChannelCount(to.Channels) {
		panic(fmt.Sprintf("convert: Build: invalid channel count %d -> %d", from.Channels, to.Channels))
	}
	if !channelConversionAllowed(from.Channels, to.Channels) {
		return nil, fmt.Errorf("convert: Build: %v -> %v: %w", from, to, ErrUnsupportedChannelConversion)
	}

	desc := &Descriptor{from: from, to: to}

	if from.SampleRate != to.SampleRate {
		method, err := resolveResampleMethod(opts)
		if err != nil {
			return nil, err
		}
		r, err := resample.New(method, from.SampleRate, to.SampleRate, from.Channels)
		if err != nil {
			return nil, fmt.Errorf("convert: Build: %v: %w", err, ErrResamplerInitFailed)
		}
		desc.resampler = r
	}

	return desc, nil
}

// resolveResampleMethod reads EnableResample, ZitaResampleQuality, and
// ResampleMethod from opts and returns the canonical method name to
// construct the resampler with.
func resolveResampleMethod(opts Options) (string, error) {
	enabled := true
	if v, ok := opts.Bool(OptEnableResample); ok {
		enabled = v
	}
	if !enabled {
		return "", fmt.Errorf("convert: Build: %w", ErrResamplingDisabled)
	}

	// A configured Zita quality selects the same best-quality backend; this
	// library exposes no separate polyphase engine (see DESIGN.md).
	if _, ok := opts.Int(OptZitaResampleQuality); ok {
		return "SincBestQuality", nil
	}

	name, ok := opts.String(OptResampleMethod)
	if !ok {
		name = "SincBestQuality"
	}
	canon, ok := canonicalMethod(name)
	if !ok {
		return "", fmt.Errorf("convert: Build: %q: %w", name, ErrUnknownResampleMethod)
	}
	return canon, nil
}

// Convert runs input, a buffer in d.from's format, through the pipeline and
// returns a freshly allocated buffer in d.to's format. input is never
// modified or retained.
//
// Convert does not fail under normal operation once Build has succeeded,
// except when the resampler itself reports a runtime error. Passing a
// buffer whose length is not a multiple of d.from's frame size is a
// programmer error and panics.
func (d *Descriptor) Convert(input []byte) ([]byte, error) {
	bps := d.from.Format.BytesPerSample()
	frameBytes := bps * d.from.Channels
	if frameBytes > 0 && len(input)%frameBytes != 0 {
		panic(fmt.Sprintf("convert: Convert: input length %d is not a multiple of the frame size %d", len(input), frameBytes))
	}

	buf := input
	format := d.from.Format
	sameRate := d.from.SampleRate == d.to.SampleRate

	// 1. Normalize endianness to native (little-endian) if the source
	// declares a foreign byte order.
	if format.HasEndianness() && format.Endian == BigEndian {
		owned := make([]byte, len(buf))
		copy(owned, buf)
		if err := swapToNative(owned, format); err != nil {
			return nil, err
		}
		buf = owned
		format = format.WithEndian(LittleEndian)
	}

	// 2. Try the fast-path width reducer: equal rates, matching
	// signedness, one of the narrowing width pairs.
	if sameRate && format.Signed == d.to.Format.Signed {
		if kind, ok := lookupReducePath(format.Width, d.to.Format.Width); ok {
			reduced, err := applyFastReducer(buf, kind)
			if err != nil {
				return nil, err
			}
			buf = reduced
			format = format.WithWidth(d.to.Format.Width)
		}
	}

	// 3. Convert to float if rates differ, the target is float, or the
	// width still differs after any fast-path reduction. Channel remapping
	// (stage 6) converts to float internally when it needs to, so it does
	// not factor into this decision.
	needFloat := !sameRate || d.to.Format.Float || format.Width != d.to.Format.Width
	var floats []float32
	if needFloat && !format.Float {
		var err error
		floats, err = toFloat(buf, format)
		if err != nil {
			return nil, err
		}
	}

	// 4. Resample.
	if !sameRate {
		if floats == nil {
			if !format.Float {
				panic("convert: Convert: resample stage reached without a float buffer")
			}
			floats = bytesToFloat32(buf)
		}
		resampled, err := d.resampler.Resample(floats)
		if err != nil {
			return nil, fmt.Errorf("convert: Convert: %w", ErrResampleFailed)
		}
		floats = resampled
	}

	// 5. Quantize float back to the target encoding; or, if only sign
	// differs and widths already match, flip the sign bit in place instead
	// of paying for a full float round-trip. needFloat (not floats != nil)
	// decides which branch: the resampler can legitimately hand back a nil
	// or empty slice while still holding buffered carry-over frames, and
	// that must still produce an empty target-format buffer, not fall
	// through to the sign-flip branch.
	switch {
	case needFloat:
		// A float source at an unchanged sample rate skips both stage 3
		// (already float) and stage 4 (no resample), so floats is still nil
		// here; populate it from buf before quantizing.
		if floats == nil && format.Float {
			floats = bytesToFloat32(buf)
		}
		target := d.to.Format.WithEndian(LittleEndian)
		out, err := fromFloat(floats, target)
		if err != nil {
			return nil, err
		}
		buf = out
		format = target
	case format.Width == d.to.Format.Width && format.Signed != d.to.Format.Signed:
		owned := make([]byte, len(buf))
		copy(owned, buf)
		newFormat, err := flipSign(owned, format)
		if err != nil {
			return nil, err
		}
		buf = owned
		format = newFormat
	}

	// 6. Channel remap.
	if d.from.Channels != d.to.Channels {
		switch {
		case d.from.Channels == 1 && d.to.Channels == 2:
			buf = monoToStereo(buf, format)
		case d.from.Channels == 6 && d.to.Channels == 2:
			remapped, err := surroundToStereo(buf, format)
			if err != nil {
				return nil, err
			}
			buf = remapped
		default:
			panic(fmt.Sprintf("convert: Convert: unreachable channel remap %d -> %d", d.from.Channels, d.to.Channels))
		}
	}

	// 7. Endianness fix-up to match the target's declared byte order.
	if d.to.Format.HasEndianness() && d.to.Format.Endian == BigEndian {
		owned := make([]byte, len(buf))
		copy(owned, buf)
		if err := swapToEndian(owned, d.to.Format); err != nil {
			return nil, err
		}
		buf = owned
	}

	return buf, nil
}

// Destroy releases the descriptor's resampler, if any. Idempotent: calling
// Destroy more than once, or on a Descriptor with no resampler, is a no-op.
func (d *Descriptor) Destroy() error {
	if d.resampler == nil {
		return nil
	}
	err := d.resampler.Close()
	d.resampler = nil
	return err
}
