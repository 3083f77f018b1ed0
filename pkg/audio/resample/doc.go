// ABOUTME: Arbitrary-ratio float sample-rate conversion with carry-over
// ABOUTME: Wraps github.com/keereets/go-libsamplerate's named quality converters
// Package resample performs sample-rate conversion on interleaved float32
// PCM.
//
// It wraps github.com/keereets/go-libsamplerate, selecting one of its
// named converter qualities at construction time, and manages the
// carry-over bookkeeping a streaming caller needs: the underlying
// converter may consume fewer input frames than it is handed on any one
// call, so the unconsumed tail must be prepended to the next call's
// input.
//
// Example:
//
//	r, err := resample.New("SincBestQuality", 44100, 48000, 2)
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	out, err := r.Resample(in)
package resample
