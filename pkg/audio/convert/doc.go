// ABOUTME: PCM conversion pipeline package
// ABOUTME: Converts sample format, sample rate, and channel count between two sound parameter sets
// Package convert implements the PCM-to-PCM audio conversion pipeline: the
// stage that sits between a decoder front-end and an output sink, turning
// whatever format a decoder produced into whatever format the sink demands.
//
// A Descriptor is built once per stream with Build, then driven with
// repeated calls to Convert as chunks of decoded audio arrive. Build reads
// its resampler configuration from an Options value; Convert itself takes
// no configuration and cannot fail except for a runtime resample error.
//
// Example:
//
//	desc, err := convert.Build(from, to, opts)
//	if err != nil {
//	    return err
//	}
//	defer desc.Destroy()
//
//	for chunk := range decoded {
//	    out, err := desc.Convert(chunk)
//	    if err != nil {
//	        return err
//	    }
//	    sink.Write(out)
//	}
package convert
