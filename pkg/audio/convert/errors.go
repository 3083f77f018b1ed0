// ABOUTME: Error kinds raised by the conversion pipeline
// ABOUTME: Sentinel errors so callers can errors.Is against a kind
package convert

import "errors"

// Build and Convert return these wrapped with context via
// fmt.Errorf("...: %w", ErrX); callers distinguish kinds with errors.Is.
var (
	// ErrUnsupportedChannelConversion: requested channel mapping is not in
	// {equal, 1->2, 6->2}.
	ErrUnsupportedChannelConversion = errors.New("unsupported channel conversion")

	// ErrResamplingDisabled: rates differ but Options forbids resampling.
	ErrResamplingDisabled = errors.New("resampling disabled")

	// ErrUnknownResampleMethod: configured method name is not recognized.
	ErrUnknownResampleMethod = errors.New("unknown resample method")

	// ErrResamplerInitFailed: underlying resampler rejected the parameters.
	ErrResamplerInitFailed = errors.New("resampler init failed")

	// ErrResampleFailed: runtime resample step failed.
	ErrResampleFailed = errors.New("resample failed")

	// ErrUnsupportedFormat: encountered a sample encoding outside the
	// supported set for a given stage.
	ErrUnsupportedFormat = errors.New("unsupported sample format")

	// ErrUnsupportedChannelLayout: channel remap asked to handle an
	// encoding it does not implement.
	ErrUnsupportedChannelLayout = errors.New("unsupported channel layout")
)
