// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides the Output interface and an Oto-backed implementation
// Package output provides audio playback interfaces.
//
// Currently supports playback via the oto library.
//
// Example:
//
//	out := output.NewOto()
//	err := out.Open(48000, 2, 16)
//	err = out.Write(samples)
package output
