// ABOUTME: Tests for FLAC decoder
// ABOUTME: Tests FLAC decoder creation and stream parsing
package decode

import (
	"testing"

	"github.com/resonate-audio/pcmconv/pkg/audio"
)

func TestNewFLAC(t *testing.T) {
	format := audio.Format{
		Codec:      "flac",
		SampleRate: 48000,
		Channels:   2,
		BitDepth:   24,
	}

	decoder, err := NewFLAC(format)
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	if decoder == nil {
		t.Fatal("expected decoder to be created")
	}
}

func TestNewFLAC_InvalidCodec(t *testing.T) {
	format := audio.Format{
		Codec:      "opus",
		SampleRate: 48000,
		Channels:   2,
		BitDepth:   24,
	}

	decoder, err := NewFLAC(format)
	if err == nil {
		t.Fatal("expected error for invalid codec, got nil")
	}

	if decoder != nil {
		t.Fatal("expected decoder to be nil for invalid codec")
	}

	expectedError := "invalid codec for FLAC decoder: opus"
	if err.Error() != expectedError {
		t.Errorf("expected error %q, got %q", expectedError, err.Error())
	}
}

func TestFLACDecode_InvalidStream(t *testing.T) {
	format := audio.Format{
		Codec:      "flac",
		SampleRate: 48000,
		Channels:   2,
		BitDepth:   24,
	}

	decoder, err := NewFLAC(format)
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	// Data with no "fLaC" signature must fail to parse rather than panic.
	samples, err := decoder.Decode([]byte{0x00, 0x01, 0x02, 0x03})
	if err == nil {
		t.Fatal("expected a parse error for non-FLAC data, got nil")
	}
	if samples != nil {
		t.Fatal("expected nil samples on parse failure")
	}
}

func TestFLACDecode_UnsetStreamParsesInput(t *testing.T) {
	// A decoder whose stream is still unset parses the data it is handed
	// rather than indexing into the unset stream, so non-FLAC data reports
	// a parse error.
	format := audio.Format{Codec: "flac", SampleRate: 44100, Channels: 2, BitDepth: 16}
	decoder := &FLACDecoder{format: format, stream: nil}
	_, err := decoder.Decode([]byte("not flac"))
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFLACClose(t *testing.T) {
	format := audio.Format{
		Codec:      "flac",
		SampleRate: 48000,
		Channels:   2,
		BitDepth:   24,
	}

	decoder, err := NewFLAC(format)
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	err = decoder.Close()
	if err != nil {
		t.Errorf("expected Close to succeed, got error: %v", err)
	}
}
