// ABOUTME: Command-line front end for the PCM conversion pipeline
// ABOUTME: Decodes a file, converts it to a target format, then writes or plays it
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/resonate-audio/pcmconv/pkg/audio"
	"github.com/resonate-audio/pcmconv/pkg/audio/convert"
	"github.com/resonate-audio/pcmconv/pkg/audio/decode"
	"github.com/resonate-audio/pcmconv/pkg/audio/output"
)

func main() {
	var (
		rate          = pflag.Int("rate", 0, "target sample rate in Hz (default: source rate)")
		bits          = pflag.Int("bits", 16, "target bit depth: 8, 16, or 24")
		channels      = pflag.Int("channels", 0, "target channel count: 1, 2, or 6 (default: source channels)")
		signed        = pflag.Bool("signed", true, "target sample encoding is signed")
		endian        = pflag.String("endian", "le", "target byte order: le or be")
		resampleMethod = pflag.String("resample-method", "", "resample quality (SincBestQuality, SincMediumQuality, SincFastest, ZeroOrderHold, Linear)")
		zitaQuality   = pflag.Int("zita-quality", 0, "libzita-style resample quality, 0-10 (alternative to --resample-method)")
		noResample    = pflag.Bool("no-resample", false, "fail instead of resampling when rates differ")
		config        = pflag.String("config", "", "YAML file of resampler options, overriding the flags above")

		inRate     = pflag.Int("in-rate", 44100, "source sample rate, for codecs whose rate is not read from the file (pcm, mp3, opus)")
		inChannels = pflag.Int("in-channels", 2, "source channel count, for codecs whose channel count is not read from the file (pcm, mp3, opus)")
		inBits     = pflag.Int("in-bits", 16, "source bit depth, for raw pcm input")

		out      = pflag.String("out", "", "write converted PCM to this file instead of playing it")
		logLevel = pflag.String("log-level", "info", "log level: debug, info, warn, error")
	)
	pflag.Parse()

	if lvl, err := log.ParseLevel(*logLevel); err == nil {
		log.SetLevel(lvl)
	}

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: pcmconv [flags] <input file>")
		pflag.PrintDefaults()
		os.Exit(2)
	}
	inputPath := pflag.Arg(0)

	if err := run(runConfig{
		inputPath:      inputPath,
		rate:           *rate,
		bits:           *bits,
		channels:       *channels,
		signed:         *signed,
		endian:         *endian,
		resampleMethod: *resampleMethod,
		zitaQuality:    *zitaQuality,
		noResample:     *noResample,
		config:         *config,
		inRate:         *inRate,
		inChannels:     *inChannels,
		inBits:         *inBits,
		out:            *out,
	}); err != nil {
		log.Fatal("pcmconv failed", "err", err)
	}
}

type runConfig struct {
	inputPath                          string
	rate, bits, channels               int
	signed                              bool
	endian                              string
	resampleMethod                      string
	zitaQuality                        int
	noResample                         bool
	config                             string
	inRate, inChannels, inBits         int
	out                                string
}

func run(cfg runConfig) error {
	data, err := os.ReadFile(cfg.inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	codec := codecForExt(cfg.inputPath)
	log.Info("decoding", "file", cfg.inputPath, "codec", codec)

	samples, srcRate, srcChannels, srcBits, err := decodeAll(codec, data, cfg)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	log.Info("decoded", "samples", len(samples), "rate", srcRate, "channels", srcChannels, "bits", srcBits)

	srcFormat := convert.SampleFormat{Width: mustWidth(srcBits), Signed: true, Endian: convert.LittleEndian}
	src := convert.SoundParams{Format: srcFormat, SampleRate: srcRate, Channels: srcChannels}

	dstWidth, err := widthForBits(cfg.bits)
	if err != nil {
		return err
	}
	dstEndian := convert.LittleEndian
	if strings.EqualFold(cfg.endian, "be") {
		dstEndian = convert.BigEndian
	}
	dstRate := cfg.rate
	if dstRate == 0 {
		dstRate = srcRate
	}
	dstChannels := cfg.channels
	if dstChannels == 0 {
		dstChannels = srcChannels
	}
	dstFormat := convert.SampleFormat{Width: dstWidth, Signed: cfg.signed, Endian: dstEndian}
	dst := convert.SoundParams{Format: dstFormat, SampleRate: dstRate, Channels: dstChannels}

	log.Info("converting", "from", src.String(), "to", dst.String())

	inputBytes, err := samplesToBytes(samples, srcFormat)
	if err != nil {
		return fmt.Errorf("encode source bytes: %w", err)
	}

	var outputBytes []byte
	if src.Equal(dst) {
		log.Debug("source and target parameters match, passing through unconverted")
		outputBytes = inputBytes
	} else {
		opts, err := resolveOptions(cfg)
		if err != nil {
			return err
		}
		desc, err := convert.Build(src, dst, opts)
		if err != nil {
			return fmt.Errorf("build converter: %w", err)
		}
		defer desc.Destroy()

		outputBytes, err = desc.Convert(inputBytes)
		if err != nil {
			return fmt.Errorf("convert: %w", err)
		}
	}

	if cfg.out != "" {
		if err := os.WriteFile(cfg.out, outputBytes, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		log.Info("wrote output", "file", cfg.out, "bytes", len(outputBytes))
		return nil
	}

	return play(outputBytes, dstFormat, dst.SampleRate, dst.Channels)
}

// resolveOptions builds the Options value Build reads its resampler
// configuration from: a YAML file if --config was given, otherwise the
// resample-related flags.
func resolveOptions(cfg runConfig) (convert.Options, error) {
	if cfg.config != "" {
		opts, err := convert.LoadYAMLOptions(cfg.config)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return opts, nil
	}

	opts := convert.MapOptions{
		convert.OptEnableResample: !cfg.noResample,
	}
	if cfg.resampleMethod != "" {
		opts[convert.OptResampleMethod] = cfg.resampleMethod
	}
	if cfg.zitaQuality > 0 {
		opts[convert.OptZitaResampleQuality] = cfg.zitaQuality
	}
	return opts, nil
}

// play decodes converted bytes back to this package's int32 sample
// convention and streams them to the default output device. It only
// supports little-endian PCM targets; a big-endian target is only useful
// for writing to a file with --out.
func play(data []byte, format convert.SampleFormat, rate, channels int) error {
	if format.Float || format.Endian == convert.BigEndian {
		return fmt.Errorf("playback requires an integer, little-endian target format; use --out to write %v to a file instead", format)
	}
	samples, err := bytesToSamples(data, format)
	if err != nil {
		return fmt.Errorf("decode converted bytes: %w", err)
	}

	out := output.NewOto()
	if err := out.Open(rate, channels, bitsForWidth(format.Width)); err != nil {
		return fmt.Errorf("open output device: %w", err)
	}
	defer out.Close()

	log.Info("playing", "rate", rate, "channels", channels, "samples", len(samples))
	return out.Write(samples)
}

// codecForExt maps a file extension to one of the codecs this demonstration
// understands.
func codecForExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return "wav"
	case ".flac":
		return "flac"
	case ".mp3":
		return "mp3"
	case ".opus":
		return "opus"
	default:
		return "pcm"
	}
}

// decodeAll runs the codec-appropriate Decoder to exhaustion and returns
// every interleaved int32 sample it produced, along with the format the
// samples were decoded at.
func decodeAll(codec string, data []byte, cfg runConfig) (samples []int32, rate, channels, bits int, err error) {
	hint := audio.Format{
		Codec:      codec,
		SampleRate: cfg.inRate,
		Channels:   cfg.inChannels,
		BitDepth:   cfg.inBits,
	}

	switch codec {
	case "wav":
		dec, err := decode.NewWAV(hint)
		if err != nil {
			return nil, 0, 0, 0, err
		}
		defer dec.Close()
		samples, err := dec.Decode(data)
		if err != nil {
			return nil, 0, 0, 0, err
		}
		w := dec.(*decode.WAVDecoder)
		r, c, b := w.Format()
		return samples, r, c, b, nil

	case "flac":
		dec, err := decode.NewFLAC(hint)
		if err != nil {
			return nil, 0, 0, 0, err
		}
		defer dec.Close()
		f := dec.(*decode.FLACDecoder)
		var all []int32
		for {
			chunk, err := f.Decode(data)
			if err != nil {
				return nil, 0, 0, 0, err
			}
			if chunk == nil {
				break
			}
			all = append(all, chunk...)
		}
		r, c, b, ok := f.Format()
		if !ok {
			return nil, 0, 0, 0, fmt.Errorf("flac stream has no STREAMINFO block")
		}
		return all, r, c, b, nil

	case "mp3":
		dec, err := decode.NewMP3(hint)
		if err != nil {
			return nil, 0, 0, 0, err
		}
		defer dec.Close()
		var all []int32
		for {
			chunk, err := dec.Decode(data)
			if err != nil && err != io.EOF {
				return nil, 0, 0, 0, err
			}
			if len(chunk) == 0 {
				break
			}
			all = append(all, chunk...)
		}
		return all, cfg.inRate, cfg.inChannels, 16, nil

	case "opus":
		dec, err := decode.NewOpus(hint)
		if err != nil {
			return nil, 0, 0, 0, err
		}
		defer dec.Close()
		samples, err := dec.Decode(data)
		if err != nil {
			return nil, 0, 0, 0, err
		}
		return samples, cfg.inRate, cfg.inChannels, 16, nil

	default:
		dec, err := decode.NewPCM(hint)
		if err != nil {
			return nil, 0, 0, 0, err
		}
		defer dec.Close()
		samples, err := dec.Decode(data)
		if err != nil {
			return nil, 0, 0, 0, err
		}
		return samples, cfg.inRate, cfg.inChannels, cfg.inBits, nil
	}
}

func mustWidth(bits int) convert.Width {
	w, err := widthForBits(bits)
	if err != nil {
		// The pcm, mp3 and opus paths report 16 or 24 bits; wav and flac
		// report the file's own bit depth, and any depth other than 8, 16
		// or 24 ends the program here.
		panic(err)
	}
	return w
}
