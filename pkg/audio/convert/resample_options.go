// ABOUTME: Flag-set and YAML-file backed Options implementations
package convert

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// FlagOptions reads resampler configuration from a pflag.FlagSet that the
// host application has already defined and parsed, e.g. from its own
// command-line flags.
type FlagOptions struct {
	Flags *pflag.FlagSet
}

func (f FlagOptions) Bool(name string) (bool, bool) {
	fl := f.Flags.Lookup(name)
	if fl == nil {
		return false, false
	}
	v, err := f.Flags.GetBool(name)
	return v, err == nil
}

func (f FlagOptions) String(name string) (string, bool) {
	fl := f.Flags.Lookup(name)
	if fl == nil {
		return "", false
	}
	v, err := f.Flags.GetString(name)
	return v, err == nil
}

func (f FlagOptions) Int(name string) (int, bool) {
	fl := f.Flags.Lookup(name)
	if fl == nil {
		return 0, false
	}
	v, err := f.Flags.GetInt(name)
	return v, err == nil
}

// yamlOptionsDoc is the on-disk shape of a YAML-backed Options file.
type yamlOptionsDoc struct {
	EnableResample      *bool   `yaml:"enable_resample"`
	ResampleMethod      *string `yaml:"resample_method"`
	ZitaResampleQuality *int    `yaml:"zita_resample_quality"`
}

// YAMLOptions is a YAML-file backed Options implementation, for hosts that
// keep their configuration in a file rather than flags.
type YAMLOptions struct {
	doc yamlOptionsDoc
}

// LoadYAMLOptions reads and parses a YAML options file at path.
func LoadYAMLOptions(path string) (YAMLOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return YAMLOptions{}, fmt.Errorf("convert: LoadYAMLOptions: %w", err)
	}
	var doc yamlOptionsDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return YAMLOptions{}, fmt.Errorf("convert: LoadYAMLOptions: %w", err)
	}
	return YAMLOptions{doc: doc}, nil
}

func (y YAMLOptions) Bool(name string) (bool, bool) {
	if name == OptEnableResample && y.doc.EnableResample != nil {
		return *y.doc.EnableResample, true
	}
	return false, false
}

func (y YAMLOptions) String(name string) (string, bool) {
	if name == OptResampleMethod && y.doc.ResampleMethod != nil {
		return *y.doc.ResampleMethod, true
	}
	return "", false
}

func (y YAMLOptions) Int(name string) (int, bool) {
	if name == OptZitaResampleQuality && y.doc.ZitaResampleQuality != nil {
		return *y.doc.ZitaResampleQuality, true
	}
	return 0, false
}
