// ABOUTME: Tests for the Options implementations and method-name resolution
package convert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestMapOptions(t *testing.T) {
	m := MapOptions{
		OptEnableResample: true,
		OptResampleMethod: "SincBestQuality",
		OptZitaResampleQuality: 3,
	}

	if v, ok := m.Bool(OptEnableResample); !ok || !v {
		t.Errorf("Bool(%s) = %v, %v, want true, true", OptEnableResample, v, ok)
	}
	if v, ok := m.String(OptResampleMethod); !ok || v != "SincBestQuality" {
		t.Errorf("String(%s) = %v, %v, want SincBestQuality, true", OptResampleMethod, v, ok)
	}
	if v, ok := m.Int(OptZitaResampleQuality); !ok || v != 3 {
		t.Errorf("Int(%s) = %v, %v, want 3, true", OptZitaResampleQuality, v, ok)
	}
	if _, ok := m.Bool("Missing"); ok {
		t.Error("Bool for a missing key should report ok=false")
	}
	if _, ok := m.String("EnableResample"); ok {
		t.Error("String against a bool-valued key should report ok=false (wrong type)")
	}
}

func TestFlagOptions(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Bool(OptEnableResample, true, "")
	fs.String(OptResampleMethod, "Linear", "")
	fs.Int(OptZitaResampleQuality, 5, "")
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}

	opts := FlagOptions{Flags: fs}
	if v, ok := opts.Bool(OptEnableResample); !ok || !v {
		t.Errorf("Bool = %v, %v, want true, true", v, ok)
	}
	if v, ok := opts.String(OptResampleMethod); !ok || v != "Linear" {
		t.Errorf("String = %v, %v, want Linear, true", v, ok)
	}
	if v, ok := opts.Int(OptZitaResampleQuality); !ok || v != 5 {
		t.Errorf("Int = %v, %v, want 5, true", v, ok)
	}
	if _, ok := opts.Bool("NotDefined"); ok {
		t.Error("Bool for an undefined flag should report ok=false")
	}
}

func TestYAMLOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "opts.yaml")
	content := "enable_resample: false\nresample_method: sincmediumquality\nzita_resample_quality: 2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := LoadYAMLOptions(path)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := opts.Bool(OptEnableResample); !ok || v {
		t.Errorf("Bool = %v, %v, want false, true", v, ok)
	}
	if v, ok := opts.String(OptResampleMethod); !ok || v != "sincmediumquality" {
		t.Errorf("String = %v, %v, want sincmediumquality, true", v, ok)
	}
	if v, ok := opts.Int(OptZitaResampleQuality); !ok || v != 2 {
		t.Errorf("Int = %v, %v, want 2, true", v, ok)
	}
}

func TestLoadYAMLOptionsMissingFile(t *testing.T) {
	_, err := LoadYAMLOptions("/nonexistent/path/opts.yaml")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestCanonicalMethod(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"sincbestquality", "SincBestQuality", true},
		{"SINCFASTEST", "SincFastest", true},
		{"ZeroOrderHold", "ZeroOrderHold", true},
		{"bogus", "", false},
	}
	for _, c := range cases {
		got, ok := canonicalMethod(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("canonicalMethod(%q) = %q, %v, want %q, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}
