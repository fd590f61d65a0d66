package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-quicktest/qt"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slon.yaml")
	qt.Assert(t, qt.IsNil(os.WriteFile(path, []byte(content), 0o666)))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
max-depth: 32
indent: 2
lines:
  zstd: true
  compress: 9
  keep-going: true
`)
	cfg, err := loadConfig(path)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(cfg, Config{
		MaxDepth: 32,
		Indent:   2,
		Lines:    LinesConfig{Zstd: true, Compress: 9, KeepGoing: true},
	}))
}

func TestLoadConfig_Empty(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, ""))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(cfg, Config{}))
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown field", "colour: red\n", `config .*: yaml: unmarshal errors:\n.*field colour not found.*`},
		{"wrong type", "max-depth: deep\n", `config .*: yaml: unmarshal errors:\n.*cannot unmarshal.*`},
		{"negative depth", "max-depth: -1\n", `config .*: max-depth must not be negative`},
		{"negative indent", "indent: -2\n", `config .*: indent must not be negative`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.content))
			qt.Assert(t, qt.ErrorMatches(err, tt.want))
		})
	}

	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	qt.Assert(t, qt.ErrorMatches(err, `config: open .*missing.yaml: .*`))
}

func TestTrimNewline(t *testing.T) {
	for in, want := range map[string]string{
		"":      "",
		"a":     "a",
		"a\n":   "a",
		"a\r\n": "a",
		"a\n\n": "a\n",
		"a\r":   "a\r",
		"\n":    "",
	} {
		qt.Check(t, qt.Equals(trimNewline(in), want), qt.Commentf("input %q", in))
	}
}
