package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds defaults read from the --config file. Flags given on the
// command line override them.
//
//	max-depth: 64
//	indent: 2
//	verbose: false
//	lines:
//	  zstd: false
//	  compress: 0
//	  hash: false
//	  dedupe: false
//	  window: 0
//	  keep-going: false
type Config struct {
	MaxDepth int         `yaml:"max-depth"`
	Indent   int         `yaml:"indent"`
	Verbose  bool        `yaml:"verbose"`
	Lines    LinesConfig `yaml:"lines"`
}

// LinesConfig holds defaults for the lines command.
type LinesConfig struct {
	Zstd      bool `yaml:"zstd"`
	Compress  int  `yaml:"compress"`
	Hash      bool `yaml:"hash"`
	Dedupe    bool `yaml:"dedupe"`
	Window    int  `yaml:"window"`
	KeepGoing bool `yaml:"keep-going"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.MaxDepth < 0 {
		return cfg, fmt.Errorf("config %s: max-depth must not be negative", path)
	}
	if cfg.Indent < 0 {
		return cfg, fmt.Errorf("config %s: indent must not be negative", path)
	}
	return cfg, nil
}
