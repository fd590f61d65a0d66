package main

import (
	"github.com/spf13/pflag"
)

// Common flags
const (
	flagCheck     flagName = "check"
	flagCompress  flagName = "compress"
	flagConfig    flagName = "config"
	flagDedupe    flagName = "dedupe"
	flagHash      flagName = "hash"
	flagIndent    flagName = "indent"
	flagKeepGoing flagName = "keep-going"
	flagMaxDepth  flagName = "max-depth"
	flagVerbose   flagName = "verbose"
	flagWindow    flagName = "window"
	flagZstd      flagName = "zstd"
)

func addGlobalFlags(f *pflag.FlagSet) {
	f.String(string(flagConfig), "",
		"read default settings from a YAML file")
	f.Int(string(flagMaxDepth), 0,
		"maximum nesting depth of a document (0 means no limit)")
	f.BoolP(string(flagVerbose), "v", false,
		"log progress to stderr")
}

type flagName string

func (f flagName) Bool(cmd *Command) bool {
	v, _ := cmd.Flags().GetBool(string(f))
	return v
}

func (f flagName) Int(cmd *Command) int {
	v, _ := cmd.Flags().GetInt(string(f))
	return v
}

func (f flagName) String(cmd *Command) string {
	v, _ := cmd.Flags().GetString(string(f))
	return v
}

func (f flagName) IsSet(cmd *Command) bool {
	return cmd.Flags().Changed(string(f))
}

// boolSetting returns the flag value when given on the command line and
// fallback otherwise.
func (c *Command) boolSetting(f flagName, fallback bool) bool {
	if f.IsSet(c) {
		return f.Bool(c)
	}
	return fallback
}

func (c *Command) intSetting(f flagName, fallback int) int {
	if f.IsSet(c) {
		return f.Int(c)
	}
	return fallback
}
