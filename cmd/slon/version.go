package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "print slon version",
		Args:  cobra.NoArgs,
		RunE:  mkRunE(c, runVersion),
	}
	return cmd
}

const defaultVersion = "(devel)"

// version may be set by a builder using
// -ldflags='-X main.version=<version>'.
var version = defaultVersion

func runVersion(cmd *Command, args []string) error {
	v := version
	if bi, ok := debug.ReadBuildInfo(); ok && v == defaultVersion && bi.Main.Version != "" {
		v = bi.Main.Version
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "slon version %s\n\n", v)
	fmt.Fprintf(w, "go version %s\n", runtime.Version())
	return nil
}
