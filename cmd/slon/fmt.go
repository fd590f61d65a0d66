package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Neumenon/slon/slon"
)

func newFmtCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [--check] [file]",
		Short: "print the canonical form of a SLON document",
		Long: `Fmt decodes a SLON document and prints its canonical encoding.

With --check nothing is printed; the command fails if the input, ignoring
one trailing newline, is not already canonical.
`,
		Args: cobra.MaximumNArgs(1),
		RunE: mkRunE(c, runFmt),
	}
	cmd.Flags().Bool(string(flagCheck), false, "fail if the input is not canonical")
	return cmd
}

func runFmt(cmd *Command, args []string) error {
	data, name, err := cmd.readInput(args)
	if err != nil {
		return err
	}
	v, err := cmd.decode(name, data)
	if err != nil {
		return err
	}
	out, err := slon.Encode(v)
	if err != nil {
		return err
	}

	if flagCheck.Bool(cmd) {
		if trimNewline(string(data)) != out {
			fmt.Fprintf(cmd.Stderr(), "%s: not canonical\n", name)
			return ErrPrintedError
		}
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
