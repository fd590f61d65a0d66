package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCheckCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "validate SLON documents",
		Long: `Check decodes each file and reports every invalid one as

	file:line:column: reason

All files are checked even after a failure.
`,
		RunE: mkRunE(c, runCheck),
	}
	return cmd
}

func runCheck(cmd *Command, args []string) error {
	if len(args) == 0 {
		args = []string{"-"}
	}

	failed := false
	for _, file := range args {
		data, name, err := cmd.readInput([]string{file})
		if err != nil {
			fmt.Fprintln(cmd.Stderr(), err)
			failed = true
			continue
		}
		if _, err := cmd.decode(name, data); err != nil {
			if err != ErrPrintedError {
				return err
			}
			failed = true
			continue
		}
		cmd.log.Info("valid", zap.String("file", name))
	}

	if failed {
		return ErrPrintedError
	}
	return nil
}
