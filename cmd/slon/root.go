package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type runFunction func(cmd *Command, args []string) error

func mkRunE(c *Command, f runFunction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c.Command = cmd
		return f(c, args)
	}
}

// Command wraps the active cobra command with the settings shared by all
// subcommands.
type Command struct {
	// The currently active command.
	*cobra.Command

	root *cobra.Command
	cfg  Config
	log  *zap.Logger
}

// ErrPrintedError indicates error messages have been printed to stderr.
var ErrPrintedError = errors.New("terminating because of errors")

func newRootCmd() *Command {
	cmd := &cobra.Command{
		Use:   "slon",
		Short: "slon formats, validates and converts SLON documents.",
		Long: `slon works with SLON, a compact JSON-like notation:

	(name: 'Ada', tags: [math | code], born: 1815-12-10/00:00:00.000)

Documents are read from the named file or from stdin and written in
canonical form: keys sorted, strings single-quoted, one line per document.`,

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c := &Command{Command: cmd, root: cmd, log: zap.NewNop()}
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		c.Command = cmd
		return c.setup()
	}

	addGlobalFlags(cmd.PersistentFlags())

	subCommands := []*cobra.Command{
		newFmtCmd(c),
		newCheckCmd(c),
		newToJSONCmd(c),
		newFromJSONCmd(c),
		newLinesCmd(c),
		newVersionCmd(c),
	}
	for _, sub := range subCommands {
		cmd.AddCommand(sub)
	}

	return c
}

// Main runs the slon tool and returns the code for passing to os.Exit.
func Main() int {
	c := newRootCmd()
	c.root.SetArgs(os.Args[1:])
	err := c.root.Execute()
	_ = c.log.Sync()
	if err != nil {
		if err != ErrPrintedError {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}

// setup loads the config file and builds the logger. Explicit flags take
// precedence over the config file.
func (c *Command) setup() error {
	if path := flagConfig.String(c); path != "" {
		cfg, err := loadConfig(path)
		if err != nil {
			return err
		}
		c.cfg = cfg
	}

	if c.boolSetting(flagVerbose, c.cfg.Verbose) {
		zcfg := zap.NewDevelopmentConfig()
		zcfg.DisableStacktrace = true
		logger, err := zcfg.Build()
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		c.log = logger.Named("slon")
	}
	return nil
}

// Stderr returns a writer that should be used for diagnostics.
func (c *Command) Stderr() io.Writer {
	return c.Command.ErrOrStderr()
}
