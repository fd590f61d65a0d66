package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Neumenon/slon/slon"
)

func newToJSONCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "to-json [--indent N] [file]",
		Short: "convert a SLON document to JSON",
		Long: `To-json prints the JSON form of a SLON document. Object keys are
sorted and datetimes become RFC 3339 strings.
`,
		Args: cobra.MaximumNArgs(1),
		RunE: mkRunE(c, runToJSON),
	}
	cmd.Flags().Int(string(flagIndent), 0, "indent nested values by N spaces")
	return cmd
}

func runToJSON(cmd *Command, args []string) error {
	data, name, err := cmd.readInput(args)
	if err != nil {
		return err
	}
	v, err := cmd.decode(name, data)
	if err != nil {
		return err
	}

	indent := cmd.intSetting(flagIndent, cmd.cfg.Indent)
	if indent < 0 {
		return fmt.Errorf("--indent must not be negative")
	}
	var out []byte
	if indent > 0 {
		out, err = slon.ToJSONIndent(v, strings.Repeat(" ", indent))
	} else {
		out, err = slon.ToJSON(v)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func newFromJSONCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "from-json [file]",
		Short: "convert a JSON document to canonical SLON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  mkRunE(c, runFromJSON),
	}
	return cmd
}

func runFromJSON(cmd *Command, args []string) error {
	data, name, err := cmd.readInput(args)
	if err != nil {
		return err
	}
	v, err := slon.FromJSON(data)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	out, err := slon.Encode(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
