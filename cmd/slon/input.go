package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/Neumenon/slon/slon"
	"github.com/Neumenon/slon/stream"
)

const stdinName = "<stdin>"

// openInput opens the named file, or stdin for "" and "-".
func (c *Command) openInput(name string) (io.ReadCloser, string, error) {
	if name == "" || name == "-" {
		return io.NopCloser(c.InOrStdin()), stdinName, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, name, err
	}
	return f, name, nil
}

// readInput reads the single optional file argument.
func (c *Command) readInput(args []string) ([]byte, string, error) {
	var name string
	if len(args) > 0 {
		name = args[0]
	}
	r, name, err := c.openInput(name)
	if err != nil {
		return nil, name, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, name, fmt.Errorf("read %s: %w", name, err)
	}
	c.log.Debug("read input", zap.String("file", name), zap.String("size", humanize.Bytes(uint64(len(data)))))
	return data, name, nil
}

func (c *Command) decodeOptions() slon.DecodeOptions {
	return slon.DecodeOptions{MaxDepth: c.intSetting(flagMaxDepth, c.cfg.MaxDepth)}
}

// decode decodes data, printing decode errors as file:line:col diagnostics.
func (c *Command) decode(name string, data []byte) (*slon.Value, error) {
	v, err := slon.DecodeWithOptions(string(data), c.decodeOptions())
	if err != nil {
		return nil, c.reportDecode(name, 0, err)
	}
	return v, nil
}

// reportDecode prints a decode failure. A non-zero line is the record line
// of a stream, and the error position is then relative to that line.
func (c *Command) reportDecode(name string, line int, err error) error {
	var de *slon.DecodeError
	if !errors.As(err, &de) {
		if line > 0 {
			fmt.Fprintf(c.Stderr(), "%s:%d: %v\n", name, line, err)
			return ErrPrintedError
		}
		return err
	}
	if line == 0 {
		line = de.Pos.Line
	}
	fmt.Fprintf(c.Stderr(), "%s:%d:%d: %s\n", name, line, de.Pos.Column, de.Message)
	return ErrPrintedError
}

func (c *Command) reportRecord(name string, re *stream.RecordError) {
	_ = c.reportDecode(name, re.Line, re.Err)
}

// trimNewline removes a single trailing LF or CRLF.
func trimNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
		if n := len(s); n > 0 && s[n-1] == '\r' {
			s = s[:n-1]
		}
	}
	return s
}
