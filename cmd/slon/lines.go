package main

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Neumenon/slon/stream"
)

func newLinesCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lines [options] [file]",
		Short: "canonicalize a line-delimited SLON record stream",
		Long: `Lines reads one SLON document per line and prints each in canonical
form. Blank lines are skipped.

	--zstd        the input is zstd-compressed
	--compress N  compress the output with zstd at level N
	--hash        prefix each record with its 16-digit fingerprint
	--dedupe      drop records whose canonical form was already printed
	--window N    with --dedupe, remember only the last N distinct records
	--keep-going  report bad lines and continue instead of stopping

Bad lines are reported as file:line:column: reason.
`,
		Args: cobra.MaximumNArgs(1),
		RunE: mkRunE(c, runLines),
	}
	f := cmd.Flags()
	f.Bool(string(flagZstd), false, "read zstd-compressed input")
	f.Int(string(flagCompress), 0, "zstd level for the output (0 disables compression)")
	f.Bool(string(flagHash), false, "prefix each record with its fingerprint")
	f.Bool(string(flagDedupe), false, "drop repeated records")
	f.Int(string(flagWindow), 0, "number of distinct records --dedupe remembers (0 means all)")
	f.Bool(string(flagKeepGoing), false, "continue after bad lines")
	return cmd
}

func runLines(cmd *Command, args []string) error {
	lc := cmd.cfg.Lines
	var (
		compressed = cmd.boolSetting(flagZstd, lc.Zstd)
		level      = cmd.intSetting(flagCompress, lc.Compress)
		hash       = cmd.boolSetting(flagHash, lc.Hash)
		dedupe     = cmd.boolSetting(flagDedupe, lc.Dedupe)
		window     = cmd.intSetting(flagWindow, lc.Window)
		keepGoing  = cmd.boolSetting(flagKeepGoing, lc.KeepGoing)
	)

	var file string
	if len(args) > 0 {
		file = args[0]
	}
	in, name, err := cmd.openInput(file)
	if err != nil {
		return err
	}
	defer in.Close()

	ropts := []stream.ReaderOption{
		stream.WithCanonical(),
		stream.WithMaxDepth(cmd.intSetting(flagMaxDepth, cmd.cfg.MaxDepth)),
	}
	if compressed {
		ropts = append(ropts, stream.WithZstd())
	}
	r, err := stream.NewReader(in, ropts...)
	if err != nil {
		return err
	}
	defer r.Close()

	var wopts []stream.WriterOption
	if level > 0 {
		wopts = append(wopts, stream.WithZstdLevel(level))
	}
	w, err := stream.NewWriter(cmd.OutOrStdout(), wopts...)
	if err != nil {
		return err
	}

	tracker := stream.NewTracker()
	if window > 0 {
		if tracker, err = stream.NewWindowTracker(window); err != nil {
			return err
		}
	}
	failed := false
	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		var re *stream.RecordError
		if errors.As(err, &re) {
			cmd.reportRecord(name, re)
			failed = true
			if !keepGoing {
				break
			}
			continue
		}
		if err != nil {
			_ = w.Close()
			return err
		}

		first, err := tracker.Observe(rec)
		if err != nil {
			_ = w.Close()
			return err
		}
		if dedupe && !first {
			cmd.log.Debug("duplicate record", zap.Int("line", rec.Line), zap.String("hash", stream.HashToHex(rec.Hash)))
			continue
		}

		text := rec.Canonical
		if hash {
			text = stream.HashToHex(rec.Hash) + " " + text
		}
		if err := w.WriteCanonical(text); err != nil {
			_ = w.Close()
			return err
		}
	}

	if err := w.Close(); err != nil {
		return err
	}
	cmd.log.Info("records written",
		zap.String("file", name),
		zap.Int("records", w.Count()),
		zap.Int("distinct", tracker.Len()),
		zap.Int("duplicated", len(tracker.Duplicates())),
		zap.Int("evicted", tracker.Evicted()),
	)

	if failed {
		return ErrPrintedError
	}
	return nil
}
