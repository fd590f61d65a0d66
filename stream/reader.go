package stream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/Neumenon/slon/slon"
)

// Reader reads SLON records from an io.Reader.
type Reader struct {
	sc   *bufio.Scanner
	zr   *zstd.Decoder
	line int

	maxLine   int
	opts      slon.DecodeOptions
	compress  bool
	skipBlank bool
	canonical bool
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithMaxLine sets the maximum line size (default: 64 MiB).
func WithMaxLine(max int) ReaderOption {
	return func(r *Reader) {
		r.maxLine = max
	}
}

// WithMaxDepth limits the nesting depth of each record.
func WithMaxDepth(depth int) ReaderOption {
	return func(r *Reader) {
		r.opts.MaxDepth = depth
	}
}

// WithZstd treats the input as a zstd-compressed stream.
func WithZstd() ReaderOption {
	return func(r *Reader) {
		r.compress = true
	}
}

// WithSkipBlank controls whether whitespace-only lines are skipped
// (default) or reported as decode errors.
func WithSkipBlank(skip bool) ReaderOption {
	return func(r *Reader) {
		r.skipBlank = skip
	}
}

// WithCanonical fills Record.Canonical and Record.Hash for every record.
func WithCanonical() ReaderOption {
	return func(r *Reader) {
		r.canonical = true
	}
}

// NewReader creates a new record reader.
func NewReader(r io.Reader, opts ...ReaderOption) (*Reader, error) {
	reader := &Reader{
		maxLine:   MaxLineSize,
		skipBlank: true,
	}
	for _, opt := range opts {
		opt(reader)
	}

	src := r
	if reader.compress {
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("stream: zstd: %w", err)
		}
		reader.zr = zr
		src = zr
	}

	reader.sc = bufio.NewScanner(src)
	initial := 64 * 1024
	if initial > reader.maxLine {
		initial = reader.maxLine
	}
	reader.sc.Buffer(make([]byte, 0, initial), reader.maxLine)
	return reader, nil
}

// Next reads and returns the next record.
// Returns io.EOF when no more records are available. A line that fails to
// decode yields a *RecordError; reading may continue after it. Any other
// error ends the stream.
func (r *Reader) Next() (*Record, error) {
	for r.sc.Scan() {
		r.line++
		raw := r.sc.Text()
		if r.skipBlank && strings.TrimLeft(raw, " \t\r") == "" {
			continue
		}

		v, err := slon.DecodeWithOptions(raw, r.opts)
		if err != nil {
			return nil, &RecordError{Line: r.line, Err: err}
		}
		rec := &Record{Line: r.line, Raw: raw, Value: v}

		if r.canonical {
			text, err := slon.Encode(v)
			if err != nil {
				return nil, &RecordError{Line: r.line, Err: err}
			}
			rec.Canonical = text
			rec.Hash = FingerprintText(text)
		}
		return rec, nil
	}

	if err := r.sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: line %d exceeds %d bytes", ErrLineTooLong, r.line+1, r.maxLine)
		}
		return nil, fmt.Errorf("stream: read: %w", err)
	}
	return nil, io.EOF
}

// ReadAll reads all records until EOF. It stops at the first error.
func (r *Reader) ReadAll() ([]*Record, error) {
	var records []*Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}

// Close releases the zstd decoder, if any. It does not close the
// underlying reader.
func (r *Reader) Close() error {
	if r.zr != nil {
		r.zr.Close()
		r.zr = nil
	}
	return nil
}
