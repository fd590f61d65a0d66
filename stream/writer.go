package stream

import (
	"bufio"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/Neumenon/slon/slon"
)

// Writer writes SLON records to an io.Writer, one canonical document per
// line.
type Writer struct {
	bw    *bufio.Writer
	zw    *zstd.Encoder
	count int

	level int // zstd level, 0 = uncompressed
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithZstdLevel compresses the output with zstd at the given level
// (1 fastest .. 22 best; mapped to the nearest supported encoder level).
func WithZstdLevel(level int) WriterOption {
	return func(w *Writer) {
		w.level = level
	}
}

// NewWriter creates a new record writer. Output is buffered; call Flush or
// Close when done.
func NewWriter(w io.Writer, opts ...WriterOption) (*Writer, error) {
	writer := &Writer{}
	for _, opt := range opts {
		opt(writer)
	}

	dst := w
	if writer.level > 0 {
		zw, err := zstd.NewWriter(w,
			zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(writer.level)),
			zstd.WithEncoderConcurrency(1),
		)
		if err != nil {
			return nil, fmt.Errorf("stream: zstd: %w", err)
		}
		writer.zw = zw
		dst = zw
	}
	writer.bw = bufio.NewWriter(dst)
	return writer, nil
}

// Write encodes v and writes it as a single record.
func (w *Writer) Write(v *slon.Value) error {
	text, err := slon.Encode(v)
	if err != nil {
		return err
	}
	return w.WriteCanonical(text)
}

// WriteCanonical writes already-encoded canonical text as a record.
func (w *Writer) WriteCanonical(text string) error {
	if _, err := w.bw.WriteString(text); err != nil {
		return fmt.Errorf("stream: write record: %w", err)
	}
	if err := w.bw.WriteByte('\n'); err != nil {
		return fmt.Errorf("stream: write record: %w", err)
	}
	w.count++
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	return w.count
}

// Flush writes buffered records to the underlying writer. With compression
// enabled the records are flushed as a complete zstd block.
func (w *Writer) Flush() error {
	if err := w.bw.Flush(); err != nil {
		return fmt.Errorf("stream: flush: %w", err)
	}
	if w.zw != nil {
		if err := w.zw.Flush(); err != nil {
			return fmt.Errorf("stream: flush: %w", err)
		}
	}
	return nil
}

// Close flushes and finishes the zstd frame. It does not close the
// underlying writer.
func (w *Writer) Close() error {
	if err := w.bw.Flush(); err != nil {
		return fmt.Errorf("stream: flush: %w", err)
	}
	if w.zw != nil {
		zw := w.zw
		w.zw = nil
		if err := zw.Close(); err != nil {
			return fmt.Errorf("stream: close: %w", err)
		}
	}
	return nil
}
