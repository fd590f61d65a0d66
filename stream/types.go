// Package stream implements line-delimited SLON record streams.
//
// A record stream is a sequence of complete SLON documents, one per line:
//   - Record boundaries are newlines (LF, optionally preceded by CR)
//   - Blank lines are skipped by default
//   - The whole stream may be zstd-compressed
//   - Records can be fingerprinted by their canonical encoding
//
// The canonical encoding never contains a raw newline, so a Writer can
// emit any encodable value as a single record.
package stream

import (
	"errors"
	"fmt"

	"github.com/Neumenon/slon/slon"
)

// MaxLineSize is the default maximum record line size (64 MiB).
const MaxLineSize = 64 * 1024 * 1024

// ErrLineTooLong is returned when a line exceeds the reader's limit.
var ErrLineTooLong = errors.New("stream: line too long")

// Record is one decoded line of a stream.
type Record struct {
	Line  int         // 1-based line number in the (decompressed) stream
	Raw   string      // Line text without the terminator
	Value *slon.Value // Decoded document

	// Set only when the reader was created WithCanonical.
	Canonical string
	Hash      uint64
}

// RecordError reports a line that could not be decoded.
type RecordError struct {
	Line int
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("stream: line %d: %v", e.Line, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
