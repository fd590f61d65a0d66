package slon

import (
	"fmt"
	"io"
)

// Decoder reads one SLON document from an input stream.
type Decoder struct {
	r    io.Reader
	opts DecodeOptions
}

// NewDecoder returns a decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// SetMaxDepth limits nesting of the decoded document. Zero means no limit.
func (d *Decoder) SetMaxDepth(n int) {
	d.opts.MaxDepth = n
}

// Decode reads r to the end and decodes it as a single document.
func (d *Decoder) Decode() (*Value, error) {
	data, err := io.ReadAll(d.r)
	if err != nil {
		return nil, fmt.Errorf("slon: read: %w", err)
	}
	return DecodeWithOptions(string(data), d.opts)
}

// Encoder writes SLON documents to an output stream.
type Encoder struct {
	w       io.Writer
	newline bool
}

// NewEncoder returns an encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// SetNewline makes Encode terminate each document with '\n'.
func (e *Encoder) SetNewline(on bool) {
	e.newline = on
}

// Encode writes the canonical encoding of v.
func (e *Encoder) Encode(v *Value) error {
	s, err := Encode(v)
	if err != nil {
		return err
	}
	if e.newline {
		s += "\n"
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		return fmt.Errorf("slon: write: %w", err)
	}
	return nil
}
