package stream

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/Neumenon/slon/slon"
)

// ============================================================
// Writer Tests
// ============================================================

func TestWriter_Records(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	qt.Assert(t, qt.IsNil(err))

	qt.Assert(t, qt.IsNil(w.Write(slon.Object(slon.M("b", slon.Int(1)), slon.M("a", slon.Str("x\ny"))))))
	qt.Assert(t, qt.IsNil(w.Write(slon.Array())))
	qt.Assert(t, qt.IsNil(w.WriteCanonical("null")))

	// Nothing reaches the destination before Flush.
	qt.Assert(t, qt.Equals(buf.Len(), 0))
	qt.Assert(t, qt.IsNil(w.Flush()))

	want := "(a: 'x\\ny', b: 1)\n[]\nnull\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
	qt.Assert(t, qt.Equals(w.Count(), 3))
}

func TestWriter_EncodeError(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	qt.Assert(t, qt.IsNil(err))

	err = w.Write(slon.Float(math.NaN()))
	var ee *slon.EncodeError
	qt.Assert(t, qt.ErrorAs(err, &ee))
	qt.Assert(t, qt.IsNil(w.Close()))
	qt.Assert(t, qt.Equals(buf.Len(), 0))
	qt.Assert(t, qt.Equals(w.Count(), 0))
}

// ============================================================
// Reader Tests
// ============================================================

func TestReader_Basic(t *testing.T) {
	input := "(a: 1)\r\n\n   \n[x | y]\nlast"
	r, err := NewReader(strings.NewReader(input))
	qt.Assert(t, qt.IsNil(err))
	defer r.Close()

	records, err := r.ReadAll()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(records, 3))

	qt.Assert(t, qt.Equals(records[0].Line, 1))
	qt.Assert(t, qt.Equals(records[0].Raw, "(a: 1)"))
	qt.Assert(t, qt.IsTrue(records[0].Value.Equal(slon.Object(slon.M("a", slon.Int(1))))))

	qt.Assert(t, qt.Equals(records[1].Line, 4))
	qt.Assert(t, qt.Equals(records[2].Line, 5))
	qt.Assert(t, qt.IsTrue(records[2].Value.Equal(slon.Str("last"))))

	// Canonical output is only computed on request.
	qt.Assert(t, qt.Equals(records[0].Canonical, ""))
}

func TestReader_EmptyInput(t *testing.T) {
	r, err := NewReader(strings.NewReader(""))
	qt.Assert(t, qt.IsNil(err))
	_, err = r.Next()
	qt.Assert(t, qt.Equals(err, io.EOF))
}

func TestReader_ContinuesAfterRecordError(t *testing.T) {
	r, err := NewReader(strings.NewReader("1\n(a 1)\n2\n"))
	qt.Assert(t, qt.IsNil(err))

	rec, err := r.Next()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(rec.Value.Equal(slon.Int(1))))

	_, err = r.Next()
	var re *RecordError
	qt.Assert(t, qt.ErrorAs(err, &re))
	qt.Assert(t, qt.Equals(re.Line, 2))
	qt.Assert(t, qt.ErrorMatches(err, `stream: line 2: slon: expected ':' after key at offset 3 \(1:4\)`))

	var de *slon.DecodeError
	qt.Assert(t, qt.ErrorAs(err, &de))
	qt.Assert(t, qt.Equals(de.Pos.Offset, 3))

	rec, err = r.Next()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(rec.Line, 3))

	_, err = r.Next()
	qt.Assert(t, qt.Equals(err, io.EOF))
}

func TestReader_BlankLinesAsErrors(t *testing.T) {
	r, err := NewReader(strings.NewReader("1\n\n2\n"), WithSkipBlank(false))
	qt.Assert(t, qt.IsNil(err))

	_, err = r.Next()
	qt.Assert(t, qt.IsNil(err))
	_, err = r.Next()
	qt.Assert(t, qt.ErrorMatches(err, `stream: line 2: slon: unexpected end of input at offset 0 \(1:1\)`))
}

func TestReader_MaxLine(t *testing.T) {
	r, err := NewReader(strings.NewReader("1\n[1 | 2 | 3 | 4 | 5 | 6]\n"), WithMaxLine(8))
	qt.Assert(t, qt.IsNil(err))

	_, err = r.Next()
	qt.Assert(t, qt.IsNil(err))
	_, err = r.Next()
	qt.Assert(t, qt.ErrorIs(err, ErrLineTooLong))
	qt.Assert(t, qt.ErrorMatches(err, `stream: line too long: line 2 exceeds 8 bytes`))
}

func TestReader_MaxDepth(t *testing.T) {
	r, err := NewReader(strings.NewReader("[[1]]\n"), WithMaxDepth(1))
	qt.Assert(t, qt.IsNil(err))
	_, err = r.Next()
	qt.Assert(t, qt.ErrorMatches(err, `stream: line 1: slon: nesting exceeds maximum depth 1 at offset 1 \(1:2\)`))
}

func TestReader_ReadError(t *testing.T) {
	boom := errors.New("boom")
	r, err := NewReader(io.MultiReader(strings.NewReader("1\n"), errReader{boom}))
	qt.Assert(t, qt.IsNil(err))

	_, err = r.Next()
	qt.Assert(t, qt.IsNil(err))
	_, err = r.Next()
	qt.Assert(t, qt.ErrorIs(err, boom))
}

func TestReader_Canonical(t *testing.T) {
	r, err := NewReader(strings.NewReader("(b: 2, a: 1)\n(a: 1, b: 2)\n"), WithCanonical())
	qt.Assert(t, qt.IsNil(err))

	records, err := r.ReadAll()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(records, 2))
	qt.Assert(t, qt.Equals(records[0].Canonical, "(a: 1, b: 2)"))
	qt.Assert(t, qt.Equals(records[0].Hash, records[1].Hash))
	qt.Assert(t, qt.Equals(records[0].Hash, FingerprintText("(a: 1, b: 2)")))
}

// ============================================================
// Compression Tests
// ============================================================

func TestZstd_RoundTrip(t *testing.T) {
	values := []*slon.Value{
		slon.Object(slon.M("id", slon.Int(1)), slon.M("name", slon.Str("first"))),
		slon.Array(slon.Float(1.5), slon.Null()),
		slon.Str(strings.Repeat("compressible ", 100)),
	}

	var buf bytes.Buffer
	w, err := NewWriter(&buf, WithZstdLevel(3))
	qt.Assert(t, qt.IsNil(err))
	for _, v := range values {
		qt.Assert(t, qt.IsNil(w.Write(v)))
	}
	qt.Assert(t, qt.IsNil(w.Close()))

	// zstd frame magic
	qt.Assert(t, qt.IsTrue(bytes.HasPrefix(buf.Bytes(), []byte{0x28, 0xb5, 0x2f, 0xfd})))

	r, err := NewReader(&buf, WithZstd())
	qt.Assert(t, qt.IsNil(err))
	defer r.Close()

	records, err := r.ReadAll()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(records, len(values)))
	for i, rec := range records {
		qt.Check(t, qt.IsTrue(rec.Value.Equal(values[i])), qt.Commentf("record %d", i))
	}
}

func TestZstd_InvalidInput(t *testing.T) {
	r, err := NewReader(strings.NewReader("(a: 1)\n"), WithZstd())
	qt.Assert(t, qt.IsNil(err))
	defer r.Close()

	_, err = r.Next()
	qt.Assert(t, qt.ErrorMatches(err, `stream: read: .*`))
}

type errReader struct{ err error }

func (e errReader) Read([]byte) (int, error) { return 0, e.err }
