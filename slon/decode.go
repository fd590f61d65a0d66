package slon

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/cockroachdb/apd/v3"
)

// DecodeError reports SLON text that does not match the grammar.
type DecodeError struct {
	Message string
	Pos     Position
}

func (e *DecodeError) Error() string {
	return "slon: " + e.Message + " at offset " + strconv.Itoa(e.Pos.Offset) + " (" + e.Pos.String() + ")"
}

// DecodeOptions configures the decoder.
type DecodeOptions struct {
	// MaxDepth limits the nesting of arrays and objects. Zero means no limit.
	MaxDepth int
}

// Decode parses a complete SLON document. Anything but whitespace after the
// first value is an error.
func Decode(text string) (*Value, error) {
	return DecodeWithOptions(text, DecodeOptions{})
}

// DecodeObject is like Decode but requires the document to be an object.
func DecodeObject(text string) (*Value, error) {
	v, err := Decode(text)
	if err != nil {
		return nil, err
	}
	if v.Kind() != KindObject {
		c := cursor{text: text}
		c.skipSpace()
		return nil, c.errorf(c.pos, "root value is %s, not an object", v.Kind())
	}
	return v, nil
}

// DecodeWithOptions parses with full options.
func DecodeWithOptions(text string, opts DecodeOptions) (*Value, error) {
	d := &decoder{cursor: cursor{text: text}, opts: opts}
	d.skipSpace()
	v, err := d.value()
	if err != nil {
		return nil, err
	}
	d.skipSpace()
	if !d.eof() {
		return nil, d.errorf(d.pos, "unexpected trailing content")
	}
	return v, nil
}

type decoder struct {
	cursor
	opts  DecodeOptions
	depth int
}

// subParser is one alternative of a value cascade. It reports ok=false
// without an error when the input is not its kind of token; the caller then
// rewinds the cursor and tries the next alternative.
type subParser func() (v *Value, ok bool, err error)

// first runs parsers in order from the same offset and returns the first
// match. An error from any parser ends the cascade.
func (d *decoder) first(parsers ...subParser) (*Value, error) {
	start := d.pos
	for _, p := range parsers {
		v, ok, err := p()
		if err != nil {
			return nil, err
		}
		if ok {
			return v, nil
		}
		d.pos = start
	}
	return nil, d.errorf(start, "unrecognized value")
}

// value parses any value.
func (d *decoder) value() (*Value, error) {
	d.skipSpace()
	if d.eof() {
		return nil, d.errorf(d.pos, "unexpected end of input")
	}

	switch c := d.peek(); {
	case c == '(':
		return d.object()
	case c == '[':
		return d.array()
	case isQuote(c):
		s, err := d.quoted()
		if err != nil {
			return nil, err
		}
		return Str(s), nil
	case c == '-' || isDigit(c):
		return d.first(d.dateTime, d.number)
	default:
		return d.first(d.keyword, d.unquotedValue)
	}
}

func (d *decoder) enter() error {
	d.depth++
	if d.opts.MaxDepth > 0 && d.depth > d.opts.MaxDepth {
		return d.errorf(d.pos, "nesting exceeds maximum depth %d", d.opts.MaxDepth)
	}
	return nil
}

func (d *decoder) leave() {
	d.depth--
}

// object parses (key: value, ...).
func (d *decoder) object() (*Value, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()
	d.pos++ // consume (

	obj := &Value{kind: KindObject, objectVal: []Member{}}
	d.skipSpace()
	if d.at(')') {
		d.pos++
		return obj, nil
	}

	index := make(map[string]int)
	for {
		d.skipSpace()
		if d.eof() {
			return nil, d.errorf(d.pos, "unterminated object")
		}
		key, err := d.stringLike()
		if err != nil {
			return nil, err
		}

		d.skipSpace()
		if !d.at(':') {
			return nil, d.errorf(d.pos, "expected ':' after key")
		}
		d.pos++

		val, err := d.value()
		if err != nil {
			return nil, err
		}
		if i, dup := index[key]; dup {
			obj.objectVal[i].Value = val
		} else {
			index[key] = len(obj.objectVal)
			obj.objectVal = append(obj.objectVal, Member{Key: key, Value: val})
		}

		d.skipSpace()
		switch {
		case d.eof():
			return nil, d.errorf(d.pos, "unterminated object")
		case d.at(','):
			d.pos++
		case d.at(')'):
			d.pos++
			return obj, nil
		default:
			return nil, d.errorf(d.pos, "expected ',' or ')'")
		}
	}
}

// array parses [value | ...].
func (d *decoder) array() (*Value, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()
	d.pos++ // consume [

	arr := &Value{kind: KindArray, arrayVal: []*Value{}}
	d.skipSpace()
	if d.at(']') {
		d.pos++
		return arr, nil
	}

	for {
		val, err := d.value()
		if err != nil {
			return nil, err
		}
		arr.arrayVal = append(arr.arrayVal, val)

		d.skipSpace()
		switch {
		case d.eof():
			return nil, d.errorf(d.pos, "unterminated array")
		case d.at('|'):
			d.pos++
		case d.at(']'):
			d.pos++
			return arr, nil
		default:
			return nil, d.errorf(d.pos, "expected '|' or ']'")
		}
	}
}

// stringLike parses an object key: quoted or unquoted.
func (d *decoder) stringLike() (string, error) {
	if isQuote(d.peek()) {
		return d.quoted()
	}
	return d.unquoted()
}

// quoted parses a '...' or "..." string with escapes.
func (d *decoder) quoted() (string, error) {
	start := d.pos
	quote := d.text[start]
	d.pos++

	var sb strings.Builder
	for !d.eof() {
		// Copy the run up to the next quote or backslash in one go.
		run := d.pos
		for d.pos < len(d.text) && d.text[d.pos] != quote && d.text[d.pos] != '\\' {
			d.pos++
		}
		sb.WriteString(d.text[run:d.pos])
		if d.eof() {
			break
		}
		if d.text[d.pos] == quote {
			d.pos++
			return sb.String(), nil
		}
		if err := d.escape(&sb); err != nil {
			return "", err
		}
	}
	return "", d.errorf(start, "unterminated string literal")
}

// escape decodes the escape sequence at the cursor, which sits on a backslash.
func (d *decoder) escape(sb *strings.Builder) error {
	at := d.pos
	if at+1 >= len(d.text) {
		return d.errorf(at, "truncated escape sequence")
	}
	c := d.text[at+1]
	if b, ok := unescape(c); ok {
		sb.WriteByte(b)
		d.pos += 2
		return nil
	}
	if c != 'u' {
		r, _ := utf8.DecodeRuneInString(d.text[at+1:])
		return d.errorf(at, "unknown escape '\\%c'", r)
	}

	r, ok := hex4(d.text, at+2)
	if !ok {
		return d.errorf(at, "invalid unicode escape")
	}
	d.pos = at + 6

	// A high surrogate followed by an escaped low surrogate is one code
	// point. Unpaired surrogates become U+FFFD.
	if utf16.IsSurrogate(r) && r < 0xDC00 && strings.HasPrefix(d.text[d.pos:], `\u`) {
		if lo, ok := hex4(d.text, d.pos+2); ok && lo >= 0xDC00 && lo <= 0xDFFF {
			r = utf16.DecodeRune(r, lo)
			d.pos += 6
		}
	}
	sb.WriteRune(r)
	return nil
}

// hex4 decodes exactly four hex digits at text[i:].
func hex4(text string, i int) (rune, bool) {
	if i+4 > len(text) {
		return 0, false
	}
	var r rune
	for _, c := range []byte(text[i : i+4]) {
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			r |= rune(c-'A') + 10
		default:
			return 0, false
		}
	}
	return r, true
}

// unquoted parses a bare token up to the next delimiter or whitespace.
func (d *decoder) unquoted() (string, error) {
	start := d.pos
	for d.pos < len(d.text) && !isTerminator(d.text[d.pos]) {
		d.pos++
	}
	s := strings.Trim(d.text[start:d.pos], " \t\r\n")
	if s == "" {
		return "", d.errorf(start, "empty unquoted string")
	}
	return s, nil
}

func (d *decoder) unquotedValue() (*Value, bool, error) {
	s, err := d.unquoted()
	if err != nil {
		return nil, false, err
	}
	return Str(s), true, nil
}

// keyword matches true, false or null followed by a boundary.
func (d *decoder) keyword() (*Value, bool, error) {
	rest := d.text[d.pos:]
	for _, kw := range keywords {
		if strings.HasPrefix(rest, kw.text) && d.boundaryAt(d.pos+len(kw.text)) {
			d.pos += len(kw.text)
			return kw.value(), true, nil
		}
	}
	return nil, false, nil
}

// dateTime matches YYYY-MM-DD/hh:mm:ss.mmm followed by a boundary. A literal
// of the right shape with out-of-range fields is an error, not a decline.
func (d *decoder) dateTime() (*Value, bool, error) {
	start := d.pos
	end := start + len(dateTimeLayout)
	if end > len(d.text) || !d.boundaryAt(end) {
		return nil, false, nil
	}
	lit := d.text[start:end]
	for i := 0; i < len(dateTimeLayout); i++ {
		if isDigit(dateTimeLayout[i]) {
			if !isDigit(lit[i]) {
				return nil, false, nil
			}
		} else if lit[i] != dateTimeLayout[i] {
			return nil, false, nil
		}
	}

	t, ok := parseDateTime(lit)
	if !ok {
		return nil, false, d.errorf(start, "invalid datetime literal %q", lit)
	}
	d.pos = end
	return DateTime(t), true, nil
}

// parseDateTime builds a UTC time from a literal already known to have the
// datetime shape, rejecting out-of-range fields instead of normalizing them.
func parseDateTime(lit string) (time.Time, bool) {
	num := func(i, j int) int {
		n := 0
		for _, c := range []byte(lit[i:j]) {
			n = n*10 + int(c-'0')
		}
		return n
	}
	year, month, day := num(0, 4), num(5, 7), num(8, 10)
	hour, minute, sec, ms := num(11, 13), num(14, 16), num(17, 19), num(20, 23)

	if month < 1 || month > 12 || hour > 23 || minute > 59 || sec > 59 {
		return time.Time{}, false
	}
	daysInMonth := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day < 1 || day > daysInMonth {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, hour, minute, sec, ms*int(time.Millisecond), time.UTC), true
}

// number parses -?(0|[1-9]\d*)(\.\d+)?([eE][+-]?\d+)? followed by a boundary.
func (d *decoder) number() (*Value, bool, error) {
	start := d.pos
	end, isFloat, ok := scanNumber(d.text, start)
	if !ok {
		return nil, false, d.errorf(start, "invalid number")
	}
	if !d.boundaryAt(end) {
		return nil, false, d.errorf(end, "invalid number boundary")
	}
	lit := d.text[start:end]
	d.pos = end

	if isFloat {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, false, d.errorf(start, "float %s out of range", lit)
		}
		return Float(f), true, nil
	}
	if n, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return Int(n), true, nil
	}
	b, ok := new(apd.BigInt).SetString(lit, 10)
	if !ok {
		return nil, false, d.errorf(start, "invalid integer %s", lit)
	}
	return &Value{kind: KindInt, bigVal: b}, true, nil
}

// scanNumber returns the end of the longest number-grammar match at s[i:]
// and whether it carries a fraction or exponent.
func scanNumber(s string, i int) (end int, isFloat, ok bool) {
	if i < len(s) && s[i] == '-' {
		i++
	}
	switch {
	case i < len(s) && s[i] == '0':
		i++
	case i < len(s) && s[i] >= '1' && s[i] <= '9':
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	default:
		return i, false, false
	}

	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > i+1 {
			i, isFloat = j, true
		}
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i, isFloat = k, true
		}
	}
	return i, isFloat, true
}
