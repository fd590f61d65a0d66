package slon

// Grammar tables shared read-only by every decode and encode call.

// dateTimeLayout is both the time.Format layout and the shape of a datetime
// literal: every digit in it stands for one digit of input, every other
// byte must match exactly.
const dateTimeLayout = "2006-01-02/15:04:05.000"

// delimiters terminate unquoted strings, keywords and numbers.
var delimiters = [256]bool{
	':': true,
	',': true,
	'(': true,
	')': true,
	'[': true,
	']': true,
	'|': true,
}

// keywords are tried in order before falling back to an unquoted string.
var keywords = [...]struct {
	text  string
	value func() *Value
}{
	{"true", func() *Value { return Bool(true) }},
	{"false", func() *Value { return Bool(false) }},
	{"null", Null},
}

func isDelimiter(c byte) bool {
	return delimiters[c]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isQuote(c byte) bool {
	return c == '\'' || c == '"'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isTerminator reports whether c may directly follow a keyword, number or
// datetime literal.
func isTerminator(c byte) bool {
	return isDelimiter(c) || isSpace(c)
}

// unescape maps the byte after a backslash to the byte it stands for.
// \u is handled separately.
func unescape(c byte) (byte, bool) {
	switch c {
	case '"', '\'', '\\', '/':
		return c, true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	default:
		return 0, false
	}
}
