package slon

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ============================================================
// Canonical Scalar Encoding
// ============================================================

// canonInt returns the canonical integer representation.
func canonInt(v *Value) string {
	if v.bigVal != nil {
		return v.bigVal.String()
	}
	return strconv.FormatInt(v.intVal, 10)
}

// canonFloat returns the shortest text that parses back to f, always with a
// fraction or exponent so it never reads back as an integer.
// Exponents in [-4, 16) use positional notation, others d.ddde±XX.
func canonFloat(f float64) (string, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return sci, true
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.IndexByte(s, '.') < 0 {
		s += ".0"
	}
	return s, true
}

// canonDateTime formats t in UTC, truncating below milliseconds.
func canonDateTime(t time.Time) (string, bool) {
	t = t.UTC()
	if y := t.Year(); y < 0 || y > 9999 {
		return "", false
	}
	return t.Format(dateTimeLayout), true
}

// stringEscaper escapes exactly backslash, single quote, LF, CR and tab.
var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// quoteString returns s single-quoted with minimal escapes.
func quoteString(s string) string {
	return "'" + stringEscaper.Replace(s) + "'"
}

// canonKey returns an object key, bare when it reads back unchanged.
func canonKey(key string) string {
	if needsQuoting(key) {
		return quoteString(key)
	}
	return key
}

// needsQuoting reports whether key cannot be written as an unquoted token.
func needsQuoting(key string) bool {
	if key == "" {
		return true
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		if isDelimiter(c) || isQuote(c) || isSpace(c) {
			return true
		}
	}
	return false
}
