// Package slon implements SLON, a compact textual data-interchange format.
//
// SLON resembles JSON but is lighter on punctuation:
//   - Objects use parentheses and ':' / ','
//   - Arrays use brackets separated by '|'
//   - Keys and string values may be unquoted
//   - DateTime is a native literal, distinct from numbers
//
// # Data Model
//
// Scalars: null, bool, int (arbitrary precision), float, str, datetime (UTC)
// Containers: array, object (unique keys)
//
// # Syntax
//
//	Object:   (name: 'Ada', tags: [math | code])
//	Array:    [1 | 2.5 | null]
//	String:   'single', "double" or bare_word
//	DateTime: 2024-01-02/03:04:05.678
//	Keyword:  true, false, null
//
// Whitespace is space, tab, CR and LF only. Bare strings end at whitespace
// or any of : , ( ) [ ] |.
//
// # Canonical Form
//
// Encode always produces the same text for equal trees: object keys sorted
// bytewise, strings single-quoted, floats in shortest round-trip form with a
// '.' or exponent, datetimes in UTC with millisecond precision. Canonical text
// never contains a raw newline, which the stream package relies on.
//
// # Errors
//
// Decode returns *DecodeError with the byte offset and line/column of the
// failure. Encode returns *EncodeError for values outside the format (NaN,
// infinities, years beyond 0000..9999).
package slon
