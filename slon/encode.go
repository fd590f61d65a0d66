package slon

import (
	"fmt"
	"slices"
	"strings"
)

// EncodeError reports a value outside the representable set: a NaN or
// infinite float, a datetime outside years 0000-9999, or an unknown kind.
type EncodeError struct {
	Kind   Kind
	Reason string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("slon: cannot encode %s: %s", e.Kind, e.Reason)
}

// Encode converts a value tree to canonical SLON text. Object keys are
// emitted in ascending byte order regardless of insertion order.
func Encode(v *Value) (string, error) {
	e := &encoder{}
	if err := e.encode(v); err != nil {
		return "", err
	}
	return e.sb.String(), nil
}

// MustEncode is like Encode but panics on unencodable values.
func MustEncode(v *Value) string {
	s, err := Encode(v)
	if err != nil {
		panic(err)
	}
	return s
}

type encoder struct {
	sb strings.Builder
}

func (e *encoder) encode(v *Value) error {
	switch v.Kind() {
	case KindNull:
		e.sb.WriteString("null")

	case KindBool:
		if v.boolVal {
			e.sb.WriteString("true")
		} else {
			e.sb.WriteString("false")
		}

	case KindInt:
		e.sb.WriteString(canonInt(v))

	case KindFloat:
		s, ok := canonFloat(v.floatVal)
		if !ok {
			return &EncodeError{Kind: KindFloat, Reason: fmt.Sprintf("non-finite value %v", v.floatVal)}
		}
		e.sb.WriteString(s)

	case KindStr:
		e.sb.WriteString(quoteString(v.strVal))

	case KindDateTime:
		s, ok := canonDateTime(v.timeVal)
		if !ok {
			return &EncodeError{Kind: KindDateTime, Reason: fmt.Sprintf("year %d out of range", v.timeVal.UTC().Year())}
		}
		e.sb.WriteString(s)

	case KindArray:
		return e.encodeArray(v.arrayVal)

	case KindObject:
		return e.encodeObject(v.objectVal)

	default:
		return &EncodeError{Kind: v.kind, Reason: "unknown kind"}
	}
	return nil
}

func (e *encoder) encodeArray(items []*Value) error {
	e.sb.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			e.sb.WriteString(" | ")
		}
		if err := e.encode(item); err != nil {
			return err
		}
	}
	e.sb.WriteByte(']')
	return nil
}

func (e *encoder) encodeObject(members []Member) error {
	sorted := slices.Clone(members)
	slices.SortFunc(sorted, func(a, b Member) int {
		return strings.Compare(a.Key, b.Key)
	})

	e.sb.WriteByte('(')
	for i, m := range sorted {
		if i > 0 {
			e.sb.WriteString(", ")
		}
		e.sb.WriteString(canonKey(m.Key))
		e.sb.WriteString(": ")
		if err := e.encode(m.Value); err != nil {
			return err
		}
	}
	e.sb.WriteByte(')')
	return nil
}
