package slon

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// Kind identifies a SLON value variant.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindStr
	KindDateTime
	KindArray
	KindObject
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindStr:
		return "str"
	case KindDateTime:
		return "datetime"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a node of a SLON value tree.
//
// A nil *Value is treated as null everywhere. Values built by the decoder
// or the constructors below are not shared between trees.
type Value struct {
	kind Kind

	boolVal  bool
	intVal   int64
	bigVal   *apd.BigInt // only for integers outside the int64 range
	floatVal float64
	strVal   string
	timeVal  time.Time

	arrayVal  []*Value
	objectVal []Member
}

// Member is a key-value pair of an object.
type Member struct {
	Key   string
	Value *Value
}

// Position is a location in SLON source text.
type Position struct {
	Offset int // byte offset, 0-based
	Line   int // 1-based
	Column int // 1-based, in runes
}

// String returns position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ============================================================
// Constructors
// ============================================================

// Null creates a null value.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool creates a boolean value.
func Bool(v bool) *Value {
	return &Value{kind: KindBool, boolVal: v}
}

// Int creates an integer value.
func Int(v int64) *Value {
	return &Value{kind: KindInt, intVal: v}
}

// BigInt creates an integer value of arbitrary precision. Integers that fit
// in an int64 are stored as if created with Int. The argument is copied.
func BigInt(v *apd.BigInt) *Value {
	if v == nil {
		return Int(0)
	}
	if v.IsInt64() {
		return Int(v.Int64())
	}
	return &Value{kind: KindInt, bigVal: new(apd.BigInt).Set(v)}
}

// Float creates a float value.
func Float(v float64) *Value {
	return &Value{kind: KindFloat, floatVal: v}
}

// Str creates a string value.
func Str(v string) *Value {
	return &Value{kind: KindStr, strVal: v}
}

// DateTime creates a datetime value. The instant is converted to UTC and
// truncated to millisecond precision, the only form SLON can carry.
func DateTime(t time.Time) *Value {
	return &Value{kind: KindDateTime, timeVal: t.UTC().Truncate(time.Millisecond)}
}

// Array creates an array value.
func Array(items ...*Value) *Value {
	if items == nil {
		items = []*Value{}
	}
	return &Value{kind: KindArray, arrayVal: items}
}

// Object creates an object value. A repeated key overwrites the earlier
// value but keeps the earlier position.
func Object(members ...Member) *Value {
	v := &Value{kind: KindObject, objectVal: make([]Member, 0, len(members))}
	for _, m := range members {
		v.Set(m.Key, m.Value)
	}
	return v
}

// M creates a Member for use in Object construction.
func M(key string, value *Value) Member {
	return Member{Key: key, Value: value}
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the value kind.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull returns true if this is a null value.
func (v *Value) IsNull() bool {
	return v == nil || v.kind == KindNull
}

func (v *Value) expect(k Kind) error {
	if v == nil {
		return fmt.Errorf("slon: nil value")
	}
	if v.kind != k {
		return fmt.Errorf("slon: expected %s, got %s", k, v.kind)
	}
	return nil
}

// AsBool returns the boolean value.
func (v *Value) AsBool() (bool, error) {
	if err := v.expect(KindBool); err != nil {
		return false, err
	}
	return v.boolVal, nil
}

// AsInt returns the integer value. It fails for integers outside the
// int64 range; use AsBigInt for those.
func (v *Value) AsInt() (int64, error) {
	if err := v.expect(KindInt); err != nil {
		return 0, err
	}
	if v.bigVal != nil {
		return 0, fmt.Errorf("slon: integer %s overflows int64", v.bigVal)
	}
	return v.intVal, nil
}

// AsBigInt returns a copy of the integer value at arbitrary precision.
func (v *Value) AsBigInt() (*apd.BigInt, error) {
	if err := v.expect(KindInt); err != nil {
		return nil, err
	}
	if v.bigVal != nil {
		return new(apd.BigInt).Set(v.bigVal), nil
	}
	return apd.NewBigInt(v.intVal), nil
}

// IsBig reports whether v is an integer outside the int64 range.
func (v *Value) IsBig() bool {
	return v != nil && v.kind == KindInt && v.bigVal != nil
}

// AsFloat returns the float value.
func (v *Value) AsFloat() (float64, error) {
	if err := v.expect(KindFloat); err != nil {
		return 0, err
	}
	return v.floatVal, nil
}

// AsStr returns the string value.
func (v *Value) AsStr() (string, error) {
	if err := v.expect(KindStr); err != nil {
		return "", err
	}
	return v.strVal, nil
}

// AsDateTime returns the datetime value, always in UTC.
func (v *Value) AsDateTime() (time.Time, error) {
	if err := v.expect(KindDateTime); err != nil {
		return time.Time{}, err
	}
	return v.timeVal, nil
}

// AsArray returns the array elements.
func (v *Value) AsArray() ([]*Value, error) {
	if err := v.expect(KindArray); err != nil {
		return nil, err
	}
	return v.arrayVal, nil
}

// AsObject returns the object members in insertion order.
func (v *Value) AsObject() ([]Member, error) {
	if err := v.expect(KindObject); err != nil {
		return nil, err
	}
	return v.objectVal, nil
}

// Len returns the length of an array or object.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindArray:
		return len(v.arrayVal)
	case KindObject:
		return len(v.objectVal)
	default:
		return 0
	}
}

// Get returns a member value by key, or nil if v is not an object or has
// no such key.
func (v *Value) Get(key string) *Value {
	if v.Kind() != KindObject {
		return nil
	}
	for _, m := range v.objectVal {
		if m.Key == key {
			return m.Value
		}
	}
	return nil
}

// Has reports whether v is an object with the given key.
func (v *Value) Has(key string) bool {
	if v.Kind() != KindObject {
		return false
	}
	for _, m := range v.objectVal {
		if m.Key == key {
			return true
		}
	}
	return false
}

// Keys returns the object keys in insertion order.
func (v *Value) Keys() []string {
	if v.Kind() != KindObject {
		return nil
	}
	keys := make([]string, len(v.objectVal))
	for i, m := range v.objectVal {
		keys[i] = m.Key
	}
	return keys
}

// Index returns the i-th element of an array.
func (v *Value) Index(i int) (*Value, error) {
	if v.Kind() != KindArray {
		return nil, fmt.Errorf("slon: not an array")
	}
	if i < 0 || i >= len(v.arrayVal) {
		return nil, fmt.Errorf("slon: index %d out of bounds (len=%d)", i, len(v.arrayVal))
	}
	return v.arrayVal[i], nil
}

// ============================================================
// Mutators
// ============================================================

// Set sets a member value on an object. An existing key keeps its position.
func (v *Value) Set(key string, val *Value) {
	if v.Kind() != KindObject {
		panic("slon: cannot set on non-object")
	}
	for i := range v.objectVal {
		if v.objectVal[i].Key == key {
			v.objectVal[i].Value = val
			return
		}
	}
	v.objectVal = append(v.objectVal, Member{Key: key, Value: val})
}

// Append adds a value to an array.
func (v *Value) Append(val *Value) {
	if v.Kind() != KindArray {
		panic("slon: cannot append to non-array")
	}
	v.arrayVal = append(v.arrayVal, val)
}

// ============================================================
// Equality
// ============================================================

// Equal reports whether v and o are structurally equal. Objects compare as
// mappings: member order is ignored. Floats compare bit for bit, so 0.0 and
// -0.0 differ.
func (v *Value) Equal(o *Value) bool {
	if v.Kind() != o.Kind() {
		return false
	}
	switch v.Kind() {
	case KindNull:
		return true
	case KindBool:
		return v.boolVal == o.boolVal
	case KindInt:
		if v.bigVal == nil && o.bigVal == nil {
			return v.intVal == o.intVal
		}
		if v.bigVal == nil || o.bigVal == nil {
			return false
		}
		return v.bigVal.Cmp(o.bigVal) == 0
	case KindFloat:
		return math.Float64bits(v.floatVal) == math.Float64bits(o.floatVal)
	case KindStr:
		return v.strVal == o.strVal
	case KindDateTime:
		return v.timeVal.Equal(o.timeVal)
	case KindArray:
		if len(v.arrayVal) != len(o.arrayVal) {
			return false
		}
		for i := range v.arrayVal {
			if !v.arrayVal[i].Equal(o.arrayVal[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.objectVal) != len(o.objectVal) {
			return false
		}
		for _, m := range v.objectVal {
			if !o.Has(m.Key) || !m.Value.Equal(o.Get(m.Key)) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String returns the canonical SLON encoding of v. Values that cannot be
// encoded render as a bracketed error note instead.
func (v *Value) String() string {
	s, err := Encode(v)
	if err != nil {
		return "<" + strings.TrimPrefix(err.Error(), "slon: ") + ">"
	}
	return s
}
