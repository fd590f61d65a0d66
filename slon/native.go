package slon

import (
	"fmt"
	"math/big"
	"reflect"
	"sort"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// ============================================================
// Native Go Bridge
// ============================================================
//
// Converts between plain Go values and Value trees:
//   - nil, bool, string, time.Time map to their SLON counterparts
//   - every integer kind, *big.Int and *apd.BigInt become Integer
//   - float32/float64 become Float
//   - slices and arrays become Array, string-keyed maps become Object

// Marshal encodes a Go value as SLON text.
func Marshal(x any) (string, error) {
	v, err := FromGo(x)
	if err != nil {
		return "", err
	}
	return Encode(v)
}

// Unmarshal decodes SLON text into plain Go values; see Value.Interface.
func Unmarshal(text string) (any, error) {
	v, err := Decode(text)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// FromGo converts a Go value to a Value tree.
func FromGo(x any) (*Value, error) {
	switch val := x.(type) {
	case nil:
		return Null(), nil
	case *Value:
		if val == nil {
			return Null(), nil
		}
		return val, nil
	case bool:
		return Bool(val), nil
	case string:
		return Str(val), nil
	case int:
		return Int(int64(val)), nil
	case int8:
		return Int(int64(val)), nil
	case int16:
		return Int(int64(val)), nil
	case int32:
		return Int(int64(val)), nil
	case int64:
		return Int(val), nil
	case uint:
		return fromUint(uint64(val)), nil
	case uint8:
		return Int(int64(val)), nil
	case uint16:
		return Int(int64(val)), nil
	case uint32:
		return Int(int64(val)), nil
	case uint64:
		return fromUint(val), nil
	case *big.Int:
		if val == nil {
			return Null(), nil
		}
		return BigInt(new(apd.BigInt).SetMathBigInt(val)), nil
	case *apd.BigInt:
		if val == nil {
			return Null(), nil
		}
		return BigInt(val), nil
	case float32:
		return Float(float64(val)), nil
	case float64:
		return Float(val), nil
	case time.Time:
		return DateTime(val), nil
	}
	return fromReflect(reflect.ValueOf(x))
}

func fromUint(u uint64) *Value {
	if u <= 1<<63-1 {
		return Int(int64(u))
	}
	return BigInt(new(apd.BigInt).SetMathBigInt(new(big.Int).SetUint64(u)))
}

func fromReflect(rv reflect.Value) (*Value, error) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return FromGo(rv.Elem().Interface())

	case reflect.Slice:
		if rv.IsNil() {
			return Null(), nil
		}
		return fromReflectList(rv)

	case reflect.Array:
		return fromReflectList(rv)

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("slon: unsupported map key type %s", rv.Type().Key())
		}
		if rv.IsNil() {
			return Null(), nil
		}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		obj := Object()
		for _, k := range keys {
			item, err := FromGo(rv.MapIndex(k).Interface())
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k.String(), err)
			}
			obj.Set(k.String(), item)
		}
		return obj, nil

	// Named scalar types such as `type Level int`.
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.String:
		return Str(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fromUint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	}

	if !rv.IsValid() {
		return Null(), nil
	}
	return nil, fmt.Errorf("slon: unsupported type %s", rv.Type())
}

func fromReflectList(rv reflect.Value) (*Value, error) {
	items := make([]*Value, rv.Len())
	for i := range items {
		item, err := FromGo(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		items[i] = item
	}
	return Array(items...), nil
}

// Interface converts v to plain Go values: nil, bool, int64 (or *apd.BigInt
// beyond int64), float64, string, time.Time, []any and map[string]any.
func (v *Value) Interface() any {
	switch v.Kind() {
	case KindNull:
		return nil
	case KindBool:
		return v.boolVal
	case KindInt:
		if v.bigVal != nil {
			return new(apd.BigInt).Set(v.bigVal)
		}
		return v.intVal
	case KindFloat:
		return v.floatVal
	case KindStr:
		return v.strVal
	case KindDateTime:
		return v.timeVal
	case KindArray:
		out := make([]any, len(v.arrayVal))
		for i, item := range v.arrayVal {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.objectVal))
		for _, m := range v.objectVal {
			out[m.Key] = m.Value.Interface()
		}
		return out
	default:
		return nil
	}
}
