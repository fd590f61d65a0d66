package slon

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
	jsoniter "github.com/json-iterator/go"
)

// ============================================================
// JSON Bridge
// ============================================================
//
// JSON has no datetime type, so DateTime values become RFC 3339 strings
// with millisecond precision and come back as plain strings. Integers keep
// full precision in both directions.

// jsonTimeLayout is RFC 3339 with a fixed millisecond fraction.
const jsonTimeLayout = "2006-01-02T15:04:05.000Z07:00"

var jsonAPI = jsoniter.Config{
	UseNumber:   true,
	SortMapKeys: true,
	EscapeHTML:  false,
}.Froze()

// FromJSON converts JSON text to a Value tree.
func FromJSON(data []byte) (*Value, error) {
	var x any
	if err := jsonAPI.Unmarshal(data, &x); err != nil {
		return nil, fmt.Errorf("JSON parse error: %w", err)
	}
	return fromJSONValue(x)
}

func fromJSONValue(x any) (*Value, error) {
	switch val := x.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(val), nil
	case string:
		return Str(val), nil
	case json.Number:
		return fromJSONNumber(string(val))
	case float64:
		return fromJSONNumber(strconv.FormatFloat(val, 'g', -1, 64))
	case []any:
		items := make([]*Value, len(val))
		for i, elem := range val {
			item, err := fromJSONValue(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			items[i] = item
		}
		return Array(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]Member, len(keys))
		for i, k := range keys {
			item, err := fromJSONValue(val[k])
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			members[i] = Member{Key: k, Value: item}
		}
		return &Value{kind: KindObject, objectVal: members}, nil
	default:
		return nil, fmt.Errorf("unsupported JSON type: %T", x)
	}
}

// fromJSONNumber classifies a JSON number literal the way the SLON number
// grammar does: a fraction or exponent makes it a Float.
func fromJSONNumber(lit string) (*Value, error) {
	if strings.ContainsAny(lit, ".eE") {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, fmt.Errorf("number %s: %w", lit, err)
		}
		return Float(f), nil
	}
	if n, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return Int(n), nil
	}
	b, ok := new(apd.BigInt).SetString(lit, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer %s", lit)
	}
	return BigInt(b), nil
}

// ToJSON converts a Value tree to compact JSON with sorted object keys.
func ToJSON(v *Value) ([]byte, error) {
	x, err := toJSONValue(v)
	if err != nil {
		return nil, err
	}
	return jsonAPI.Marshal(x)
}

// ToJSONIndent is like ToJSON but indents nested values. The indent may
// only contain spaces.
func ToJSONIndent(v *Value, indent string) ([]byte, error) {
	if strings.Trim(indent, " ") != "" {
		return nil, fmt.Errorf("JSON indent must be spaces, got %q", indent)
	}
	x, err := toJSONValue(v)
	if err != nil {
		return nil, err
	}
	return jsonAPI.MarshalIndent(x, "", indent)
}

func toJSONValue(v *Value) (any, error) {
	switch v.Kind() {
	case KindNull:
		return nil, nil
	case KindBool:
		return v.boolVal, nil
	case KindInt:
		if v.bigVal != nil {
			return json.Number(v.bigVal.String()), nil
		}
		return v.intVal, nil
	case KindFloat:
		// The canonical literal keeps a '.' or exponent, so the value reads
		// back as a Float.
		lit, ok := canonFloat(v.floatVal)
		if !ok {
			return nil, &EncodeError{Kind: KindFloat, Reason: fmt.Sprintf("non-finite value %v", v.floatVal)}
		}
		return json.Number(lit), nil
	case KindStr:
		return v.strVal, nil
	case KindDateTime:
		return v.timeVal.UTC().Format(jsonTimeLayout), nil
	case KindArray:
		out := make([]any, len(v.arrayVal))
		for i, item := range v.arrayVal {
			x, err := toJSONValue(item)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			out[i] = x
		}
		return out, nil
	case KindObject:
		out := make(map[string]any, len(v.objectVal))
		for _, m := range v.objectVal {
			x, err := toJSONValue(m.Value)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", m.Key, err)
			}
			out[m.Key] = x
		}
		return out, nil
	default:
		return nil, &EncodeError{Kind: v.kind, Reason: "unknown kind"}
	}
}
