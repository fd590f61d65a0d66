package slon

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"
)

func TestFromJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *Value
	}{
		{"null", `null`, Null()},
		{"bool", `false`, Bool(false)},
		{"int", `42`, Int(42)},
		{"negative int", `-7`, Int(-7)},
		{"big int", `123456789012345678901234567890`, mustBig(t, "123456789012345678901234567890")},
		{"float", `1.5`, Float(1.5)},
		{"float with exponent", `1e3`, Float(1000)},
		{"integral float", `2.0`, Float(2)},
		{"string", `"a\nb"`, Str("a\nb")},
		{"array", `[1,"x",null]`, Array(Int(1), Str("x"), Null())},
		{"object", `{"b":1,"a":{"c":[]}}`, Object(M("a", Object(M("c", Array()))), M("b", Int(1)))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromJSON([]byte(tt.in))
			qt.Assert(t, qt.IsNil(err))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FromJSON mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromJSON_KeysInsertedSorted(t *testing.T) {
	v, err := FromJSON([]byte(`{"z":1,"m":2,"a":3}`))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(v.Keys(), []string{"a", "m", "z"}))
}

func TestFromJSON_Invalid(t *testing.T) {
	_, err := FromJSON([]byte(`{"a":`))
	qt.Assert(t, qt.ErrorMatches(err, `JSON parse error: .*`))
}

func TestToJSON(t *testing.T) {
	stamp := time.Date(2024, 1, 2, 3, 4, 5, 678_000_000, time.UTC)
	tests := []struct {
		name string
		in   *Value
		want string
	}{
		{"null", Null(), `null`},
		{"bool", Bool(true), `true`},
		{"int", Int(-3), `-3`},
		{"big int", mustBig(t, "100000000000000000000"), `100000000000000000000`},
		{"float keeps fraction", Float(1), `1.0`},
		{"float exponent", Float(1e20), `1e+20`},
		{"string", Str("tab\there <b>"), `"tab\there <b>"`},
		{"datetime", DateTime(stamp), `"2024-01-02T03:04:05.678Z"`},
		{"array", Array(Int(1), Null()), `[1,null]`},
		{"object sorted", Object(M("b", Int(1)), M("a", Array())), `{"a":[],"b":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToJSON(tt.in)
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(string(got), tt.want))
		})
	}
}

func TestToJSON_Errors(t *testing.T) {
	_, err := ToJSON(Array(Float(math.NaN())))
	qt.Assert(t, qt.ErrorMatches(err, `array\[0\]: slon: cannot encode float: non-finite value NaN`))

	_, err = ToJSONIndent(Null(), "\t")
	qt.Assert(t, qt.ErrorMatches(err, `JSON indent must be spaces, got "\\t"`))
}

func TestToJSONIndent(t *testing.T) {
	v := Object(M("a", Array(Int(1), Int(2))), M("b", Str("x")))
	out, err := ToJSONIndent(v, "  ")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(strings.Contains(string(out), "\n  ")))

	back, err := FromJSON(out)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(back.Equal(v)))
}

// Every value without a DateTime survives SLON -> JSON -> SLON unchanged.
func TestJSON_RoundTrip(t *testing.T) {
	inputs := []string{
		"(a: 1, b: [1.5 | -0.0 | 1e+300], c: 'text', d: null, e: true)",
		"[100000000000000000000 | -9223372036854775808 | 0.0001]",
		"('': (nested: ()))",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			v, err := Decode(in)
			qt.Assert(t, qt.IsNil(err))
			js, err := ToJSON(v)
			qt.Assert(t, qt.IsNil(err))
			back, err := FromJSON(js)
			qt.Assert(t, qt.IsNil(err), qt.Commentf("json: %s", js))
			qt.Assert(t, qt.Equals(MustEncode(back), in))
		})
	}
}
