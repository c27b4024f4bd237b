package types

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueOf(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    Value
		wantErr error
	}{
		{name: "string", input: "x", want: StringValue("x")},
		{name: "int", input: 7, want: IntValue(7)},
		{name: "int64", input: int64(-3), want: IntValue(-3)},
		{name: "float64", input: 2.5, want: FloatValue(2.5)},
		{name: "json integer", input: json.Number("42"), want: IntValue(42)},
		{name: "json float", input: json.Number("42.0"), want: FloatValue(42)},
		{name: "json exponent", input: json.Number("1e3"), want: FloatValue(1000)},
		{name: "json integer beyond int64", input: json.Number("123456789012345678901"), want: FloatValue(123456789012345678901)},
		{name: "json negative beyond int64", input: json.Number("-99999999999999999999"), want: FloatValue(-99999999999999999999)},
		{name: "json malformed number", input: json.Number("12x"), wantErr: ErrTypeMismatch},
		{name: "string slice", input: []string{"a", "b"}, want: ListValue([]string{"a", "b"})},
		{name: "decoded list", input: []any{"a"}, want: ListValue([]string{"a"})},
		{name: "empty decoded list", input: []any{}, want: ListValue(nil)},
		{name: "list with number", input: []any{"a", 1.0}, wantErr: ErrTypeMismatch},
		{name: "nil", input: nil, wantErr: ErrTypeMismatch},
		{name: "bool", input: true, wantErr: ErrTypeMismatch},
		{name: "object", input: map[string]any{}, wantErr: ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValueOf(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name    string
		typ     ValueType
		text    string
		want    Value
		wantErr bool
	}{
		{name: "string kept verbatim", typ: TypeString, text: " 12 ", want: StringValue(" 12 ")},
		{name: "integer", typ: TypeInt, text: "4", want: IntValue(4)},
		{name: "integer rejects fraction", typ: TypeInt, text: "4.5", wantErr: true},
		{name: "float", typ: TypeFloat, text: "37.77", want: FloatValue(37.77)},
		{name: "float accepts integer text", typ: TypeFloat, text: "3", want: FloatValue(3)},
		{name: "float rejects words", typ: TypeFloat, text: "north", wantErr: true},
		{name: "float rejects NaN", typ: TypeFloat, text: "NaN", wantErr: true},
		{name: "list json", typ: TypeList, text: `["a", "b"]`, want: ListValue([]string{"a", "b"})},
		{name: "list comma separated", typ: TypeList, text: "a, b", want: ListValue([]string{"a", "b"})},
		{name: "list empty", typ: TypeList, text: "", want: ListValue(nil)},
		{name: "list bad json", typ: TypeList, text: "[1, 2]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseValue(tt.typ, tt.text)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTypeMismatch)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestValueJSONKeepsFloats(t *testing.T) {
	attrs := map[string]Value{
		"f": FloatValue(2),
		"i": IntValue(2),
		"s": StringValue("2"),
		"l": ListValue(nil),
	}
	data, err := json.Marshal(attrs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"f": 2.0, "i": 2, "s": "2", "l": []}`, string(data))
	assert.Contains(t, string(data), `"f":2.0`)

	var back map[string]Value
	require.NoError(t, json.Unmarshal(data, &back))
	for k, v := range attrs {
		assert.True(t, v.Equal(back[k]), "field %s: got %s, want %s", k, back[k], v)
	}
}

func TestValueListIsCopied(t *testing.T) {
	src := []string{"a"}
	v := ListValue(src)
	src[0] = "b"
	assert.Equal(t, []string{"a"}, v.List())

	out := v.List()
	out[0] = "c"
	assert.Equal(t, []string{"a"}, v.List())
}

func TestCoerce(t *testing.T) {
	v, err := coerce(IntValue(3), TypeFloat)
	require.NoError(t, err)
	assert.Equal(t, TypeFloat, v.Type())

	v, err = coerce(FloatValue(3), TypeInt)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v.Int())

	_, err = coerce(FloatValue(3.5), TypeInt)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = coerce(StringValue("3"), TypeInt)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestAttrsKeepInsertionOrder(t *testing.T) {
	var a Attrs
	a.Set("b", IntValue(1))
	a.Set("a", IntValue(2))
	a.Set("c", IntValue(3))
	a.Set("b", IntValue(4))

	assert.Equal(t, []string{"b", "a", "c"}, a.Keys())
	v, ok := a.Get("b")
	require.True(t, ok)
	assert.Equal(t, int64(4), v.Int())

	a.Delete("a")
	a.Delete("missing")
	assert.Equal(t, []string{"b", "c"}, a.Keys())
	assert.Equal(t, 2, a.Len())

	var seen []string
	for k := range a.All() {
		seen = append(seen, k)
		break
	}
	assert.Equal(t, []string{"b"}, seen)
}
