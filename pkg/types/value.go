package types

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"
)

// ValueType tags the variant held by a Value.
type ValueType uint8

// Value types. The zero ValueType is invalid so an unset Value is detectable.
const (
	TypeString ValueType = iota + 1
	TypeInt
	TypeFloat
	TypeList
)

// String returns the lowercase name of the value type.
func (t ValueType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeList:
		return "list"
	default:
		return "invalid"
	}
}

// Value is a small tagged union of the field types an entity can carry:
// string, integer, float, or list of strings.
type Value struct {
	typ ValueType
	s   string
	i   int64
	f   float64
	l   []string
}

// StringValue wraps s.
func StringValue(s string) Value { return Value{typ: TypeString, s: s} }

// IntValue wraps i.
func IntValue(i int64) Value { return Value{typ: TypeInt, i: i} }

// FloatValue wraps f.
func FloatValue(f float64) Value { return Value{typ: TypeFloat, f: f} }

// ListValue wraps a copy of l. A nil slice becomes an empty list.
func ListValue(l []string) Value {
	cp := make([]string, len(l))
	copy(cp, l)
	return Value{typ: TypeList, l: cp}
}

// Type returns the variant tag.
func (v Value) Type() ValueType { return v.typ }

// IsValid reports whether v holds one of the known variants.
func (v Value) IsValid() bool { return v.typ >= TypeString && v.typ <= TypeList }

// Str returns the string variant, or "" for other variants.
func (v Value) Str() string { return v.s }

// Int returns the integer variant, or 0 for other variants.
func (v Value) Int() int64 { return v.i }

// Float returns the float variant, or 0 for other variants.
func (v Value) Float() float64 { return v.f }

// List returns a copy of the list variant, or nil for other variants.
func (v Value) List() []string {
	if v.typ != TypeList {
		return nil
	}
	return slices.Clone(v.l)
}

// Any returns the Go native form used in dictionaries: string, int64,
// float64, or []string.
func (v Value) Any() any {
	switch v.typ {
	case TypeString:
		return v.s
	case TypeInt:
		return v.i
	case TypeFloat:
		return v.f
	case TypeList:
		return v.List()
	default:
		return nil
	}
}

// Equal reports whether v and o hold the same variant and value.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case TypeString:
		return v.s == o.s
	case TypeInt:
		return v.i == o.i
	case TypeFloat:
		return v.f == o.f
	case TypeList:
		return slices.Equal(v.l, o.l)
	default:
		return true
	}
}

// validUTF8 reports whether every string held by v is valid UTF-8.
func (v Value) validUTF8() bool {
	switch v.typ {
	case TypeString:
		return utf8.ValidString(v.s)
	case TypeList:
		for _, s := range v.l {
			if !utf8.ValidString(s) {
				return false
			}
		}
	}
	return true
}

// IsZero reports whether v holds the empty value of its type.
func (v Value) IsZero() bool {
	switch v.typ {
	case TypeString:
		return v.s == ""
	case TypeInt:
		return v.i == 0
	case TypeFloat:
		return v.f == 0
	case TypeList:
		return len(v.l) == 0
	default:
		return true
	}
}

// String renders v for display. Strings are quoted.
func (v Value) String() string {
	switch v.typ {
	case TypeString:
		return strconv.Quote(v.s)
	case TypeInt:
		return strconv.FormatInt(v.i, 10)
	case TypeFloat:
		return formatFloat(v.f)
	case TypeList:
		parts := make([]string, len(v.l))
		for i, s := range v.l {
			parts[i] = strconv.Quote(s)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "<invalid>"
	}
}

// MarshalJSON writes the native JSON form. Floats always carry a fractional
// part so they decode back as floats.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.typ {
	case TypeFloat:
		if math.IsInf(v.f, 0) || math.IsNaN(v.f) {
			return nil, fmt.Errorf("%w: non-finite float %v", ErrTypeMismatch, v.f)
		}
		return []byte(formatFloat(v.f)), nil
	case TypeString, TypeInt, TypeList:
		return json.Marshal(v.Any())
	default:
		return nil, fmt.Errorf("%w: invalid value", ErrTypeMismatch)
	}
}

// UnmarshalJSON decodes a JSON string, number, or array of strings.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ValueOf converts a Go native or decoded JSON value into a Value.
// json.Number text containing '.', 'e' or 'E' becomes a float, otherwise an
// integer; integers beyond the int64 range become floats. Returns ErrTypeMismatch for nil, booleans, objects, and lists
// holding anything but strings.
func ValueOf(x any) (Value, error) {
	switch t := x.(type) {
	case Value:
		if !t.IsValid() {
			return Value{}, fmt.Errorf("%w: invalid value", ErrTypeMismatch)
		}
		return t, nil
	case string:
		return StringValue(t), nil
	case int:
		return IntValue(int64(t)), nil
	case int32:
		return IntValue(int64(t)), nil
	case int64:
		return IntValue(t), nil
	case float32:
		return FloatValue(float64(t)), nil
	case float64:
		return FloatValue(t), nil
	case json.Number:
		return numberValue(t)
	case []string:
		return ListValue(t), nil
	case []any:
		l := make([]string, len(t))
		for i, item := range t {
			s, ok := item.(string)
			if !ok {
				return Value{}, fmt.Errorf("%w: list item %d is %T, want string", ErrTypeMismatch, i, item)
			}
			l[i] = s
		}
		return ListValue(l), nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported value %T", ErrTypeMismatch, x)
	}
}

// ParseValue parses text into a value of the given type. Lists accept either
// a JSON array of strings or comma-separated items.
func ParseValue(typ ValueType, text string) (Value, error) {
	switch typ {
	case TypeString:
		return StringValue(text), nil
	case TypeInt:
		i, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not an integer", ErrTypeMismatch, text)
		}
		return IntValue(i), nil
	case TypeFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return Value{}, fmt.Errorf("%w: %q is not a float", ErrTypeMismatch, text)
		}
		return FloatValue(f), nil
	case TypeList:
		trimmed := strings.TrimSpace(text)
		if strings.HasPrefix(trimmed, "[") {
			var l []string
			if err := json.Unmarshal([]byte(trimmed), &l); err != nil {
				return Value{}, fmt.Errorf("%w: %q is not a list of strings", ErrTypeMismatch, text)
			}
			return ListValue(l), nil
		}
		if trimmed == "" {
			return ListValue(nil), nil
		}
		parts := strings.Split(trimmed, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return ListValue(parts), nil
	default:
		return Value{}, fmt.Errorf("%w: invalid value type", ErrTypeMismatch)
	}
}

// coerce converts v to typ where the conversion is lossless. Integers widen
// to floats; floats with no fractional part narrow to integers.
func coerce(v Value, typ ValueType) (Value, error) {
	if v.typ == typ {
		return v, nil
	}
	switch {
	case v.typ == TypeInt && typ == TypeFloat:
		return FloatValue(float64(v.i)), nil
	case v.typ == TypeFloat && typ == TypeInt && v.f == math.Trunc(v.f) && math.Abs(v.f) < 1<<53:
		return IntValue(int64(v.f)), nil
	}
	return Value{}, fmt.Errorf("%w: got %s, want %s", ErrTypeMismatch, v.typ, typ)
}

func numberValue(n json.Number) (Value, error) {
	s := n.String()
	if strings.ContainsAny(s, ".eE") {
		f, err := n.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q", ErrTypeMismatch, s)
		}
		return FloatValue(f), nil
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		// Integral text beyond int64 is kept as the nearest float.
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return Value{}, fmt.Errorf("%w: %q", ErrTypeMismatch, s)
		}
		return FloatValue(f), nil
	}
	if err != nil {
		return Value{}, fmt.Errorf("%w: %q", ErrTypeMismatch, s)
	}
	return IntValue(i), nil
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}
