package types

import "fmt"

// field binds a schema field name to typed accessors on a concrete entity.
// set receives a value already coerced to typ.
type field struct {
	name string
	typ  ValueType
	get  func() Value
	set  func(Value)
}

func stringField(name string, p *string) field {
	return field{
		name: name,
		typ:  TypeString,
		get:  func() Value { return StringValue(*p) },
		set:  func(v Value) { *p = v.Str() },
	}
}

func intField(name string, p *int64) field {
	return field{
		name: name,
		typ:  TypeInt,
		get:  func() Value { return IntValue(*p) },
		set:  func(v Value) { *p = v.Int() },
	}
}

func floatField(name string, p *float64) field {
	return field{
		name: name,
		typ:  TypeFloat,
		get:  func() Value { return FloatValue(*p) },
		set:  func(v Value) { *p = v.Float() },
	}
}

func listField(name string, p *[]string) field {
	return field{
		name: name,
		typ:  TypeList,
		get:  func() Value { return ListValue(*p) },
		set:  func(v Value) { *p = v.List() },
	}
}

func lookupField(e Entity, name string) (field, bool) {
	for _, f := range e.fields() {
		if f.name == name {
			return f, true
		}
	}
	return field{}, false
}

// FieldNames returns the schema field names of e in declaration order.
func FieldNames(e Entity) []string {
	fs := e.fields()
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.name
	}
	return names
}

// FieldType returns the declared type of a schema field of e.
func FieldType(e Entity, name string) (ValueType, bool) {
	f, ok := lookupField(e, name)
	return f.typ, ok
}

func isReserved(name string) bool {
	switch name {
	case KeyID, KeyCreatedAt, KeyUpdatedAt, KeyKind:
		return true
	}
	return false
}

// GetField returns the value of a schema or dynamic field of e. The identity
// fields are returned as strings, timestamps in TimeFormat.
func GetField(e Entity, name string) (Value, bool) {
	b := e.Meta()
	switch name {
	case KeyID:
		return StringValue(b.ID), true
	case KeyCreatedAt:
		return StringValue(FormatTime(b.CreatedAt)), true
	case KeyUpdatedAt:
		return StringValue(FormatTime(b.UpdatedAt)), true
	case KeyKind:
		return StringValue(e.Kind()), true
	}
	if f, ok := lookupField(e, name); ok {
		return f.get(), true
	}
	return b.Extra.Get(name)
}

// SetField assigns v to the named field of e. Schema fields accept values
// that convert losslessly to their declared type and fail with
// ErrTypeMismatch otherwise; any other name is stored as a dynamic field.
// Identity fields fail with ErrReadOnlyField and text that is not valid
// UTF-8 with ErrInvalidArgument. UpdatedAt is not touched.
func SetField(e Entity, name string, v Value) error {
	if name == "" {
		return fmt.Errorf("%w: empty field name", ErrInvalidArgument)
	}
	if isReserved(name) {
		return fmt.Errorf("%w: %s", ErrReadOnlyField, name)
	}
	if !v.IsValid() {
		return fmt.Errorf("%w: invalid value for %s", ErrTypeMismatch, name)
	}
	if !v.validUTF8() {
		return fmt.Errorf("%w: %s is not valid UTF-8", ErrInvalidArgument, name)
	}
	if f, ok := lookupField(e, name); ok {
		cv, err := coerce(v, f.typ)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		f.set(cv)
		return nil
	}
	e.Meta().Extra.Set(name, v)
	return nil
}

// SetFieldText parses text into the declared type of a schema field and
// assigns it. Names outside the schema store text as a string field.
func SetFieldText(e Entity, name, text string) error {
	typ := TypeString
	if f, ok := lookupField(e, name); ok {
		typ = f.typ
	}
	v, err := ParseValue(typ, text)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return SetField(e, name, v)
}
