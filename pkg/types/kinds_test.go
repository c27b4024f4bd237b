package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindsRegistered(t *testing.T) {
	assert.Equal(t, []string{
		KindAmenity, KindBaseModel, KindCity, KindPlace, KindReview, KindState, KindUser,
	}, Kinds())

	for _, kind := range Kinds() {
		t.Run(kind, func(t *testing.T) {
			e, err := New(kind)
			require.NoError(t, err)
			assert.Equal(t, kind, e.Kind())
			assert.NotEmpty(t, e.Meta().ID)
			assert.True(t, IsKnown(kind))
		})
	}

	_, err := New("Castle")
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.False(t, IsKnown("Castle"))
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	assert.Panics(t, func() {
		Register(KindUser, func() Entity { return NewUser() })
	})
	assert.Panics(t, func() { Register("", nil) })
}

func TestKeyOf(t *testing.T) {
	s := NewState()
	assert.Equal(t, "State."+s.ID, KeyOf(s))
	assert.Equal(t, "Review.42", Key(KindReview, "42"))
}

func TestKindSchemas(t *testing.T) {
	tests := []struct {
		kind   string
		fields []string
	}{
		{KindBaseModel, []string{}},
		{KindUser, []string{"email", "password", "first_name", "last_name"}},
		{KindState, []string{"name"}},
		{KindCity, []string{"state_id", "name"}},
		{KindAmenity, []string{"name"}},
		{KindPlace, []string{
			"city_id", "user_id", "name", "description",
			"number_rooms", "number_bathrooms", "max_guest", "price_by_night",
			"latitude", "longitude", "amenity_ids",
		}},
		{KindReview, []string{"place_id", "user_id", "text"}},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			e, err := New(tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.fields, FieldNames(e))

			d := ToDict(e)
			for _, name := range tt.fields {
				v, ok := GetField(e, name)
				require.True(t, ok, name)
				assert.True(t, v.IsZero(), "%s should default to empty", name)
				assert.Contains(t, d, name)
			}
		})
	}
}

func TestPlaceFieldTypes(t *testing.T) {
	p := NewPlace()
	want := map[string]ValueType{
		"city_id":        TypeString,
		"number_rooms":   TypeInt,
		"price_by_night": TypeInt,
		"latitude":       TypeFloat,
		"amenity_ids":    TypeList,
	}
	for name, typ := range want {
		got, ok := FieldType(p, name)
		require.True(t, ok, name)
		assert.Equal(t, typ, got, name)
	}
	_, ok := FieldType(p, "nickname")
	assert.False(t, ok)
}

func TestDefaultsAreNotShared(t *testing.T) {
	p1 := NewPlace()
	p2 := NewPlace()
	p1.AmenityIDs = append(p1.AmenityIDs, "a1")
	p1.Name = "Loft"

	assert.Empty(t, p2.AmenityIDs)
	assert.Empty(t, p2.Name)
	assert.NotNil(t, p2.AmenityIDs)
}

func TestSetField(t *testing.T) {
	t.Run("schema field", func(t *testing.T) {
		p := NewPlace()
		require.NoError(t, SetField(p, "number_rooms", IntValue(4)))
		require.NoError(t, SetField(p, "latitude", IntValue(12)))
		assert.Equal(t, int64(4), p.NumberRooms)
		assert.Equal(t, 12.0, p.Latitude)
	})

	t.Run("schema field type mismatch", func(t *testing.T) {
		p := NewPlace()
		err := SetField(p, "number_rooms", StringValue("four"))
		assert.ErrorIs(t, err, ErrTypeMismatch)
		assert.Zero(t, p.NumberRooms)
	})

	t.Run("dynamic field", func(t *testing.T) {
		s := NewState()
		require.NoError(t, SetField(s, "capital", StringValue("Sacramento")))
		v, ok := GetField(s, "capital")
		require.True(t, ok)
		assert.Equal(t, "Sacramento", v.Str())
	})

	t.Run("identity is read only", func(t *testing.T) {
		s := NewState()
		for _, name := range []string{KeyID, KeyCreatedAt, KeyUpdatedAt, KeyKind} {
			assert.ErrorIs(t, SetField(s, name, StringValue("x")), ErrReadOnlyField, name)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		assert.ErrorIs(t, SetField(NewState(), "", StringValue("x")), ErrInvalidArgument)
	})

	t.Run("invalid value", func(t *testing.T) {
		assert.ErrorIs(t, SetField(NewState(), "name", Value{}), ErrTypeMismatch)
	})

	t.Run("invalid UTF-8", func(t *testing.T) {
		s := NewState()
		assert.ErrorIs(t, SetField(s, "name", StringValue("a\x00\xffb<&>")), ErrInvalidArgument)
		assert.ErrorIs(t, SetField(s, "tags", ListValue([]string{"ok", "\xff"})), ErrInvalidArgument)
		assert.Empty(t, s.Name)
		_, found := GetField(s, "tags")
		assert.False(t, found)

		require.NoError(t, SetField(s, "name", StringValue("a\x00b<&>")), "control characters are valid UTF-8")
	})
}

func TestSetFieldText(t *testing.T) {
	p := NewPlace()
	require.NoError(t, SetFieldText(p, "max_guest", "6"))
	require.NoError(t, SetFieldText(p, "longitude", "-122.4"))
	require.NoError(t, SetFieldText(p, "amenity_ids", `["a1","a2"]`))
	require.NoError(t, SetFieldText(p, "nickname", "42"))

	assert.Equal(t, int64(6), p.MaxGuest)
	assert.Equal(t, -122.4, p.Longitude)
	assert.Equal(t, []string{"a1", "a2"}, p.AmenityIDs)

	v, ok := GetField(p, "nickname")
	require.True(t, ok)
	assert.Equal(t, TypeString, v.Type(), "names outside the schema keep text")

	assert.ErrorIs(t, SetFieldText(p, "max_guest", "many"), ErrTypeMismatch)
}
