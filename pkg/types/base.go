package types

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Reserved dictionary keys shared by every entity kind.
const (
	KeyID        = "id"
	KeyCreatedAt = "created_at"
	KeyUpdatedAt = "updated_at"
	KeyKind      = "__class__"
)

// TimeFormat is the ISO-8601 layout timestamps are written in. Parsing also
// accepts a missing fractional part and RFC 3339 text with a zone.
const TimeFormat = "2006-01-02T15:04:05.000000"

// clock is overridden in tests.
var clock = time.Now

// now returns the current instant in UTC at the precision TimeFormat keeps,
// so a timestamp survives a dictionary round trip unchanged.
func now() time.Time {
	return clock().UTC().Truncate(time.Microsecond)
}

// Entity is implemented by every entity kind. Concrete kinds embed Base and
// declare their schema fields.
type Entity interface {
	// Kind returns the kind name recorded in the __class__ key.
	Kind() string

	// Meta returns the identity and timestamp block of the entity.
	Meta() *Base

	// String renders "[<Kind>] (<id>) {...}".
	String() string

	fields() []field
}

// Base carries the identity, the two timestamps, and the fields attached at
// runtime beyond the kind's schema.
type Base struct {
	ID        string    // UUID, assigned once.
	CreatedAt time.Time // Set at creation, never changed.
	UpdatedAt time.Time // Refreshed by Touch.
	Extra     Attrs     // Dynamic fields in insertion order.
}

// NewBase returns a Base with a fresh UUID and both timestamps set to now.
func NewBase() Base {
	t := now()
	return Base{
		ID:        generateUUID(),
		CreatedAt: t,
		UpdatedAt: t,
	}
}

// Meta returns b. Embedding Base gives every kind its Entity.Meta method.
func (b *Base) Meta() *Base { return b }

// Touch refreshes UpdatedAt. The new value is strictly after the previous
// one even if the clock has not moved.
func (b *Base) Touch() {
	t := now()
	if !t.After(b.UpdatedAt) {
		t = b.UpdatedAt.Add(time.Microsecond)
	}
	b.UpdatedAt = t
}

// generateUUID generates a new UUID v7 for entity IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// FormatTime renders t in TimeFormat.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// ParseTime parses ISO-8601 text written by FormatTime, or RFC 3339 text.
// Returns ErrInvalidTimestamp on failure.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// ToDict returns a new map holding every field of e: id, both timestamps as
// ISO text, the __class__ tag, every schema field in its native type, and
// every dynamic field. The map shares nothing with e.
func ToDict(e Entity) map[string]any {
	b := e.Meta()
	fs := e.fields()
	d := make(map[string]any, 4+len(fs)+b.Extra.Len())
	for name, v := range b.Extra.All() {
		d[name] = v.Any()
	}
	for _, f := range fs {
		d[f.name] = f.get().Any()
	}
	d[KeyID] = b.ID
	d[KeyCreatedAt] = FormatTime(b.CreatedAt)
	d[KeyUpdatedAt] = FormatTime(b.UpdatedAt)
	d[KeyKind] = e.Kind()
	return d
}

// FromDict reconstructs an entity of the given kind from a dictionary
// produced by ToDict. The __class__ key is discarded. Identity fields that
// are absent keep freshly generated values, and an absent timestamp is
// raised to the given one when it would otherwise precede it; identity
// fields present with a nil value fail with ErrInvalidArgument. Schema fields are coerced to their
// declared type and any other key becomes a dynamic field. The entity is not
// registered with any store.
func FromDict(kind string, d map[string]any) (Entity, error) {
	e, err := New(kind)
	if err != nil {
		return nil, err
	}
	b := e.Meta()

	for _, k := range []string{KeyID, KeyCreatedAt, KeyUpdatedAt} {
		if v, ok := d[k]; ok && v == nil {
			return nil, fmt.Errorf("%w: %s is null", ErrInvalidArgument, k)
		}
	}

	_, hasCreated := d[KeyCreatedAt]
	_, hasUpdated := d[KeyUpdatedAt]
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		v := d[k]
		switch k {
		case KeyKind:
			continue
		case KeyID:
			id, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%w: id is %T, want string", ErrTypeMismatch, v)
			}
			if id == "" || !utf8.ValidString(id) {
				return nil, fmt.Errorf("%w: id is empty or not valid UTF-8", ErrInvalidArgument)
			}
			b.ID = id
		case KeyCreatedAt, KeyUpdatedAt:
			t, err := timeOf(v)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			if k == KeyCreatedAt {
				b.CreatedAt = t
			} else {
				b.UpdatedAt = t
			}
		default:
			val, err := ValueOf(v)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			if !val.validUTF8() {
				return nil, fmt.Errorf("%s: %w: not valid UTF-8", k, ErrInvalidArgument)
			}
			if f, ok := lookupField(e, k); ok {
				if val, err = coerce(val, f.typ); err != nil {
					return nil, fmt.Errorf("%s: %w", k, err)
				}
				f.set(val)
				continue
			}
			b.Extra.Set(k, val)
		}
	}

	if b.UpdatedAt.Before(b.CreatedAt) {
		switch {
		case hasCreated && hasUpdated:
			return nil, fmt.Errorf("%w: updated_at precedes created_at", ErrInvalidArgument)
		case hasCreated:
			b.UpdatedAt = b.CreatedAt
		default:
			b.CreatedAt = b.UpdatedAt
		}
	}
	return e, nil
}

func timeOf(v any) (time.Time, error) {
	switch t := v.(type) {
	case string:
		return ParseTime(t)
	case time.Time:
		return t.UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %T", ErrInvalidTimestamp, v)
	}
}

// Describe renders "[<Kind>] (<id>) {k: v, ...}". Keys appear in a stable
// order: id, created_at, updated_at, schema fields holding a non-default
// value, then dynamic fields in insertion order.
func Describe(e Entity) string {
	b := e.Meta()
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] (%s) {", e.Kind(), b.ID)
	fmt.Fprintf(&sb, "%s: %q, %s: %s, %s: %s",
		KeyID, b.ID,
		KeyCreatedAt, FormatTime(b.CreatedAt),
		KeyUpdatedAt, FormatTime(b.UpdatedAt))
	for _, f := range e.fields() {
		v := f.get()
		if v.IsZero() {
			continue
		}
		fmt.Fprintf(&sb, ", %s: %s", f.name, v)
	}
	for name, v := range b.Extra.All() {
		fmt.Fprintf(&sb, ", %s: %s", name, v)
	}
	sb.WriteByte('}')
	return sb.String()
}
