package field

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	// ErrUnknownType is returned when a type tag falls outside the closed set of field types
	ErrUnknownType = errors.New("unknown field type")
	// ErrTypeMismatch is returned when a stored value's tag differs from its field's type
	ErrTypeMismatch = errors.New("field value type mismatch")
	// ErrInvalidValue is returned when a value does not have a valid tagged shape
	ErrInvalidValue = errors.New("invalid field value")
)

// Type is the value type of a custom field
type Type string

const (
	TypeNumber   Type = "number"
	TypeBoolean  Type = "boolean"
	TypeText     Type = "text"
	TypeChoice   Type = "choice"
	TypeDatetime Type = "datetime"
)

// Types lists every field type in presentation order
var Types = []Type{TypeNumber, TypeBoolean, TypeChoice, TypeText, TypeDatetime}

// String returns the string representation
func (t Type) String() string {
	return string(t)
}

// IsValid reports whether t is one of the known field types
func (t Type) IsValid() bool {
	switch t {
	case TypeNumber, TypeBoolean, TypeText, TypeChoice, TypeDatetime:
		return true
	default:
		return false
	}
}

// Label returns the human readable name of the type
func (t Type) Label() string {
	switch t {
	case TypeNumber:
		return "Number"
	case TypeBoolean:
		return "Yes/No"
	case TypeChoice:
		return "Multiple Choice"
	case TypeText:
		return "Text"
	case TypeDatetime:
		return "Date/Time"
	default:
		return string(t)
	}
}

// ParseType converts a string to a Type
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
	return t, nil
}

// Field is a user-defined trackable attribute with a fixed value type.
// Fields are append-only: once created they are never renamed, retyped or removed.
type Field struct {
	ID      string
	Name    string
	Type    Type
	Options []string // choice only; nil for every other type
}

// New creates a field definition with a fresh time-derived ID.
// Options are kept for choice fields and dropped for all other types.
func New(name string, typ Type, options []string) (Field, error) {
	return NewAt(time.Now(), name, typ, options)
}

// NewAt is New with an explicit creation time
func NewAt(now time.Time, name string, typ Type, options []string) (Field, error) {
	f := Field{
		ID:   newID(now),
		Name: name,
		Type: typ,
	}

	switch typ {
	case TypeNumber, TypeBoolean, TypeText, TypeDatetime:
	case TypeChoice:
		f.Options = append(make([]string, 0, len(options)), options...)
	default:
		return Field{}, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}

	return f, nil
}

// HasOption reports whether opt is one of the field's declared options
func (f Field) HasOption(opt string) bool {
	for _, o := range f.Options {
		if o == opt {
			return true
		}
	}
	return false
}

type fieldJSON struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Type    Type      `json:"type"`
	Options *[]string `json:"options,omitempty"`
}

// MarshalJSON writes options only for choice fields, always as an array
func (f Field) MarshalJSON() ([]byte, error) {
	out := fieldJSON{ID: f.ID, Name: f.Name, Type: f.Type}
	if f.Type == TypeChoice {
		opts := f.Options
		if opts == nil {
			opts = []string{}
		}
		out.Options = &opts
	}
	return json.Marshal(out)
}

// MarshalYAML mirrors the JSON shape
func (f Field) MarshalYAML() (interface{}, error) {
	out := map[string]any{"id": f.ID, "name": f.Name, "type": string(f.Type)}
	if f.Type == TypeChoice {
		opts := f.Options
		if opts == nil {
			opts = []string{}
		}
		out["options"] = opts
	}
	return out, nil
}

// UnmarshalJSON accepts only structurally valid field definitions
func (f *Field) UnmarshalJSON(data []byte) error {
	raw, err := DecodeRaw(data)
	if err != nil {
		return err
	}
	parsed, ok := Validate(raw)
	if !ok {
		return fmt.Errorf("invalid field definition")
	}
	*f = parsed
	return nil
}

// Validate checks a generically decoded JSON value against the field
// definition shape: string id, string name, a known type and, for choice
// fields, an options array of strings.
func Validate(v any) (Field, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return Field{}, false
	}
	id, ok := m["id"].(string)
	if !ok {
		return Field{}, false
	}
	name, ok := m["name"].(string)
	if !ok {
		return Field{}, false
	}
	typ, ok := m["type"].(string)
	if !ok {
		return Field{}, false
	}

	f := Field{ID: id, Name: name, Type: Type(typ)}
	switch f.Type {
	case TypeNumber, TypeBoolean, TypeText, TypeDatetime:
		return f, true
	case TypeChoice:
		rawOpts, ok := m["options"].([]any)
		if !ok {
			return Field{}, false
		}
		f.Options = make([]string, 0, len(rawOpts))
		for _, o := range rawOpts {
			s, ok := o.(string)
			if !ok {
				return Field{}, false
			}
			f.Options = append(f.Options, s)
		}
		return f, true
	default:
		return Field{}, false
	}
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// newID returns a ULID for the given time. IDs generated within the same
// millisecond stay ordered thanks to the shared monotonic entropy source.
func newID(now time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(now), entropy).String()
}
