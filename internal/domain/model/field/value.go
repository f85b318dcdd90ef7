package field

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Value is a recorded value for one field on one day. It is a tagged union
// keyed by Type:
//
//	number   -> Number (nil means no value)
//	boolean  -> Bool   (nil means no value)
//	text, choice, datetime -> Text
type Value struct {
	Type   Type
	Number *float64
	Bool   *bool
	Text   string
}

// NumberValue returns a number value
func NumberValue(n float64) Value {
	return Value{Type: TypeNumber, Number: &n}
}

// NullNumber returns an empty number value
func NullNumber() Value {
	return Value{Type: TypeNumber}
}

// BooleanValue returns a boolean value
func BooleanValue(b bool) Value {
	return Value{Type: TypeBoolean, Bool: &b}
}

// NullBoolean returns an empty boolean value
func NullBoolean() Value {
	return Value{Type: TypeBoolean}
}

// TextValue returns a text value
func TextValue(s string) Value {
	return Value{Type: TypeText, Text: s}
}

// ChoiceValue returns a choice value
func ChoiceValue(s string) Value {
	return Value{Type: TypeChoice, Text: s}
}

// DatetimeValue returns a datetime value holding ISO date or datetime text
func DatetimeValue(s string) Value {
	return Value{Type: TypeDatetime, Text: s}
}

// IsNull reports whether a number or boolean value carries no data
func (v Value) IsNull() bool {
	switch v.Type {
	case TypeNumber:
		return v.Number == nil
	case TypeBoolean:
		return v.Bool == nil
	default:
		return false
	}
}

// Float returns the numeric payload when v is a non-null, finite number
func (v Value) Float() (float64, bool) {
	if v.Type != TypeNumber || v.Number == nil {
		return 0, false
	}
	n := *v.Number
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// Display renders v as the input text for field f.
// A value whose tag differs from the field type yields ErrTypeMismatch.
func (v Value) Display(f Field) (string, error) {
	if v.Type != f.Type {
		return "", fmt.Errorf("%w: field %s is %s, value is %s", ErrTypeMismatch, f.ID, f.Type, v.Type)
	}

	switch v.Type {
	case TypeNumber:
		n, ok := v.Float()
		if !ok {
			return "", nil
		}
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	case TypeBoolean:
		if v.Bool == nil {
			return "", nil
		}
		return strconv.FormatBool(*v.Bool), nil
	case TypeText, TypeChoice, TypeDatetime:
		return v.Text, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownType, v.Type)
	}
}

type valueJSON struct {
	Type  Type `json:"type"`
	Value any  `json:"value"`
}

// MarshalJSON encodes v as {"type": ..., "value": ...}.
// Non-finite numbers are written as null since JSON cannot represent them.
func (v Value) MarshalJSON() ([]byte, error) {
	out := valueJSON{Type: v.Type}
	switch v.Type {
	case TypeNumber:
		if n, ok := v.Float(); ok {
			out.Value = n
		}
	case TypeBoolean:
		if v.Bool != nil {
			out.Value = *v.Bool
		}
	case TypeText, TypeChoice, TypeDatetime:
		out.Value = v.Text
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, v.Type)
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts only values with a valid tagged shape
func (v *Value) UnmarshalJSON(data []byte) error {
	raw, err := DecodeRaw(data)
	if err != nil {
		return err
	}
	parsed, ok := ValidateValue(raw)
	if !ok {
		return ErrInvalidValue
	}
	*v = parsed
	return nil
}

// MarshalYAML mirrors the JSON shape
func (v Value) MarshalYAML() (interface{}, error) {
	out := map[string]any{"type": string(v.Type), "value": nil}
	switch v.Type {
	case TypeNumber:
		if n, ok := v.Float(); ok {
			out["value"] = n
		}
	case TypeBoolean:
		if v.Bool != nil {
			out["value"] = *v.Bool
		}
	case TypeText, TypeChoice, TypeDatetime:
		out["value"] = v.Text
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, v.Type)
	}
	return out, nil
}

// ValidateValue checks a generically decoded JSON value against the tagged
// value shapes. Number and boolean values may be null; the value key itself
// must be present.
func ValidateValue(raw any) (Value, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return Value{}, false
	}
	typ, ok := m["type"].(string)
	if !ok {
		return Value{}, false
	}
	payload, present := m["value"]
	if !present {
		return Value{}, false
	}

	switch Type(typ) {
	case TypeNumber:
		if payload == nil {
			return NullNumber(), true
		}
		n, ok := numberOf(payload)
		if !ok {
			return Value{}, false
		}
		return NumberValue(n), true
	case TypeBoolean:
		if payload == nil {
			return NullBoolean(), true
		}
		b, ok := payload.(bool)
		if !ok {
			return Value{}, false
		}
		return BooleanValue(b), true
	case TypeText, TypeChoice, TypeDatetime:
		s, ok := payload.(string)
		if !ok {
			return Value{}, false
		}
		return Value{Type: Type(typ), Text: s}, true
	default:
		return Value{}, false
	}
}
