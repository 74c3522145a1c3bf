package ast

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ValueType represents the variant of a Value.
type ValueType string

const (
	ValueTypeString  ValueType = "string"
	ValueTypeNumber  ValueType = "number"
	ValueTypeBoolean ValueType = "boolean"
	ValueTypeArray   ValueType = "array"
	ValueTypeObject  ValueType = "object"
)

// Field is a single key/value pair of an object value, in source order.
type Field struct {
	Key      string
	Value    *Value
	Location Location // Location of the key
}

// Value is a literal produced by the grammar layer. It is immutable once built:
// all variants are reachable only through the accessor methods.
type Value struct {
	typ      ValueType
	str      string
	num      float64
	boolean  bool
	items    []*Value
	fields   []Field
	location Location
}

// StringValue creates a string value.
func StringValue(s string, loc Location) *Value {
	return &Value{typ: ValueTypeString, str: s, location: loc}
}

// NumberValue creates a number value.
func NumberValue(n float64, loc Location) *Value {
	return &Value{typ: ValueTypeNumber, num: n, location: loc}
}

// BoolValue creates a boolean value.
func BoolValue(b bool, loc Location) *Value {
	return &Value{typ: ValueTypeBoolean, boolean: b, location: loc}
}

// ArrayValue creates an array value. The slice is copied.
func ArrayValue(items []*Value, loc Location) *Value {
	return &Value{typ: ValueTypeArray, items: append([]*Value(nil), items...), location: loc}
}

// ObjectValue creates an object value preserving field order. The slice is copied.
func ObjectValue(fields []Field, loc Location) *Value {
	return &Value{typ: ValueTypeObject, fields: append([]Field(nil), fields...), location: loc}
}

// Type returns the variant of the value.
func (v *Value) Type() ValueType { return v.typ }

// Location returns where the value starts in the source.
func (v *Value) Location() Location { return v.location }

// AsString returns the string content and true if the value is a string.
func (v *Value) AsString() (string, bool) {
	if v == nil || v.typ != ValueTypeString {
		return "", false
	}
	return v.str, true
}

// AsNumber returns the number and true if the value is a number.
func (v *Value) AsNumber() (float64, bool) {
	if v == nil || v.typ != ValueTypeNumber {
		return 0, false
	}
	return v.num, true
}

// AsBool returns the boolean and true if the value is a boolean.
func (v *Value) AsBool() (bool, bool) {
	if v == nil || v.typ != ValueTypeBoolean {
		return false, false
	}
	return v.boolean, true
}

// AsArray returns a copy of the items and true if the value is an array.
func (v *Value) AsArray() ([]*Value, bool) {
	if v == nil || v.typ != ValueTypeArray {
		return nil, false
	}
	return append([]*Value(nil), v.items...), true
}

// AsObject returns a copy of the fields and true if the value is an object.
func (v *Value) AsObject() ([]Field, bool) {
	if v == nil || v.typ != ValueTypeObject {
		return nil, false
	}
	return append([]Field(nil), v.fields...), true
}

// Len returns the number of items (array) or fields (object), and 0 otherwise.
func (v *Value) Len() int {
	switch v.typ {
	case ValueTypeArray:
		return len(v.items)
	case ValueTypeObject:
		return len(v.fields)
	}
	return 0
}

// Equal reports whether two values are structurally equal, ignoring locations.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case ValueTypeString:
		return v.str == other.str
	case ValueTypeNumber:
		return v.num == other.num
	case ValueTypeBoolean:
		return v.boolean == other.boolean
	case ValueTypeArray:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case ValueTypeObject:
		if len(v.fields) != len(other.fields) {
			return false
		}
		for i := range v.fields {
			if v.fields[i].Key != other.fields[i].Key || !v.fields[i].Value.Equal(other.fields[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders the value in LROL syntax.
func (v *Value) String() string {
	if v == nil {
		return ""
	}
	var sb strings.Builder
	v.write(&sb)
	return sb.String()
}

func (v *Value) write(sb *strings.Builder) {
	switch v.typ {
	case ValueTypeString:
		sb.WriteByte('"')
		sb.WriteString(v.str)
		sb.WriteByte('"')
	case ValueTypeNumber:
		sb.WriteString(strconv.FormatFloat(v.num, 'f', -1, 64))
	case ValueTypeBoolean:
		sb.WriteString(strconv.FormatBool(v.boolean))
	case ValueTypeArray:
		sb.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				sb.WriteString(", ")
			}
			item.write(sb)
		}
		sb.WriteByte(']')
	case ValueTypeObject:
		sb.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteByte('"')
			sb.WriteString(f.Key)
			sb.WriteString(`": `)
			f.Value.write(sb)
		}
		sb.WriteByte('}')
	}
}

// MarshalJSON encodes the value as the equivalent JSON literal.
func (v *Value) MarshalJSON() ([]byte, error) {
	switch v.typ {
	case ValueTypeString:
		return json.Marshal(v.str)
	case ValueTypeNumber:
		return json.Marshal(v.num)
	case ValueTypeBoolean:
		return json.Marshal(v.boolean)
	case ValueTypeArray:
		if v.items == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.items)
	case ValueTypeObject:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(f.Key)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			val, err := f.Value.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}
	return []byte("null"), nil
}
